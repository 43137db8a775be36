package services

import "context"

type contextKey string

const (
	runIDKey contextKey = "run_id"
	trackKey contextKey = "track"
)

// WithRunID annotates context with the scan run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the scan run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithTrack annotates context with the path of the track being processed.
func WithTrack(ctx context.Context, path string) context.Context {
	if path == "" {
		return ctx
	}
	return context.WithValue(ctx, trackKey, path)
}

// TrackFromContext returns the track path if present.
func TrackFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(trackKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
