package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrClassification = errors.New("classification error")
	ErrResolution     = errors.New("resolution error")
	ErrProvider       = errors.New("provider error")
	ErrNoMatch        = errors.New("no match")
	ErrWrite          = errors.New("write error")
	ErrConfiguration  = errors.New("configuration error")
	ErrTimeout        = errors.New("timeout")
	ErrTransient      = errors.New("transient failure")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later outcome classification. The marker should
// be one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// WrapCtx behaves like Wrap but also appends the run id and track path
// carried by ctx (see WithRunID and WithTrack), so errors surfaced from deep
// inside provider clients still name the scan pass and the file they belong
// to.
func WrapCtx(ctx context.Context, marker error, component, operation, message string, err error) error {
	var annotations []string
	if runID, ok := RunIDFromContext(ctx); ok {
		annotations = append(annotations, "run="+runID)
	}
	if track, ok := TrackFromContext(ctx); ok {
		annotations = append(annotations, "track="+track)
	}
	if len(annotations) > 0 {
		message = strings.TrimSpace(message + " [" + strings.Join(annotations, " ") + "]")
	}
	return Wrap(marker, component, operation, message, err)
}

// Retryable reports whether an error is worth retrying against the provider.
// Classification, resolution, and configuration failures are deterministic and
// never retried; a missing match is a terminal answer, not an error condition.
func Retryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrTimeout), errors.Is(err, ErrTransient):
		return true
	default:
		return false
	}
}

// ClassifyTransport picks the sentinel for a failed HTTP round trip.
func ClassifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var timeoutErr interface{ Timeout() bool }
	if errors.As(err, &timeoutErr) && timeoutErr.Timeout() {
		return ErrTimeout
	}
	return ErrTransient
}

// ClassifyStatus picks the sentinel for a non-200 HTTP status. Server-side
// and rate-limit statuses are transient; everything else is a hard provider
// failure.
func ClassifyStatus(status int) error {
	if status >= http.StatusInternalServerError || status == http.StatusTooManyRequests {
		return ErrTransient
	}
	return ErrProvider
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
