package preflight

import (
	"context"

	"lyrebird/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// minStateSpace is the free space the state directory needs for logs and the
// history database.
const minStateSpace = 64 << 20

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Library root", cfg.Library.Root))
	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	results = append(results, CheckDiskSpace("State disk space", cfg.Paths.StateDir, minStateSpace))

	switch cfg.Provider.Kind {
	case config.ProviderTuneHub:
		results = append(results, CheckProvider(ctx, "TuneHub API", cfg.Provider.TuneHub.BaseURL, ""))
	case config.ProviderLrcAPI:
		results = append(results, CheckProvider(ctx, "LrcApi server", cfg.Provider.LrcAPI.BaseURL, cfg.Provider.LrcAPI.AuthKey))
	}

	return results
}

// AllPassed reports whether every check in results passed.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
