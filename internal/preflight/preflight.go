package preflight

import (
	"context"

	"nfcrename/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Application directory", cfg.Paths.AppDir),
		CheckGate(cfg),
	}
	// The queue lives in the application directory; skip it when that is missing.
	if results[0].Passed {
		results = append(results, CheckQueue(ctx, cfg))
	}
	return results
}
