// Package preflight validates the runtime environment before pipeline work
// starts: directory access, free space, and external tool availability.
package preflight

import (
	"context"
	"fmt"

	"clipforge/internal/config"
	"clipforge/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// minimumFreeBytes is the floor for staging free space. Transcodes stage a
// full copy of the source plus the encode output.
const minimumFreeBytes = 2 * 1024 * 1024 * 1024

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckDirectoryAccess("Staging directory", cfg.Paths.StagingDir))
	results = append(results, CheckDirectoryAccess("Media directory", cfg.Paths.MediaDir))
	results = append(results, CheckFreeSpace("Staging free space", cfg.Paths.StagingDir, minimumFreeBytes))

	for _, status := range deps.CheckBinaries(deps.Required(cfg)) {
		if status.Optional {
			continue
		}
		detail := status.Command
		if !status.Available {
			detail = status.Detail
		}
		results = append(results, Result{Name: status.Name, Passed: status.Available, Detail: detail})
	}
	return results
}

// Failed filters results down to failed checks.
func Failed(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}
	return failed
}

func formatBytes(bytes uint64) string {
	const gib = 1024 * 1024 * 1024
	return fmt.Sprintf("%.1f GiB", float64(bytes)/gib)
}
