//go:build darwin

package gpu

import (
	"context"
	"fmt"

	"clipforge/internal/config"
)

// systemProfilerEnumerator lists adapters via the macOS hardware report.
type systemProfilerEnumerator struct {
	binary string
}

func newPlatformEnumerator(cfg *config.Config) enumerator {
	return &systemProfilerEnumerator{binary: cfg.SystemProfilerBinary()}
}

func (e *systemProfilerEnumerator) enumerate(ctx context.Context) ([]Device, error) {
	output, err := runCommandOutput(ctx, e.binary, "SPDisplaysDataType")
	if err != nil {
		return nil, fmt.Errorf("system_profiler: %w", err)
	}
	return ParseSystemProfiler(string(output)), nil
}
