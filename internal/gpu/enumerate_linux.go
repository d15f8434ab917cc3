//go:build linux

package gpu

import (
	"context"
	"fmt"

	"clipforge/internal/config"
)

// lspciEnumerator lists adapters via the PCI bus listing tool, keeping only
// display and 3D-controller class entries.
type lspciEnumerator struct {
	binary string
}

func newPlatformEnumerator(cfg *config.Config) enumerator {
	return &lspciEnumerator{binary: cfg.LspciBinary()}
}

func (e *lspciEnumerator) enumerate(ctx context.Context) ([]Device, error) {
	output, err := runCommandOutput(ctx, e.binary, "-nn")
	if err != nil {
		return nil, fmt.Errorf("lspci: %w", err)
	}
	return ParseLspci(string(output)), nil
}
