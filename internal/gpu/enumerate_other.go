//go:build !linux && !darwin && !windows

package gpu

import (
	"context"

	"clipforge/internal/config"
)

// nullEnumerator reports no adapters on platforms without an enumeration
// strategy; the pipeline falls back to software encoding.
type nullEnumerator struct{}

func newPlatformEnumerator(*config.Config) enumerator {
	return nullEnumerator{}
}

func (nullEnumerator) enumerate(context.Context) ([]Device, error) {
	return nil, nil
}
