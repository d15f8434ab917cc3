//go:build !linux

package gpu

import (
	"context"
	"log/slog"
)

// HotplugMonitor is a no-op outside Linux; udev netlink events are not
// available elsewhere.
type HotplugMonitor struct{}

// NewHotplugMonitor returns an inert monitor.
func NewHotplugMonitor(*slog.Logger, func(ctx context.Context)) *HotplugMonitor {
	return &HotplugMonitor{}
}

// Start is a no-op.
func (m *HotplugMonitor) Start(context.Context) error { return nil }

// Stop is a no-op.
func (m *HotplugMonitor) Stop() {}
