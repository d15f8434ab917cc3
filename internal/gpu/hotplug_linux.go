//go:build linux

package gpu

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pilebones/go-udev/netlink"

	"clipforge/internal/logging"
)

// HotplugMonitor listens for udev netlink events on the drm subsystem and
// invokes a callback when a display adapter appears or disappears, so the
// capability snapshot can be rebuilt without restarting the process.
type HotplugMonitor struct {
	logger   *slog.Logger
	onChange func(ctx context.Context)

	mu      sync.Mutex
	conn    *netlink.UEventConn
	quit    chan struct{}
	running bool
}

// NewHotplugMonitor creates a monitor that calls onChange after each GPU
// add or remove event.
func NewHotplugMonitor(logger *slog.Logger, onChange func(ctx context.Context)) *HotplugMonitor {
	return &HotplugMonitor{
		logger:   logging.NewComponentLogger(logger, "gpu-hotplug"),
		onChange: onChange,
	}
}

// Start begins listening for udev netlink events. A failed netlink connect
// is non-fatal: detection simply stays pinned to the startup snapshot.
func (m *HotplugMonitor) Start(ctx context.Context) error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		m.logger.Warn("failed to connect to netlink socket; gpu hotplug detection disabled",
			logging.Error(err),
			logging.String(logging.FieldEventType, "netlink_connect_failed"),
		)
		return nil
	}

	m.conn = conn
	m.quit = make(chan struct{})
	m.running = true

	quit := m.quit
	go m.monitorLoop(ctx, quit)

	m.logger.Info("gpu hotplug monitor started",
		logging.String(logging.FieldEventType, "hotplug_monitor_started"),
	)
	return nil
}

// Stop shuts down the monitor.
func (m *HotplugMonitor) Stop() {
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	if m.quit != nil {
		close(m.quit)
		m.quit = nil
	}
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
	m.running = false
}

func (m *HotplugMonitor) monitorLoop(ctx context.Context, quit <-chan struct{}) {
	queue := make(chan netlink.UEvent)
	errs := make(chan error)

	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()
	if conn == nil {
		return
	}

	monitorQuit := conn.Monitor(queue, errs, m.buildMatcher())

	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case uevent := <-queue:
			m.logger.Info("display adapter change detected",
				logging.String("action", string(uevent.Action)),
				logging.String("kobj", uevent.KObj),
				logging.String(logging.FieldEventType, "gpu_hotplug_event"),
			)
			if m.onChange != nil {
				m.onChange(ctx)
			}
		case err := <-errs:
			m.logger.Warn("netlink monitor error",
				logging.Error(err),
				logging.String(logging.FieldEventType, "netlink_monitor_error"),
			)
		}
	}
}

// buildMatcher matches drm subsystem add/remove events.
func (m *HotplugMonitor) buildMatcher() netlink.Matcher {
	action := "add|remove"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "drm",
		},
	})
	return rules
}
