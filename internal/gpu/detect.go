package gpu

import (
	"context"
	"log/slog"

	"clipforge/internal/config"
	"clipforge/internal/logging"
)

// enumerator lists the display adapters visible on the host. One
// implementation exists per platform; selection happens at build time.
type enumerator interface {
	enumerate(ctx context.Context) ([]Device, error)
}

// Detector builds capability snapshots. It never fails: enumeration and
// probe errors degrade to an empty device list or zero VRAM.
type Detector struct {
	cfg    *config.Config
	logger *slog.Logger
	enum   enumerator
	vram   vramResolver
}

// NewDetector constructs a detector for the current platform.
func NewDetector(cfg *config.Config, logger *slog.Logger) *Detector {
	logger = logging.NewComponentLogger(logger, "gpu-detector")
	return &Detector{
		cfg:    cfg,
		logger: logger,
		enum:   newPlatformEnumerator(cfg),
		vram:   vramResolver{cfg: cfg, logger: logger},
	}
}

// Detect enumerates adapters, resolves vendor, codec, VRAM, and whisper
// model per device, and returns the snapshot with the selected device.
func (d *Detector) Detect(ctx context.Context) Snapshot {
	devices, err := d.enum.enumerate(ctx)
	if err != nil {
		d.logger.Warn("gpu enumeration failed, continuing without hardware encoding",
			logging.Error(err),
			logging.String(logging.FieldEventType, "gpu_enumeration_failed"),
		)
		devices = nil
	}

	for i := range devices {
		device := &devices[i]
		device.Vendor = ResolveVendor(device.VendorID)
		device.Codec = CodecFor(device.Vendor)
		// The macOS hardware report already carries VRAM for discrete
		// adapters; only probe when enumeration left it unknown.
		if device.VRAMMB == 0 {
			device.VRAMMB = d.vram.resolve(ctx, device.Vendor)
		}
		device.WhisperModel = WhisperModelFor(device.VRAMMB)
	}

	snapshot := NewSnapshot(devices)
	d.logger.Info("gpu detection complete",
		logging.Int("devices", len(devices)),
		logging.String("vendor", string(snapshot.Selected.Vendor)),
		logging.String("codec", snapshot.Codec()),
		logging.String("whisper_model", snapshot.WhisperModel()),
		logging.Int("vram_mb", snapshot.Selected.VRAMMB),
	)
	return snapshot
}
