package gpu

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Snapshot is the detector's one-time output: every enumerated device plus
// the selected one whose codec and whisper model the pipeline uses. Safe for
// unlimited concurrent readers; never mutated after construction.
type Snapshot struct {
	Devices    []Device  `json:"devices"`
	Selected   Device    `json:"selected"`
	DetectedAt time.Time `json:"detected_at"`
}

// NewSnapshot derives the selected device from the enumerated list. The
// device with the most VRAM wins; ties go to the earlier-enumerated device.
// An empty list selects a software-only placeholder so the pipeline always
// has a usable codec and model tier.
func NewSnapshot(devices []Device) Snapshot {
	selected := Device{
		Name:         "none",
		Vendor:       VendorUnknown,
		Codec:        SoftwareCodec,
		WhisperModel: WhisperModelFor(0),
	}
	for i, device := range devices {
		if i == 0 || device.VRAMMB > selected.VRAMMB {
			selected = device
		}
	}
	return Snapshot{
		Devices:    devices,
		Selected:   selected,
		DetectedAt: time.Now().UTC(),
	}
}

// Codec returns the selected device's encoder, defaulting to the software
// encoder for zero-value snapshots.
func (s Snapshot) Codec() string {
	if s.Selected.Codec == "" {
		return SoftwareCodec
	}
	return s.Selected.Codec
}

// WhisperModel returns the selected device's transcription model tier,
// defaulting to the smallest tier for zero-value snapshots.
func (s Snapshot) WhisperModel() string {
	if s.Selected.WhisperModel == "" {
		return WhisperModelFor(0)
	}
	return s.Selected.WhisperModel
}

// Save writes the snapshot as indented JSON for inspection.
func (s Snapshot) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
