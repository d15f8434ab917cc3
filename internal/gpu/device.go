package gpu

// Vendor identifies a GPU manufacturer resolved from a PCI vendor code.
type Vendor string

const (
	VendorNVIDIA  Vendor = "NVIDIA"
	VendorAMD     Vendor = "AMD"
	VendorIntel   Vendor = "Intel"
	VendorApple   Vendor = "Apple"
	VendorUnknown Vendor = "Unknown"
)

// Device describes one enumerated display adapter. Instances are immutable
// once the detector has filled the derived fields.
type Device struct {
	Name         string `json:"name"`
	VendorID     string `json:"vendor_id"`
	DeviceID     string `json:"device_id"`
	Vendor       Vendor `json:"vendor"`
	Codec        string `json:"codec"`
	VRAMMB       int    `json:"vram_mb"`
	WhisperModel string `json:"whisper_model"`
	// Cores is reported by the macOS hardware report only.
	Cores int `json:"cores,omitempty"`
}
