package gpu

import "strings"

// SoftwareCodec is the universal fallback encoder used when no hardware
// encoder is available.
const SoftwareCodec = "libx264"

var vendorIDs = map[string]Vendor{
	"10DE": VendorNVIDIA,
	"1002": VendorAMD,
	"8086": VendorIntel,
	"106B": VendorApple,
}

var vendorCodecs = map[Vendor]string{
	VendorNVIDIA:  "h264_nvenc",
	VendorAMD:     "h264_amf",
	VendorIntel:   "h264_qsv",
	VendorApple:   "h264_videotoolbox",
	VendorUnknown: SoftwareCodec,
}

// whisperTiers maps minimum VRAM in MiB to the largest whisper model that
// fits. Evaluated highest threshold first; lower bounds are inclusive.
var whisperTiers = []struct {
	minVRAMMB int
	model     string
}{
	{10000, "large"},
	{6000, "turbo"},
	{5000, "medium"},
	{2000, "small"},
	{1000, "base"},
	{0, "tiny"},
}

// ResolveVendor maps a 4-hex-digit PCI vendor code to a Vendor. Unmapped or
// empty codes resolve to VendorUnknown. Matching is case-insensitive.
func ResolveVendor(pciVendorID string) Vendor {
	if vendor, ok := vendorIDs[strings.ToUpper(strings.TrimSpace(pciVendorID))]; ok {
		return vendor
	}
	return VendorUnknown
}

// CodecFor returns the preferred hardware encoder for a vendor, falling back
// to the software encoder for unknown vendors.
func CodecFor(vendor Vendor) string {
	if codec, ok := vendorCodecs[vendor]; ok {
		return codec
	}
	return SoftwareCodec
}

// WhisperModelFor selects the largest whisper model tier whose VRAM floor is
// at or below the available VRAM. Zero or negative VRAM selects the lowest
// tier.
func WhisperModelFor(vramMB int) string {
	for _, tier := range whisperTiers {
		if vramMB >= tier.minVRAMMB {
			return tier.model
		}
	}
	return "tiny"
}
