package gpu

import "testing"

func TestResolveVendor(t *testing.T) {
	cases := []struct {
		id   string
		want Vendor
	}{
		{"10DE", VendorNVIDIA},
		{"10de", VendorNVIDIA},
		{"1002", VendorAMD},
		{"8086", VendorIntel},
		{"106B", VendorApple},
		{"106b", VendorApple},
		{"dead", VendorUnknown},
		{"", VendorUnknown},
		{"  8086 ", VendorIntel},
	}
	for _, tc := range cases {
		if got := ResolveVendor(tc.id); got != tc.want {
			t.Errorf("ResolveVendor(%q) = %s, want %s", tc.id, got, tc.want)
		}
	}
}

func TestCodecFor(t *testing.T) {
	cases := []struct {
		vendor Vendor
		want   string
	}{
		{VendorNVIDIA, "h264_nvenc"},
		{VendorAMD, "h264_amf"},
		{VendorIntel, "h264_qsv"},
		{VendorApple, "h264_videotoolbox"},
		{VendorUnknown, "libx264"},
		{Vendor("Matrox"), "libx264"},
	}
	for _, tc := range cases {
		if got := CodecFor(tc.vendor); got != tc.want {
			t.Errorf("CodecFor(%s) = %s, want %s", tc.vendor, got, tc.want)
		}
	}
}

func TestWhisperModelForIsMonotonic(t *testing.T) {
	cases := []struct {
		vramMB int
		want   string
	}{
		{0, "tiny"},
		{999, "tiny"},
		{1000, "base"},
		{1999, "base"},
		{2000, "small"},
		{4999, "small"},
		{5000, "medium"},
		{5999, "medium"},
		{6000, "turbo"},
		{9999, "turbo"},
		{10000, "large"},
		{20000, "large"},
	}
	for _, tc := range cases {
		if got := WhisperModelFor(tc.vramMB); got != tc.want {
			t.Errorf("WhisperModelFor(%d) = %s, want %s", tc.vramMB, got, tc.want)
		}
	}
}

func TestWhisperModelForNegativeVRAM(t *testing.T) {
	if got := WhisperModelFor(-1); got != "tiny" {
		t.Fatalf("WhisperModelFor(-1) = %s, want tiny", got)
	}
}
