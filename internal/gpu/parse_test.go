package gpu

import "testing"

func TestExtractPNPIDs(t *testing.T) {
	cases := []struct {
		input        string
		wantVendorID string
		wantDeviceID string
	}{
		{`PCI\VEN_10DE&DEV_2484&SUBSYS_146F10DE&REV_A1`, "10DE", "2484"},
		{`PCI\VEN_8086&DEV_9BC4`, "8086", "9BC4"},
		{`ROOT\BasicDisplay`, "", ""},
		{`PCI\VEN_1002`, "1002", ""},
		{``, "", ""},
	}
	for _, tc := range cases {
		vendorID, deviceID := ExtractPNPIDs(tc.input)
		if vendorID != tc.wantVendorID || deviceID != tc.wantDeviceID {
			t.Errorf("ExtractPNPIDs(%q) = (%q, %q), want (%q, %q)",
				tc.input, vendorID, deviceID, tc.wantVendorID, tc.wantDeviceID)
		}
	}
}

const lspciSample = `00:02.0 VGA compatible controller [0300]: Intel Corporation CometLake-S GT2 [UHD Graphics 630] [8086:9bc5] (rev 05)
01:00.0 VGA compatible controller [0300]: NVIDIA Corporation GA104 [GeForce RTX 3070] [10de:2484] (rev a1)
02:00.0 3D controller [0302]: NVIDIA Corporation GP107M [GeForce GTX 1050 Mobile] [10de:1c8d] (rev a1)
03:00.0 Ethernet controller [0200]: Realtek Semiconductor Co., Ltd. RTL8111/8168 [10ec:8168] (rev 15)
`

func TestParseLspci(t *testing.T) {
	devices := ParseLspci(lspciSample)
	if len(devices) != 3 {
		t.Fatalf("expected 3 display adapters, got %d", len(devices))
	}

	first := devices[0]
	if first.VendorID != "8086" || first.DeviceID != "9bc5" {
		t.Fatalf("first ids = %s:%s", first.VendorID, first.DeviceID)
	}
	if first.Name != "Intel Corporation CometLake-S GT2 [UHD Graphics 630]" {
		t.Fatalf("first name = %q", first.Name)
	}

	second := devices[1]
	if second.VendorID != "10de" || second.DeviceID != "2484" {
		t.Fatalf("second ids = %s:%s", second.VendorID, second.DeviceID)
	}
	if ResolveVendor(second.VendorID) != VendorNVIDIA {
		t.Fatalf("second vendor resolve failed for %s", second.VendorID)
	}

	third := devices[2]
	if third.DeviceID != "1c8d" {
		t.Fatalf("3d controller not parsed: %+v", third)
	}
}

func TestParseLspciWithoutIDBracket(t *testing.T) {
	devices := ParseLspci("01:00.0 VGA compatible controller: Cirrus Logic GD 5446\n")
	if len(devices) != 1 {
		t.Fatalf("expected 1 device, got %d", len(devices))
	}
	if devices[0].VendorID != "" || devices[0].DeviceID != "" {
		t.Fatalf("ids should be unresolved, got %s:%s", devices[0].VendorID, devices[0].DeviceID)
	}
}

const systemProfilerSample = `Graphics/Displays:

    Apple M2 Pro:

      Chipset Model: Apple M2 Pro
      Type: GPU
      Bus: Built-In
      Total Number of Cores: 19
      Vendor: Apple (0x106b)
      Metal Support: Metal 3

    Radeon Pro 570:

      Chipset Model: Radeon Pro 570
      Type: GPU
      Bus: PCIe
      VRAM (Total): 4096 MB
      Vendor: AMD (0x1002)
`

func TestParseSystemProfiler(t *testing.T) {
	devices := ParseSystemProfiler(systemProfilerSample)
	if len(devices) != 2 {
		t.Fatalf("expected 2 adapters, got %d", len(devices))
	}

	apple := devices[0]
	if apple.Name != "Apple M2 Pro" {
		t.Fatalf("apple name = %q", apple.Name)
	}
	if apple.VendorID != "106B" {
		t.Fatalf("apple vendor id = %q", apple.VendorID)
	}
	if apple.Cores != 19 {
		t.Fatalf("apple cores = %d", apple.Cores)
	}
	if apple.VRAMMB != 0 {
		t.Fatalf("apple vram should be unknown, got %d", apple.VRAMMB)
	}

	radeon := devices[1]
	if radeon.VendorID != "1002" {
		t.Fatalf("radeon vendor id = %q", radeon.VendorID)
	}
	if radeon.VRAMMB != 4096 {
		t.Fatalf("radeon vram = %d", radeon.VRAMMB)
	}
}

func TestParseSystemProfilerVendorWithoutCode(t *testing.T) {
	output := "Chipset Model: Intel Iris Plus\nVendor: Intel\n"
	devices := ParseSystemProfiler(output)
	if len(devices) != 1 {
		t.Fatalf("expected 1 adapter, got %d", len(devices))
	}
	if devices[0].VendorID != "8086" {
		t.Fatalf("vendor id = %q", devices[0].VendorID)
	}
}
