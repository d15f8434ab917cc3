package gpu

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestNewSnapshotSelectsHighestVRAM(t *testing.T) {
	devices := []Device{
		{Name: "Intel UHD 770", Vendor: VendorIntel, Codec: "h264_qsv", VRAMMB: 2048},
		{Name: "RTX 4080", Vendor: VendorNVIDIA, Codec: "h264_nvenc", VRAMMB: 16384},
		{Name: "RX 7800", Vendor: VendorAMD, Codec: "h264_amf", VRAMMB: 16384},
	}
	snapshot := NewSnapshot(devices)
	if snapshot.Selected.Name != "RTX 4080" {
		t.Fatalf("selected %s, want RTX 4080", snapshot.Selected.Name)
	}
	if snapshot.Codec() != "h264_nvenc" {
		t.Fatalf("codec = %s", snapshot.Codec())
	}
	if len(snapshot.Devices) != 3 {
		t.Fatalf("devices = %d", len(snapshot.Devices))
	}
	if snapshot.DetectedAt.IsZero() {
		t.Fatal("DetectedAt not set")
	}
}

func TestNewSnapshotTieKeepsFirstEnumerated(t *testing.T) {
	devices := []Device{
		{Name: "GPU A", Vendor: VendorNVIDIA, Codec: "h264_nvenc", VRAMMB: 8192},
		{Name: "GPU B", Vendor: VendorAMD, Codec: "h264_amf", VRAMMB: 8192},
	}
	snapshot := NewSnapshot(devices)
	if snapshot.Selected.Name != "GPU A" {
		t.Fatalf("selected %s, want first enumerated on tie", snapshot.Selected.Name)
	}
}

func TestNewSnapshotEmptyFallsBackToSoftware(t *testing.T) {
	snapshot := NewSnapshot(nil)
	if snapshot.Selected.Vendor != VendorUnknown {
		t.Fatalf("vendor = %s", snapshot.Selected.Vendor)
	}
	if snapshot.Codec() != SoftwareCodec {
		t.Fatalf("codec = %s", snapshot.Codec())
	}
	if snapshot.WhisperModel() != "tiny" {
		t.Fatalf("whisper model = %s", snapshot.WhisperModel())
	}
}

func TestSnapshotZeroValueDefaults(t *testing.T) {
	var snapshot Snapshot
	if snapshot.Codec() != SoftwareCodec {
		t.Fatalf("codec = %s", snapshot.Codec())
	}
	if snapshot.WhisperModel() != "tiny" {
		t.Fatalf("whisper model = %s", snapshot.WhisperModel())
	}
}

func TestSnapshotSave(t *testing.T) {
	snapshot := NewSnapshot([]Device{
		{Name: "RTX 3060", Vendor: VendorNVIDIA, Codec: "h264_nvenc", VRAMMB: 12288, WhisperModel: "large"},
	})
	path := filepath.Join(t.TempDir(), "cache", "gpu.json")
	if err := snapshot.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	var loaded Snapshot
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if loaded.Selected.Name != "RTX 3060" {
		t.Fatalf("selected = %s", loaded.Selected.Name)
	}
	if loaded.Selected.VRAMMB != 12288 {
		t.Fatalf("vram = %d", loaded.Selected.VRAMMB)
	}
}
