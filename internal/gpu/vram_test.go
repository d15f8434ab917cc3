package gpu

import (
	"context"
	"errors"
	"testing"

	"clipforge/internal/config"
	"clipforge/internal/logging"
)

func TestParseNvidiaSMI(t *testing.T) {
	vram, err := parseNvidiaSMI("8192\n")
	if err != nil {
		t.Fatalf("parseNvidiaSMI: %v", err)
	}
	if vram != 8192 {
		t.Fatalf("vram = %d", vram)
	}

	// Multi-GPU output: first line wins.
	vram, err = parseNvidiaSMI("24576\n8192\n")
	if err != nil {
		t.Fatalf("parseNvidiaSMI multi: %v", err)
	}
	if vram != 24576 {
		t.Fatalf("vram = %d", vram)
	}

	if _, err := parseNvidiaSMI("N/A\n"); err == nil {
		t.Fatal("expected parse error for N/A")
	}
}

func TestParseRocmSMI(t *testing.T) {
	output := `============================ ROCm System Management Interface ============================
GPU[0] : VRAM Total Memory (MiB): 16368 MiB
GPU[0] : VRAM Total Used Memory (MiB): 512 MiB
===========================================================================================
`
	vram, err := parseRocmSMI(output)
	if err != nil {
		t.Fatalf("parseRocmSMI: %v", err)
	}
	if vram != 16368 {
		t.Fatalf("vram = %d", vram)
	}

	if _, err := parseRocmSMI("no memory info here\n"); err == nil {
		t.Fatal("expected error for missing total line")
	}
}

func TestParseIntelGPUTop(t *testing.T) {
	vram, err := parseIntelGPUTop([]byte(`{"DRAM": {"total": 2048}}`))
	if err != nil {
		t.Fatalf("parseIntelGPUTop: %v", err)
	}
	if vram != 2048 {
		t.Fatalf("vram = %d", vram)
	}

	vram, err = parseIntelGPUTop([]byte(`{"period": {"duration": 10}}`))
	if err != nil {
		t.Fatalf("parseIntelGPUTop missing field: %v", err)
	}
	if vram != 0 {
		t.Fatalf("vram = %d, want 0 for absent DRAM block", vram)
	}

	if _, err := parseIntelGPUTop([]byte("not json")); err == nil {
		t.Fatal("expected json error")
	}
}

func TestResolveAppleHalvesSystemRAM(t *testing.T) {
	restore := SetSystemRAMForTests(func(context.Context) (uint64, error) {
		return 16 * 1024 * 1024 * 1024, nil
	})
	defer restore()

	cfg := config.Default()
	resolver := vramResolver{cfg: &cfg, logger: logging.NewNop()}
	vram := resolver.resolve(context.Background(), VendorApple)
	if vram != 8192 {
		t.Fatalf("apple vram = %d, want 8192", vram)
	}
}

func TestResolveDegradesToZero(t *testing.T) {
	restore := SetCommandRunnerForTests(func(context.Context, string, ...string) ([]byte, error) {
		return nil, errors.New("tool not installed")
	})
	defer restore()

	cfg := config.Default()
	resolver := vramResolver{cfg: &cfg, logger: logging.NewNop()}
	for _, vendor := range []Vendor{VendorNVIDIA, VendorAMD, VendorIntel} {
		if vram := resolver.resolve(context.Background(), vendor); vram != 0 {
			t.Fatalf("%s vram = %d, want 0 on tool failure", vendor, vram)
		}
	}
	if vram := resolver.resolve(context.Background(), VendorUnknown); vram != 0 {
		t.Fatalf("unknown vendor vram = %d", vram)
	}
}

func TestResolveNvidiaUsesConfiguredBinary(t *testing.T) {
	var gotName string
	var gotArgs []string
	restore := SetCommandRunnerForTests(func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotName = name
		gotArgs = args
		return []byte("4096\n"), nil
	})
	defer restore()

	cfg := config.Default()
	cfg.Tools.NvidiaSMI = "/usr/local/bin/nvidia-smi"
	resolver := vramResolver{cfg: &cfg, logger: logging.NewNop()}
	if vram := resolver.resolve(context.Background(), VendorNVIDIA); vram != 4096 {
		t.Fatalf("vram = %d", vram)
	}
	if gotName != "/usr/local/bin/nvidia-smi" {
		t.Fatalf("binary = %s", gotName)
	}
	if len(gotArgs) != 2 || gotArgs[0] != "--query-gpu=memory.total" {
		t.Fatalf("args = %v", gotArgs)
	}
}
