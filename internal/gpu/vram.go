package gpu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/mem"

	"clipforge/internal/config"
	"clipforge/internal/logging"
)

// runCommandOutput executes a probe tool and returns its stdout. Package
// variable so tests can substitute canned output.
var runCommandOutput = func(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// SetCommandRunnerForTests overrides the probe tool runner during tests.
func SetCommandRunnerForTests(fn func(context.Context, string, ...string) ([]byte, error)) func() {
	previous := runCommandOutput
	runCommandOutput = fn
	return func() {
		runCommandOutput = previous
	}
}

// totalSystemRAM reports total physical memory in bytes. Package variable so
// tests can pin a known value.
var totalSystemRAM = func(ctx context.Context) (uint64, error) {
	stats, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return stats.Total, nil
}

// SetSystemRAMForTests overrides the system memory reader during tests.
func SetSystemRAMForTests(fn func(context.Context) (uint64, error)) func() {
	previous := totalSystemRAM
	totalSystemRAM = fn
	return func() {
		totalSystemRAM = previous
	}
}

type vramResolver struct {
	cfg    *config.Config
	logger *slog.Logger
}

// resolve queries the vendor-specific tool for total video memory in MiB.
// Every failure degrades to zero; nothing here is fatal to detection.
func (r vramResolver) resolve(ctx context.Context, vendor Vendor) int {
	var (
		vram int
		err  error
	)
	switch vendor {
	case VendorNVIDIA:
		vram, err = r.nvidia(ctx)
	case VendorAMD:
		vram, err = r.amd(ctx)
	case VendorIntel:
		vram, err = r.intel(ctx)
	case VendorApple:
		vram, err = r.apple(ctx)
	default:
		return 0
	}
	if err != nil {
		r.logger.Warn("vram probe failed, assuming 0",
			logging.String("vendor", string(vendor)),
			logging.Error(err),
			logging.String(logging.FieldEventType, "vram_probe_failed"),
		)
		return 0
	}
	return vram
}

func (r vramResolver) nvidia(ctx context.Context) (int, error) {
	output, err := runCommandOutput(ctx, r.cfg.NvidiaSMIBinary(),
		"--query-gpu=memory.total", "--format=csv,noheader,nounits")
	if err != nil {
		return 0, fmt.Errorf("nvidia-smi: %w", err)
	}
	return parseNvidiaSMI(string(output))
}

func (r vramResolver) amd(ctx context.Context) (int, error) {
	output, err := runCommandOutput(ctx, r.cfg.RocmSMIBinary(), "--showmeminfo", "vram")
	if err != nil {
		return 0, fmt.Errorf("rocm-smi: %w", err)
	}
	return parseRocmSMI(string(output))
}

func (r vramResolver) intel(ctx context.Context) (int, error) {
	output, err := runCommandOutput(ctx, r.cfg.IntelGPUTopBinary(), "-J")
	if err != nil {
		return 0, fmt.Errorf("intel_gpu_top: %w", err)
	}
	return parseIntelGPUTop(output)
}

// apple approximates unified memory as half of total system RAM; there is
// no discrete VRAM to query.
func (r vramResolver) apple(ctx context.Context) (int, error) {
	total, err := totalSystemRAM(ctx)
	if err != nil {
		return 0, fmt.Errorf("system memory: %w", err)
	}
	return int(total / (1024 * 1024 * 2)), nil
}

func parseNvidiaSMI(output string) (int, error) {
	line, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
	vram, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("parse nvidia-smi output %q: %w", line, err)
	}
	return vram, nil
}

func parseRocmSMI(output string) (int, error) {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "Total") {
			continue
		}
		idx := strings.LastIndex(line, ":")
		if idx < 0 {
			continue
		}
		value := strings.TrimSpace(line[idx+1:])
		value = strings.TrimSpace(strings.TrimSuffix(value, "MiB"))
		vram, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("parse rocm-smi line %q: %w", strings.TrimSpace(line), err)
		}
		return vram, nil
	}
	return 0, errors.New("rocm-smi output missing total memory line")
}

func parseIntelGPUTop(output []byte) (int, error) {
	var payload struct {
		DRAM struct {
			Total float64 `json:"total"`
		} `json:"DRAM"`
	}
	if err := json.Unmarshal(output, &payload); err != nil {
		return 0, fmt.Errorf("parse intel_gpu_top json: %w", err)
	}
	return int(payload.DRAM.Total), nil
}
