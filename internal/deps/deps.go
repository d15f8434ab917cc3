// Package deps verifies the external tools the pipeline shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"clipforge/internal/config"
)

// Requirement defines an external dependency clipforge relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Required builds the dependency list for the current configuration and
// platform. Vendor VRAM tools are optional; detection degrades without them.
func Required(cfg *config.Config) []Requirement {
	requirements := []Requirement{
		{Name: "FFmpeg", Command: cfg.FFmpegBinary(), Description: "media transcoding"},
		{Name: "FFprobe", Command: cfg.FFprobeBinary(), Description: "media metadata probing"},
		{Name: "Whisper", Command: cfg.WhisperBinary(), Description: "subtitle transcription", Optional: !cfg.Subtitles.Enabled},
	}
	switch runtime.GOOS {
	case "linux":
		requirements = append(requirements,
			Requirement{Name: "lspci", Command: cfg.LspciBinary(), Description: "GPU enumeration", Optional: true},
			Requirement{Name: "nvidia-smi", Command: cfg.NvidiaSMIBinary(), Description: "NVIDIA VRAM probe", Optional: true},
			Requirement{Name: "rocm-smi", Command: cfg.RocmSMIBinary(), Description: "AMD VRAM probe", Optional: true},
			Requirement{Name: "intel_gpu_top", Command: cfg.IntelGPUTopBinary(), Description: "Intel VRAM probe", Optional: true},
		)
	case "darwin":
		requirements = append(requirements,
			Requirement{Name: "system_profiler", Command: cfg.SystemProfilerBinary(), Description: "GPU enumeration", Optional: true},
		)
	}
	return requirements
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired filters statuses down to unavailable mandatory tools.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}
