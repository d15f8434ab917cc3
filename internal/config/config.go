package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StagingDir   string `toml:"staging_dir"`
	MediaDir     string `toml:"media_dir"`
	LogDir       string `toml:"log_dir"`
	MediaBaseURL string `toml:"media_base_url"`
}

// Transcode contains encoder invocation settings.
type Transcode struct {
	CRF        int    `toml:"crf"`
	Preset     string `toml:"preset"`
	AudioCodec string `toml:"audio_codec"`
}

// Subtitles contains transcription settings.
type Subtitles struct {
	Enabled  bool   `toml:"enabled"`
	Language string `toml:"language"`
	// Model overrides the hardware-selected whisper tier when set.
	Model string `toml:"model"`
}

// Tools contains external binary names or paths. Empty values fall back to
// the bare command names resolved via PATH.
type Tools struct {
	FFmpeg         string `toml:"ffmpeg"`
	FFprobe        string `toml:"ffprobe"`
	Whisper        string `toml:"whisper"`
	NvidiaSMI      string `toml:"nvidia_smi"`
	RocmSMI        string `toml:"rocm_smi"`
	IntelGPUTop    string `toml:"intel_gpu_top"`
	Lspci          string `toml:"lspci"`
	SystemProfiler string `toml:"system_profiler"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Workflow contains pipeline timing settings.
type Workflow struct {
	JobTimeoutSeconds int `toml:"job_timeout_seconds"`
	StaleStagingHours int `toml:"stale_staging_hours"`
}

// Config encapsulates all configuration values for clipforge.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Transcode Transcode `toml:"transcode"`
	Subtitles Subtitles `toml:"subtitles"`
	Tools     Tools     `toml:"tools"`
	Logging   Logging   `toml:"logging"`
	Workflow  Workflow  `toml:"workflow"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/clipforge/config.toml")
}

// ExpandPath resolves ~ and environment variables in a user-supplied path
// and makes it absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second return is
// the resolved path, the third reports whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("clipforge.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists: %s", expanded)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0o644)
}

// EnsureDirectories creates the staging, media, and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StagingDir, c.Paths.MediaDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func binaryOr(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// FFmpegBinary returns the ffmpeg executable used for encoding.
func (c *Config) FFmpegBinary() string { return binaryOr(c.Tools.FFmpeg, "ffmpeg") }

// FFprobeBinary returns the ffprobe executable used for media inspection.
func (c *Config) FFprobeBinary() string { return binaryOr(c.Tools.FFprobe, "ffprobe") }

// WhisperBinary returns the speech-to-text executable.
func (c *Config) WhisperBinary() string { return binaryOr(c.Tools.Whisper, "whisper") }

// NvidiaSMIBinary returns the NVIDIA management CLI.
func (c *Config) NvidiaSMIBinary() string { return binaryOr(c.Tools.NvidiaSMI, "nvidia-smi") }

// RocmSMIBinary returns the AMD ROCm management CLI.
func (c *Config) RocmSMIBinary() string { return binaryOr(c.Tools.RocmSMI, "rocm-smi") }

// IntelGPUTopBinary returns the Intel GPU top tool.
func (c *Config) IntelGPUTopBinary() string { return binaryOr(c.Tools.IntelGPUTop, "intel_gpu_top") }

// LspciBinary returns the PCI bus listing tool.
func (c *Config) LspciBinary() string { return binaryOr(c.Tools.Lspci, "lspci") }

// SystemProfilerBinary returns the macOS hardware report tool.
func (c *Config) SystemProfilerBinary() string {
	return binaryOr(c.Tools.SystemProfiler, "system_profiler")
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			trimmed = home
		} else {
			trimmed = filepath.Join(home, trimmed[2:])
		}
	}
	expanded := os.ExpandEnv(trimmed)
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", path, err)
	}
	return abs, nil
}
