package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Transcode.CRF != 18 {
		t.Fatalf("default crf = %d", cfg.Transcode.CRF)
	}
	if !cfg.Subtitles.Enabled {
		t.Fatal("subtitles should default to enabled")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatalf("expected missing file, got exists for %s", path)
	}
	if cfg.FFmpegBinary() != "ffmpeg" || cfg.FFprobeBinary() != "ffprobe" {
		t.Fatalf("unexpected tool defaults: %s, %s", cfg.FFmpegBinary(), cfg.FFprobeBinary())
	}
}

func TestLoadParsesAndExpands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
staging_dir = "` + dir + `/staging"
media_dir = "` + dir + `/media"
media_base_url = "/files/"

[transcode]
crf = 20

[tools]
ffmpeg = "/opt/ffmpeg/bin/ffmpeg"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.Transcode.CRF != 20 {
		t.Fatalf("crf = %d", cfg.Transcode.CRF)
	}
	if cfg.FFmpegBinary() != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("ffmpeg binary = %s", cfg.FFmpegBinary())
	}
	if cfg.Paths.MediaBaseURL != "/files" {
		t.Fatalf("media base url = %s", cfg.Paths.MediaBaseURL)
	}
	if !filepath.IsAbs(cfg.Paths.StagingDir) {
		t.Fatalf("staging dir not absolute: %s", cfg.Paths.StagingDir)
	}
}

func TestValidateRejectsSharedDirs(t *testing.T) {
	cfg := Default()
	cfg.Paths.StagingDir = "/tmp/same"
	cfg.Paths.MediaDir = "/tmp/same"
	cfg.Logging.Format = "console"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "must differ") {
		t.Fatalf("expected shared dir error, got %v", err)
	}
}

func TestValidateRejectsBadCRF(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	cfg.Transcode.CRF = 99
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected crf range error")
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if err := WriteSample(path); err == nil {
		t.Fatal("expected overwrite refusal")
	}
	if _, _, _, err := Load(path); err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
}
