// Package testsupport provides shared helpers for package tests: temp-dir
// configs, ledger stores, and media fixtures.
package testsupport

import (
	"path/filepath"
	"testing"

	"clipforge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StagingDir = filepath.Join(base, "staging")
	cfg.Paths.MediaDir = filepath.Join(base, "media")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.MediaBaseURL = "http://localhost:8000/media"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithSubtitlesDisabled turns off transcription on the test config.
func WithSubtitlesDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Subtitles.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StagingDir)
}
