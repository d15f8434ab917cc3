package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTranscode()
	c.normalizeLogging()
	c.normalizeWorkflow()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		c.Paths.StagingDir = defaultStagingDir
	}
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.MediaDir) == "" {
		c.Paths.MediaDir = defaultMediaDir
	}
	if c.Paths.MediaDir, err = expandPath(c.Paths.MediaDir); err != nil {
		return fmt.Errorf("paths.media_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.MediaBaseURL) == "" {
		c.Paths.MediaBaseURL = defaultMediaBaseURL
	}
	c.Paths.MediaBaseURL = strings.TrimRight(c.Paths.MediaBaseURL, "/")
	if c.Paths.MediaBaseURL == "" {
		c.Paths.MediaBaseURL = defaultMediaBaseURL
	}
	return nil
}

func (c *Config) normalizeTranscode() {
	if c.Transcode.CRF == 0 {
		c.Transcode.CRF = defaultCRF
	}
	if strings.TrimSpace(c.Transcode.Preset) == "" {
		c.Transcode.Preset = defaultPreset
	}
	if strings.TrimSpace(c.Transcode.AudioCodec) == "" {
		c.Transcode.AudioCodec = defaultAudioCodec
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		// Interactive terminals get the console format, pipes get JSON.
		if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
			c.Logging.Format = "console"
		} else {
			c.Logging.Format = "json"
		}
	}
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.JobTimeoutSeconds <= 0 {
		c.Workflow.JobTimeoutSeconds = defaultJobTimeoutSeconds
	}
	if c.Workflow.StaleStagingHours <= 0 {
		c.Workflow.StaleStagingHours = defaultStaleStagingHours
	}
}
