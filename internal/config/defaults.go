package config

const (
	defaultStagingDir        = "~/.local/share/clipforge/staging"
	defaultMediaDir          = "~/.local/share/clipforge/media"
	defaultLogDir            = "~/.local/share/clipforge/logs"
	defaultMediaBaseURL      = "/media"
	defaultCRF               = 18
	defaultPreset            = "fast"
	defaultAudioCodec        = "aac"
	defaultSubtitleLanguage  = "en"
	defaultLogLevel          = "info"
	defaultJobTimeoutSeconds = 3600
	defaultStaleStagingHours = 24
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir:   defaultStagingDir,
			MediaDir:     defaultMediaDir,
			LogDir:       defaultLogDir,
			MediaBaseURL: defaultMediaBaseURL,
		},
		Transcode: Transcode{
			CRF:        defaultCRF,
			Preset:     defaultPreset,
			AudioCodec: defaultAudioCodec,
		},
		Subtitles: Subtitles{
			Enabled:  true,
			Language: defaultSubtitleLanguage,
		},
		Logging: Logging{
			Level: defaultLogLevel,
		},
		Workflow: Workflow{
			JobTimeoutSeconds: defaultJobTimeoutSeconds,
			StaleStagingHours: defaultStaleStagingHours,
		},
	}
}
