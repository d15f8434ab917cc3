// Package transcode plans and runs ffmpeg encodes: resolution scaling,
// optional trim windows, audio enhancement, and hardware codec selection.
package transcode

import (
	"fmt"
	"os"
	"regexp"

	"clipforge/internal/services"
)

var timecodePattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)

// Job describes a single transcode request.
type Job struct {
	// SourcePath is the input media file.
	SourcePath string
	// StartTime and EndTime bound the trim window as HH:MM:SS timecodes.
	// Both empty means the full clip.
	StartTime string
	EndTime   string
	// Resolution is the output tier, e.g. "1080p". Unrecognized values
	// fall back to 1080p.
	Resolution Resolution
	// EnhanceAudio applies a speech band-pass filter to the audio track.
	EnhanceAudio bool
	// GenerateSubtitles requests transcription after the encode.
	GenerateSubtitles bool
}

// Validate rejects jobs the encoder cannot act on before any external
// process runs.
func (j Job) Validate() error {
	if j.SourcePath == "" {
		return services.Wrap(services.ErrValidation, "transcode", "validate", "source path is required", nil)
	}
	if _, err := os.Stat(j.SourcePath); err != nil {
		return services.Wrap(services.ErrValidation, "transcode", "validate", "source file not accessible", err)
	}
	if (j.StartTime == "") != (j.EndTime == "") {
		return services.Wrap(services.ErrValidation, "transcode", "validate",
			"start and end times must be provided together", nil)
	}
	for _, timecode := range []string{j.StartTime, j.EndTime} {
		if timecode == "" {
			continue
		}
		if !timecodePattern.MatchString(timecode) {
			return services.Wrap(services.ErrValidation, "transcode", "validate",
				fmt.Sprintf("timecode %q is not HH:MM:SS", timecode), nil)
		}
	}
	if j.StartTime != "" && j.StartTime >= j.EndTime {
		return services.Wrap(services.ErrValidation, "transcode", "validate",
			"start time must precede end time", nil)
	}
	return nil
}

// Trimmed reports whether the job carries a trim window.
func (j Job) Trimmed() bool {
	return j.StartTime != "" && j.EndTime != ""
}
