package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors classify pipeline failures. Callers inspect them with
// errors.Is; every stage wraps its failures with exactly one of these.
var (
	// ErrValidation marks requests rejected before any external process runs.
	ErrValidation = errors.New("validation error")
	// ErrProbe marks failures to extract media metadata.
	ErrProbe = errors.New("probe error")
	// ErrTranscode marks external encoder failures.
	ErrTranscode = errors.New("transcode error")
	// ErrTranscription marks speech-to-text failures. These are fatal to the
	// subtitle step only; the transcoded video may still be usable.
	ErrTranscription = errors.New("transcription error")
	// ErrStorage marks artifact move, rename, and read failures.
	ErrStorage = errors.New("storage error")
	// ErrNotFound marks missing artifacts.
	ErrNotFound = errors.New("not found")
	// ErrExternalTool marks missing or broken helper binaries.
	ErrExternalTool = errors.New("external tool error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided sentinel for later classification.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
