// Package transcribe generates SRT subtitles from transcoded media using
// the whisper CLI. The model tier comes from GPU detection; bigger cards
// run bigger models.
package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"clipforge/internal/config"
	"clipforge/internal/logging"
	"clipforge/internal/services"
)

// runWhisper executes the transcription tool. Package variable so tests
// can synthesize its JSON output without a model download.
var runWhisper = func(ctx context.Context, binary string, args []string) ([]byte, error) {
	return exec.CommandContext(ctx, binary, args...).CombinedOutput()
}

// SetWhisperRunnerForTests overrides the transcription runner during tests.
func SetWhisperRunnerForTests(fn func(context.Context, string, []string) ([]byte, error)) func() {
	previous := runWhisper
	runWhisper = fn
	return func() {
		runWhisper = previous
	}
}

// Service wraps the whisper CLI. The model is fixed at construction from
// the detected hardware tier.
type Service struct {
	cfg    *config.Config
	logger *slog.Logger
	model  string
}

func NewService(cfg *config.Config, logger *slog.Logger, model string) *Service {
	return &Service{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "transcriber"),
		model:  model,
	}
}

// Model reports the whisper model tier this service runs.
func (s *Service) Model() string { return s.model }

// Transcribe runs whisper against mediaPath and writes subtitles.srt into
// the staging directory. Timestamps are relative to the given media, so
// callers pass the trimmed output rather than the original source.
func (s *Service) Transcribe(ctx context.Context, mediaPath string) (string, error) {
	logger := s.logger
	if jobID, ok := services.JobIDFromContext(ctx); ok {
		logger = logger.With(logging.Int64(logging.FieldJobID, jobID))
	}

	if _, err := os.Stat(mediaPath); err != nil {
		return "", services.Wrap(services.ErrTranscription, "transcriber", "transcribe", "media file not accessible", err)
	}

	workDir, err := os.MkdirTemp(s.cfg.Paths.StagingDir, "whisper-")
	if err != nil {
		return "", services.Wrap(services.ErrStorage, "transcriber", "transcribe", "create work directory", err)
	}
	defer os.RemoveAll(workDir)

	language := NormalizeLanguage(s.cfg.Subtitles.Language)
	args := []string{
		mediaPath,
		"--model", s.model,
		"--language", language,
		"--output_format", "json",
		"--output_dir", workDir,
	}

	logger.Info("starting transcription",
		logging.String("media", mediaPath),
		logging.String("model", s.model),
		logging.String("language", language),
		logging.String(logging.FieldEventType, "transcription_started"))

	output, err := runWhisper(ctx, s.cfg.WhisperBinary(), args)
	if err != nil {
		tail := tailLines(string(output), 8)
		return "", services.Wrap(services.ErrTranscription, "transcriber", "transcribe",
			fmt.Sprintf("whisper failed: %s", tail), err)
	}

	document, err := loadWhisperResult(workDir, mediaPath)
	if err != nil {
		return "", err
	}
	document.Language = language

	srtPath := filepath.Join(s.cfg.Paths.StagingDir, "subtitles.srt")
	if err := os.WriteFile(srtPath, []byte(document.RenderSRT()), 0o644); err != nil {
		return "", services.Wrap(services.ErrStorage, "transcriber", "transcribe", "write subtitle file", err)
	}

	logger.Info("transcription complete",
		logging.String("subtitles", srtPath),
		logging.Int("segments", len(document.Segments)),
		logging.String(logging.FieldEventType, "transcription_completed"))

	return srtPath, nil
}

// loadWhisperResult reads whisper's JSON output, named after the media
// file's base name.
func loadWhisperResult(workDir, mediaPath string) (Document, error) {
	base := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	resultPath := filepath.Join(workDir, base+".json")
	data, err := os.ReadFile(resultPath)
	if err != nil {
		return Document{}, services.Wrap(services.ErrTranscription, "transcriber", "transcribe",
			"whisper produced no result file", err)
	}
	var payload struct {
		Segments []Segment `json:"segments"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return Document{}, services.Wrap(services.ErrTranscription, "transcriber", "transcribe",
			"parse whisper result", err)
	}
	return Document{Segments: payload.Segments}, nil
}

func tailLines(output string, n int) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
