package transcode

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"clipforge/internal/config"
	"clipforge/internal/fileutil"
	"clipforge/internal/logging"
	"clipforge/internal/media/ffprobe"
	"clipforge/internal/services"
)

// runFFmpeg executes the encoder and returns combined output for error
// reporting. Package variable so tests can avoid spawning ffmpeg.
var runFFmpeg = func(ctx context.Context, binary string, args []string) ([]byte, error) {
	return exec.CommandContext(ctx, binary, args...).CombinedOutput()
}

// SetFFmpegRunnerForTests overrides the encoder runner during tests.
func SetFFmpegRunnerForTests(fn func(context.Context, string, []string) ([]byte, error)) func() {
	previous := runFFmpeg
	runFFmpeg = fn
	return func() {
		runFFmpeg = previous
	}
}

// Result reports where the encode landed and what was probed on the way.
type Result struct {
	OutputPath string
	Probe      ffprobe.Result
	Plan       Plan
}

// Transcoder stages input into the working directory, probes it, and runs
// the planned encode. The hardware codec comes from detection and is fixed
// for the transcoder's lifetime.
type Transcoder struct {
	cfg    *config.Config
	logger *slog.Logger
	codec  string
}

func NewTranscoder(cfg *config.Config, logger *slog.Logger, codec string) *Transcoder {
	return &Transcoder{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "transcoder"),
		codec:  codec,
	}
}

// Run validates, stages, probes, and encodes the job. The output is
// written as processed_video.mp4 inside the staging directory; callers
// move it into place during finalization.
func (t *Transcoder) Run(ctx context.Context, job Job) (Result, error) {
	logger := t.logger
	if jobID, ok := services.JobIDFromContext(ctx); ok {
		logger = logger.With(logging.Int64(logging.FieldJobID, jobID))
	}
	if projectID, ok := services.ProjectIDFromContext(ctx); ok {
		logger = logger.With(logging.String(logging.FieldProjectID, projectID))
	}

	if err := job.Validate(); err != nil {
		return Result{}, err
	}

	staged, err := t.stage(job.SourcePath)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if removeErr := os.Remove(staged); removeErr != nil && !os.IsNotExist(removeErr) {
			logger.Warn("failed to remove staged input",
				logging.String("path", staged),
				logging.Error(removeErr))
		}
	}()

	probed, err := ffprobe.Probe(ctx, t.cfg.FFprobeBinary(), staged)
	if err != nil {
		return Result{}, err
	}

	plan := Plan{
		Job:    job,
		Scale:  ScaleFor(probed.Width, probed.Height, job.Resolution),
		Codec:  t.codec,
		CRF:    t.cfg.Transcode.CRF,
		Preset: t.cfg.Transcode.Preset,
		Audio:  t.cfg.Transcode.AudioCodec,
	}
	plan.Job.SourcePath = staged

	outputPath := filepath.Join(t.cfg.Paths.StagingDir, "processed_video.mp4")
	if err := os.Remove(outputPath); err != nil && !os.IsNotExist(err) {
		return Result{}, services.Wrap(services.ErrStorage, "transcoder", "run", "remove stale output", err)
	}

	logger.Info("starting encode",
		logging.String("source", job.SourcePath),
		logging.String("scale", plan.Scale.String()),
		logging.String("codec", plan.Codec),
		logging.String(logging.FieldEventType, "transcode_started"))

	output, err := runFFmpeg(ctx, t.cfg.FFmpegBinary(), plan.Args(outputPath))
	if err != nil {
		tail := tailLines(string(output), 8)
		return Result{}, services.Wrap(services.ErrTranscode, "transcoder", "run",
			fmt.Sprintf("ffmpeg failed: %s", tail), err)
	}
	if _, err := os.Stat(outputPath); err != nil {
		return Result{}, services.Wrap(services.ErrTranscode, "transcoder", "run",
			"ffmpeg reported success but produced no output", err)
	}

	logger.Info("encode complete",
		logging.String("output", outputPath),
		logging.Int64("frames", probed.FrameCount()),
		logging.String(logging.FieldEventType, "transcode_completed"))

	return Result{OutputPath: outputPath, Probe: probed, Plan: plan}, nil
}

// stage copies the source into the staging directory under a unique name
// so concurrent jobs against the same file never collide.
func (t *Transcoder) stage(sourcePath string) (string, error) {
	if err := os.MkdirAll(t.cfg.Paths.StagingDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrStorage, "transcoder", "stage", "create staging directory", err)
	}
	staged := fileutil.UniqueStagingName(t.cfg.Paths.StagingDir, filepath.Base(sourcePath))
	if err := fileutil.CopyFile(sourcePath, staged); err != nil {
		return "", services.Wrap(services.ErrStorage, "transcoder", "stage", "copy source into staging", err)
	}
	return staged, nil
}

func tailLines(output string, n int) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
