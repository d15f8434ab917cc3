// Package pipeline orchestrates the processing flow: probe, transcode,
// optional transcription, optional finalization, with every step recorded
// in the job ledger.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"clipforge/internal/artifacts"
	"clipforge/internal/config"
	"clipforge/internal/gpu"
	"clipforge/internal/logging"
	"clipforge/internal/media/ffprobe"
	"clipforge/internal/queue"
	"clipforge/internal/services"
	"clipforge/internal/staging"
	"clipforge/internal/transcode"
	"clipforge/internal/transcribe"
)

// Request describes one end-to-end processing run.
type Request struct {
	ProjectID string
	Job       transcode.Job
	// FinalizeAs moves the finished encode into the project directory
	// under this name. Empty leaves artifacts in staging for a later
	// explicit finalize.
	FinalizeAs string
}

// Outcome reports what the run produced. SubtitleErr is set when the
// encode succeeded but transcription did not; the video remains usable.
type Outcome struct {
	JobID        int64
	Probe        ffprobe.Result
	OutputPath   string
	SubtitlePath string
	SubtitleErr  error
	Finalized    *artifacts.FinalizeResult
}

// Runner wires the pipeline stages together. The GPU snapshot is taken
// once at construction; the codec and whisper tier hold for every run.
type Runner struct {
	cfg         *config.Config
	logger      *slog.Logger
	store       *queue.Store
	snapshot    gpu.Snapshot
	transcoder  *transcode.Transcoder
	transcriber *transcribe.Service
	artifacts   *artifacts.Manager
}

func NewRunner(cfg *config.Config, logger *slog.Logger, store *queue.Store, snapshot gpu.Snapshot) *Runner {
	model := snapshot.WhisperModel()
	if cfg.Subtitles.Model != "" {
		model = cfg.Subtitles.Model
	}
	return &Runner{
		cfg:         cfg,
		logger:      logging.NewComponentLogger(logger, "pipeline"),
		store:       store,
		snapshot:    snapshot,
		transcoder:  transcode.NewTranscoder(cfg, logger, snapshot.Codec()),
		transcriber: transcribe.NewService(cfg, logger, model),
		artifacts:   artifacts.NewManager(cfg, logger),
	}
}

// Artifacts exposes the runner's artifact manager for explicit project
// operations outside a processing run.
func (r *Runner) Artifacts() *artifacts.Manager { return r.artifacts }

// Run executes the pipeline for one request. Stale staging leftovers are
// swept first so an earlier crash cannot poison this run.
func (r *Runner) Run(ctx context.Context, req Request) (Outcome, error) {
	if timeout := r.cfg.Workflow.JobTimeoutSeconds; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
		defer cancel()
	}

	runID := uuid.NewString()
	logger := r.logger.With(
		logging.String("run_id", runID),
		logging.String(logging.FieldProjectID, req.ProjectID))

	staleAge := time.Duration(r.cfg.Workflow.StaleStagingHours) * time.Hour
	if staleAge > 0 {
		staging.CleanStale(r.cfg.Paths.StagingDir, staleAge, logger)
	}

	job, err := r.store.NewJob(ctx, req.ProjectID, req.Job.SourcePath,
		string(req.Job.Resolution), r.snapshot.Codec())
	if err != nil {
		return Outcome{}, err
	}
	outcome := Outcome{JobID: job.ID}
	logger = logger.With(logging.Int64(logging.FieldJobID, job.ID))
	ctx = services.WithJobID(services.WithProjectID(ctx, req.ProjectID), job.ID)

	fail := func(stageErr error) (Outcome, error) {
		if markErr := r.store.MarkFailed(ctx, job.ID, stageErr.Error()); markErr != nil {
			logger.Error("failed to record job failure", logging.Error(markErr))
		}
		return outcome, stageErr
	}

	if err := r.store.SetStatus(ctx, job.ID, queue.StatusProbing); err != nil {
		return fail(err)
	}
	probed, err := ffprobe.Probe(ctx, r.cfg.FFprobeBinary(), req.Job.SourcePath)
	if err != nil {
		return fail(err)
	}
	outcome.Probe = probed
	logger.Info("source probed",
		logging.String("frame_rate", probed.FrameRate.String()),
		logging.Float64("duration_seconds", probed.DurationSeconds),
		logging.Int("width", probed.Width),
		logging.Int("height", probed.Height),
		logging.Int64("frames", probed.FrameCount()))

	if err := r.store.SetStatus(ctx, job.ID, queue.StatusTranscoding); err != nil {
		return fail(err)
	}
	encoded, err := r.transcoder.Run(services.WithStage(ctx, "transcode"), req.Job)
	if err != nil {
		return fail(err)
	}
	outcome.OutputPath = encoded.OutputPath

	if req.Job.GenerateSubtitles && r.cfg.Subtitles.Enabled {
		if err := r.store.SetStatus(ctx, job.ID, queue.StatusTranscribing); err != nil {
			return fail(err)
		}
		// Transcribe the trimmed encode so cue timestamps line up with
		// the delivered video, not the original source.
		srtPath, subErr := r.transcriber.Transcribe(services.WithStage(ctx, "transcribe"), encoded.OutputPath)
		if subErr != nil {
			outcome.SubtitleErr = subErr
			logger.Warn("transcription failed, continuing without subtitles",
				logging.Error(subErr),
				logging.String(logging.FieldEventType, "transcription_skipped"))
		} else {
			outcome.SubtitlePath = srtPath
		}
	}

	if req.FinalizeAs != "" {
		if err := r.store.SetStatus(ctx, job.ID, queue.StatusFinalizing); err != nil {
			return fail(err)
		}
		finalized, err := r.artifacts.Finalize(req.ProjectID, req.FinalizeAs)
		if err != nil {
			return fail(err)
		}
		outcome.Finalized = &finalized
		outcome.OutputPath = finalized.VideoPath
		if finalized.SubtitlesPath != "" {
			outcome.SubtitlePath = finalized.SubtitlesPath
		}
	}

	if err := r.store.MarkCompleted(ctx, job.ID, outcome.OutputPath, outcome.SubtitlePath); err != nil {
		return fail(err)
	}
	logger.Info("pipeline run complete",
		logging.String("output", outcome.OutputPath),
		logging.Bool("subtitles", outcome.SubtitlePath != ""),
		logging.String(logging.FieldEventType, "pipeline_completed"))
	return outcome, nil
}
