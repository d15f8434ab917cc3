package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipforge/internal/config"
	"clipforge/internal/gpu"
	"clipforge/internal/pipeline"
	"clipforge/internal/transcode"
	"clipforge/internal/transcribe"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var (
		projectID    string
		startTime    string
		endTime      string
		resolution   string
		enhanceAudio bool
		subtitles    bool
		finalizeAs   string
	)

	cmd := &cobra.Command{
		Use:   "process <media-file>",
		Short: "Transcode a clip through the full pipeline",
		Long: `Process runs the pipeline end to end: probe the source, detect GPU
capability, transcode with the best available encoder, and optionally
generate subtitles and finalize into the project directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			source, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			snapshot := gpu.NewDetector(cfg, logger).Detect(cmd.Context())
			runner := pipeline.NewRunner(cfg, logger, store, snapshot)

			outcome, err := runner.Run(cmd.Context(), pipeline.Request{
				ProjectID: projectID,
				Job: transcode.Job{
					SourcePath:        source,
					StartTime:         startTime,
					EndTime:           endTime,
					Resolution:        transcode.Resolution(resolution),
					EnhanceAudio:      enhanceAudio,
					GenerateSubtitles: subtitles,
				},
				FinalizeAs: finalizeAs,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Job %d complete\n", outcome.JobID)
			fmt.Fprintf(out, "Output: %s\n", outcome.OutputPath)
			if outcome.SubtitlePath != "" {
				fmt.Fprintf(out, "Subtitles (%s): %s\n",
					transcribe.LanguageDisplayName(cfg.Subtitles.Language), outcome.SubtitlePath)
			}
			if outcome.SubtitleErr != nil {
				fmt.Fprintf(out, "Subtitles failed: %v\n", outcome.SubtitleErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "p", "default", "Project identifier")
	cmd.Flags().StringVar(&startTime, "start", "", "Trim window start (HH:MM:SS)")
	cmd.Flags().StringVar(&endTime, "end", "", "Trim window end (HH:MM:SS)")
	cmd.Flags().StringVarP(&resolution, "resolution", "r", "1080p", "Output tier: 480p, 720p, 1080p, 1440p, 4K")
	cmd.Flags().BoolVar(&enhanceAudio, "enhance-audio", false, "Apply a speech band-pass filter")
	cmd.Flags().BoolVar(&subtitles, "subtitles", false, "Generate an SRT subtitle track")
	cmd.Flags().StringVar(&finalizeAs, "finalize-as", "", "Move the finished encode into the project under this name")
	return cmd
}
