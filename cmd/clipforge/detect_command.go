package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"clipforge/internal/gpu"
	"clipforge/internal/logging"
)

func newDetectCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var savePath string
	var watch bool

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect GPUs and report encoder and transcription capability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			snapshot := gpu.NewDetector(cfg, logger).Detect(cmd.Context())

			if savePath == "" {
				savePath = filepath.Join(cfg.Paths.LogDir, "gpu_snapshot.json")
			}
			if err := snapshot.Save(savePath); err != nil {
				return fmt.Errorf("save snapshot: %w", err)
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, snapshot)
			}

			rows := make([][]string, 0, len(snapshot.Devices))
			for _, device := range snapshot.Devices {
				selected := ""
				if device == snapshot.Selected {
					selected = "*"
				}
				rows = append(rows, []string{
					selected,
					device.Name,
					string(device.Vendor),
					device.Codec,
					formatMiB(device.VRAMMB),
					device.WhisperModel,
				})
			}
			if len(rows) == 0 {
				fmt.Fprintln(out, "No GPUs detected; software encoding will be used.")
			} else {
				fmt.Fprintln(out, renderTable(
					[]string{"", "Name", "Vendor", "Codec", "VRAM", "Whisper"},
					rows,
					4,
				))
			}
			fmt.Fprintf(out, "Selected codec: %s\n", snapshot.Codec())
			fmt.Fprintf(out, "Whisper model: %s\n", snapshot.WhisperModel())
			fmt.Fprintf(out, "Snapshot saved to %s\n", savePath)

			if !watch {
				return nil
			}

			detector := gpu.NewDetector(cfg, logger)
			monitor := gpu.NewHotplugMonitor(logger, func(changeCtx context.Context) {
				refreshed := detector.Detect(changeCtx)
				if err := refreshed.Save(savePath); err != nil {
					logger.Warn("failed to save refreshed snapshot", logging.Error(err))
					return
				}
				fmt.Fprintf(out, "GPU change detected; selected codec now %s\n", refreshed.Codec())
			})

			watchCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := monitor.Start(watchCtx); err != nil {
				return fmt.Errorf("start hotplug monitor: %w", err)
			}
			defer monitor.Stop()

			fmt.Fprintln(out, "Watching for GPU changes; press Ctrl-C to stop.")
			<-watchCtx.Done()
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the snapshot as JSON")
	cmd.Flags().StringVar(&savePath, "save", "", "Snapshot destination (defaults to <log_dir>/gpu_snapshot.json)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep running and refresh the snapshot on GPU hotplug (Linux)")
	return cmd
}
