package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipforge/internal/config"
	"clipforge/internal/media/ffprobe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "probe <media-file>",
		Short: "Report frame rate, duration, dimensions, and frame count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			result, err := ffprobe.Probe(cmd.Context(), cfg.FFprobeBinary(), path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, map[string]any{
					"frame_rate":       result.FrameRate.String(),
					"fps":              result.FrameRate.Float(),
					"duration_seconds": result.DurationSeconds,
					"width":            result.Width,
					"height":           result.Height,
					"frame_count":      result.FrameCount(),
					"portrait":         result.Portrait(),
				})
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Field", "Value"},
				[][]string{
					{"Frame rate", fmt.Sprintf("%s (%.3f fps)", result.FrameRate, result.FrameRate.Float())},
					{"Duration", fmt.Sprintf("%.3f s", result.DurationSeconds)},
					{"Dimensions", fmt.Sprintf("%dx%d", result.Width, result.Height)},
					{"Frames", fmt.Sprintf("%d", result.FrameCount())},
					{"Portrait", yesNo(result.Portrait())},
				},
				1,
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit probe data as JSON")
	return cmd
}
