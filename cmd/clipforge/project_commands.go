package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"clipforge/internal/artifacts"
	"clipforge/internal/config"
)

func newProjectCommand(ctx *commandContext) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage per-project media artifacts",
	}

	projectCmd.AddCommand(newProjectUploadCommand(ctx))
	projectCmd.AddCommand(newProjectListCommand(ctx))
	projectCmd.AddCommand(newProjectFinalizeCommand(ctx))
	projectCmd.AddCommand(newProjectSubtitlesCommand(ctx))

	return projectCmd
}

func (c *commandContext) artifactManager() (*artifacts.Manager, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return artifacts.NewManager(cfg, logger), nil
}

func newProjectUploadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <project-id> <file>",
		Short: "Store a source file under a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := ctx.artifactManager()
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(args[1])
			if err != nil {
				return err
			}
			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open source file: %w", err)
			}
			defer file.Close()

			entry, err := manager.Upload(args[0], path, file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s (%d bytes)\n%s\n", entry.Name, entry.Size, entry.URL)
			return nil
		},
	}
}

func newProjectListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list <project-id>",
		Short: "List a project's stored artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := ctx.artifactManager()
			if err != nil {
				return err
			}
			entries, err := manager.List(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintf(out, "Project %s has no artifacts.\n", args[0])
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{entry.Name, fmt.Sprintf("%d", entry.Size), entry.URL})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Name", "Bytes", "URL"},
				rows,
				1,
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the listing as JSON")
	return cmd
}

func newProjectFinalizeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "finalize <project-id> [name]",
		Short: "Move the staged encode and subtitles into the project",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := ctx.artifactManager()
			if err != nil {
				return err
			}
			name := ""
			if len(args) > 1 {
				name = args[1]
			}
			result, err := manager.Finalize(args[0], name)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Video: %s\n", result.VideoPath)
			if result.SubtitlesPath != "" {
				fmt.Fprintf(out, "Subtitles: %s\n", result.SubtitlesPath)
			} else {
				fmt.Fprintln(out, "No subtitles were staged.")
			}
			return nil
		},
	}
}

func newProjectSubtitlesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "subtitles <project-id> <video-name>",
		Short: "Print a finalized video's subtitle track",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := ctx.artifactManager()
			if err != nil {
				return err
			}
			content, err := manager.Subtitles(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}
}
