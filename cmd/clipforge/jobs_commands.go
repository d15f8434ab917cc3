package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"clipforge/internal/queue"
)

func newJobsCommand(ctx *commandContext) *cobra.Command {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect the pipeline job ledger",
	}

	jobsCmd.AddCommand(newJobsListCommand(ctx))
	jobsCmd.AddCommand(newJobsClearCommand(ctx))
	jobsCmd.AddCommand(newJobsHealthCommand(ctx))

	return jobsCmd
}

func newJobsListCommand(ctx *commandContext) *cobra.Command {
	var statusFilter string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ledger jobs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			var filters []queue.Status
			if statusFilter != "" {
				status, ok := queue.ParseStatus(statusFilter)
				if !ok {
					return fmt.Errorf("unknown status %q", statusFilter)
				}
				filters = append(filters, status)
			}

			jobs, err := store.List(cmd.Context(), filters...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, jobs)
			}
			if len(jobs) == 0 {
				fmt.Fprintln(out, "No jobs recorded.")
				return nil
			}

			rows := make([][]string, 0, len(jobs))
			for _, job := range jobs {
				// In-flight jobs have no artifact or failure to show yet.
				detail := ""
				if job.Status.Terminal() {
					detail = job.OutputPath
					if job.Status == queue.StatusFailed {
						detail = job.ErrorMessage
					}
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", job.ID),
					job.ProjectID,
					titleCase(string(job.Status)),
					job.Resolution,
					job.Codec,
					job.CreatedAt.Local().Format(time.DateTime),
					detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Project", "Status", "Tier", "Codec", "Created", "Detail"},
				rows,
				0,
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Filter by status (pending, probing, transcoding, transcribing, finalizing, completed, failed)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit jobs as JSON")
	return cmd
}

func newJobsClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove completed and failed jobs from the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d terminal jobs.\n", removed)
			return nil
		},
	}
}

func newJobsHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Verify the ledger database and summarize job counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			counts, err := store.Health(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Ledger: %s\n", store.Path())
			if len(counts) == 0 {
				fmt.Fprintln(out, "No jobs recorded.")
				return nil
			}
			rows := make([][]string, 0, len(counts))
			for _, status := range []queue.Status{
				queue.StatusPending, queue.StatusProbing, queue.StatusTranscoding,
				queue.StatusTranscribing, queue.StatusFinalizing,
				queue.StatusCompleted, queue.StatusFailed,
			} {
				if count, ok := counts[status]; ok {
					rows = append(rows, []string{titleCase(string(status)), fmt.Sprintf("%d", count)})
				}
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Status", "Jobs"},
				rows,
				1,
			))
			return nil
		},
	}
}
