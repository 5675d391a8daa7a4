package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wareops/opsctl/internal/analytics"
	"github.com/wareops/opsctl/internal/app"
	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/infrastructure/cli/helpers"
	"github.com/wareops/opsctl/internal/view"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect execution history",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryStatsCommand(container),
		newHistoryPruneCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
	)

	return historyCmd
}

func newHistoryListCommand(container *app.Container) *cobra.Command {
	var (
		tool       string
		status     string
		dateRange  string
		search     string
		state      string
		printState bool
		limit      int
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded executions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			viewState := view.State{
				Tool:   tool,
				Status: view.StatusFilter(status),
				Range:  view.DateRange(dateRange),
				Search: search,
			}
			if state != "" {
				decoded, err := view.DecodeState(state)
				if err != nil {
					return fmt.Errorf("invalid --state: %w", err)
				}
				viewState = decoded
			}

			entries, err := container.HistoryStore.Entries()
			if err != nil {
				return err
			}
			filtered := view.FilterHistory(entries, viewState.HistoryFilter())
			if limit > 0 && len(filtered) > limit {
				filtered = filtered[:limit]
			}

			out := cmd.OutOrStdout()
			if printState {
				fmt.Fprintf(out, "state: %s\n", viewState.Encode())
			}
			if asJSON {
				return helpers.PrintJSON(out, filtered)
			}
			if len(filtered) == 0 {
				fmt.Fprintln(out, msgNoHistoryRecorded)
				return nil
			}

			table := helpers.NewTable(out)
			fmt.Fprintln(table, "WHEN\tTOOL\tSTATUS\tDURATION\tERROR")
			for _, entry := range filtered {
				status := "ok"
				if entry.Failed() {
					status = "failed (" + string(entry.ErrorType) + ")"
				}
				fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%s\n",
					helpers.Ago(entry.Timestamp), entry.ToolName, status,
					helpers.Millis(entry.ExecutionTimeMS), helpers.Truncate(entry.Error, 50))
			}
			return table.Flush()
		},
	}

	cmd.Flags().StringVar(&tool, "tool", "", "Filter by tool id or name")
	cmd.Flags().StringVar(&status, "status", "all", "Filter by outcome: all|success|failed")
	cmd.Flags().StringVar(&dateRange, "range", "all", "Filter by age: all|today|week|month")
	cmd.Flags().StringVarP(&search, "search", "q", "", "Substring match over tool name, id, error")
	cmd.Flags().StringVar(&state, "state", "", "Apply an encoded view state (overrides other filter flags)")
	cmd.Flags().BoolVar(&printState, "print-state", false, "Print the encoded view state for sharing")
	cmd.Flags().IntVar(&limit, "limit", DefaultHistoryLimit, "Max entries to show (0 = all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newHistoryStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show success rate, timings, and top tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := container.HistoryStore.Entries()
			if err != nil {
				return err
			}
			return showHistoryStats(cmd.OutOrStdout(), entries)
		},
	}
}

func newHistoryPruneCommand(container *app.Container) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Drop all but the newest entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := container.HistoryStore.Prune(keep)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries, kept the newest %d.\n", removed, keep)
			return nil
		},
	}

	cmd.Flags().IntVar(&keep, "keep", DefaultHistoryLimit, "Entries to keep")
	return cmd
}

func newHistoryClearCommand(container *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded executions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear history without --yes")
			}
			if err := container.HistoryStore.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}

func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.HistoryStore.ExportJSONL(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", args[0])
			return nil
		},
	}
}

func showHistoryStats(out io.Writer, entries []domain.ExecutionEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(out, msgNoHistoryRecorded)
		return nil
	}

	metrics := analytics.Metrics(entries)
	fmt.Fprintf(out, "Total executions: %d\n", metrics.TotalExecutions)
	fmt.Fprintf(out, "Success rate:     %.1f%%\n", metrics.SuccessRate)
	fmt.Fprintf(out, "Average duration: %s\n", helpers.Millis(int64(metrics.AverageExecutionTime)))
	fmt.Fprintf(out, "Last execution:   %s\n", helpers.Millis(metrics.LastExecutionTime))

	usage := analytics.UsageCounts(entries)
	if len(usage) > 0 {
		fmt.Fprintln(out, "\nTop tools:")
		table := helpers.NewTable(out)
		fmt.Fprintln(table, "TOOL\tRUNS\tSUCCESS")
		for i, u := range usage {
			if i >= 10 {
				break
			}
			rate := float64(u.Successes) / float64(u.Count) * 100
			fmt.Fprintf(table, "%s\t%d\t%.1f%%\n", u.ToolName, u.Count, rate)
		}
		if err := table.Flush(); err != nil {
			return err
		}
	}
	return nil
}
