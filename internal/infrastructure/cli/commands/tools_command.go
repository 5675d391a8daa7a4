package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wareops/opsctl/internal/app"
	"github.com/wareops/opsctl/internal/application/execute"
	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/infrastructure/cli/helpers"
	"github.com/wareops/opsctl/internal/view"
)

// NewToolsCommand creates the tools command with all subcommands
func NewToolsCommand(container *app.Container) *cobra.Command {
	toolsCmd := &cobra.Command{
		Use:   "tools",
		Short: "Discover and execute backend tools",
	}

	toolsCmd.AddCommand(
		newToolsListCommand(container),
		newToolsSearchCommand(container),
		newToolsExecuteCommand(container),
		newToolsBulkCommand(container),
		newToolsStatusCommand(container),
		newToolsAgentsCommand(container),
		newToolsRefreshCommand(container),
	)

	return toolsCmd
}

func newToolsListCommand(container *app.Container) *cobra.Command {
	var (
		category   string
		source     string
		search     string
		sortBy     string
		state      string
		printState bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			viewState := view.State{
				Category: category,
				Source:   source,
				Search:   search,
				Sort:     view.SortKey(sortBy),
			}
			if state != "" {
				decoded, err := view.DecodeState(state)
				if err != nil {
					return fmt.Errorf("invalid --state: %w", err)
				}
				viewState = decoded
			}

			tools, err := container.Tools.Tools(cmd.Context())
			if err != nil {
				return err
			}

			filtered := view.FilterTools(tools, viewState.ToolFilter())
			sorted := view.SortTools(filtered, viewState.Sort)

			out := cmd.OutOrStdout()
			if printState {
				fmt.Fprintf(out, "state: %s\n", viewState.Encode())
			}
			if asJSON {
				return helpers.PrintJSON(out, sorted)
			}
			renderToolTable(out, sorted)
			fmt.Fprintf(out, "\n%s shown (%s total)\n", helpers.Count(len(sorted), "tool", "tools"), helpers.Count(len(tools), "tool", "tools"))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Filter by exact category")
	cmd.Flags().StringVar(&source, "source", "", "Filter by exact source")
	cmd.Flags().StringVarP(&search, "search", "q", "", "Substring match over name, description, id")
	cmd.Flags().StringVar(&sortBy, "sort", "name", "Sort key: name|category|source")
	cmd.Flags().StringVar(&state, "state", "", "Apply an encoded view state (overrides other filter flags)")
	cmd.Flags().BoolVar(&printState, "print-state", false, "Print the encoded view state for sharing")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newToolsSearchCommand(container *app.Container) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Rank tools against a free-text query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tools, err := container.Tools.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return helpers.PrintJSON(out, tools)
			}
			table := helpers.NewTable(out)
			fmt.Fprintln(table, "SCORE\tID\tNAME\tDESCRIPTION")
			for _, tool := range tools {
				fmt.Fprintf(table, "%.2f\t%s\t%s\t%s\n", tool.RelevanceScore, tool.ID, tool.Name, helpers.Truncate(tool.Description, 60))
			}
			return table.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newToolsExecuteCommand(container *app.Container) *cobra.Command {
	var (
		params    []string
		rawParams string
	)

	cmd := &cobra.Command{
		Use:   "execute <tool-id>",
		Short: "Execute a tool and record the attempt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseParams(params, rawParams)
			if err != nil {
				return err
			}

			tool, err := lookupTool(cmd.Context(), container, args[0])
			if err != nil {
				return err
			}

			var spinner *helpers.Spinner
			if helpers.ColorEnabled(container.Config.Preferences.Color) {
				spinner = helpers.NewSpinner(os.Stderr, "executing "+tool.Name)
				spinner.Start()
			}
			outcome := container.ExecuteService.Run(cmd.Context(), tool, parsed)
			if spinner != nil {
				spinner.Stop()
			}
			renderOutcome(cmd.OutOrStdout(), outcome.Entry, outcome.Result)
			return outcome.Err
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Parameter as key=value (repeatable)")
	cmd.Flags().StringVar(&rawParams, "params", "", "Parameters as a JSON object")
	return cmd
}

func newToolsBulkCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulk <file>",
		Short: "Execute a batch of tool requests concurrently",
		Long:  "Reads a JSON array of {tool_id, params} requests, runs them all, and waits for every one to settle. Individual failures never abort the batch.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var items []struct {
				ToolID string         `json:"tool_id"`
				Params map[string]any `json:"params"`
			}
			if err := json.Unmarshal(data, &items); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			tools, err := container.Tools.Tools(cmd.Context())
			if err != nil {
				return err
			}
			byID := make(map[string]domain.Tool, len(tools))
			for _, tool := range tools {
				byID[tool.ID] = tool
			}

			requests := make([]execute.Request, 0, len(items))
			for _, item := range items {
				tool, known := byID[item.ToolID]
				if !known {
					tool = domain.Tool{ID: item.ToolID, Name: item.ToolID}
				}
				requests = append(requests, execute.Request{Tool: tool, Params: item.Params})
			}

			report := container.ExecuteService.RunBulk(cmd.Context(), requests)
			out := cmd.OutOrStdout()
			for _, outcome := range report.Outcomes {
				renderOutcome(out, outcome.Entry, nil)
			}
			fmt.Fprintf(out, "\n%d succeeded, %d failed\n", report.Succeeded, report.Failed)
			if report.Failed > 0 {
				return fmt.Errorf("%d of %d executions failed", report.Failed, len(report.Outcomes))
			}
			return nil
		},
	}
	return cmd
}

func newToolsStatusCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show tool-orchestration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := container.Tools.Status(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Status: %s\n", status.Status)
			fmt.Fprintf(out, "Tools discovered: %d (sources: %d, discovery running: %t)\n",
				status.ToolDiscovery.DiscoveredTools, status.ToolDiscovery.DiscoverySources, status.ToolDiscovery.IsRunning)
			for name, state := range status.Services {
				fmt.Fprintf(out, "  %s: %s\n", name, state)
			}
			return nil
		},
	}
	return cmd
}

func newToolsAgentsCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "Show backend agent availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			agents, err := container.Tools.Agents(cmd.Context())
			if err != nil {
				return err
			}
			table := helpers.NewTable(cmd.OutOrStdout())
			fmt.Fprintln(table, "AGENT\tSTATUS\tTOOLS\tNOTE")
			for name, agent := range agents {
				fmt.Fprintf(table, "%s\t%s\t%d\t%s\n", name, agent.Status, agent.ToolCount, agent.Note)
			}
			return table.Flush()
		},
	}
	return cmd
}

func newToolsRefreshCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Force a backend tool-discovery rescan",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := container.Tools.RefreshDiscovery(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Discovery refreshed: %s available\n", helpers.Count(count, "tool", "tools"))
			return nil
		},
	}
	return cmd
}

func renderToolTable(out io.Writer, tools []domain.Tool) {
	table := helpers.NewTable(out)
	fmt.Fprintln(table, "ID\tNAME\tCATEGORY\tSOURCE\tDESCRIPTION")
	for _, tool := range tools {
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%s\n", tool.ID, tool.Name, tool.Category, tool.Source, helpers.Truncate(tool.Description, 50))
	}
	table.Flush()
}

func lookupTool(ctx context.Context, container *app.Container, toolID string) (domain.Tool, error) {
	tools, err := container.Tools.Tools(ctx)
	if err != nil {
		return domain.Tool{}, err
	}
	for _, tool := range tools {
		if tool.ID == toolID {
			return tool, nil
		}
	}
	// Unknown locally is not fatal: the backend may know tools the catalog
	// call does not surface. Validation is skipped without a schema.
	return domain.Tool{ID: toolID, Name: toolID}, nil
}

// parseParams merges repeated key=value flags with an optional JSON object.
func parseParams(pairs []string, raw string) (map[string]any, error) {
	params := map[string]any{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &params); err != nil {
			return nil, fmt.Errorf("invalid --params: %w", err)
		}
	}
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid --param %q: expected key=value", pair)
		}
		params[key] = coerceValue(value)
	}
	return params, nil
}

// coerceValue interprets obvious JSON literals so numbers and booleans
// survive the flag round trip.
func coerceValue(value string) any {
	var decoded any
	if err := json.Unmarshal([]byte(value), &decoded); err == nil {
		return decoded
	}
	return value
}

func renderOutcome(out io.Writer, entry domain.ExecutionEntry, result json.RawMessage) {
	marker := "OK"
	if !entry.Success {
		marker = "FAIL"
	}
	fmt.Fprintf(out, "[%s] %s (%s)\n", marker, entry.ToolName, helpers.Millis(entry.ExecutionTimeMS))
	if entry.Error != "" {
		fmt.Fprintf(out, "  error (%s): %s\n", entry.ErrorType, entry.Error)
	}
	if len(result) > 0 {
		var pretty map[string]any
		if err := json.Unmarshal(result, &pretty); err == nil {
			helpers.PrintJSON(out, pretty)
		} else {
			fmt.Fprintln(out, string(result))
		}
	}
}
