package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wareops/opsctl/internal/app"
)

// NewWorkflowCommand creates the workflow test command
func NewWorkflowCommand(container *app.Container) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "workflow <message>",
		Short: "Run an end-to-end workflow test and record the outcome",
		Example: `  opsctl workflow "Show me the status of forklift FL-001"
  opsctl workflow "Create a new picking task for order ORD-123"
  opsctl workflow "Report a safety incident in zone A"
  opsctl workflow "Generate a demand forecast for SKU-12345"
  opsctl workflow "Show me reorder recommendations"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session := sessionID
			if session == "" {
				session = container.Config.Preferences.DefaultSessionID
			}
			outcome := container.ExecuteService.RunWorkflow(cmd.Context(), strings.Join(args, " "), session)
			renderOutcome(cmd.OutOrStdout(), outcome.Entry, outcome.Result)
			if outcome.Err != nil {
				return outcome.Err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Workflow completed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session id (default from config)")
	return cmd
}
