package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wareops/opsctl/internal/app"
	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/infrastructure/cli/helpers"
)

// NewScenarioCommand creates the scenario command with all subcommands
func NewScenarioCommand(container *app.Container) *cobra.Command {
	scenarioCmd := &cobra.Command{
		Use:   "scenario",
		Short: "Save and replay workflow test scenarios",
	}

	scenarioCmd.AddCommand(
		newScenarioSaveCommand(container),
		newScenarioListCommand(container),
		newScenarioRunCommand(container),
		newScenarioDeleteCommand(container),
	)

	return scenarioCmd
}

func newScenarioSaveCommand(container *app.Container) *cobra.Command {
	var (
		name        string
		message     string
		description string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a workflow test scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := container.Scenarios.Save(domain.Scenario{
				Name:        name,
				Message:     message,
				Description: description,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved scenario %s (%s)\n", saved.Name, saved.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Scenario name (required)")
	cmd.Flags().StringVar(&message, "message", "", "Workflow message to replay (required)")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	return cmd
}

func newScenarioListCommand(container *app.Container) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, err := container.Scenarios.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return helpers.PrintJSON(out, scenarios)
			}
			if len(scenarios) == 0 {
				fmt.Fprintln(out, msgNoScenariosSaved)
				return nil
			}
			table := helpers.NewTable(out)
			fmt.Fprintln(table, "ID\tNAME\tLAST USED\tMESSAGE")
			for _, s := range scenarios {
				lastUsed := "never"
				if s.LastUsed != nil {
					lastUsed = helpers.Ago(*s.LastUsed)
				}
				fmt.Fprintf(table, "%s\t%s\t%s\t%s\n", s.ID, s.Name, lastUsed, helpers.Truncate(s.Message, 50))
			}
			return table.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newScenarioRunCommand(container *app.Container) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "run <scenario-id>",
		Short: "Replay a saved scenario as a workflow test",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := container.Scenarios.Touch(args[0])
			if err != nil {
				return err
			}
			session := sessionID
			if session == "" {
				session = container.Config.Preferences.DefaultSessionID
			}
			outcome := container.ExecuteService.RunWorkflow(cmd.Context(), scenario.Message, session)
			renderOutcome(cmd.OutOrStdout(), outcome.Entry, outcome.Result)
			return outcome.Err
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session id (default from config)")
	return cmd
}

func newScenarioDeleteCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <scenario-id>",
		Short: "Delete a saved scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Scenarios.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Scenario deleted.")
			return nil
		},
	}
}
