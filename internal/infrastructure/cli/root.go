package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/wareops/opsctl/internal/app"
	"github.com/wareops/opsctl/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:   "opsctl",
		Short: "opsctl - warehouse operations console",
		Long:  "opsctl drives the warehouse operations backend: tool execution, document processing, forecasting, and equipment management.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(commands.NewToolsCommand(container))
	root.AddCommand(commands.NewWorkflowCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewScenarioCommand(container))
	root.AddCommand(commands.NewDocumentCommand(container))
	root.AddCommand(commands.NewChatCommand(container))
	root.AddCommand(commands.NewEquipmentCommand(container))
	root.AddCommand(commands.NewForecastCommand(container))
	root.AddCommand(commands.NewAuthCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewVersionCommand(container))
	return root, nil
}
