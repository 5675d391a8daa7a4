package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wareops/opsctl/internal/app"
)

// NewVersionCommand creates the version command
func NewVersionCommand(container *app.Container) *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show backend build identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if detailed {
				info, err := container.Versions.Detailed(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Backend %s (%s)\n", info.Version, info.Environment)
				fmt.Fprintf(out, "  commit:  %s on %s (#%d)\n", info.GitSHA, info.GitBranch, info.CommitCount)
				fmt.Fprintf(out, "  built:   %s", info.BuildTime)
				if info.BuildHost != "" {
					fmt.Fprintf(out, " on %s", info.BuildHost)
				}
				fmt.Fprintln(out)
				if info.DockerImage != "" {
					fmt.Fprintf(out, "  image:   %s\n", info.DockerImage)
				}
				return nil
			}

			info := container.Versions.Version(cmd.Context())
			fmt.Fprintf(out, "Backend %s (%s, %s)\n", info.Version, info.Environment, info.GitSHA)
			return nil
		},
	}

	cmd.Flags().BoolVar(&detailed, "detailed", false, "Show build provenance")
	return cmd
}
