package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wareops/opsctl/internal/app"
	"github.com/wareops/opsctl/internal/domain"
)

// NewChatCommand creates the chat command
func NewChatCommand(container *app.Container) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Send a message to the operations assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session := sessionID
			if session == "" {
				session = container.Config.Preferences.DefaultSessionID
			}
			resp, err := container.Chat.Send(cmd.Context(), domain.ChatRequest{
				Message:   strings.Join(args, " "),
				SessionID: session,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, resp.Reply)
			if resp.Route != "" {
				fmt.Fprintf(out, "\n(routed to %s", resp.Route)
				if resp.Intent != "" {
					fmt.Fprintf(out, ", intent %s", resp.Intent)
				}
				fmt.Fprintln(out, ")")
			}
			for _, rec := range resp.Recommendations {
				fmt.Fprintf(out, " - %s\n", rec)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session id (default from config)")
	return cmd
}
