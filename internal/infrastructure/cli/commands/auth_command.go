package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wareops/opsctl/internal/app"
	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/infrastructure/cli/helpers"
)

// NewAuthCommand creates the auth command with all subcommands
func NewAuthCommand(container *app.Container) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage backend authentication",
	}

	authCmd.AddCommand(
		newAuthLoginCommand(container),
		newAuthWhoamiCommand(container),
		newAuthLogoutCommand(container),
		newAuthUsersCommand(container),
	)

	return authCmd
}

func newAuthLoginCommand(container *app.Container) *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			user := username
			if user == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Username: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				user = strings.TrimSpace(line)
			}
			pass := password
			if pass == "" {
				pass = os.Getenv("OPSCTL_PASSWORD")
			}
			if user == "" || pass == "" {
				return fmt.Errorf("username and password required (use --username/--password or OPSCTL_PASSWORD)")
			}

			session, err := container.Auth.Login(cmd.Context(), domain.Credentials{Username: user, Password: pass})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", session.User.Username, session.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Backend username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Backend password (prefer OPSCTL_PASSWORD)")
	return cmd
}

func newAuthWhoamiCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := container.Auth.Me(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", user.Username, user.Role)
			if user.FullName != "" {
				fmt.Fprintf(out, "  %s\n", user.FullName)
			}
			if user.Email != "" {
				fmt.Fprintf(out, "  %s\n", user.Email)
			}
			return nil
		},
	}
}

func newAuthLogoutCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Auth.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newAuthUsersCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List backend accounts (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := container.Auth.Users(cmd.Context())
			if err != nil {
				return err
			}
			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No users visible (admin role required).")
				return nil
			}
			table := helpers.NewTable(cmd.OutOrStdout())
			fmt.Fprintln(table, "ID\tUSERNAME\tROLE\tSTATUS\tEMAIL")
			for _, user := range users {
				fmt.Fprintf(table, "%d\t%s\t%s\t%s\t%s\n", user.ID, user.Username, user.Role, user.Status, user.Email)
			}
			return table.Flush()
		},
	}
}
