package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wareops/opsctl/internal/app"
	"github.com/wareops/opsctl/internal/domain"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and backend connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.DoctorService.Run(cmd.Context())
			out := cmd.OutOrStdout()
			for _, check := range report.Checks {
				marker := "ok  "
				switch check.Status {
				case domain.HealthWarn:
					marker = "warn"
				case domain.HealthError:
					marker = "FAIL"
				}
				fmt.Fprintf(out, "[%s] %s: %s", marker, check.Name, check.Details)
				if check.Latency > 0 {
					fmt.Fprintf(out, " (%s)", check.Latency.Round(time.Millisecond))
				}
				fmt.Fprintln(out)
			}
			if err != nil {
				return err
			}
			if !report.Healthy() {
				return fmt.Errorf("one or more checks failed")
			}
			fmt.Fprintln(out, "\nAll checks passed.")
			return nil
		},
	}
}
