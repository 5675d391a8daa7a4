package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wareops/opsctl/internal/app"
	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/infrastructure/cli/helpers"
)

// NewEquipmentCommand creates the equipment command with all subcommands
func NewEquipmentCommand(container *app.Container) *cobra.Command {
	equipmentCmd := &cobra.Command{
		Use:   "equipment",
		Short: "Manage warehouse equipment assets",
	}

	equipmentCmd.AddCommand(
		newEquipmentListCommand(container),
		newEquipmentStatusCommand(container),
		newEquipmentAssignCommand(container),
		newEquipmentReleaseCommand(container),
		newEquipmentAssignmentsCommand(container),
		newEquipmentTelemetryCommand(container),
		newEquipmentMaintenanceCommand(container),
	)

	return equipmentCmd
}

func newEquipmentListCommand(container *app.Container) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			assets, err := container.Equipment.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return helpers.PrintJSON(out, assets)
			}
			table := helpers.NewTable(out)
			fmt.Fprintln(table, "ASSET\tTYPE\tZONE\tSTATUS\tOWNER")
			for _, asset := range assets {
				fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%s\n", asset.AssetID, asset.Type, asset.Zone, asset.Status, asset.OwnerUser)
			}
			return table.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newEquipmentStatusCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status <asset-id>",
		Short: "Show one asset's live status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asset, err := container.Equipment.Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Asset %s (%s %s)\n", asset.AssetID, asset.Type, asset.Model)
			fmt.Fprintf(out, "  Status: %s\n", asset.Status)
			fmt.Fprintf(out, "  Zone:   %s\n", asset.Zone)
			if asset.OwnerUser != "" {
				fmt.Fprintf(out, "  Owner:  %s\n", asset.OwnerUser)
			}
			if asset.NextPMDue != "" {
				fmt.Fprintf(out, "  Next maintenance: %s\n", asset.NextPMDue)
			}
			return nil
		},
	}
}

func newEquipmentAssignCommand(container *app.Container) *cobra.Command {
	var (
		assignee string
		taskID   string
		hours    float64
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "assign <asset-id>",
		Short: "Assign an asset to a worker or task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if assignee == "" {
				return fmt.Errorf("--assignee required")
			}
			assignment, err := container.Equipment.Assign(cmd.Context(), domain.AssignmentRequest{
				AssetID:       args[0],
				Assignee:      assignee,
				TaskID:        taskID,
				DurationHours: hours,
				Notes:         notes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Assigned %s to %s\n", assignment.AssetID, assignment.Assignee)
			return nil
		},
	}

	cmd.Flags().StringVar(&assignee, "assignee", "", "Worker or task owner (required)")
	cmd.Flags().StringVar(&taskID, "task", "", "Associated task id")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Expected duration in hours")
	cmd.Flags().StringVar(&notes, "notes", "", "Assignment notes")
	return cmd
}

func newEquipmentReleaseCommand(container *app.Container) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "release <asset-id>",
		Short: "Return an assigned asset to the pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			releasedBy := ""
			if user, ok := container.Sessions.User(); ok {
				releasedBy = user.Username
			}
			err := container.Equipment.Release(cmd.Context(), domain.ReleaseRequest{
				AssetID:    args[0],
				ReleasedBy: releasedBy,
				Notes:      notes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Released %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Release notes")
	return cmd
}

func newEquipmentAssignmentsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "assignments",
		Short: "List active assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := container.Equipment.Assignments(cmd.Context())
			if err != nil {
				return err
			}
			table := helpers.NewTable(cmd.OutOrStdout())
			fmt.Fprintln(table, "ASSET\tASSIGNEE\tTASK\tSINCE\tACTIVE")
			for _, a := range assignments {
				fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%t\n", a.AssetID, a.Assignee, a.TaskID, helpers.Ago(a.AssignedAt), a.Active)
			}
			return table.Flush()
		},
	}
}

func newEquipmentTelemetryCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "telemetry <asset-id>",
		Short: "Show recent telemetry samples for an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := container.Equipment.Telemetry(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			table := helpers.NewTable(cmd.OutOrStdout())
			fmt.Fprintln(table, "WHEN\tMETRIC\tVALUE")
			for _, p := range points {
				fmt.Fprintf(table, "%s\t%s\t%.2f\n", helpers.Ago(p.Timestamp), p.Metric, p.Value)
			}
			return table.Flush()
		},
	}
}

func newEquipmentMaintenanceCommand(container *app.Container) *cobra.Command {
	maintenanceCmd := &cobra.Command{
		Use:   "maintenance",
		Short: "View and schedule asset maintenance",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List scheduled maintenance windows",
		RunE: func(cmd *cobra.Command, args []string) error {
			windows, err := container.Equipment.MaintenanceWindows(cmd.Context())
			if err != nil {
				return err
			}
			table := helpers.NewTable(cmd.OutOrStdout())
			fmt.Fprintln(table, "ASSET\tTYPE\tWHEN\tPRIORITY\tSTATUS")
			for _, w := range windows {
				fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%s\n", w.AssetID, w.MaintenanceType, w.ScheduledFor, w.Priority, w.Status)
			}
			return table.Flush()
		},
	}

	var (
		maintenanceType string
		description     string
		scheduledFor    string
		minutes         int
		priority        string
	)
	scheduleCmd := &cobra.Command{
		Use:   "schedule <asset-id>",
		Short: "Schedule maintenance for an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if maintenanceType == "" || scheduledFor == "" {
				return fmt.Errorf("--type and --at are required")
			}
			scheduledBy := ""
			if user, ok := container.Sessions.User(); ok {
				scheduledBy = user.Username
			}
			err := container.Equipment.ScheduleMaintenance(cmd.Context(), domain.MaintenanceRequest{
				AssetID:                  args[0],
				MaintenanceType:          maintenanceType,
				Description:              description,
				ScheduledBy:              scheduledBy,
				ScheduledFor:             scheduledFor,
				EstimatedDurationMinutes: minutes,
				Priority:                 priority,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Maintenance scheduled for %s at %s\n", args[0], scheduledFor)
			return nil
		},
	}
	scheduleCmd.Flags().StringVar(&maintenanceType, "type", "", "Maintenance type (required)")
	scheduleCmd.Flags().StringVar(&description, "description", "", "Work description")
	scheduleCmd.Flags().StringVar(&scheduledFor, "at", "", "Scheduled time, RFC 3339 (required)")
	scheduleCmd.Flags().IntVar(&minutes, "minutes", 0, "Estimated duration in minutes")
	scheduleCmd.Flags().StringVar(&priority, "priority", "", "Priority hint")

	maintenanceCmd.AddCommand(listCmd, scheduleCmd)
	return maintenanceCmd
}
