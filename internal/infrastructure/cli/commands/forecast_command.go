package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wareops/opsctl/internal/app"
	"github.com/wareops/opsctl/internal/infrastructure/cli/helpers"
)

// NewForecastCommand creates the forecast command with all subcommands
func NewForecastCommand(container *app.Container) *cobra.Command {
	forecastCmd := &cobra.Command{
		Use:   "forecast",
		Short: "Demand forecasting and model training",
	}

	forecastCmd.AddCommand(
		newForecastDashboardCommand(container),
		newForecastReorderCommand(container),
		newForecastModelsCommand(container),
		newForecastRealtimeCommand(container),
		newForecastBICommand(container),
		newForecastSKUCommand(container),
		newForecastTrainCommand(container),
	)

	return forecastCmd
}

func newForecastDashboardCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the forecasting dashboard snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			dashboard, err := container.Forecasting.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			return printRawJSON(cmd, dashboard)
		},
	}
}

func newForecastReorderCommand(container *app.Container) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "reorder",
		Short: "List reorder recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			recommendations, err := container.Forecasting.ReorderRecommendations(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return helpers.PrintJSON(out, recommendations)
			}
			table := helpers.NewTable(out)
			fmt.Fprintln(table, "SKU\tSTOCK\tORDER QTY\tURGENCY\tCOST\tREASON")
			for _, rec := range recommendations {
				fmt.Fprintf(table, "%s\t%d\t%d\t%s\t%.2f\t%s\n",
					rec.SKU, rec.CurrentStock, rec.RecommendedOrderQuantity, rec.Urgency,
					rec.EstimatedCost, helpers.Truncate(rec.Reason, 40))
			}
			return table.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newForecastModelsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "Show forecasting model performance",
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := container.Forecasting.ModelPerformance(cmd.Context())
			if err != nil {
				return err
			}
			table := helpers.NewTable(cmd.OutOrStdout())
			fmt.Fprintln(table, "MODEL\tACCURACY\tMAE\tRMSE\tLAST TRAINED")
			for _, m := range models {
				fmt.Fprintf(table, "%s\t%.3f\t%.3f\t%.3f\t%s\n", m.ModelName, m.AccuracyScore, m.MAE, m.RMSE, m.LastTrained)
			}
			return table.Flush()
		},
	}
}

func newForecastRealtimeCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "realtime",
		Short: "Show real-time forecasting metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics, err := container.Forecasting.RealTime(cmd.Context())
			if err != nil {
				return err
			}
			return printRawJSON(cmd, metrics)
		},
	}
}

func newForecastBICommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "bi",
		Short: "Show the business-intelligence report",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.Forecasting.BusinessIntelligence(cmd.Context())
			if err != nil {
				return err
			}
			return printRawJSON(cmd, report)
		},
	}
}

func newForecastSKUCommand(container *app.Container) *cobra.Command {
	var horizonDays int

	cmd := &cobra.Command{
		Use:   "sku <sku>",
		Short: "Forecast demand for one SKU",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			forecast, err := container.Forecasting.Forecast(cmd.Context(), args[0], horizonDays)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Forecast for %s (%d days, as of %s)\n", forecast.SKU, forecast.HorizonDays, forecast.ForecastDate)
			for day, prediction := range forecast.Predictions {
				fmt.Fprintf(out, "  day %2d: %.1f\n", day+1, prediction)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&horizonDays, "days", 7, "Forecast horizon in days")
	return cmd
}

func newForecastTrainCommand(container *app.Container) *cobra.Command {
	trainCmd := &cobra.Command{
		Use:   "train",
		Short: "Control model-training jobs",
	}

	var modelName string
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a training run",
		RunE: func(cmd *cobra.Command, args []string) error {
			triggeredBy := ""
			if user, ok := container.Sessions.User(); ok {
				triggeredBy = user.Username
			}
			run, err := container.Training.Start(cmd.Context(), modelName, triggeredBy)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Training run %s started (%s)\n", run.RunID, run.Status)
			return nil
		},
	}
	startCmd.Flags().StringVar(&modelName, "model", "", "Model to train (default: all)")

	stopCmd := &cobra.Command{
		Use:   "stop <run-id>",
		Short: "Stop a training run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Training.Stop(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Training run stopped.")
			return nil
		},
	}

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show the recurring training schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			schedule, err := container.Training.Schedule(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Enabled: %t\n", schedule.Enabled)
			if schedule.Cron != "" {
				fmt.Fprintf(out, "Cadence: %s\n", schedule.Cron)
			}
			if schedule.NextRun != "" {
				fmt.Fprintf(out, "Next run: %s\n", schedule.NextRun)
			}
			return nil
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List past training runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := container.Training.History(cmd.Context())
			if err != nil {
				return err
			}
			table := helpers.NewTable(cmd.OutOrStdout())
			fmt.Fprintln(table, "RUN\tMODEL\tSTATUS\tACCURACY\tSTARTED")
			for _, run := range runs {
				fmt.Fprintf(table, "%s\t%s\t%s\t%.3f\t%s\n", run.RunID, run.ModelName, run.Status, run.Accuracy, run.StartedAt)
			}
			return table.Flush()
		},
	}

	trainCmd.AddCommand(startCmd, stopCmd, scheduleCmd, historyCmd)
	return trainCmd
}

func printRawJSON(cmd *cobra.Command, raw []byte) error {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), string(raw))
		return nil
	}
	return helpers.PrintJSON(cmd.OutOrStdout(), decoded)
}
