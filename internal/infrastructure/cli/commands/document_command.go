package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wareops/opsctl/internal/app"
	"github.com/wareops/opsctl/internal/application/monitor"
	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/infrastructure/cli/helpers"
)

// NewDocumentCommand creates the document command with all subcommands
func NewDocumentCommand(container *app.Container) *cobra.Command {
	documentCmd := &cobra.Command{
		Use:   "document",
		Short: "Upload and track documents through the processing pipeline",
	}

	documentCmd.AddCommand(
		newDocumentUploadCommand(container),
		newDocumentStatusCommand(container),
		newDocumentWatchCommand(container),
		newDocumentResultsCommand(container),
		newDocumentSearchCommand(container),
		newDocumentAnalyticsCommand(container),
		newDocumentApproveCommand(container),
		newDocumentRejectCommand(container),
	)

	return documentCmd
}

func newDocumentUploadCommand(container *app.Container) *cobra.Command {
	var (
		documentType string
		userID       string
		watch        bool
	)

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a document for processing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docType := documentType
			if docType == "" {
				docType = container.Config.Preferences.DocumentType
			}
			user := userID
			if user == "" {
				user = container.Config.Preferences.DefaultUser
			}

			documentID, err := container.Documents.Upload(cmd.Context(), args[0], docType, user)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Uploaded %s as document %s\n", filepath.Base(args[0]), documentID)
			container.MonitorService.Track(domain.NewDocument(documentID, filepath.Base(args[0]), time.Now()))

			if !watch {
				fmt.Fprintf(out, "Track progress with: opsctl document watch %s\n", documentID)
				return nil
			}
			return watchDocument(cmd, container, documentID)
		},
	}

	cmd.Flags().StringVar(&documentType, "type", "", "Document type hint (default from config)")
	cmd.Flags().StringVar(&userID, "user", "", "Uploading user id (default from config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Poll status until processing settles")
	return cmd
}

func newDocumentStatusCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <document-id>",
		Short: "Show a single processing snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.Documents.Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			doc := domain.NewDocument(args[0], args[0], time.Now())
			renderDocument(cmd.OutOrStdout(), monitor.ApplyStatus(doc, report))
			return nil
		},
	}
	return cmd
}

func newDocumentWatchCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <document-id>",
		Short: "Poll processing status until the document settles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchDocument(cmd, container, args[0])
		},
	}
	return cmd
}

func watchDocument(cmd *cobra.Command, container *app.Container, documentID string) error {
	out := cmd.OutOrStdout()
	container.MonitorService.OnUpdate = func(doc domain.Document) {
		stage := currentStageName(doc)
		fmt.Fprintf(out, "  %3d%%  %s  %s\n", doc.Progress, doc.Status, stage)
	}
	defer func() { container.MonitorService.OnUpdate = nil }()

	doc, err := container.MonitorService.Watch(cmd.Context(), documentID)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	renderDocument(out, doc)
	if doc.Status == domain.DocumentFailed {
		return fmt.Errorf("document %s failed processing", documentID)
	}
	return nil
}

func newDocumentResultsCommand(container *app.Container) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "results <document-id>",
		Short: "Fetch normalized extraction results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := container.Documents.Results(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return helpers.PrintJSON(out, result)
			}
			renderResults(out, result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newDocumentSearchCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search processed documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := container.Documents.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printRawJSON(cmd, result)
		},
	}
	return cmd
}

func newDocumentAnalyticsCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show document-processing analytics",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.Documents.Analytics(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total documents:  %d\n", report.TotalDocuments)
			fmt.Fprintf(out, "Processed today:  %d\n", report.ProcessedToday)
			fmt.Fprintf(out, "Average quality:  %.1f\n", report.AverageQuality)
			fmt.Fprintf(out, "Auto-approved:    %.1f%%\n", report.AutoApproved)
			fmt.Fprintf(out, "Success rate:     %.1f%%\n", report.SuccessRate)
			if report.Summary != "" {
				fmt.Fprintf(out, "\n%s\n", report.Summary)
			}
			return nil
		},
	}
	return cmd
}

func newDocumentApproveCommand(container *app.Container) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "approve <document-id>",
		Short: "Approve a processed document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			approver := ""
			if user, ok := container.Sessions.User(); ok {
				approver = user.Username
			}
			if err := container.Documents.Approve(cmd.Context(), args[0], approver, notes); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Document approved.")
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Approval notes")
	return cmd
}

func newDocumentRejectCommand(container *app.Container) *cobra.Command {
	var (
		reason      string
		suggestions []string
	)

	cmd := &cobra.Command{
		Use:   "reject <document-id>",
		Short: "Reject a processed document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if reason == "" {
				return fmt.Errorf("--reason required")
			}
			rejector := ""
			if user, ok := container.Sessions.User(); ok {
				rejector = user.Username
			}
			if err := container.Documents.Reject(cmd.Context(), args[0], rejector, reason, suggestions); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Document rejected.")
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Rejection reason (required)")
	cmd.Flags().StringArrayVar(&suggestions, "suggestion", nil, "Correction suggestion (repeatable)")
	return cmd
}

func renderDocument(out io.Writer, doc domain.Document) {
	fmt.Fprintf(out, "Document %s: %s (%d%%)\n", doc.ID, doc.Status, doc.Progress)
	for _, stage := range doc.Stages {
		marker := " "
		switch {
		case stage.Completed:
			marker = "x"
		case stage.Current:
			marker = ">"
		}
		fmt.Fprintf(out, "  [%s] %s\n", marker, stage.Name)
	}
}

func renderResults(out io.Writer, result domain.ExtractionResult) {
	fmt.Fprintf(out, "Results for %s\n", result.DocumentID)
	if result.IsMockData {
		fmt.Fprintln(out, "WARNING: backend returned mock data; values below are placeholders")
	}
	fmt.Fprintf(out, "Quality score:    %.1f\n", result.QualityScore)
	if result.RoutingDecision != "" {
		fmt.Fprintf(out, "Routing decision: %s\n", result.RoutingDecision)
	}
	if result.ProcessingTime > 0 {
		fmt.Fprintf(out, "Processing time:  %s\n", result.ProcessingTime)
	}

	if len(result.ExtractedData) > 0 {
		fmt.Fprintln(out, "\nExtracted fields:")
		fields := make([]string, 0, len(result.ExtractedData))
		for field := range result.ExtractedData {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		table := helpers.NewTable(out)
		fmt.Fprintln(table, "FIELD\tVALUE\tCONFIDENCE")
		for _, field := range fields {
			confidence := "-"
			if score, ok := result.ConfidenceScores[field]; ok {
				confidence = fmt.Sprintf("%.0f%%", score*100)
			}
			fmt.Fprintf(table, "%s\t%v\t%s\n", field, result.ExtractedData[field], confidence)
		}
		table.Flush()
	}
}

func currentStageName(doc domain.Document) string {
	for _, stage := range doc.Stages {
		if stage.Current {
			return stage.Name
		}
	}
	return ""
}
