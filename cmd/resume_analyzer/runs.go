package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List persisted batch runs",
	Long:  "List the most recent batch runs saved with --persist or through the HR API.",
	Args:  cobra.NoArgs,
	RunE:  runListRuns,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the full report of a persisted batch run",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowRun,
}

var (
	runsLimit       int
	runsDatabaseURL string
)

func init() {
	runsCmd.PersistentFlags().StringVar(&runsDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL)")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to list")
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

func connectRuns(ctx context.Context) (*db.DB, error) {
	databaseURL := runsDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL required (set the environment variable or use --db-url)")
	}
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}

func runListRuns(cmd *cobra.Command, _ []string) error {
	if runsLimit <= 0 {
		return fmt.Errorf("--limit must be positive, got %d", runsLimit)
	}

	ctx := context.Background()
	database, err := connectRuns(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(ctx, runsLimit)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), runs)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "RUN ID\tCREATED\tRESUMES\tFAILED\tTOP\tMEAN")
	for _, run := range runs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d %s\t%.1f\n",
			run.ID, run.CreatedAt.Format("2006-01-02 15:04"),
			run.Summary.Total, run.Summary.Failed,
			run.Summary.TopScore, run.Summary.TopSource, run.Summary.MeanScore)
	}
	return tw.Flush()
}

func runShowRun(cmd *cobra.Command, args []string) error {
	runID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid run-id: %w", err)
	}

	ctx := context.Background()
	database, err := connectRuns(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	report, err := database.GetBatchReport(ctx, runID)
	if err != nil {
		return err
	}
	if report == nil {
		return fmt.Errorf("run not found: %s", runID)
	}
	return render(cmd, report, func(p *observability.Printer) { p.PrintBatchReport(report) })
}
