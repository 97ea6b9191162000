package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/storage"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Rank a folder or bucket of resumes against a job description",
	Long: "Analyze every resume under a local directory or an s3://bucket/prefix location, " +
		"rank them by score and shortlist those at or above --min-score. Failed documents are reported, not fatal.",
	RunE: runBatch,
}

var (
	batchDir         string
	batchS3          string
	batchJDFile      string
	batchJDURL       string
	batchMinScore    int
	batchConcurrency int
	batchOutputFile  string
	batchPersist     bool
)

func init() {
	batchCmd.Flags().StringVar(&batchDir, "dir", "", "Directory containing resumes")
	batchCmd.Flags().StringVar(&batchS3, "s3", "", "S3 location of resumes (s3://bucket/prefix)")
	batchCmd.Flags().StringVar(&batchJDFile, "jd", "", "Path to the job description file")
	batchCmd.Flags().StringVar(&batchJDURL, "jd-url", "", "URL of the job posting to fetch")
	batchCmd.Flags().IntVar(&batchMinScore, "min-score", 0, "Minimum score for the shortlist (0-100)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Concurrent analyses (overrides BATCH_CONCURRENCY)")
	batchCmd.Flags().StringVarP(&batchOutputFile, "out", "o", "", "Write the batch report JSON to this path")
	batchCmd.Flags().BoolVar(&batchPersist, "persist", false, "Save the run to DATABASE_URL")

	rootCmd.AddCommand(batchCmd)
}

// batchLocation validates the --dir/--s3 pair and returns the chosen location.
func batchLocation() (string, error) {
	switch {
	case batchDir != "" && batchS3 != "":
		return "", fmt.Errorf("cannot use --dir with --s3")
	case batchDir != "":
		return batchDir, nil
	case batchS3 != "":
		return batchS3, nil
	default:
		return "", fmt.Errorf("must provide either --dir or --s3")
	}
}

func runBatch(cmd *cobra.Command, _ []string) error {
	location, err := batchLocation()
	if err != nil {
		return err
	}
	if batchMinScore < 0 || batchMinScore > 100 {
		return fmt.Errorf("--min-score must be between 0 and 100, got %d", batchMinScore)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	session, err := newLLMSession(ctx, logger)
	if err != nil {
		return err
	}
	defer session.Close()
	cfg := session.cfg

	jd, jdURL, err := session.jobDescription(ctx, batchJDFile, batchJDURL)
	if err != nil {
		return err
	}

	src, err := storage.Open(ctx, location, storage.Options{Region: cfg.S3Region, Endpoint: cfg.S3Endpoint})
	if err != nil {
		return err
	}
	docs, err := storage.LoadDocuments(ctx, src, logger)
	if err != nil {
		return fmt.Errorf("failed to load documents from %s: %w", src, err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("no supported documents found in %s", src)
	}

	concurrency := batchConcurrency
	if concurrency <= 0 {
		concurrency = cfg.BatchConcurrency
	}

	stderr := cmd.ErrOrStderr()
	report, err := session.service.AnalyzeBatch(ctx, docs, jd, analysis.BatchOptions{
		Concurrency: concurrency,
		MinScore:    batchMinScore,
		OnProgress: func(p types.BatchProgress) {
			if !jsonOutput {
				_, _ = fmt.Fprintf(stderr, "[%d/%d] %s\n", p.Completed, p.Total, p.SourceID)
			}
		},
	})
	if err != nil {
		return err
	}

	if err := schemas.Validate(schemas.BatchReport, report); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("batch report does not validate against schema: %w", err)
		}
		_, _ = fmt.Fprintf(stderr, "Warning: Could not validate report against schema: %v\n", err)
	}

	if batchPersist {
		if err := persistReport(ctx, cfg.DatabaseURL, report, jd, jdURL, logger); err != nil {
			return err
		}
	}

	if batchOutputFile != "" {
		if err := writeReportFile(batchOutputFile, report); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stderr, "Report: %s\n", batchOutputFile)
	}

	return render(cmd, report, func(p *observability.Printer) { p.PrintBatchReport(report) })
}

func persistReport(ctx context.Context, databaseURL string, report *types.BatchReport, jd, jdURL string, logger *zap.Logger) error {
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL required when using --persist")
	}
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	runID, err := database.SaveBatchReport(ctx, report, jd, jdURL)
	if err != nil {
		return fmt.Errorf("failed to save batch report: %w", err)
	}
	report.RunID = runID.String()
	logger.Info("batch run saved", zap.String("run_id", report.RunID))
	return nil
}

func writeReportFile(path string, report *types.BatchReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeJSON(f, report); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return schemas.ValidateFile(schemas.BatchReport, path)
}
