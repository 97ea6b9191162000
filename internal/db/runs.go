package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// SaveBatchReport stores a batch run and its records in one transaction and
// returns the run ID. The report's RunID is reused when it is a valid UUID.
func (db *DB) SaveBatchReport(ctx context.Context, report *types.BatchReport, jobDescription, jobURL string) (uuid.UUID, error) {
	runID, err := uuid.Parse(report.RunID)
	if err != nil {
		runID = uuid.New()
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	s := report.Summary
	_, err = tx.Exec(ctx,
		`INSERT INTO analysis_runs
		     (id, job_description, job_url, min_score, total, succeeded, failed, top_score, top_source, mean_score, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		runID, jobDescription, nullIfEmpty(jobURL), report.MinScore,
		s.Total, s.Succeeded, s.Failed, s.TopScore, nullIfEmpty(s.TopSource), s.MeanScore, report.CreatedAt,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}

	for i, item := range report.Items {
		sections, err := json.Marshal(item.Record.Sections)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to marshal sections for %s: %w", item.SourceID, err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO analysis_records (run_id, ordinal, source_id, score, sections, error)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			runID, i, item.SourceID, item.Record.Score, sections, nullIfEmpty(item.Error),
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert record %s: %w", item.SourceID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// GetRun retrieves a run by ID, or nil when it does not exist
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	run, err := scanRun(db.pool.QueryRow(ctx,
		`SELECT id, job_description, job_url, min_score, total, succeeded, failed, top_score, top_source, mean_score, created_at
		 FROM analysis_runs WHERE id = $1`,
		runID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns retrieves the most recent runs
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_description, job_url, min_score, total, succeeded, failed, top_score, top_source, mean_score, created_at
		 FROM analysis_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetBatchReport rebuilds the full report of a run, or nil when it does not exist
func (db *DB) GetBatchReport(ctx context.Context, runID uuid.UUID) (*types.BatchReport, error) {
	run, err := db.GetRun(ctx, runID)
	if err != nil || run == nil {
		return nil, err
	}

	rows, err := db.pool.Query(ctx,
		`SELECT source_id, score, sections, error
		 FROM analysis_records WHERE run_id = $1 ORDER BY ordinal`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get records: %w", err)
	}
	defer rows.Close()

	var items []types.BatchItem
	for rows.Next() {
		var (
			item     types.BatchItem
			sections []byte
			errText  *string
		)
		if err := rows.Scan(&item.SourceID, &item.Record.Score, &sections, &errText); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		if err := json.Unmarshal(sections, &item.Record.Sections); err != nil {
			return nil, fmt.Errorf("failed to decode sections for %s: %w", item.SourceID, err)
		}
		item.Record.SourceID = item.SourceID
		item.Error = derefString(errText)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &types.BatchReport{
		RunID:     run.ID.String(),
		MinScore:  run.MinScore,
		Items:     items,
		Shortlist: shortlist(items, run.MinScore),
		Summary:   run.Summary,
		CreatedAt: run.CreatedAt,
	}, nil
}

func scanRun(row pgx.Row) (*Run, error) {
	var (
		run       Run
		jobURL    *string
		topSource *string
	)
	err := row.Scan(&run.ID, &run.JobDescription, &jobURL, &run.MinScore,
		&run.Summary.Total, &run.Summary.Succeeded, &run.Summary.Failed,
		&run.Summary.TopScore, &topSource, &run.Summary.MeanScore, &run.CreatedAt)
	if err != nil {
		return nil, err
	}
	run.JobURL = derefString(jobURL)
	run.Summary.TopSource = derefString(topSource)
	return &run, nil
}

// shortlist keeps the successful items scoring at least minScore
func shortlist(items []types.BatchItem, minScore int) []types.BatchItem {
	out := make([]types.BatchItem, 0, len(items))
	for _, item := range items {
		if !item.Failed() && item.Record.Score >= minScore {
			out = append(out, item)
		}
	}
	return out
}
