package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ImportRun records one completed pipeline execution for audit purposes.
type ImportRun struct {
	ID           string
	Source       string
	TotalRecords int
	ValidRecords int
	ErrorCount   int
	SavedRecords int
	StartedAt    time.Time
	FinishedAt   time.Time
}

// RecordRun writes an import run row and returns its generated identifier.
func (s *Store) RecordRun(ctx context.Context, run ImportRun) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO import_runs (
			id, source, total_records, valid_records, error_count,
			saved_records, started_at, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.TotalRecords, run.ValidRecords, run.ErrorCount,
		run.SavedRecords,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("record import run: %w", err)
	}
	return run.ID, nil
}

// RecentRuns returns the latest import runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]ImportRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, total_records, valid_records, error_count,
			saved_records, started_at, finished_at
		 FROM import_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query import runs: %w", err)
	}
	defer rows.Close()

	var runs []ImportRun
	for rows.Next() {
		var run ImportRun
		var started, finished string
		if err := rows.Scan(&run.ID, &run.Source, &run.TotalRecords,
			&run.ValidRecords, &run.ErrorCount, &run.SavedRecords,
			&started, &finished); err != nil {
			return nil, fmt.Errorf("scan import run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
