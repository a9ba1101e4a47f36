package database

import (
	"database/sql"
	"fmt"
	"time"
)

// RunRepository handles database operations for run history
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// RecordRun inserts a run record and returns its database ID
func (r *RunRepository) RecordRun(run Run) (int64, error) {
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	result, err := r.db.Exec(`
		INSERT INTO runs (vertical, run_date, status, items_fetched, items_used, word_count, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.Vertical, run.RunDate, string(run.Status), run.ItemsFetched, run.ItemsUsed,
		run.WordCount, run.Error, createdAt.Format(time.RFC3339))

	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	return id, nil
}

// GetLastRun returns the most recent run for a vertical, or nil when the
// vertical has never run
func (r *RunRepository) GetLastRun(vertical string) (*Run, error) {
	row := r.db.QueryRow(`
		SELECT id, vertical, run_date, status, items_fetched, items_used, word_count, error, created_at
		FROM runs
		WHERE vertical = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, vertical)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last run: %w", err)
	}

	return run, nil
}

// ListRecent returns the most recent runs across all verticals
func (r *RunRepository) ListRecent(limit int) ([]Run, error) {
	rows, err := r.db.Query(`
		SELECT id, vertical, run_date, status, items_fetched, items_used, word_count, error, created_at
		FROM runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
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

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var status string
	var createdAt string

	err := row.Scan(&run.ID, &run.Vertical, &run.RunDate, &status, &run.ItemsFetched,
		&run.ItemsUsed, &run.WordCount, &run.Error, &createdAt)
	if err != nil {
		return nil, err
	}

	run.Status = RunStatus(status)

	parsed, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	run.CreatedAt = parsed

	return &run, nil
}
