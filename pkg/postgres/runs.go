package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/oncall-scheduler/pkg/db"
)

// InsertRun stores a run with its assignments and tallies in one transaction
func (d *DB) InsertRun(ctx context.Context, run *db.Run, assignments []db.Assignment, tallies []db.Tally) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO run (id, year, month, seed, created_at, gap_count, success)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, run.ID, run.Year, run.Month, int64(run.Seed), run.CreatedAt, run.GapCount, run.Success)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, a := range assignments {
		var developer *string
		if a.Developer != "" {
			developer = &a.Developer
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO assignment (run_id, position, shift_date, shift, category, developer)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, run.ID, a.Position, a.Date, a.Shift, a.Category, developer)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	for _, t := range tallies {
		_, err := tx.Exec(ctx, `
			INSERT INTO tally (run_id, developer, special, night, day)
			VALUES ($1, $2, $3, $4, $5)
		`, run.ID, t.Developer, t.Special, t.Night, t.Day)
		if err != nil {
			return fmt.Errorf("failed to insert tally: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetRuns retrieves all runs, newest first
func (d *DB) GetRuns(ctx context.Context) ([]db.Run, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id::text, year, month, seed, created_at, gap_count, success
		FROM run
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []db.Run
	for rows.Next() {
		var r db.Run
		var seed int64
		if err := rows.Scan(&r.ID, &r.Year, &r.Month, &seed, &r.CreatedAt, &r.GapCount, &r.Success); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Seed = uint64(seed)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// GetAssignments retrieves a run's assignments in slot order
func (d *DB) GetAssignments(ctx context.Context, runID string) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT run_id::text, position, shift_date, shift, category, developer
		FROM assignment
		WHERE run_id = $1
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		var developer *string
		if err := rows.Scan(&a.RunID, &a.Position, &a.Date, &a.Shift, &a.Category, &developer); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		if developer != nil {
			a.Developer = *developer
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// GetTallies retrieves a run's tallies by developer name
func (d *DB) GetTallies(ctx context.Context, runID string) ([]db.Tally, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT run_id::text, developer, special, night, day
		FROM tally
		WHERE run_id = $1
		ORDER BY developer
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tallies: %w", err)
	}
	defer rows.Close()

	var tallies []db.Tally
	for rows.Next() {
		var t db.Tally
		if err := rows.Scan(&t.RunID, &t.Developer, &t.Special, &t.Night, &t.Day); err != nil {
			return nil, fmt.Errorf("failed to scan tally: %w", err)
		}
		tallies = append(tallies, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tallies: %w", err)
	}

	return tallies, nil
}
