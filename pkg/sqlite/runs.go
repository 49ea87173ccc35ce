package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jakechorley/oncall-scheduler/pkg/db"
)

// InsertRun stores a run with its assignments and tallies in one transaction
func (d *DB) InsertRun(ctx context.Context, run *db.Run, assignments []db.Assignment, tallies []db.Tally) error {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO run (id, year, month, seed, created_at, gap_count, success)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Year, run.Month, int64(run.Seed), run.CreatedAt.UTC().Format(timeLayout), run.GapCount, run.Success)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for _, a := range assignments {
		var developer sql.NullString
		if a.Developer != "" {
			developer = sql.NullString{String: a.Developer, Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO assignment (run_id, position, shift_date, shift, category, developer)
			VALUES (?, ?, ?, ?, ?, ?)
		`, run.ID, a.Position, a.Date.Format(dateLayout), a.Shift, a.Category, developer)
		if err != nil {
			return fmt.Errorf("inserting assignment: %w", err)
		}
	}

	for _, t := range tallies {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tally (run_id, developer, special, night, day)
			VALUES (?, ?, ?, ?, ?)
		`, run.ID, t.Developer, t.Special, t.Night, t.Day)
		if err != nil {
			return fmt.Errorf("inserting tally: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// GetRuns retrieves all runs, newest first
func (d *DB) GetRuns(ctx context.Context) ([]db.Run, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT id, year, month, seed, created_at, gap_count, success
		FROM run
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []db.Run
	for rows.Next() {
		var r db.Run
		var seed int64
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Year, &r.Month, &seed, &createdAt, &r.GapCount, &r.Success); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Seed = uint64(seed)
		if r.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parsing run created_at: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// GetAssignments retrieves a run's assignments in slot order
func (d *DB) GetAssignments(ctx context.Context, runID string) ([]db.Assignment, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT run_id, position, shift_date, shift, category, developer
		FROM assignment
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		var date string
		var developer sql.NullString
		if err := rows.Scan(&a.RunID, &a.Position, &date, &a.Shift, &a.Category, &developer); err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		if a.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("parsing assignment date: %w", err)
		}
		a.Developer = developer.String
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return assignments, nil
}

// GetTallies retrieves a run's tallies by developer name
func (d *DB) GetTallies(ctx context.Context, runID string) ([]db.Tally, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT run_id, developer, special, night, day
		FROM tally
		WHERE run_id = ?
		ORDER BY developer
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying tallies: %w", err)
	}
	defer rows.Close()

	var tallies []db.Tally
	for rows.Next() {
		var t db.Tally
		if err := rows.Scan(&t.RunID, &t.Developer, &t.Special, &t.Night, &t.Day); err != nil {
			return nil, fmt.Errorf("scanning tally: %w", err)
		}
		tallies = append(tallies, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tallies: %w", err)
	}
	return tallies, nil
}
