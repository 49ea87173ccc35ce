package db

import (
	"context"
	"errors"
)

// ErrRunNotFound is returned when a run id has no record
var ErrRunNotFound = errors.New("run not found")

// RunStore defines the interface for run history operations.
// Both postgres.DB and sqlite.DB implement this interface.
type RunStore interface {
	InsertRun(ctx context.Context, run *Run, assignments []Assignment, tallies []Tally) error
	GetRuns(ctx context.Context) ([]Run, error)
	GetAssignments(ctx context.Context, runID string) ([]Assignment, error)
	GetTallies(ctx context.Context, runID string) ([]Tally, error)
	Close()
}

// LatestRun returns the most recently created run for a period.
// Zero year or month matches any.
func LatestRun(runs []Run, year, month int) (Run, bool) {
	var latest Run
	found := false
	for _, r := range runs {
		if year != 0 && r.Year != year {
			continue
		}
		if month != 0 && r.Month != month {
			continue
		}
		if !found || r.CreatedAt.After(latest.CreatedAt) {
			latest = r
			found = true
		}
	}
	return latest, found
}
