package services

import (
	"fmt"
	"time"

	"github.com/jakechorley/oncall-scheduler/pkg/core/allocator"
	"github.com/jakechorley/oncall-scheduler/pkg/db"
)

// convertToDBRecords flattens an outcome into run history rows
func convertToDBRecords(runID string, outcome *allocator.AllocationOutcome) ([]db.Assignment, []db.Tally) {
	assignments := make([]db.Assignment, 0, len(outcome.State.Assignments))
	for _, a := range outcome.State.Assignments {
		assignments = append(assignments, db.Assignment{
			RunID:     runID,
			Position:  a.Slot.Index,
			Date:      a.Slot.Date,
			Shift:     string(a.Slot.Kind),
			Category:  string(a.Slot.Category),
			Developer: a.Developer,
		})
	}

	tallies := make([]db.Tally, 0, len(outcome.Tallies))
	for _, t := range outcome.Tallies {
		tallies = append(tallies, db.Tally{
			RunID:     runID,
			Developer: t.Developer,
			Special:   t.Special,
			Night:     t.Night,
			Day:       t.Day,
		})
	}

	return assignments, tallies
}

// convertFromDBRecords rebuilds the allocator view of a stored run
func convertFromDBRecords(stored []db.Assignment, storedTallies []db.Tally) ([]allocator.Assignment, []allocator.Tally, error) {
	assignments := make([]allocator.Assignment, 0, len(stored))
	for _, a := range stored {
		kind := allocator.ShiftKind(a.Shift)
		if !kind.IsValid() {
			return nil, nil, fmt.Errorf("stored assignment %d has invalid shift %q", a.Position, a.Shift)
		}
		date := time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), 0, 0, 0, 0, time.UTC)
		assignments = append(assignments, allocator.Assignment{
			Slot: allocator.Slot{
				Index:    a.Position,
				Date:     date,
				Kind:     kind,
				Weekday:  date.Weekday(),
				Category: allocator.Category(a.Category),
			},
			Developer: a.Developer,
		})
	}

	tallies := make([]allocator.Tally, 0, len(storedTallies))
	for _, t := range storedTallies {
		tallies = append(tallies, allocator.Tally{
			Developer:    t.Developer,
			LoadCounters: allocator.LoadCounters{Special: t.Special, Night: t.Night, Day: t.Day},
		})
	}

	return assignments, tallies, nil
}
