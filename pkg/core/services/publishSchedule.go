package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/oncall-scheduler/internal/config"
	"github.com/jakechorley/oncall-scheduler/pkg/core/allocator"
	"github.com/jakechorley/oncall-scheduler/pkg/db"
	"github.com/jakechorley/oncall-scheduler/pkg/export"
)

// RunReader defines the database operations needed to read stored runs
type RunReader interface {
	GetRuns(ctx context.Context) ([]db.Run, error)
	GetAssignments(ctx context.Context, runID string) ([]db.Assignment, error)
	GetTallies(ctx context.Context, runID string) ([]db.Tally, error)
}

// StoredSchedule is a run loaded back from history
type StoredSchedule struct {
	Run         db.Run
	Assignments []allocator.Assignment
	Schedule    export.Schedule
}

// PublishResult describes a re-published run
type PublishResult struct {
	RunID     string
	Worksheet string
	Row       int64
}

// LoadStoredSchedule fetches a run and rebuilds its schedule.
// If runID is empty, it defaults to the latest run.
func LoadStoredSchedule(ctx context.Context, database RunReader, logger *zap.Logger, runID string) (*StoredSchedule, error) {
	logger.Debug("Fetching runs")
	runs, err := database.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no runs found")
	}

	var target *db.Run
	if runID == "" {
		latest, _ := db.LatestRun(runs, 0, 0)
		target = &latest
		logger.Debug("No run ID provided, using latest run", zap.String("id", target.ID))
	} else {
		for i := range runs {
			if runs[i].ID == runID {
				target = &runs[i]
				break
			}
		}
		if target == nil {
			return nil, fmt.Errorf("%w: %s", db.ErrRunNotFound, runID)
		}
	}

	logger.Debug("Fetching assignments", zap.String("run_id", target.ID))
	stored, err := database.GetAssignments(ctx, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	storedTallies, err := database.GetTallies(ctx, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tallies: %w", err)
	}

	assignments, tallies, err := convertFromDBRecords(stored, storedTallies)
	if err != nil {
		return nil, err
	}

	return &StoredSchedule{
		Run:         *target,
		Assignments: assignments,
		Schedule: export.Schedule{
			Year:    target.Year,
			Month:   time.Month(target.Month),
			Rows:    allocator.ConsolidateDays(assignments),
			Tallies: tallies,
		},
	}, nil
}

// PublishSchedule appends a stored run to the yearly worksheet.
// If runID is empty, it defaults to the latest run.
func PublishSchedule(
	ctx context.Context,
	database RunReader,
	publisher SchedulePublisher,
	cfg *config.Config,
	logger *zap.Logger,
	runID string,
) (*PublishResult, error) {
	logger.Debug("Starting publishSchedule", zap.String("run_id", runID))

	if cfg.Sheets.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets.spreadsheetID is not configured")
	}

	stored, err := LoadStoredSchedule(ctx, database, logger, runID)
	if err != nil {
		return nil, err
	}
	if len(stored.Assignments) == 0 {
		return nil, fmt.Errorf("run %s has no assignments", stored.Run.ID)
	}

	worksheet := worksheetTitle(cfg, stored.Run.Year)
	row, err := publisher.AppendSchedule(ctx, cfg.Sheets.SpreadsheetID, worksheet, stored.Schedule, export.Palette(cfg.DeveloperColors))
	if err != nil {
		return nil, fmt.Errorf("failed to publish schedule: %w", err)
	}

	logger.Info("Schedule published",
		zap.String("run_id", stored.Run.ID),
		zap.String("worksheet", worksheet),
		zap.Int64("row", row))

	return &PublishResult{
		RunID:     stored.Run.ID,
		Worksheet: worksheet,
		Row:       row,
	}, nil
}

// ListRuns returns the stored runs, newest first
func ListRuns(ctx context.Context, database RunReader, logger *zap.Logger) ([]db.Run, error) {
	logger.Debug("Fetching runs")
	runs, err := database.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}
	logger.Debug("Found runs", zap.Int("count", len(runs)))
	return runs, nil
}
