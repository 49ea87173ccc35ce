package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/oncall-scheduler/internal/config"
	"github.com/jakechorley/oncall-scheduler/pkg/clients/sheetsclient"
	"github.com/jakechorley/oncall-scheduler/pkg/constraints"
	"github.com/jakechorley/oncall-scheduler/pkg/core/allocator"
	"github.com/jakechorley/oncall-scheduler/pkg/core/model"
	"github.com/jakechorley/oncall-scheduler/pkg/db"
	"github.com/jakechorley/oncall-scheduler/pkg/export"
)

// ConstraintsSource provides the constraints document for a run
type ConstraintsSource interface {
	Load() (*model.Constraints, error)
}

// SchedulePublisher appends a month to the shared spreadsheet
type SchedulePublisher interface {
	AppendSchedule(ctx context.Context, spreadsheetID, worksheet string, schedule export.Schedule, palette export.Palette) (int64, error)
}

// Notifier sends the summary email
type Notifier interface {
	SendEmail(ctx context.Context, to []string, subject, body string) error
}

// RunWriter stores finished runs
type RunWriter interface {
	InsertRun(ctx context.Context, run *db.Run, assignments []db.Assignment, tallies []db.Tally) error
}

// GenerateOptions adjust a single run. Zero values fall back to the constraints document and config.
type GenerateOptions struct {
	Year     int
	Month    int
	DayLimit int
	Seed     *uint64

	// DryRun writes local files only: nothing is stored, published or emailed
	DryRun bool
}

// GenerateDeps are the optional outputs of a run. Nil dependencies are skipped.
type GenerateDeps struct {
	Store     RunWriter
	Publisher SchedulePublisher
	Notifier  Notifier
}

// GenerateResult describes a finished run
type GenerateResult struct {
	RunID    string
	Seed     uint64
	Outcome  *allocator.AllocationOutcome
	Schedule export.Schedule
	Files    export.Files

	Stored       bool
	Published    bool
	PublishedRow int64
	Notified     bool

	// Warnings collects failures of the optional outputs
	Warnings []string
}

// GenerateSchedule runs the allocator for the period in the constraints document
// and writes the result to every configured output.
// Input problems are returned as errors; gaps are reported in the result.
func GenerateSchedule(
	ctx context.Context,
	source ConstraintsSource,
	deps GenerateDeps,
	cfg *config.Config,
	logger *zap.Logger,
	opts GenerateOptions,
) (*GenerateResult, error) {
	logger.Debug("Starting generateSchedule", zap.Bool("dry_run", opts.DryRun))

	// Step 1: Load constraints
	logger.Debug("Loading constraints")
	doc, err := source.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load constraints: %w", err)
	}

	year, month := doc.Year, doc.Month
	if opts.Year != 0 {
		year = opts.Year
	}
	if opts.Month != 0 {
		month = opts.Month
	}
	logger.Debug("Target period", zap.Int("year", year), zap.Int("month", month), zap.Int("developers", len(doc.Developers)))

	roster, err := constraints.Roster(doc)
	if err != nil {
		return nil, fmt.Errorf("invalid constraints: %w", err)
	}

	// Step 2: Resolve special slots
	holidays, err := resolveHolidays(cfg, year, month, logger)
	if err != nil {
		return nil, err
	}

	// Step 3: Pick the seed
	seed := chooseSeed(opts.Seed, cfg.Seed)
	logger.Debug("Using seed", zap.Uint64("seed", seed))

	// Step 4: Allocate
	logger.Info("Running allocation", zap.Int("year", year), zap.Int("month", month), zap.Int("developers", len(roster)))
	outcome, err := allocator.Allocate(allocator.AllocationConfig{
		Year:            year,
		Month:           month,
		DayLimit:        opts.DayLimit,
		Developers:      roster,
		Holidays:        holidays,
		SpecialWeekdays: cfg.SpecialWeekdays(),
		Seed:            seed,
	})
	if err != nil {
		return nil, fmt.Errorf("allocation failed: %w", err)
	}

	logger.Info("Allocation completed",
		zap.Bool("success", outcome.Success),
		zap.Int("slots", len(outcome.State.Slots)),
		zap.Int("gaps", len(outcome.Gaps)),
		zap.Int("night_quota", outcome.State.Quotas.Night),
		zap.Int("special_quota", outcome.State.Quotas.Special))

	for _, gap := range outcome.Gaps {
		logger.Warn("Unfilled slot", zap.String("slot", gap.Label()), zap.String("category", string(gap.Category)))
	}
	for _, verr := range outcome.ValidationErrors {
		logger.Warn("Validation error",
			zap.String("criterion", verr.CriterionName),
			zap.Int("slot_index", verr.SlotIndex),
			zap.String("slot", verr.SlotLabel),
			zap.String("description", verr.Description))
	}

	result := &GenerateResult{
		RunID:   uuid.New().String(),
		Seed:    seed,
		Outcome: outcome,
		Schedule: export.Schedule{
			Year:    year,
			Month:   time.Month(month),
			Rows:    outcome.Rows,
			Tallies: outcome.Tallies,
		},
	}

	// Step 5: Local files
	palette := export.Palette(cfg.DeveloperColors)
	files, err := export.WriteAll(cfg.OutputDir, result.Schedule, palette)
	if err != nil {
		return nil, fmt.Errorf("failed to write schedule files: %w", err)
	}
	result.Files = files
	logger.Info("Schedule written",
		zap.String("schedule", files.Schedule),
		zap.String("summary", files.Summary),
		zap.String("workbook", files.Workbook))

	if opts.DryRun {
		logger.Info("Dry run, skipping storage, publishing and notification")
		return result, nil
	}

	// Step 6: Store
	if deps.Store != nil {
		run := &db.Run{
			ID:        result.RunID,
			Year:      year,
			Month:     month,
			Seed:      seed,
			CreatedAt: time.Now().UTC(),
			GapCount:  len(outcome.Gaps),
			Success:   outcome.Success,
		}
		assignments, tallies := convertToDBRecords(run.ID, outcome)
		if err := deps.Store.InsertRun(ctx, run, assignments, tallies); err != nil {
			return nil, fmt.Errorf("failed to store run: %w", err)
		}
		result.Stored = true
		logger.Info("Run stored", zap.String("run_id", run.ID))
	}

	// Step 7: Publish
	if deps.Publisher != nil && cfg.Sheets.Enabled {
		worksheet := worksheetTitle(cfg, year)
		row, err := deps.Publisher.AppendSchedule(ctx, cfg.Sheets.SpreadsheetID, worksheet, result.Schedule, palette)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("publish failed: %v", err))
			logger.Warn("Failed to publish schedule", zap.Error(err))
		} else {
			result.Published = true
			result.PublishedRow = row
			logger.Info("Schedule published", zap.String("worksheet", worksheet), zap.Int64("row", row))
		}
	}

	// Step 8: Notify
	if deps.Notifier != nil && cfg.Notify.Enabled {
		subject, body := BuildSummaryEmail(result)
		if err := deps.Notifier.SendEmail(ctx, cfg.Notify.Recipients, subject, body); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("notification failed: %v", err))
			logger.Warn("Failed to send summary email", zap.Error(err))
		} else {
			result.Notified = true
			logger.Info("Summary email sent", zap.Strings("recipients", cfg.Notify.Recipients))
		}
	}

	return result, nil
}

// chooseSeed prefers the explicit seed, then the configured one, then a random one
func chooseSeed(explicit, configured *uint64) uint64 {
	if explicit != nil {
		return *explicit
	}
	if configured != nil {
		return *configured
	}
	return rand.Uint64()
}

func worksheetTitle(cfg *config.Config, year int) string {
	prefix := cfg.Sheets.WorksheetPrefix
	if prefix == "" {
		prefix = config.DefaultWorksheetPrefix
	}
	return sheetsclient.WorksheetTitle(prefix, year)
}
