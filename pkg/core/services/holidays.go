package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/jakechorley/oncall-scheduler/internal/config"
	"github.com/jakechorley/oncall-scheduler/pkg/core/allocator"
)

// resolveHolidays combines the configured holidays for the year with the
// special rules expanded over the target month
func resolveHolidays(cfg *config.Config, year, month int, logger *zap.Logger) (allocator.HolidaySet, error) {
	holidays, err := allocator.NewHolidaySet(cfg.HolidaysFor(year)...)
	if err != nil {
		return nil, fmt.Errorf("invalid holiday for %d: %w", year, err)
	}
	logger.Debug("Loaded configured holidays", zap.Int("year", year), zap.Int("count", len(holidays)))

	extra, err := expandSpecialRules(cfg.SpecialRules, year, month, logger)
	if err != nil {
		return nil, err
	}
	for _, key := range extra {
		holidays[key] = true
	}

	return holidays, nil
}

// expandSpecialRules returns the slots matched by each rule within the month.
// Rules without a DTSTART are anchored on the first day of the month.
func expandSpecialRules(rules []config.SpecialRule, year, month int, logger *zap.Logger) ([]allocator.SlotKey, error) {
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

	var keys []allocator.SlotKey
	for i, r := range rules {
		opt, err := rrule.StrToROption(r.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for special rule %d: %w", i, err)
		}
		if opt.Dtstart.IsZero() {
			opt.Dtstart = monthStart
		}

		rule, err := rrule.NewRRule(*opt)
		if err != nil {
			return nil, fmt.Errorf("failed to build rrule for special rule %d: %w", i, err)
		}

		kinds := []allocator.ShiftKind{allocator.ShiftDay, allocator.ShiftNight}
		if len(r.Shifts) > 0 {
			kinds = kinds[:0]
			for _, s := range r.Shifts {
				kinds = append(kinds, allocator.ShiftKind(s))
			}
		}

		occurrences := rule.Between(monthStart, monthEnd, true)
		for _, occurrence := range occurrences {
			for _, kind := range kinds {
				keys = append(keys, allocator.SlotKey{Day: occurrence.Day(), Month: occurrence.Month(), Kind: kind})
			}
		}

		logger.Debug("Expanded special rule",
			zap.Int("index", i),
			zap.String("rrule", r.RRule),
			zap.Int("occurrences", len(occurrences)))
	}

	return keys, nil
}
