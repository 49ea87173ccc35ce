package allocator

import (
	"fmt"
	"iter"
	"time"
)

const (
	minYear = 1
	maxYear = 9999
)

// daysIn returns the number of days in the given month
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysInMonth returns the number of days in the month, or ErrInvalidDate
func DaysInMonth(year, month int) (int, error) {
	if err := validateMonth(year, month); err != nil {
		return 0, err
	}
	return daysIn(year, time.Month(month)), nil
}

func validateMonth(year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d is outside 1-12", ErrInvalidDate, month)
	}
	if year < minYear || year > maxYear {
		return fmt.Errorf("%w: year %d is outside %d-%d", ErrInvalidDate, year, minYear, maxYear)
	}
	return nil
}

// ExpandMonth returns the slot sequence for a whole month: two slots per day, Day before Night.
// Categories are left unset.
func ExpandMonth(year, month int) (iter.Seq[Slot], error) {
	return ExpandDays(year, month, 0)
}

// ExpandDays is ExpandMonth truncated to the first dayLimit days.
// A dayLimit of 0 covers the whole month.
func ExpandDays(year, month, dayLimit int) (iter.Seq[Slot], error) {
	days, err := DaysInMonth(year, month)
	if err != nil {
		return nil, err
	}
	if dayLimit < 0 || dayLimit > days {
		return nil, fmt.Errorf("%w: day limit %d outside 0-%d", ErrInvalidDate, dayLimit, days)
	}
	if dayLimit > 0 {
		days = dayLimit
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	return func(yield func(Slot) bool) {
		index := 0
		for d := 0; d < days; d++ {
			date := start.AddDate(0, 0, d)
			for _, kind := range []ShiftKind{ShiftDay, ShiftNight} {
				slot := Slot{
					Index:   index,
					Date:    date,
					Kind:    kind,
					Weekday: date.Weekday(),
				}
				if !yield(slot) {
					return
				}
				index++
			}
		}
	}, nil
}
