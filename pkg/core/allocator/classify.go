package allocator

import (
	"time"
)

// DefaultSpecialWeekdays are the weekend days whose slots count as special
var DefaultSpecialWeekdays = []time.Weekday{time.Friday, time.Saturday}

// HolidaySet is a set of explicit special slots for one year
type HolidaySet map[SlotKey]bool

// NewHolidaySet parses "DD/MM Day|Night" entries
func NewHolidaySet(entries ...string) (HolidaySet, error) {
	set := make(HolidaySet, len(entries))
	for _, entry := range entries {
		key, err := ParseSlotKey(entry)
		if err != nil {
			return nil, err
		}
		set[key] = true
	}
	return set, nil
}

// Contains reports whether the key is a holiday slot
func (h HolidaySet) Contains(key SlotKey) bool {
	return h[key]
}

// Classifier labels slots as special, night or day
type Classifier struct {
	SpecialWeekdays []time.Weekday
	Holidays        HolidaySet
}

// NewClassifier returns a classifier using the given weekend days, or the defaults when none are given
func NewClassifier(holidays HolidaySet, specialWeekdays ...time.Weekday) Classifier {
	if len(specialWeekdays) == 0 {
		specialWeekdays = DefaultSpecialWeekdays
	}
	return Classifier{SpecialWeekdays: specialWeekdays, Holidays: holidays}
}

// Classify returns the slot's category. Special takes precedence over Night and Day.
func (c Classifier) Classify(slot Slot) Category {
	for _, wd := range c.SpecialWeekdays {
		if slot.Weekday == wd {
			return CategorySpecial
		}
	}
	if c.Holidays.Contains(slot.Key()) {
		return CategorySpecial
	}
	if slot.Kind == ShiftNight {
		return CategoryNight
	}
	return CategoryDay
}

// Classify labels a slot using the default weekend days
func Classify(slot Slot, holidays HolidaySet) Category {
	return NewClassifier(holidays).Classify(slot)
}
