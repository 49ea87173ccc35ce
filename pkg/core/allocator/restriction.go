package allocator

import (
	"strconv"
	"strings"
	"time"
)

// ParseSlotKey parses an entry of the form "DD/MM Day" or "DD/MM Night".
// The returned error is a *RestrictionError wrapping ErrMalformedRestriction.
func ParseSlotKey(entry string) (SlotKey, error) {
	fields := strings.Fields(entry)
	if len(fields) != 2 {
		return SlotKey{}, &RestrictionError{Entry: entry, Reason: "expected \"DD/MM Day\" or \"DD/MM Night\""}
	}

	kind := ShiftKind(fields[1])
	if !kind.IsValid() {
		return SlotKey{}, &RestrictionError{Entry: entry, Reason: "shift must be Day or Night"}
	}

	dayStr, monthStr, ok := strings.Cut(fields[0], "/")
	if !ok || len(dayStr) != 2 || len(monthStr) != 2 {
		return SlotKey{}, &RestrictionError{Entry: entry, Reason: "date must use DD/MM"}
	}

	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return SlotKey{}, &RestrictionError{Entry: entry, Reason: "day is not a number"}
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return SlotKey{}, &RestrictionError{Entry: entry, Reason: "month is not a number"}
	}
	if month < 1 || month > 12 {
		return SlotKey{}, &RestrictionError{Entry: entry, Reason: "month out of range"}
	}
	// Feb 29 is accepted regardless of year; it simply never matches in a non-leap year
	if day < 1 || day > daysIn(2024, time.Month(month)) {
		return SlotKey{}, &RestrictionError{Entry: entry, Reason: "day out of range"}
	}

	return SlotKey{Day: day, Month: time.Month(month), Kind: kind}, nil
}

// ParseDeveloper builds a Developer from raw restriction entries
func ParseDeveloper(name string, entries []string) (Developer, error) {
	keys := make([]SlotKey, 0, len(entries))
	for _, entry := range entries {
		key, err := ParseSlotKey(entry)
		if err != nil {
			if rerr, ok := err.(*RestrictionError); ok {
				rerr.Developer = name
			}
			return Developer{}, err
		}
		keys = append(keys, key)
	}
	return NewDeveloper(name, keys...), nil
}

// ParseRoster builds the roster in the order given by names.
// Developers missing from restrictions have no restrictions.
func ParseRoster(names []string, restrictions map[string][]string) ([]Developer, error) {
	roster := make([]Developer, 0, len(names))
	for _, name := range names {
		dev, err := ParseDeveloper(name, restrictions[name])
		if err != nil {
			return nil, err
		}
		roster = append(roster, dev)
	}
	return roster, nil
}
