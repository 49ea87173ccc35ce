package allocator

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate is returned when year and month cannot form a calendar month
	ErrInvalidDate = errors.New("invalid date")

	// ErrEmptyRoster is returned when no developers are supplied
	ErrEmptyRoster = errors.New("empty roster")

	// ErrMalformedRestriction is returned when a "DD/MM Kind" entry cannot be parsed
	ErrMalformedRestriction = errors.New("malformed restriction")

	// ErrDuplicateDeveloper is returned when two roster entries share a name
	ErrDuplicateDeveloper = errors.New("duplicate developer")
)

// RestrictionError describes a single entry that failed to parse
type RestrictionError struct {
	Developer string
	Entry     string
	Reason    string
}

func (e *RestrictionError) Error() string {
	if e.Developer == "" {
		return fmt.Sprintf("malformed restriction %q: %s", e.Entry, e.Reason)
	}
	return fmt.Sprintf("malformed restriction %q for %s: %s", e.Entry, e.Developer, e.Reason)
}

func (e *RestrictionError) Unwrap() error {
	return ErrMalformedRestriction
}
