package db

import "time"

// Run represents one stored scheduling run
type Run struct {
	ID        string
	Year      int
	Month     int
	Seed      uint64
	CreatedAt time.Time
	GapCount  int
	Success   bool
}

// Assignment represents one resolved slot of a run. Developer is empty for gaps.
type Assignment struct {
	RunID     string
	Position  int
	Date      time.Time
	Shift     string
	Category  string
	Developer string
}

// Tally represents a developer's final counters for a run
type Tally struct {
	RunID     string
	Developer string
	Special   int
	Night     int
	Day       int
}
