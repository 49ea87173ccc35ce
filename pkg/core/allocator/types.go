package allocator

import (
	"fmt"
	"time"
)

// ShiftKind is one of the two slots that exist on every calendar day
type ShiftKind string

const (
	ShiftDay   ShiftKind = "Day"
	ShiftNight ShiftKind = "Night"
)

// IsValid reports whether the kind is Day or Night
func (k ShiftKind) IsValid() bool {
	return k == ShiftDay || k == ShiftNight
}

// Category is the fairness bucket a slot is counted against
type Category string

const (
	CategorySpecial Category = "special"
	CategoryNight   Category = "night"
	CategoryDay     Category = "day"
)

// SlotKey identifies a slot by day-of-month, month and shift kind.
// It is the parsed form of restriction and holiday entries such as "14/04 Night".
type SlotKey struct {
	Day   int
	Month time.Month
	Kind  ShiftKind
}

// String formats the key as "DD/MM Kind"
func (k SlotKey) String() string {
	return fmt.Sprintf("%02d/%02d %s", k.Day, int(k.Month), k.Kind)
}

// Slot is one assignable unit of work
type Slot struct {
	// Index is the position of the slot in the run's slot sequence
	Index int

	// Date of the slot (UTC midnight)
	Date time.Time

	// Kind is Day or Night
	Kind ShiftKind

	// Weekday of Date
	Weekday time.Weekday

	// Category is set once by the classifier before any assignment happens
	Category Category
}

// Key returns the slot's restriction/holiday key
func (s Slot) Key() SlotKey {
	return SlotKey{Day: s.Date.Day(), Month: s.Date.Month(), Kind: s.Kind}
}

// Label formats the slot as "DD/MM Kind"
func (s Slot) Label() string {
	return s.Key().String()
}

// Developer is a member of the on-call roster
type Developer struct {
	// Name is unique within the roster
	Name string

	// Restrictions lists the slots this developer cannot take, in the order supplied
	Restrictions []SlotKey

	restricted map[SlotKey]bool
}

// NewDeveloper builds a developer with an indexed restriction set
func NewDeveloper(name string, restrictions ...SlotKey) Developer {
	d := Developer{Name: name, Restrictions: restrictions}
	d.index()
	return d
}

// IsRestricted reports whether the developer cannot take the given slot
func (d *Developer) IsRestricted(key SlotKey) bool {
	if d.restricted == nil {
		d.index()
	}
	return d.restricted[key]
}

func (d *Developer) index() {
	d.restricted = make(map[SlotKey]bool, len(d.Restrictions))
	for _, key := range d.Restrictions {
		d.restricted[key] = true
	}
}

// Quotas are the per-developer ceilings shared by the whole roster
type Quotas struct {
	Night   int
	Special int
}

// Ceiling returns the quota for a category and whether the category is capped at all
func (q Quotas) Ceiling(category Category) (int, bool) {
	switch category {
	case CategorySpecial:
		return q.Special, true
	case CategoryNight:
		return q.Night, true
	default:
		return 0, false
	}
}

// Assignment is the resolution of one slot.
// Developer is empty when the slot is a gap.
type Assignment struct {
	Slot      Slot
	Developer string
}

// IsGap reports whether no developer could take the slot
func (a Assignment) IsGap() bool {
	return a.Developer == ""
}

// ScheduleRow is one calendar day of the finished schedule
type ScheduleRow struct {
	Date       time.Time
	Weekday    time.Weekday
	DayShift   string
	NightShift string
}

// DayOfMonth returns the row's day number
func (r ScheduleRow) DayOfMonth() int {
	return r.Date.Day()
}

// Tally is a developer's final load
type Tally struct {
	Developer string
	LoadCounters
}
