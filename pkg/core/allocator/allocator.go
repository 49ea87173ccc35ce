package allocator

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"
)

// AllocationConfig contains everything needed for one scheduling run
type AllocationConfig struct {
	// Year and Month of the schedule
	Year  int
	Month int

	// DayLimit truncates the month to its first N days (0 = whole month)
	DayLimit int

	// Developers is the roster. Names must be unique.
	Developers []Developer

	// Holidays are explicit special slots for the target year
	Holidays HolidaySet

	// SpecialWeekdays overrides the weekend days (defaults to Friday and Saturday)
	SpecialWeekdays []time.Weekday

	// Criteria overrides the eligibility rules (defaults to DefaultCriteria)
	Criteria []Criterion

	// Seed drives the roster shuffle and tie-breaks
	Seed uint64
}

// AllocationOutcome is the result of a run
type AllocationOutcome struct {
	// State is the final run state
	State *RunState

	// Rows holds one consolidated row per date
	Rows []ScheduleRow

	// Gaps are the slots no developer could take
	Gaps []Slot

	// Tallies are the final load counters in roster order
	Tallies []Tally

	// Totals are the slot counts per category
	Totals CategoryTotals

	// ValidationErrors lists any rule violations found after the run
	ValidationErrors []SlotValidationError

	// Success is true when every slot was filled and no rule was violated
	Success bool
}

// NewRand returns the deterministic random source used for a seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Allocate walks the month slot by slot and assigns a developer to each one.
// Input errors are returned before any slot is processed; unfillable slots are reported as gaps.
func Allocate(config AllocationConfig) (*AllocationOutcome, error) {
	state, criteria, err := InitAllocation(config)
	if err != nil {
		return nil, err
	}

	rng := NewRand(config.Seed)
	rng.Shuffle(len(state.Roster), func(i, j int) {
		state.Roster[i], state.Roster[j] = state.Roster[j], state.Roster[i]
	})

	for _, slot := range state.Slots {
		eligible := EligibleDevelopers(state, slot, criteria)
		state.assign(slot, SelectDeveloper(state.Load, eligible, slot.Category, rng))
	}

	return buildOutcome(state, criteria), nil
}

// InitAllocation validates the input and builds the initial run state.
// Slots are expanded and classified here, once, and quotas are fixed from those categories.
func InitAllocation(config AllocationConfig) (*RunState, []Criterion, error) {
	slotSeq, err := ExpandDays(config.Year, config.Month, config.DayLimit)
	if err != nil {
		return nil, nil, err
	}

	if len(config.Developers) == 0 {
		return nil, nil, ErrEmptyRoster
	}

	roster := make([]*Developer, 0, len(config.Developers))
	byName := make(map[string]*Developer, len(config.Developers))
	names := make([]string, 0, len(config.Developers))
	for i := range config.Developers {
		dev := config.Developers[i]
		if dev.Name == "" {
			return nil, nil, fmt.Errorf("developer at position %d has no name", i)
		}
		if _, exists := byName[dev.Name]; exists {
			return nil, nil, fmt.Errorf("%w: %s", ErrDuplicateDeveloper, dev.Name)
		}
		dev.index()
		roster = append(roster, &dev)
		byName[dev.Name] = &dev
		names = append(names, dev.Name)
	}

	classifier := NewClassifier(config.Holidays, config.SpecialWeekdays...)
	var slots []Slot
	for slot := range slotSeq {
		slot.Category = classifier.Classify(slot)
		slots = append(slots, slot)
	}

	totals := CountCategories(slots)
	quotas, err := PlanQuotas(totals.Night, totals.Special, len(roster))
	if err != nil {
		return nil, nil, err
	}

	criteria := config.Criteria
	if criteria == nil {
		criteria = DefaultCriteria()
	}

	state := &RunState{
		Slots:       slots,
		Assignments: make([]Assignment, 0, len(slots)),
		Roster:      roster,
		Load:        NewLoadTracker(names),
		Quotas:      quotas,
		byName:      byName,
	}

	return state, criteria, nil
}

// buildOutcome creates the final report for a run
func buildOutcome(state *RunState, criteria []Criterion) *AllocationOutcome {
	outcome := &AllocationOutcome{
		State:   state,
		Rows:    ConsolidateDays(state.Assignments),
		Gaps:    []Slot{},
		Tallies: state.Load.Tallies(),
		Totals:  CountCategories(state.Slots),
	}

	for _, a := range state.Assignments {
		if a.IsGap() {
			outcome.Gaps = append(outcome.Gaps, a.Slot)
		}
	}

	outcome.ValidationErrors = ValidateRunState(state, criteria)
	outcome.Success = len(outcome.Gaps) == 0 && len(outcome.ValidationErrors) == 0

	return outcome
}

// AssigneeSequence returns the developer for every slot in order ("" for gaps)
func (o *AllocationOutcome) AssigneeSequence() []string {
	seq := make([]string, len(o.State.Assignments))
	for i, a := range o.State.Assignments {
		seq[i] = a.Developer
	}
	return seq
}

// Tally returns the final counters for a developer
func (o *AllocationOutcome) Tally(name string) (Tally, bool) {
	idx := slices.IndexFunc(o.Tallies, func(t Tally) bool { return t.Developer == name })
	if idx < 0 {
		return Tally{}, false
	}
	return o.Tallies[idx], true
}
