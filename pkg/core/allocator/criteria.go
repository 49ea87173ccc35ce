package allocator

// SlotValidationError represents a rule violation found in a finished run
type SlotValidationError struct {
	SlotIndex     int
	SlotLabel     string
	CriterionName string
	Description   string
}

// Criterion is a hard eligibility rule.
// Every criterion must accept a developer for them to be eligible for a slot.
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// IsSlotValid reports whether the developer may take the slot given the current run state
	IsSlotValid(state *RunState, dev *Developer, slot Slot) bool

	// ValidateRunState re-checks the rule against the finished run
	ValidateRunState(state *RunState) []SlotValidationError
}

// DefaultCriteria returns the eligibility rules applied to every slot:
// restrictions, no back-to-back assignment, special quota and night quota.
func DefaultCriteria() []Criterion {
	return []Criterion{
		NewRestrictionsCriterion(),
		NewNoConsecutiveCriterion(),
		NewQuotaCriterion(CategorySpecial),
		NewQuotaCriterion(CategoryNight),
	}
}
