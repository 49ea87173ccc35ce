package allocator

import "fmt"

// NoConsecutiveCriterion stops the developer who took the previous resolved slot from taking the next one.
// Gaps do not reset the rule: the comparison is always against the last successful assignment.
type NoConsecutiveCriterion struct{}

func NewNoConsecutiveCriterion() *NoConsecutiveCriterion {
	return &NoConsecutiveCriterion{}
}

func (c *NoConsecutiveCriterion) Name() string {
	return "NoConsecutive"
}

func (c *NoConsecutiveCriterion) IsSlotValid(state *RunState, dev *Developer, slot Slot) bool {
	return state.LastAssigned == "" || state.LastAssigned != dev.Name
}

func (c *NoConsecutiveCriterion) ValidateRunState(state *RunState) []SlotValidationError {
	var errs []SlotValidationError
	previous := ""
	for _, a := range state.Assignments {
		if a.IsGap() {
			continue
		}
		if a.Developer == previous {
			errs = append(errs, SlotValidationError{
				SlotIndex:     a.Slot.Index,
				SlotLabel:     a.Slot.Label(),
				CriterionName: c.Name(),
				Description:   fmt.Sprintf("%s is assigned twice in a row", a.Developer),
			})
		}
		previous = a.Developer
	}
	return errs
}
