package allocator

import "fmt"

// RestrictionsCriterion rejects slots that appear in a developer's restriction list
type RestrictionsCriterion struct{}

func NewRestrictionsCriterion() *RestrictionsCriterion {
	return &RestrictionsCriterion{}
}

func (c *RestrictionsCriterion) Name() string {
	return "Restrictions"
}

func (c *RestrictionsCriterion) IsSlotValid(state *RunState, dev *Developer, slot Slot) bool {
	return !dev.IsRestricted(slot.Key())
}

func (c *RestrictionsCriterion) ValidateRunState(state *RunState) []SlotValidationError {
	var errs []SlotValidationError
	for _, a := range state.Assignments {
		if a.IsGap() {
			continue
		}
		dev := state.Developer(a.Developer)
		if dev == nil || !dev.IsRestricted(a.Slot.Key()) {
			continue
		}
		errs = append(errs, SlotValidationError{
			SlotIndex:     a.Slot.Index,
			SlotLabel:     a.Slot.Label(),
			CriterionName: c.Name(),
			Description:   fmt.Sprintf("%s is assigned a restricted slot", a.Developer),
		})
	}
	return errs
}
