package allocator

import "fmt"

// QuotaCriterion caps how many slots of one category a developer may take
type QuotaCriterion struct {
	category Category
}

// NewQuotaCriterion creates a quota rule for a capped category (special or night)
func NewQuotaCriterion(category Category) *QuotaCriterion {
	return &QuotaCriterion{category: category}
}

func (c *QuotaCriterion) Name() string {
	return fmt.Sprintf("Quota(%s)", c.category)
}

func (c *QuotaCriterion) IsSlotValid(state *RunState, dev *Developer, slot Slot) bool {
	if slot.Category != c.category {
		return true
	}
	ceiling, capped := state.Quotas.Ceiling(c.category)
	if !capped {
		return true
	}
	return state.Load.Counters(dev.Name).Get(c.category) < ceiling
}

func (c *QuotaCriterion) ValidateRunState(state *RunState) []SlotValidationError {
	ceiling, capped := state.Quotas.Ceiling(c.category)
	if !capped {
		return nil
	}

	var errs []SlotValidationError
	for _, tally := range state.Load.Tallies() {
		if count := tally.Get(c.category); count > ceiling {
			errs = append(errs, SlotValidationError{
				SlotIndex:     -1,
				CriterionName: c.Name(),
				Description:   fmt.Sprintf("%s has %d %s shifts (quota %d)", tally.Developer, count, c.category, ceiling),
			})
		}
	}
	return errs
}
