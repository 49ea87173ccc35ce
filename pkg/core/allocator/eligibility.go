package allocator

// IsEligible reports whether every criterion accepts the developer for the slot
func IsEligible(state *RunState, dev *Developer, slot Slot, criteria []Criterion) bool {
	for _, criterion := range criteria {
		if !criterion.IsSlotValid(state, dev, slot) {
			return false
		}
	}
	return true
}

// EligibleDevelopers filters the roster, preserving evaluation order
func EligibleDevelopers(state *RunState, slot Slot, criteria []Criterion) []*Developer {
	eligible := make([]*Developer, 0, len(state.Roster))
	for _, dev := range state.Roster {
		if IsEligible(state, dev, slot, criteria) {
			eligible = append(eligible, dev)
		}
	}
	return eligible
}
