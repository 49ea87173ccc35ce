package allocator

// RunState is the mutable state of a single allocation run
type RunState struct {
	// Slots in sequence order, each classified exactly once
	Slots []Slot

	// Assignments resolved so far, aligned with Slots
	Assignments []Assignment

	// Roster in evaluation order (shuffled once at the start of the run)
	Roster []*Developer

	// Load counts shifts taken per developer and category
	Load *LoadTracker

	// Quotas are fixed before the first assignment
	Quotas Quotas

	// LastAssigned is the developer who took the most recent non-gap slot ("" before the first)
	LastAssigned string

	byName map[string]*Developer
}

// Developer looks up a roster member by name
func (s *RunState) Developer(name string) *Developer {
	return s.byName[name]
}

// assign records the resolution of a slot and updates the load and adjacency state
func (s *RunState) assign(slot Slot, dev *Developer) {
	if dev == nil {
		s.Assignments = append(s.Assignments, Assignment{Slot: slot})
		return
	}
	s.Load.Record(dev.Name, slot.Category)
	s.LastAssigned = dev.Name
	s.Assignments = append(s.Assignments, Assignment{Slot: slot, Developer: dev.Name})
}
