package allocator

// ValidateRunState validates the finished run against all provided criteria.
// An empty slice indicates the run respects every rule.
func ValidateRunState(state *RunState, criteria []Criterion) []SlotValidationError {
	var errors []SlotValidationError
	for _, criterion := range criteria {
		errors = append(errors, criterion.ValidateRunState(state)...)
	}
	return errors
}
