package constraints

import (
	"maps"
	"slices"

	"github.com/jakechorley/oncall-scheduler/pkg/core/allocator"
	"github.com/jakechorley/oncall-scheduler/pkg/core/model"
)

// DeveloperNames returns the developers in the document in name order
func DeveloperNames(doc *model.Constraints) []string {
	return slices.Sorted(maps.Keys(doc.Developers))
}

// Roster converts the document into the allocator's roster
func Roster(doc *model.Constraints) ([]allocator.Developer, error) {
	names := DeveloperNames(doc)
	restrictions := make(map[string][]string, len(names))
	for _, name := range names {
		restrictions[name] = doc.Developers[name].Restrictions
	}
	return allocator.ParseRoster(names, restrictions)
}

// Summaries lists each developer with their restriction count
func Summaries(doc *model.Constraints) []model.DeveloperSummary {
	names := DeveloperNames(doc)
	out := make([]model.DeveloperSummary, 0, len(names))
	for _, name := range names {
		dev := doc.Developers[name]
		out = append(out, model.DeveloperSummary{
			Name:             name,
			Email:            dev.Email,
			RestrictionCount: len(dev.Restrictions),
		})
	}
	return out
}
