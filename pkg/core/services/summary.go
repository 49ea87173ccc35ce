package services

import (
	"fmt"
	"strings"

	"github.com/jakechorley/oncall-scheduler/pkg/core/allocator"
	"github.com/jakechorley/oncall-scheduler/pkg/export"
)

// BuildSummaryEmail renders the subject and plain-text body announcing a run
func BuildSummaryEmail(result *GenerateResult) (string, string) {
	s := result.Schedule
	subject := fmt.Sprintf("On-call schedule for %s %d", s.Month, s.Year)

	var b strings.Builder
	fmt.Fprintf(&b, "The on-call schedule for %s %d is ready.\n\n", s.Month, s.Year)

	if len(result.Outcome.Gaps) == 0 {
		b.WriteString("Every slot is covered.\n")
	} else {
		fmt.Fprintf(&b, "%d slot(s) need manual cover:\n", len(result.Outcome.Gaps))
		for _, gap := range result.Outcome.Gaps {
			fmt.Fprintf(&b, "  - %s %s (%s)\n", gap.Weekday, gap.Label(), gap.Category)
		}
	}

	b.WriteString("\nShifts per developer (special / night / day):\n")
	writeTallies(&b, s.Tallies)

	fmt.Fprintf(&b, "\nRun %s, seed %d.\n", result.RunID, result.Seed)
	return subject, b.String()
}

func writeTallies(b *strings.Builder, tallies []allocator.Tally) {
	width := 0
	for _, t := range tallies {
		width = max(width, len(t.Developer))
	}
	for _, t := range tallies {
		cells := export.SummaryCells(t)
		fmt.Fprintf(b, "  %-*s  %s / %s / %s\n", width, cells[0], cells[1], cells[2], cells[3])
	}
}
