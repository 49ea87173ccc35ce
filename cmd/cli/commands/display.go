package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jakechorley/oncall-scheduler/pkg/core/allocator"
	"github.com/jakechorley/oncall-scheduler/pkg/export"
)

var (
	styleHeader = lipgloss.NewStyle().Foreground(lipgloss.Color("#fe8019")).Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
	styleGood   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8ec07c"))
	styleWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("#fabd2f"))
	styleBad    = lipgloss.NewStyle().Foreground(lipgloss.Color("#fb4934"))
)

const colGap = 2

// renderTable aligns rows under a bold header, measuring visible width so styled cells line up
func renderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(style(cell))
			if i < len(headers)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return styleHeader.Render(s) })
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	writeRow(sep, func(s string) string { return styleDim.Render(s) })
	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}

	return b.String()
}

// renderSchedule prints one line per day with gaps highlighted
func renderSchedule(s export.Schedule) string {
	rows := make([][]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		cells := export.Cells(row)
		for i := 1; i <= 2; i++ {
			if cells[i] == export.GapLabel {
				cells[i] = styleBad.Render(cells[i])
			}
		}
		rows = append(rows, cells)
	}
	return fmt.Sprintf("%s\n\n%s", styleHeader.Render(s.Title()), renderTable(export.ScheduleHeader, rows))
}

// renderTallies prints each developer's final load
func renderTallies(tallies []allocator.Tally) string {
	rows := make([][]string, 0, len(tallies))
	for _, t := range tallies {
		rows = append(rows, export.SummaryCells(t))
	}
	return renderTable(export.SummaryHeader, rows)
}

// statusMark renders a coloured tick or cross
func statusMark(ok bool) string {
	if ok {
		return styleGood.Render("✓")
	}
	return styleBad.Render("✗")
}
