package export

import (
	"strconv"
	"time"

	"github.com/jakechorley/oncall-scheduler/pkg/core/allocator"
)

// GapLabel is written in place of a developer for unfilled slots
const GapLabel = "UNASSIGNED"

// ScheduleHeader is the column order of the workbook, sheet and terminal outputs
var ScheduleHeader = []string{"Day of Month", "Night Shift", "Day Shift", "Day of Week"}

// TemplateHeader names the same columns the way the shift_schedule.csv template does
var TemplateHeader = []string{"Day of Month", "First Assignment", "Second Assignment", "Day of Week"}

// SummaryHeader is the column order of the tally output
var SummaryHeader = []string{"Developer", "Special Shifts", "Night Shifts", "Day Shifts"}

// Schedule is a finished month ready to be written out
type Schedule struct {
	Year    int
	Month   time.Month
	Rows    []allocator.ScheduleRow
	Tallies []allocator.Tally
}

// Title returns the abbreviated month name ("Feb") used as the first line of every output
func (s Schedule) Title() string {
	return s.Month.String()[:3]
}

// Cells returns one row of cells in ScheduleHeader order
func Cells(row allocator.ScheduleRow) []string {
	return []string{
		strconv.Itoa(row.DayOfMonth()),
		assignee(row.NightShift),
		assignee(row.DayShift),
		row.Weekday.String(),
	}
}

// TemplateCells is Cells with unfilled slots left blank
func TemplateCells(row allocator.ScheduleRow) []string {
	return []string{
		strconv.Itoa(row.DayOfMonth()),
		row.NightShift,
		row.DayShift,
		row.Weekday.String(),
	}
}

// SummaryCells returns one tally in SummaryHeader order
func SummaryCells(t allocator.Tally) []string {
	return []string{
		t.Developer,
		strconv.Itoa(t.Special),
		strconv.Itoa(t.Night),
		strconv.Itoa(t.Day),
	}
}

func assignee(name string) string {
	if name == "" {
		return GapLabel
	}
	return name
}
