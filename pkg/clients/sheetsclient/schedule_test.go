package sheetsclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/oncall-scheduler/pkg/core/allocator"
	"github.com/jakechorley/oncall-scheduler/pkg/export"
)

func testSchedule() export.Schedule {
	return export.Schedule{
		Year:  2026,
		Month: time.March,
		Rows: []allocator.ScheduleRow{
			{Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Weekday: time.Sunday, DayShift: "Alice", NightShift: "Bob"},
			{Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Weekday: time.Monday, DayShift: "", NightShift: "Alice"},
		},
	}
}

func TestWorksheetTitle(t *testing.T) {
	assert.Equal(t, "On call schedule 2026", WorksheetTitle("On call schedule", 2026))
}

func TestNextBlockRow(t *testing.T) {
	assert.Equal(t, int64(1), NextBlockRow(0))
	// 34 used rows: month, header, 31 days, plus one row of earlier content
	assert.Equal(t, int64(37), NextBlockRow(34))
}

func TestScheduleValues(t *testing.T) {
	values := ScheduleValues(testSchedule())

	require.Len(t, values, 4)
	assert.Equal(t, []interface{}{"Mar"}, values[0])
	assert.Equal(t, []interface{}{"Day of Month", "Night Shift", "Day Shift", "Day of Week"}, values[1])
	assert.Equal(t, []interface{}{"1", "Bob", "Alice", "Sunday"}, values[2])
	assert.Equal(t, []interface{}{"2", "Alice", export.GapLabel, "Monday"}, values[3])
}

func TestFormatRequests(t *testing.T) {
	palette := export.Palette{"Alice": "#FF0000", "Bob": "#0000FF"}

	requests, err := FormatRequests(0, 5, testSchedule(), palette)
	require.NoError(t, err)

	// title + header + 3 coloured cells (gap is left unformatted)
	require.Len(t, requests, 5)

	title := requests[0].RepeatCell
	assert.Equal(t, int64(4), title.Range.StartRowIndex)
	assert.Equal(t, int64(5), title.Range.EndRowIndex)
	assert.True(t, title.Cell.UserEnteredFormat.TextFormat.Bold)
	assert.Contains(t, title.Range.ForceSendFields, "SheetId")

	header := requests[1].RepeatCell
	assert.Equal(t, int64(5), header.Range.StartRowIndex)
	assert.Equal(t, int64(4), header.Range.EndColumnIndex)

	bob := requests[2].RepeatCell
	assert.Equal(t, int64(6), bob.Range.StartRowIndex)
	assert.Equal(t, int64(1), bob.Range.StartColumnIndex)
	assert.InDelta(t, 1.0, bob.Cell.UserEnteredFormat.BackgroundColor.Blue, 0.001)
	assert.Equal(t, "CENTER", bob.Cell.UserEnteredFormat.HorizontalAlignment)

	alice := requests[3].RepeatCell
	assert.Equal(t, int64(2), alice.Range.StartColumnIndex)
	assert.InDelta(t, 1.0, alice.Cell.UserEnteredFormat.BackgroundColor.Red, 0.001)

	aliceNight := requests[4].RepeatCell
	assert.Equal(t, int64(7), aliceNight.Range.StartRowIndex)
	assert.Equal(t, int64(1), aliceNight.Range.StartColumnIndex)
}

func TestFormatRequests_InvalidColor(t *testing.T) {
	_, err := FormatRequests(1, 1, testSchedule(), export.Palette{"Alice": "#12"})
	assert.Error(t, err)
}
