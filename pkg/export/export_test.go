package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jakechorley/oncall-scheduler/pkg/core/allocator"
)

func sampleSchedule() Schedule {
	day := func(d int) time.Time { return time.Date(2026, time.February, d, 0, 0, 0, 0, time.UTC) }
	return Schedule{
		Year:  2026,
		Month: time.February,
		Rows: []allocator.ScheduleRow{
			{Date: day(1), Weekday: time.Sunday, DayShift: "Alice", NightShift: "Bob"},
			{Date: day(2), Weekday: time.Monday, DayShift: "Bob", NightShift: ""},
		},
		Tallies: []allocator.Tally{
			{Developer: "Alice", LoadCounters: allocator.LoadCounters{Day: 1}},
			{Developer: "Bob", LoadCounters: allocator.LoadCounters{Night: 1, Day: 1}},
		},
	}
}

func TestWriteScheduleCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteScheduleCSV(&buf, sampleSchedule()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"Day of Month,First Assignment,Second Assignment,Day of Week",
		"Feb,,,",
		"1,Bob,Alice,Sunday",
		"2,,Bob,Monday",
	}, lines)
}

func TestCells_GapHandling(t *testing.T) {
	row := sampleSchedule().Rows[1]

	assert.Equal(t, []string{"2", GapLabel, "Bob", "Monday"}, Cells(row))
	assert.Equal(t, []string{"2", "", "Bob", "Monday"}, TemplateCells(row))
}

func TestTitle_Abbreviated(t *testing.T) {
	for month, want := range map[time.Month]string{
		time.January:   "Jan",
		time.September: "Sep",
		time.December:  "Dec",
	} {
		assert.Equal(t, want, Schedule{Year: 2026, Month: month}.Title())
	}
}

func TestWriteSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummaryCSV(&buf, sampleSchedule()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"Developer,Special Shifts,Night Shifts,Day Shifts",
		"Alice,0,0,1",
		"Bob,0,1,1",
	}, lines)
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")

	files, err := WriteAll(dir, sampleSchedule(), Palette{"Alice": "#ffb3ba"})
	require.NoError(t, err)

	for _, path := range []string{files.Schedule, files.Summary, files.Workbook} {
		_, err := os.Stat(path)
		assert.NoError(t, err, path)
	}
	assert.Equal(t, filepath.Join(dir, ScheduleCSVName), files.Schedule)
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.xlsx")
	require.NoError(t, WriteWorkbook(path, sampleSchedule(), Palette{"Alice": "#FFB3BA"}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue(workbookSheet, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Feb", cell("A1"))
	assert.Equal(t, "Night Shift", cell("B2"))
	assert.Equal(t, "1", cell("A3"))
	assert.Equal(t, "Bob", cell("B3"))
	assert.Equal(t, "Alice", cell("C3"))
	assert.Equal(t, "Sunday", cell("D3"))
	assert.Equal(t, "UNASSIGNED", cell("B4"))

	titleStyle, err := f.GetCellStyle(workbookSheet, "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(titleStyle)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)

	aliceStyle, err := f.GetCellStyle(workbookSheet, "C3")
	require.NoError(t, err)
	gapStyle, err := f.GetCellStyle(workbookSheet, "B4")
	require.NoError(t, err)
	assert.NotEqual(t, aliceStyle, gapStyle)
}

func TestPalette_ColorFor(t *testing.T) {
	p := Palette{"Alice": "#ffb3ba"}

	assert.Equal(t, "#FFB3BA", p.ColorFor("Alice"))
	assert.Equal(t, "", p.ColorFor(""))

	fallback := p.ColorFor("Bob")
	assert.Contains(t, defaultPalette, fallback)
	assert.Equal(t, fallback, p.ColorFor("Bob"))
}

func TestParseHex(t *testing.T) {
	rgb, err := ParseHex("#FF8000")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, rgb.Red, 0.001)
	assert.InDelta(t, 0.502, rgb.Green, 0.001)
	assert.InDelta(t, 0.0, rgb.Blue, 0.001)

	_, err = ParseHex("#FFF")
	assert.Error(t, err)

	_, err = ParseHex("#GGGGGG")
	assert.Error(t, err)
}
