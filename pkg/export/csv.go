package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	ScheduleCSVName = "shift_schedule.csv"
	SummaryCSVName  = "shift_summary.csv"
	ScheduleXLSName = "shift_schedule.xlsx"
)

// WriteScheduleCSV writes the template header, a month line, then one line per day.
// Gaps are left as empty cells.
func WriteScheduleCSV(w io.Writer, s Schedule) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(TemplateHeader); err != nil {
		return fmt.Errorf("failed to write schedule header: %w", err)
	}
	if err := cw.Write([]string{s.Title(), "", "", ""}); err != nil {
		return fmt.Errorf("failed to write month row: %w", err)
	}
	for _, row := range s.Rows {
		if err := cw.Write(TemplateCells(row)); err != nil {
			return fmt.Errorf("failed to write schedule row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSummaryCSV writes one line per developer tally
func WriteSummaryCSV(w io.Writer, s Schedule) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(SummaryHeader); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}
	for _, t := range s.Tallies {
		if err := cw.Write(SummaryCells(t)); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Files lists the paths written by WriteAll
type Files struct {
	Schedule string
	Summary  string
	Workbook string
}

// WriteAll writes the schedule and summary CSVs plus the coloured workbook into dir
func WriteAll(dir string, s Schedule, palette Palette) (Files, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Files{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	files := Files{
		Schedule: filepath.Join(dir, ScheduleCSVName),
		Summary:  filepath.Join(dir, SummaryCSVName),
		Workbook: filepath.Join(dir, ScheduleXLSName),
	}

	if err := writeFile(files.Schedule, func(w io.Writer) error { return WriteScheduleCSV(w, s) }); err != nil {
		return Files{}, err
	}
	if err := writeFile(files.Summary, func(w io.Writer) error { return WriteSummaryCSV(w, s) }); err != nil {
		return Files{}, err
	}
	if err := WriteWorkbook(files.Workbook, s, palette); err != nil {
		return Files{}, err
	}

	return files, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
