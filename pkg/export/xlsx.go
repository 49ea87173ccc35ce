package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const workbookSheet = "Schedule"

// WriteWorkbook saves the schedule as an xlsx file.
// Row 1 holds the month in bold, row 2 the header and each developer cell is filled with their colour.
func WriteWorkbook(path string, s Schedule, palette Palette) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", workbookSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return fmt.Errorf("failed to create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetCellValue(workbookSheet, "A1", s.Title()); err != nil {
		return err
	}
	if err := f.SetCellStyle(workbookSheet, "A1", "A1", titleStyle); err != nil {
		return err
	}

	for col, h := range ScheduleHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(workbookSheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(workbookSheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	// Cell styles cached by colour
	styles := map[string]int{}
	styleFor := func(color string) (int, error) {
		if id, ok := styles[color]; ok {
			return id, nil
		}
		style := &excelize.Style{Alignment: &excelize.Alignment{Horizontal: "center"}}
		if color != "" {
			style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
		}
		id, err := f.NewStyle(style)
		if err != nil {
			return 0, fmt.Errorf("failed to create cell style: %w", err)
		}
		styles[color] = id
		return id, nil
	}

	for i, row := range s.Rows {
		r := i + 3
		if err := f.SetCellValue(workbookSheet, fmt.Sprintf("A%d", r), row.DayOfMonth()); err != nil {
			return err
		}
		if err := f.SetCellValue(workbookSheet, fmt.Sprintf("D%d", r), row.Weekday.String()); err != nil {
			return err
		}

		for _, c := range []struct{ col, name string }{{"B", row.NightShift}, {"C", row.DayShift}} {
			name := c.name
			cell := fmt.Sprintf("%s%d", c.col, r)
			if err := f.SetCellValue(workbookSheet, cell, assignee(name)); err != nil {
				return err
			}
			style, err := styleFor(palette.ColorFor(name))
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(workbookSheet, cell, cell, style); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(workbookSheet, "A", "D", 15); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
