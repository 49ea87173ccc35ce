package sheetsclient

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/jakechorley/oncall-scheduler/pkg/export"
)

// blankRowsBetweenMonths separates an appended month from the one above it
const blankRowsBetweenMonths = 2

// WorksheetTitle returns the yearly tab name, e.g. "On call schedule 2026"
func WorksheetTitle(prefix string, year int) string {
	return fmt.Sprintf("%s %d", prefix, year)
}

// AppendSchedule writes a month below any existing content of the worksheet,
// creating the worksheet first if needed. Returns the 1-based row of the month title.
func (c *Client) AppendSchedule(
	ctx context.Context,
	spreadsheetID string,
	worksheet string,
	schedule export.Schedule,
	palette export.Palette,
) (int64, error) {
	sheetID, found, err := c.FindSheet(ctx, spreadsheetID, worksheet)
	if err != nil {
		return 0, err
	}
	if !found {
		sheetID, err = c.CreateSheet(ctx, spreadsheetID, worksheet)
		if err != nil {
			return 0, err
		}
	}

	existing, err := c.GetValues(ctx, spreadsheetID, fmt.Sprintf("'%s'!A:D", worksheet))
	if err != nil {
		return 0, err
	}
	startRow := NextBlockRow(len(existing))

	values := ScheduleValues(schedule)
	if err := c.UpdateValues(ctx, spreadsheetID, fmt.Sprintf("'%s'!A%d", worksheet, startRow), values); err != nil {
		return 0, fmt.Errorf("failed to write schedule: %w", err)
	}

	requests, err := FormatRequests(sheetID, startRow, schedule, palette)
	if err != nil {
		return 0, err
	}
	if _, err := c.BatchUpdate(ctx, spreadsheetID, requests); err != nil {
		return 0, fmt.Errorf("failed to format schedule: %w", err)
	}

	return startRow, nil
}

// NextBlockRow returns where the next month starts given the number of used rows
func NextBlockRow(usedRows int) int64 {
	if usedRows == 0 {
		return 1
	}
	return int64(usedRows) + 1 + blankRowsBetweenMonths
}

// ScheduleValues lays out the month title, the header and one row per day
func ScheduleValues(schedule export.Schedule) [][]interface{} {
	values := make([][]interface{}, 0, len(schedule.Rows)+2)
	values = append(values, []interface{}{schedule.Title()})

	header := make([]interface{}, len(export.ScheduleHeader))
	for i, h := range export.ScheduleHeader {
		header[i] = h
	}
	values = append(values, header)

	for _, row := range schedule.Rows {
		cells := export.Cells(row)
		sheetRow := make([]interface{}, len(cells))
		for i, cell := range cells {
			sheetRow[i] = cell
		}
		values = append(values, sheetRow)
	}
	return values
}

// FormatRequests bolds the title and header and colours each assigned developer cell.
// startRow is 1-based; grid ranges are 0-based and end-exclusive.
func FormatRequests(sheetID, startRow int64, schedule export.Schedule, palette export.Palette) ([]*sheets.Request, error) {
	titleRow := startRow - 1
	requests := []*sheets.Request{
		repeatCell(gridRange(sheetID, titleRow, 0, 1), &sheets.CellFormat{
			TextFormat: &sheets.TextFormat{Bold: true, FontSize: 12},
		}, "userEnteredFormat.textFormat"),
		repeatCell(gridRange(sheetID, titleRow+1, 0, int64(len(export.ScheduleHeader))), &sheets.CellFormat{
			TextFormat:          &sheets.TextFormat{Bold: true},
			HorizontalAlignment: "CENTER",
		}, "userEnteredFormat(textFormat,horizontalAlignment)"),
	}

	for i, row := range schedule.Rows {
		r := titleRow + 2 + int64(i)
		for _, c := range []struct {
			col  int64
			name string
		}{{1, row.NightShift}, {2, row.DayShift}} {
			col := c.col
			hex := palette.ColorFor(c.name)
			if hex == "" {
				continue
			}
			rgb, err := export.ParseHex(hex)
			if err != nil {
				return nil, err
			}
			requests = append(requests, repeatCell(gridRange(sheetID, r, col, col+1), &sheets.CellFormat{
				BackgroundColor:     &sheets.Color{Red: rgb.Red, Green: rgb.Green, Blue: rgb.Blue},
				HorizontalAlignment: "CENTER",
			}, "userEnteredFormat(backgroundColor,horizontalAlignment)"))
		}
	}

	return requests, nil
}

func repeatCell(rng *sheets.GridRange, format *sheets.CellFormat, fields string) *sheets.Request {
	return &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range:  rng,
			Cell:   &sheets.CellData{UserEnteredFormat: format},
			Fields: fields,
		},
	}
}

// gridRange covers one row. Zero indexes must be sent explicitly or the API treats them as unbounded.
func gridRange(sheetID, row, startCol, endCol int64) *sheets.GridRange {
	return &sheets.GridRange{
		SheetId:          sheetID,
		StartRowIndex:    row,
		EndRowIndex:      row + 1,
		StartColumnIndex: startCol,
		EndColumnIndex:   endCol,
		ForceSendFields:  []string{"SheetId", "StartRowIndex", "StartColumnIndex"},
	}
}
