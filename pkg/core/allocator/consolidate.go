package allocator

// ConsolidateDays folds per-slot assignments into one row per date, in date order
func ConsolidateDays(assignments []Assignment) []ScheduleRow {
	var rows []ScheduleRow
	for _, a := range assignments {
		if len(rows) == 0 || !rows[len(rows)-1].Date.Equal(a.Slot.Date) {
			rows = append(rows, ScheduleRow{Date: a.Slot.Date, Weekday: a.Slot.Weekday})
		}
		row := &rows[len(rows)-1]
		switch a.Slot.Kind {
		case ShiftDay:
			row.DayShift = a.Developer
		case ShiftNight:
			row.NightShift = a.Developer
		}
	}
	return rows
}
