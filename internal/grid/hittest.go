package grid

import (
	"time"

	"github.com/username/calendar-heatmap/internal/calendar"
)

// DateAt returns the in-range date displayed at (column, row), where row 0
// is the calendar's first weekday. Padding cells and positions outside the
// grid report false.
func DateAt(column, row int, m *Model, cal calendar.Calendar) (time.Time, bool) {
	if m == nil || column < 0 || column >= len(m.Weeks) || row < 0 || row >= 7 {
		return time.Time{}, false
	}

	targetWeekday := (cal.FirstWeekday()+row-1)%7 + 1

	for _, day := range m.Weeks[column].Days {
		if day.Weekday == targetWeekday {
			if !day.InRange {
				return time.Time{}, false
			}
			return day.Date, true
		}
	}

	return time.Time{}, false
}

// Locate returns the (column, row) at which an in-range date is displayed.
// Dates are compared as calendar days, so any time of day matches.
func Locate(date time.Time, m *Model, cal calendar.Calendar) (column, row int, ok bool) {
	if m == nil {
		return 0, 0, false
	}

	day := cal.StartOfDay(date)
	if day.Before(m.StartDate) || day.After(m.EndDate) {
		return 0, 0, false
	}

	for col, week := range m.Weeks {
		first, last := week.Days[0].Date, week.Days[len(week.Days)-1].Date
		if day.Before(first) || day.After(last) {
			continue
		}
		for _, cell := range week.Days {
			if cell.InRange && cell.Date.Equal(day) {
				return col, (cell.Weekday - cal.FirstWeekday() + 7) % 7, true
			}
		}
	}

	return 0, 0, false
}
