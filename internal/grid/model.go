package grid

import "time"

// DayCell is one day of the grid. Padding days (InRange false) complete a
// week column and must never be treated as data-bearing.
type DayCell struct {
	Date    time.Time
	Weekday int // 1 = Sunday .. 7 = Saturday
	InRange bool
}

// WeekColumn holds 1..7 consecutive days in ascending order
type WeekColumn struct {
	Days []DayCell
}

// MonthLabel marks the column where an in-range month is first seen
type MonthLabel struct {
	Name      string
	WeekIndex int
}

// Model is the week-column layout of a resolved range. It is a pure value
// derived from a range and a calendar and is never mutated after Build.
type Model struct {
	Weeks        []WeekColumn
	MonthLabels  []MonthLabel
	StartDate    time.Time
	EndDate      time.Time
	FirstWeekday int

	// WeekdaySymbols are Sunday first; use OrderedWeekdaySymbols for display order
	WeekdaySymbols [7]string
}

// Row returns the display row (0..6) of a weekday under the model's first weekday
func (m *Model) Row(weekday int) int {
	return (weekday - m.FirstWeekday + 7) % 7
}

// OrderedWeekdaySymbols returns the weekday symbols re-indexed so row 0 comes first
func (m *Model) OrderedWeekdaySymbols() [7]string {
	var out [7]string
	for row := 0; row < 7; row++ {
		out[row] = m.WeekdaySymbols[(m.FirstWeekday-1+row)%7]
	}
	return out
}

// InRangeDays returns every data-bearing cell in chronological order
func (m *Model) InRangeDays() []DayCell {
	var days []DayCell
	for _, week := range m.Weeks {
		for _, day := range week.Days {
			if day.InRange {
				days = append(days, day)
			}
		}
	}
	return days
}

// CellAt returns the cell stored at a column and position within that column
func (m *Model) CellAt(column, index int) (DayCell, bool) {
	if column < 0 || column >= len(m.Weeks) {
		return DayCell{}, false
	}
	days := m.Weeks[column].Days
	if index < 0 || index >= len(days) {
		return DayCell{}, false
	}
	return days[index], true
}
