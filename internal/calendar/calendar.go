package calendar

import (
	"errors"
	"time"
)

var (
	// ErrUnrepresentableDate is returned when calendar arithmetic leaves the supported year range
	ErrUnrepresentableDate = errors.New("date is not representable in calendar")

	// ErrInvalidFirstWeekday is returned for a first weekday outside 1..7
	ErrInvalidFirstWeekday = errors.New("first weekday must be between 1 (Sunday) and 7 (Saturday)")
)

// Components holds the calendar fields of a single day
type Components struct {
	Year    int
	Month   int // 1..12
	Day     int
	Weekday int // 1 = Sunday .. 7 = Saturday
}

// Calendar describes the calendar system used to lay out a heatmap.
// Every date computation in the heatmap engine goes through it.
type Calendar interface {
	// FirstWeekday returns the weekday that starts a week (1 = Sunday)
	FirstWeekday() int

	// Location returns the time zone days are computed in
	Location() *time.Location

	// StartOfDay returns midnight of the day containing t
	StartOfDay(t time.Time) time.Time

	// AddDays adds n calendar days to t
	AddDays(t time.Time, n int) time.Time

	// AddMonths adds n calendar months to t, clamping the day to the target month length
	AddMonths(t time.Time, n int) (time.Time, error)

	// Date builds a day from possibly overflowing components (day 0 is the last day of the previous month)
	Date(year, month, day int) (time.Time, error)

	// Components extracts year, month, day and weekday of t
	Components(t time.Time) Components

	// VeryShortWeekdaySymbols returns one-letter weekday names, Sunday first
	VeryShortWeekdaySymbols() [7]string

	// ShortMonthSymbol returns the abbreviated name of month (1..12)
	ShortMonthSymbol(month int) string
}

// WeekdayNumber converts time.Weekday to the 1..7 Sunday-first numbering
func WeekdayNumber(w time.Weekday) int {
	return int(w) + 1
}

// PrecedingWeekday returns the weekday immediately before weekday (1..7)
func PrecedingWeekday(weekday int) int {
	return ((weekday-1)+6)%7 + 1
}
