package dateutil

import (
	"fmt"
	"time"
)

// DayLayout is the canonical day format used in data files and state
const DayLayout = "2006-01-02"

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FormatDay formats date as YYYY-MM-DD
func FormatDay(date time.Time) string {
	return date.Format(DayLayout)
}

// ParseDate parses date string in various formats in the given location.
// A nil location means UTC.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	formats := []string{
		DayLayout,
		"02.01.2006",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02T15:04:05-0700",
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, dateStr, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", dateStr)
}

// Today returns today's date (start of day) in the given location
func Today(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return StartOfDay(time.Now().In(loc))
}
