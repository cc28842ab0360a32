package grid

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/calendar-heatmap/internal/calendar"
	"github.com/username/calendar-heatmap/internal/daterange"
)

// maxWeekdayWalk bounds the search for a week boundary: weekdays repeat every 7 days
const maxWeekdayWalk = 6

// ErrWeekdayWalk is returned when a week boundary is not found within 6 days,
// which only happens with a Calendar whose weekdays do not cycle
var ErrWeekdayWalk = errors.New("week boundary not found within 6 days")

// Build lays out r as week columns starting on cal.FirstWeekday().
// The range must not be inverted.
func Build(r daterange.Range, cal calendar.Calendar) (*Model, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	firstWeekday := cal.FirstWeekday()
	lastWeekday := calendar.PrecedingWeekday(firstWeekday)

	gridStart, err := walkToWeekday(r.Start, firstWeekday, -1, cal)
	if err != nil {
		return nil, fmt.Errorf("failed to find grid start: %w", err)
	}
	gridEnd, err := walkToWeekday(r.End, lastWeekday, 1, cal)
	if err != nil {
		return nil, fmt.Errorf("failed to find grid end: %w", err)
	}

	model := &Model{
		StartDate:      r.Start,
		EndDate:        r.End,
		FirstWeekday:   firstWeekday,
		WeekdaySymbols: cal.VeryShortWeekdaySymbols(),
	}

	lastMonthSeen := -1
	current := gridStart
	for !current.After(gridEnd) {
		column := len(model.Weeks)
		days := make([]DayCell, 0, 7)

		for i := 0; i < 7 && !current.After(gridEnd); i++ {
			c := cal.Components(current)
			inRange := r.Contains(current)
			days = append(days, DayCell{Date: current, Weekday: c.Weekday, InRange: inRange})

			if inRange && c.Month != lastMonthSeen {
				model.MonthLabels = append(model.MonthLabels, MonthLabel{
					Name:      cal.ShortMonthSymbol(c.Month),
					WeekIndex: column,
				})
				lastMonthSeen = c.Month
			}

			current = cal.AddDays(current, 1)
		}

		model.Weeks = append(model.Weeks, WeekColumn{Days: days})
	}

	return model, nil
}

// BuildFromSpec resolves spec against ref and lays it out
func BuildFromSpec(spec daterange.Spec, cal calendar.Calendar, ref time.Time) (*Model, error) {
	r, err := daterange.Resolve(spec, cal, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", spec, err)
	}
	return Build(r, cal)
}

// walkToWeekday steps one day at a time in direction dir until the weekday matches
func walkToWeekday(from time.Time, weekday, dir int, cal calendar.Calendar) (time.Time, error) {
	day := from
	for steps := 0; steps <= maxWeekdayWalk; steps++ {
		if cal.Components(day).Weekday == weekday {
			return day, nil
		}
		day = cal.AddDays(day, dir)
	}
	return time.Time{}, fmt.Errorf("%w: looking for weekday %d from %s", ErrWeekdayWalk, weekday, from.Format("2006-01-02"))
}
