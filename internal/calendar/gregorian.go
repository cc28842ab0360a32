package calendar

import (
	"fmt"
	"time"

	"github.com/username/calendar-heatmap/pkg/dateutil"
)

const (
	minYear = 1
	maxYear = 9999
)

var (
	defaultWeekdaySymbols = [7]string{"S", "M", "T", "W", "T", "F", "S"}
	defaultMonthSymbols   = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
)

// Gregorian implements Calendar for the proleptic Gregorian calendar in a fixed location
type Gregorian struct {
	loc            *time.Location
	firstWeekday   int
	weekdaySymbols [7]string
	monthSymbols   [12]string
}

// Option configures a Gregorian calendar
type Option func(*Gregorian) error

// WithFirstWeekday sets the weekday that starts a week (1 = Sunday .. 7 = Saturday)
func WithFirstWeekday(weekday int) Option {
	return func(g *Gregorian) error {
		if weekday < 1 || weekday > 7 {
			return fmt.Errorf("%w: got %d", ErrInvalidFirstWeekday, weekday)
		}
		g.firstWeekday = weekday
		return nil
	}
}

// WithWeekdaySymbols overrides the very short weekday names (Sunday first)
func WithWeekdaySymbols(symbols [7]string) Option {
	return func(g *Gregorian) error {
		g.weekdaySymbols = symbols
		return nil
	}
}

// WithMonthSymbols overrides the abbreviated month names (January first)
func WithMonthSymbols(symbols [12]string) Option {
	return func(g *Gregorian) error {
		g.monthSymbols = symbols
		return nil
	}
}

// NewGregorian creates a Gregorian calendar. A nil location means UTC.
// Weeks start on Sunday unless WithFirstWeekday is given.
func NewGregorian(loc *time.Location, opts ...Option) (*Gregorian, error) {
	if loc == nil {
		loc = time.UTC
	}

	g := &Gregorian{
		loc:            loc,
		firstWeekday:   1,
		weekdaySymbols: defaultWeekdaySymbols,
		monthSymbols:   defaultMonthSymbols,
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// MustGregorian is NewGregorian that panics on error, for tests and fixed setups
func MustGregorian(loc *time.Location, opts ...Option) *Gregorian {
	g, err := NewGregorian(loc, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// FirstWeekday returns the weekday that starts a week
func (g *Gregorian) FirstWeekday() int {
	return g.firstWeekday
}

// Location returns the calendar time zone
func (g *Gregorian) Location() *time.Location {
	return g.loc
}

// StartOfDay returns the first instant of the day containing t in the calendar location
func (g *Gregorian) StartOfDay(t time.Time) time.Time {
	t = t.In(g.loc)
	return g.dayStart(t.Year(), t.Month(), t.Day())
}

// AddDays adds n calendar days. Works on wall-clock dates so DST shifts
// never skip a day; a start of day stays a start of day.
func (g *Gregorian) AddDays(t time.Time, n int) time.Time {
	t = t.In(g.loc)
	if t.Equal(g.dayStart(t.Year(), t.Month(), t.Day())) {
		return g.dayStart(t.Year(), t.Month(), t.Day()+n)
	}
	return time.Date(t.Year(), t.Month(), t.Day()+n, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), g.loc)
}

// dayStart returns the first instant of a (normalized) date. Where a DST
// change skips midnight, time.Date lands on the previous day and the day
// really starts at the transition.
func (g *Gregorian) dayStart(year int, month time.Month, day int) time.Time {
	want := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	t := time.Date(year, month, day, 0, 0, 0, 0, g.loc)
	if t.Year() == want.Year() && t.YearDay() == want.YearDay() {
		return t
	}
	if _, end := t.ZoneBounds(); !end.IsZero() {
		return end
	}
	return t
}

// AddMonths adds n months. A day that does not exist in the target month
// is clamped to its last day (Mar 31 - 1 month = Feb 28).
func (g *Gregorian) AddMonths(t time.Time, n int) (time.Time, error) {
	t = t.In(g.loc)

	total := t.Year()*12 + int(t.Month()) - 1 + n
	year := total / 12
	month := time.Month(total%12 + 1)
	if total < 0 {
		return time.Time{}, fmt.Errorf("%w: adding %d months to %s", ErrUnrepresentableDate, n, t.Format("2006-01-02"))
	}
	if year < minYear || year > maxYear {
		return time.Time{}, fmt.Errorf("%w: adding %d months to %s gives year %d",
			ErrUnrepresentableDate, n, t.Format("2006-01-02"), year)
	}

	day := t.Day()
	if last := dateutil.DaysInMonth(year, month); day > last {
		day = last
	}

	if t.Equal(g.dayStart(t.Year(), t.Month(), t.Day())) {
		return g.dayStart(year, month, day), nil
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), g.loc), nil
}

// Date builds midnight of the given day, normalizing overflowing components
func (g *Gregorian) Date(year, month, day int) (time.Time, error) {
	d := g.dayStart(year, time.Month(month), day)
	if d.Year() < minYear || d.Year() > maxYear {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrUnrepresentableDate, year, month, day)
	}
	return d, nil
}

// Components extracts the calendar fields of t in the calendar location
func (g *Gregorian) Components(t time.Time) Components {
	t = t.In(g.loc)
	return Components{
		Year:    t.Year(),
		Month:   int(t.Month()),
		Day:     t.Day(),
		Weekday: WeekdayNumber(t.Weekday()),
	}
}

// VeryShortWeekdaySymbols returns one-letter weekday names, Sunday first
func (g *Gregorian) VeryShortWeekdaySymbols() [7]string {
	return g.weekdaySymbols
}

// ShortMonthSymbol returns the abbreviated month name, or "" for an invalid month
func (g *Gregorian) ShortMonthSymbol(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return g.monthSymbols[month-1]
}
