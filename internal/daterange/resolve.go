package daterange

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/calendar-heatmap/internal/calendar"
	"github.com/username/calendar-heatmap/pkg/dateutil"
)

var (
	// ErrInvalidRange is returned for a range whose start is after its end
	ErrInvalidRange = errors.New("invalid range: start is after end")

	// ErrNegativeMonths is returned for LastMonths with n < 0
	ErrNegativeMonths = errors.New("month count must not be negative")
)

// Range is an inclusive span of days, both bounds at start of day
type Range struct {
	Start time.Time
	End   time.Time
}

// Validate reports ErrInvalidRange when Start is after End
func (r Range) Validate() error {
	if r.Start.After(r.End) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			dateutil.FormatDay(r.Start), dateutil.FormatDay(r.End))
	}
	return nil
}

// Contains reports whether day falls inside the range
func (r Range) Contains(day time.Time) bool {
	return !day.Before(r.Start) && !day.After(r.End)
}

// Days returns the inclusive number of days, or 0 for an inverted range
func (r Range) Days(cal calendar.Calendar) int {
	if r.Start.After(r.End) {
		return 0
	}
	n := 0
	for d := r.Start; !d.After(r.End); d = cal.AddDays(d, 1) {
		n++
	}
	return n
}

// Resolve turns a specifier into concrete days using cal, with ref
// standing in for "today". The result is not reordered: a Custom spec
// with start after end resolves to an inverted range.
func Resolve(spec Spec, cal calendar.Calendar, ref time.Time) (Range, error) {
	switch spec.kind {
	case KindYear:
		start, err := cal.Date(spec.year, 1, 1)
		if err != nil {
			return Range{}, fmt.Errorf("failed to resolve start of year %d: %w", spec.year, err)
		}
		end, err := cal.Date(spec.year, 12, 31)
		if err != nil {
			return Range{}, fmt.Errorf("failed to resolve end of year %d: %w", spec.year, err)
		}
		return Range{Start: start, End: end}, nil

	case KindLastYear:
		return lastMonths(12, cal, ref)

	case KindLastMonths:
		if spec.months < 0 {
			return Range{}, fmt.Errorf("%w: got %d", ErrNegativeMonths, spec.months)
		}
		return lastMonths(spec.months, cal, ref)

	case KindMonth:
		return month(spec.year, spec.month, cal)

	case KindCurrentMonth:
		c := cal.Components(ref)
		return month(c.Year, c.Month, cal)

	case KindCustom:
		return Range{Start: cal.StartOfDay(spec.start), End: cal.StartOfDay(spec.end)}, nil

	default:
		return Range{}, fmt.Errorf("%w: kind %d", ErrUnknownSpec, spec.kind)
	}
}

// ResolveValid resolves spec and rejects inverted results
func ResolveValid(spec Spec, cal calendar.Calendar, ref time.Time) (Range, error) {
	r, err := Resolve(spec, cal, ref)
	if err != nil {
		return Range{}, err
	}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

func lastMonths(n int, cal calendar.Calendar, ref time.Time) (Range, error) {
	end := cal.StartOfDay(ref)
	start, err := cal.AddMonths(end, -n)
	if err != nil {
		return Range{}, fmt.Errorf("failed to go back %d months from %s: %w", n, dateutil.FormatDay(end), err)
	}
	return Range{Start: start, End: end}, nil
}

// month ends on day 0 of the following month, which is the true last day
func month(year, m int, cal calendar.Calendar) (Range, error) {
	start, err := cal.Date(year, m, 1)
	if err != nil {
		return Range{}, fmt.Errorf("failed to resolve start of month %04d-%02d: %w", year, m, err)
	}
	end, err := cal.Date(year, m+1, 0)
	if err != nil {
		return Range{}, fmt.Errorf("failed to resolve end of month %04d-%02d: %w", year, m, err)
	}
	return Range{Start: start, End: end}, nil
}
