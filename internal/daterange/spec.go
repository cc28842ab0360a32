package daterange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/username/calendar-heatmap/pkg/dateutil"
)

// ErrUnknownSpec is returned by Parse for text that names no range
var ErrUnknownSpec = errors.New("unknown range specifier")

// Kind identifies the variant of a range specifier
type Kind int

const (
	KindYear Kind = iota + 1
	KindLastYear
	KindLastMonths
	KindMonth
	KindCurrentMonth
	KindCustom
)

// String returns the textual name of the kind
func (k Kind) String() string {
	switch k {
	case KindYear:
		return "year"
	case KindLastYear:
		return "last-year"
	case KindLastMonths:
		return "last-months"
	case KindMonth:
		return "month"
	case KindCurrentMonth:
		return "current-month"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Spec is an abstract description of a date range, resolved against a
// calendar and a reference date. Only the fields of its Kind are meaningful.
type Spec struct {
	kind   Kind
	year   int
	month  int
	months int
	start  time.Time
	end    time.Time
}

// Year covers January 1 to December 31 of year
func Year(year int) Spec {
	return Spec{kind: KindYear, year: year}
}

// LastYear covers the 12 months ending on the reference date
func LastYear() Spec {
	return Spec{kind: KindLastYear}
}

// LastMonths covers the n months ending on the reference date
func LastMonths(n int) Spec {
	return Spec{kind: KindLastMonths, months: n}
}

// Month covers a single calendar month (1..12)
func Month(year, month int) Spec {
	return Spec{kind: KindMonth, year: year, month: month}
}

// CurrentMonth covers the calendar month of the reference date
func CurrentMonth() Spec {
	return Spec{kind: KindCurrentMonth}
}

// Custom covers the days from start to end inclusive
func Custom(start, end time.Time) Spec {
	return Spec{kind: KindCustom, start: start, end: end}
}

// Kind returns the variant of the specifier
func (s Spec) Kind() Kind {
	return s.kind
}

// IsZero reports whether s is the zero Spec
func (s Spec) IsZero() bool {
	return s.kind == 0
}

// Equal compares variant and payload. Custom bounds compare as instants.
func (s Spec) Equal(o Spec) bool {
	if s.kind != o.kind {
		return false
	}

	switch s.kind {
	case KindYear:
		return s.year == o.year
	case KindLastMonths:
		return s.months == o.months
	case KindMonth:
		return s.year == o.year && s.month == o.month
	case KindCustom:
		return s.start.Equal(o.start) && s.end.Equal(o.end)
	default:
		return true
	}
}

// String formats the specifier in the form accepted by Parse
func (s Spec) String() string {
	switch s.kind {
	case KindYear:
		return fmt.Sprintf("year:%d", s.year)
	case KindLastYear, KindCurrentMonth:
		return s.kind.String()
	case KindLastMonths:
		return fmt.Sprintf("last-months:%d", s.months)
	case KindMonth:
		return fmt.Sprintf("month:%04d-%02d", s.year, s.month)
	case KindCustom:
		return fmt.Sprintf("custom:%s..%s", dateutil.FormatDay(s.start), dateutil.FormatDay(s.end))
	default:
		return "unknown"
	}
}

// Parse reads a specifier:
//
//	year:2025
//	last-year
//	last-months:3
//	month:2025-02
//	current-month
//	custom:2025-03-15..2025-04-15
//
// Custom dates are parsed in loc (UTC when nil).
func Parse(text string, loc *time.Location) (Spec, error) {
	text = strings.TrimSpace(strings.ToLower(text))
	name, arg, _ := strings.Cut(text, ":")

	switch name {
	case "year":
		y, err := strconv.Atoi(arg)
		if err != nil {
			return Spec{}, fmt.Errorf("invalid year %q: %w", arg, err)
		}
		return Year(y), nil

	case "last-year":
		return LastYear(), nil

	case "last-months":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return Spec{}, fmt.Errorf("invalid month count %q: %w", arg, err)
		}
		return LastMonths(n), nil

	case "month":
		ys, ms, ok := strings.Cut(arg, "-")
		if !ok {
			return Spec{}, fmt.Errorf("month must be YYYY-MM, got %q", arg)
		}
		y, err := strconv.Atoi(ys)
		if err != nil {
			return Spec{}, fmt.Errorf("invalid year %q: %w", ys, err)
		}
		m, err := strconv.Atoi(ms)
		if err != nil {
			return Spec{}, fmt.Errorf("invalid month %q: %w", ms, err)
		}
		if m < 1 || m > 12 {
			return Spec{}, fmt.Errorf("month must be between 1 and 12, got %d", m)
		}
		return Month(y, m), nil

	case "current-month":
		return CurrentMonth(), nil

	case "custom":
		from, to, ok := strings.Cut(arg, "..")
		if !ok {
			return Spec{}, fmt.Errorf("custom range must be START..END, got %q", arg)
		}
		start, err := dateutil.ParseDate(from, loc)
		if err != nil {
			return Spec{}, fmt.Errorf("invalid custom start: %w", err)
		}
		end, err := dateutil.ParseDate(to, loc)
		if err != nil {
			return Spec{}, fmt.Errorf("invalid custom end: %w", err)
		}
		return Custom(start, end), nil

	default:
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownSpec, text)
	}
}
