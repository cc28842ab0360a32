package activity

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/calendar-heatmap/internal/calendar"
	"github.com/username/calendar-heatmap/internal/daterange"
	"github.com/username/calendar-heatmap/pkg/random"
)

// ErrUnknownPattern is returned for a demo pattern name that does not exist
var ErrUnknownPattern = errors.New("unknown demo pattern")

// Pattern names a demo data shape
type Pattern string

const (
	// PatternRandom gives many zeros, some medium and few high days
	PatternRandom Pattern = "random"

	// PatternContributions is busier on weekdays than on weekends
	PatternContributions Pattern = "contributions"

	// PatternSteady jitters around a middle level every day
	PatternSteady Pattern = "steady"

	// PatternSparse marks roughly one day in ten as active
	PatternSparse Pattern = "sparse"
)

// ParsePattern validates a pattern name
func ParsePattern(name string) (Pattern, error) {
	switch p := Pattern(name); p {
	case PatternRandom, PatternContributions, PatternSteady, PatternSparse:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
}

// Generate fills every day of r with demo values in [0, 1]
func Generate(p Pattern, r daterange.Range, cal calendar.Calendar, gen *random.Generator) (Values, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	var days []time.Time
	for d := r.Start; !d.After(r.End); d = cal.AddDays(d, 1) {
		days = append(days, d)
	}

	values := make(Values, len(days))
	switch p {
	case PatternRandom:
		for _, d := range days {
			values[d] = gen.Weighted()
		}

	case PatternContributions:
		for _, d := range days {
			wd := cal.Components(d).Weekday
			values[d] = gen.Contribution(wd == 1 || wd == 7)
		}

	case PatternSteady:
		for _, d := range days {
			values[d] = gen.Randomize(0.5, 40)
		}

	case PatternSparse:
		for _, d := range days {
			values[d] = 0
		}
		active := (len(days) + 9) / 10
		for _, i := range gen.SelectRandomItems(len(days), active) {
			values[days[i]] = gen.Float(0.5, 1.0)
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPattern, p)
	}

	return values, nil
}
