package activity

import (
	"sort"
	"time"

	"github.com/username/calendar-heatmap/internal/calendar"
)

// Values maps days to numbers. Keys are always start-of-day in the calendar
// location, so lookups match on calendar day instead of exact timestamp.
type Values map[time.Time]float64

// NewValues copies raw into Values, moving every key to the start of its day.
// Raw keys that fall on the same day are summed.
func NewValues(cal calendar.Calendar, raw map[time.Time]float64) Values {
	v := make(Values, len(raw))
	for t, value := range raw {
		v.Add(cal, t, value)
	}
	return v
}

// Add adds value to the day containing t
func (v Values) Add(cal calendar.Calendar, t time.Time, value float64) {
	v[cal.StartOfDay(t)] += value
}

// Set replaces the value of the day containing t
func (v Values) Set(cal calendar.Calendar, t time.Time, value float64) {
	v[cal.StartOfDay(t)] = value
}

// Lookup returns the value of the day containing t
func (v Values) Lookup(cal calendar.Calendar, t time.Time) (float64, bool) {
	value, ok := v[cal.StartOfDay(t)]
	return value, ok
}

// Days returns the keys in chronological order
func (v Values) Days() []time.Time {
	days := make([]time.Time, 0, len(v))
	for d := range v {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// Max returns the largest value, or 1 when v is empty or has no positive value
func (v Values) Max() float64 {
	max := 0.0
	for _, value := range v {
		if value > max {
			max = value
		}
	}
	if max <= 0 {
		return 1
	}
	return max
}

// Normalize divides every value by Max, so the largest positive value
// becomes 1. Without positive values the copy is unchanged. Values are not clamped.
func Normalize(v Values) Values {
	out := make(Values, len(v))
	max := v.Max()
	for d, value := range v {
		out[d] = value / max
	}
	return out
}
