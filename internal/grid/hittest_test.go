package grid

import (
	"fmt"
	"testing"
	"time"

	"github.com/username/calendar-heatmap/internal/calendar"
	"github.com/username/calendar-heatmap/internal/daterange"
)

func TestDateAt(t *testing.T) {
	cal := sundayCalendar()
	m := mustBuild(t, daterange.Month(2025, 1), cal)

	// Jan 1, 2025 is a Wednesday: column 0, row 3 with Sunday first
	tests := []struct {
		name   string
		column int
		row    int
		want   time.Time
		wantOK bool
	}{
		{"First of month", 0, 3, utcDate(2025, 1, 1), true},
		{"Saturday of first week", 0, 6, utcDate(2025, 1, 4), true},
		{"Second week Sunday", 1, 0, utcDate(2025, 1, 5), true},
		{"Last of month", 4, 5, utcDate(2025, 1, 31), true},
		{"Leading padding", 0, 0, time.Time{}, false},
		{"Trailing padding", 4, 6, time.Time{}, false},
		{"Negative column", -1, 0, time.Time{}, false},
		{"Column past end", 999, 0, time.Time{}, false},
		{"Negative row", 0, -1, time.Time{}, false},
		{"Row past end", 0, 7, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DateAt(tt.column, tt.row, m, cal)

			if ok != tt.wantOK {
				t.Fatalf("DateAt(%d, %d) ok = %v, want %v", tt.column, tt.row, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("DateAt(%d, %d) = %v, want %v", tt.column, tt.row, got, tt.want)
			}
		})
	}
}

func TestDateAt_NilModel(t *testing.T) {
	if _, ok := DateAt(0, 0, nil, sundayCalendar()); ok {
		t.Error("DateAt(nil model) ok = true, want false")
	}
}

func TestDateAt_PaddingAlwaysEmpty(t *testing.T) {
	cal := sundayCalendar()
	m := mustBuild(t, daterange.Custom(utcDate(2025, 3, 12), utcDate(2025, 4, 2)), cal)

	for col, week := range m.Weeks {
		for _, day := range week.Days {
			if day.InRange {
				continue
			}
			if got, ok := DateAt(col, m.Row(day.Weekday), m, cal); ok {
				t.Errorf("DateAt on padding %v returned %v", day.Date, got)
			}
		}
	}
}

func TestDateAt_RoundTrip(t *testing.T) {
	specs := []daterange.Spec{
		daterange.Year(2024),
		daterange.Month(2025, 2),
		daterange.LastMonths(5),
		daterange.Custom(utcDate(2024, 12, 27), utcDate(2025, 1, 3)),
	}

	for first := 1; first <= 7; first++ {
		cal := calendar.MustGregorian(time.UTC, calendar.WithFirstWeekday(first))
		for _, spec := range specs {
			t.Run(fmt.Sprintf("first=%d %s", first, spec), func(t *testing.T) {
				m := mustBuild(t, spec, cal)

				// Every in-range day is reachable and maps back to itself
				for d := m.StartDate; !d.After(m.EndDate); d = cal.AddDays(d, 1) {
					col, row, ok := Locate(d, m, cal)
					if !ok {
						t.Fatalf("Locate(%v) not found", d)
					}
					got, ok := DateAt(col, row, m, cal)
					if !ok || !got.Equal(d) {
						t.Fatalf("DateAt(Locate(%v)) = %v, %v", d, got, ok)
					}
				}

				// No grid position yields a date outside the range
				for col := range m.Weeks {
					for row := 0; row < 7; row++ {
						got, ok := DateAt(col, row, m, cal)
						if ok && (got.Before(m.StartDate) || got.After(m.EndDate)) {
							t.Errorf("DateAt(%d, %d) = %v outside range", col, row, got)
						}
					}
				}
			})
		}
	}
}

func TestLocate(t *testing.T) {
	cal := sundayCalendar()
	m := mustBuild(t, daterange.Month(2025, 1), cal)

	col, row, ok := Locate(time.Date(2025, 1, 15, 18, 30, 0, 0, time.UTC), m, cal)
	if !ok || col != 2 || row != 3 {
		t.Errorf("Locate(Jan 15 18:30) = (%d, %d, %v), want (2, 3, true)", col, row, ok)
	}

	if _, _, ok := Locate(utcDate(2024, 12, 31), m, cal); ok {
		t.Error("Locate(padding day) ok = true, want false")
	}
	if _, _, ok := Locate(utcDate(2025, 2, 1), m, cal); ok {
		t.Error("Locate(after range) ok = true, want false")
	}
	if _, _, ok := Locate(utcDate(2025, 1, 1), nil, cal); ok {
		t.Error("Locate(nil model) ok = true, want false")
	}
}

func TestModel_Row(t *testing.T) {
	m := &Model{FirstWeekday: 2}

	tests := []struct {
		weekday int
		want    int
	}{
		{2, 0}, // Monday
		{7, 5}, // Saturday
		{1, 6}, // Sunday
	}

	for _, tt := range tests {
		if got := m.Row(tt.weekday); got != tt.want {
			t.Errorf("Row(%d) = %d, want %d", tt.weekday, got, tt.want)
		}
	}
}
