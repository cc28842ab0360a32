package dateutil

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	input := time.Date(2025, 1, 15, 14, 30, 45, 123456789, time.UTC)
	expected := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	result := StartOfDay(input)

	if !result.Equal(expected) {
		t.Errorf("StartOfDay(%v) = %v, want %v", input, result, expected)
	}
}

func TestStartOfDay_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	input := time.Date(2025, 1, 15, 1, 0, 0, 0, loc)

	result := StartOfDay(input)

	if result.Location() != loc {
		t.Errorf("StartOfDay() location = %v, want %v", result.Location(), loc)
	}
	if result.Day() != 15 || result.Hour() != 0 {
		t.Errorf("StartOfDay() = %v, want 2025-01-15 00:00 +09", result)
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"January", 2025, time.January, 31},
		{"February 2025", 2025, time.February, 28},
		{"February 2024 leap", 2024, time.February, 29},
		{"February 1900 not leap", 1900, time.February, 28},
		{"February 2000 leap", 2000, time.February, 29},
		{"April", 2025, time.April, 30},
		{"December", 2025, time.December, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysInMonth(tt.year, tt.month); got != tt.want {
				t.Errorf("DaysInMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
			}
		})
	}
}

func TestFormatDay(t *testing.T) {
	input := time.Date(2025, 3, 5, 10, 30, 45, 0, time.UTC)
	if got := FormatDay(input); got != "2025-03-05" {
		t.Errorf("FormatDay(%v) = %v, want 2025-03-05", input, got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			"ISO format YYYY-MM-DD",
			"2025-01-15",
			time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			false,
		},
		{
			"Dotted format DD.MM.YYYY",
			"15.01.2025",
			time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			false,
		},
		{
			"ISO with time",
			"2025-01-15T10:30:00",
			time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
			false,
		},
		{
			"Garbage",
			"not a date",
			time.Time{},
			true,
		},
		{
			"Empty",
			"",
			time.Time{},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.input, time.UTC)

			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}

			if !tt.wantErr && !result.Equal(tt.want) {
				t.Errorf("ParseDate(%v) = %v, want %v", tt.input, result, tt.want)
			}
		})
	}
}

func TestParseDate_Location(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	result, err := ParseDate("2025-01-15", loc)
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if result.Location() != loc {
		t.Errorf("ParseDate() location = %v, want %v", result.Location(), loc)
	}
}
