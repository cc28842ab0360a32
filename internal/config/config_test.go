package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/username/calendar-heatmap/internal/daterange"
	"github.com/username/calendar-heatmap/internal/gradient"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
calendar:
  timezone: UTC
  first_weekday: 2
heatmap:
  range: month:2025-02
  palette: heat
  data_file: activity.txt
daemon:
  daily_time: "06:30"
  output_file: out.txt
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cal, err := cfg.Calendar.NewCalendar()
	if err != nil {
		t.Fatalf("NewCalendar() error = %v", err)
	}
	if cal.FirstWeekday() != 2 || cal.Location() != time.UTC {
		t.Errorf("calendar = first weekday %d in %v, want 2 in UTC", cal.FirstWeekday(), cal.Location())
	}

	spec, err := cfg.Heatmap.GetSpec(time.UTC)
	if err != nil || !spec.Equal(daterange.Month(2025, 2)) {
		t.Errorf("GetSpec() = %v, %v, want month:2025-02", spec, err)
	}

	stops, err := cfg.Heatmap.GetStops()
	if err != nil || len(stops) != len(gradient.Heat) || stops[4] != gradient.Heat[4] {
		t.Errorf("GetStops() = %v, %v, want heat palette", stops, err)
	}

	if h, m := cfg.Daemon.GetDailyTime(); h != 6 || m != 30 {
		t.Errorf("GetDailyTime() = %d:%d, want 6:30", h, m)
	}

	// Defaults fill what the file omits
	if cfg.Style.CellSize != 15 || !cfg.Style.ShowMonthLabels {
		t.Errorf("style defaults not applied: %+v", cfg.Style)
	}
	if cfg.State.SelectionFile != "selection.json" {
		t.Errorf("SelectionFile = %q, want selection.json", cfg.State.SelectionFile)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() error = nil for missing explicit file")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "heatmap:\n  range: last-year\n")
	t.Setenv("HEATMAP_HEATMAP_RANGE", "last-months:3")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Heatmap.Range != "last-months:3" {
		t.Errorf("Range = %q, want env override", cfg.Heatmap.Range)
	}
}

func validConfig() Config {
	return Config{
		Calendar: CalendarConfig{Timezone: "UTC", FirstWeekday: 1},
		Heatmap:  HeatmapConfig{Range: "last-year", Palette: "green"},
		Style:    StyleConfig{CellSize: 15, CellSpacing: 2, Background: "#000000"},
		Daemon:   DaemonConfig{DailyTime: "00:05"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"Valid", func(c *Config) {}, false},
		{"Bad timezone", func(c *Config) { c.Calendar.Timezone = "Mars/Olympus" }, true},
		{"First weekday zero", func(c *Config) { c.Calendar.FirstWeekday = 0 }, true},
		{"First weekday eight", func(c *Config) { c.Calendar.FirstWeekday = 8 }, true},
		{"Short weekday symbols", func(c *Config) { c.Calendar.WeekdaySymbols = []string{"a", "b"} }, true},
		{"Unknown range", func(c *Config) { c.Heatmap.Range = "fortnight" }, true},
		{"Unknown palette", func(c *Config) { c.Heatmap.Palette = "rainbow" }, true},
		{"Explicit colors win over palette", func(c *Config) {
			c.Heatmap.Palette = "rainbow"
			c.Heatmap.Colors = []string{"#000000", "#ffffff"}
		}, false},
		{"Bad color", func(c *Config) { c.Heatmap.Colors = []string{"#zzz"} }, true},
		{"Bad empty color", func(c *Config) { c.Heatmap.EmptyColor = "gray" }, true},
		{"Hours weight", func(c *Config) { c.Heatmap.Weight = "hours" }, false},
		{"Unknown weight", func(c *Config) { c.Heatmap.Weight = "minutes" }, true},
		{"Zero cell size", func(c *Config) { c.Style.CellSize = 0 }, true},
		{"Bad daily time", func(c *Config) { c.Daemon.DailyTime = "25:00" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetDailyTime_Fallback(t *testing.T) {
	tests := []struct {
		input    string
		wantHour int
		wantMin  int
	}{
		{"", 0, 5},
		{"garbage", 0, 5},
		{"23:59", 23, 59},
		{"24:00", 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := DaemonConfig{DailyTime: tt.input}
			if h, m := d.GetDailyTime(); h != tt.wantHour || m != tt.wantMin {
				t.Errorf("GetDailyTime() = %d:%d, want %d:%d", h, m, tt.wantHour, tt.wantMin)
			}
		})
	}
}

func TestRenderStyle(t *testing.T) {
	sc := StyleConfig{CellSize: 10, CellSpacing: 1, Background: "#ffffff", ShowMonthLabels: true}
	style := sc.RenderStyle(gradient.DefaultEmpty)

	if style.CellSize != 10 || style.CellSpacing != 1 {
		t.Errorf("size = %v/%v, want 10/1", style.CellSize, style.CellSpacing)
	}
	if style.ShowWeekdayLabels || !style.ShowMonthLabels {
		t.Errorf("labels = %v/%v, want false/true", style.ShowWeekdayLabels, style.ShowMonthLabels)
	}
	if style.Background != gradient.RGB(1, 1, 1) {
		t.Errorf("Background = %+v, want white", style.Background)
	}
}
