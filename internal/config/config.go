package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/username/calendar-heatmap/internal/activity"
	"github.com/username/calendar-heatmap/internal/calendar"
	"github.com/username/calendar-heatmap/internal/daterange"
	"github.com/username/calendar-heatmap/internal/gradient"
	"github.com/username/calendar-heatmap/internal/render"
)

// Config represents application configuration
type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	Heatmap  HeatmapConfig  `mapstructure:"heatmap"`
	Style    StyleConfig    `mapstructure:"style"`
	Daemon   DaemonConfig   `mapstructure:"daemon"`
	Log      LogConfig      `mapstructure:"log"`
	State    StateConfig    `mapstructure:"state"`
}

// CalendarConfig describes the calendar grids are laid out in
type CalendarConfig struct {
	Timezone       string   `mapstructure:"timezone"`        // IANA name, "Local" or "UTC"
	FirstWeekday   int      `mapstructure:"first_weekday"`   // 1 = Sunday .. 7 = Saturday
	WeekdaySymbols []string `mapstructure:"weekday_symbols"` // 7 entries, Sunday first
	MonthSymbols   []string `mapstructure:"month_symbols"`   // 12 entries, January first
}

// HeatmapConfig selects the range, the data and the gradient
type HeatmapConfig struct {
	Range      string   `mapstructure:"range"`     // range specifier, e.g. "last-year" or "month:2025-02"
	DataFile   string   `mapstructure:"data_file"` // text or .ics
	Weight     string   `mapstructure:"weight"`    // count or hours, for .ics data
	Palette    string   `mapstructure:"palette"`   // green, blue, heat or purple
	Colors     []string `mapstructure:"colors"`    // hex stops, override palette
	EmptyColor string   `mapstructure:"empty_color"`
}

// StyleConfig is the visual style of rendered grids
type StyleConfig struct {
	CellSize          float64 `mapstructure:"cell_size"`
	CellSpacing       float64 `mapstructure:"cell_spacing"`
	CornerRadius      float64 `mapstructure:"corner_radius"`
	Background        string  `mapstructure:"background"`
	ShowWeekdayLabels bool    `mapstructure:"show_weekday_labels"`
	ShowMonthLabels   bool    `mapstructure:"show_month_labels"`
}

// DaemonConfig represents watch mode configuration
type DaemonConfig struct {
	DailyTime  string `mapstructure:"daily_time"` // HH:MM in the calendar timezone
	OutputFile string `mapstructure:"output_file"`
	SystemTray bool   `mapstructure:"system_tray"` // Windows only
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// StateConfig represents state storage configuration
type StateConfig struct {
	SelectionFile string `mapstructure:"selection_file"`
}

func setDefaults(v *viper.Viper) {
	def := render.DefaultStyle()

	v.SetDefault("calendar.timezone", "Local")
	v.SetDefault("calendar.first_weekday", 1)
	v.SetDefault("heatmap.range", "last-year")
	v.SetDefault("heatmap.palette", "green")
	v.SetDefault("style.cell_size", def.CellSize)
	v.SetDefault("style.cell_spacing", def.CellSpacing)
	v.SetDefault("style.corner_radius", def.CellCornerRadius)
	v.SetDefault("style.background", def.Background.Hex())
	v.SetDefault("style.show_weekday_labels", def.ShowWeekdayLabels)
	v.SetDefault("style.show_month_labels", def.ShowMonthLabels)
	v.SetDefault("daemon.daily_time", "00:05")
	v.SetDefault("daemon.output_file", "heatmap.txt")
	v.SetDefault("log.level", "info")
	v.SetDefault("state.selection_file", "selection.json")
}

// Load loads configuration from file. Without an explicit path a missing
// config file is not an error and defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.calendar-heatmap")
		v.AddConfigPath("/etc/calendar-heatmap")
	}

	// HEATMAP_HEATMAP_RANGE overrides heatmap.range
	v.SetEnvPrefix("heatmap")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := c.Calendar.GetLocation(); err != nil {
		return fmt.Errorf("calendar.timezone: %w", err)
	}
	if c.Calendar.FirstWeekday < 1 || c.Calendar.FirstWeekday > 7 {
		return fmt.Errorf("calendar.first_weekday must be between 1 and 7, got %d", c.Calendar.FirstWeekday)
	}
	if n := len(c.Calendar.WeekdaySymbols); n != 0 && n != 7 {
		return fmt.Errorf("calendar.weekday_symbols must have 7 entries, got %d", n)
	}
	if n := len(c.Calendar.MonthSymbols); n != 0 && n != 12 {
		return fmt.Errorf("calendar.month_symbols must have 12 entries, got %d", n)
	}

	if _, err := c.Heatmap.GetSpec(time.UTC); err != nil {
		return fmt.Errorf("heatmap.range: %w", err)
	}
	if _, err := c.Heatmap.GetStops(); err != nil {
		return fmt.Errorf("heatmap.colors: %w", err)
	}
	if _, err := c.Heatmap.GetEmptyColor(); err != nil {
		return fmt.Errorf("heatmap.empty_color: %w", err)
	}
	switch activity.Weight(c.Heatmap.Weight) {
	case "", activity.WeightCount, activity.WeightHours:
	default:
		return fmt.Errorf("heatmap.weight must be 'count' or 'hours', got '%s'", c.Heatmap.Weight)
	}

	if c.Style.CellSize <= 0 {
		return fmt.Errorf("style.cell_size must be positive")
	}
	if c.Style.CellSpacing < 0 {
		return fmt.Errorf("style.cell_spacing must not be negative")
	}
	if _, err := gradient.ParseHex(c.Style.Background); err != nil {
		return fmt.Errorf("style.background: %w", err)
	}

	if _, _, err := c.Daemon.parseDailyTime(); c.Daemon.DailyTime != "" && err != nil {
		return fmt.Errorf("daemon.daily_time: %w", err)
	}

	return nil
}

// GetLocation returns the configured time zone. Empty means Local.
func (c *CalendarConfig) GetLocation() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	default:
		return time.LoadLocation(c.Timezone)
	}
}

// NewCalendar builds the configured Gregorian calendar
func (c *CalendarConfig) NewCalendar() (*calendar.Gregorian, error) {
	loc, err := c.GetLocation()
	if err != nil {
		return nil, err
	}

	opts := []calendar.Option{calendar.WithFirstWeekday(c.FirstWeekday)}
	if len(c.WeekdaySymbols) == 7 {
		var symbols [7]string
		copy(symbols[:], c.WeekdaySymbols)
		opts = append(opts, calendar.WithWeekdaySymbols(symbols))
	}
	if len(c.MonthSymbols) == 12 {
		var symbols [12]string
		copy(symbols[:], c.MonthSymbols)
		opts = append(opts, calendar.WithMonthSymbols(symbols))
	}

	return calendar.NewGregorian(loc, opts...)
}

// GetSpec parses the range specifier. Custom bounds are read in loc.
func (c *HeatmapConfig) GetSpec(loc *time.Location) (daterange.Spec, error) {
	return daterange.Parse(c.Range, loc)
}

// GetStops returns the explicit colors, or the named palette
func (c *HeatmapConfig) GetStops() ([]gradient.Color, error) {
	if len(c.Colors) > 0 {
		return gradient.ParseStops(c.Colors)
	}

	name := c.Palette
	if name == "" {
		name = "green"
	}
	stops, ok := gradient.Palette(name)
	if !ok {
		return nil, fmt.Errorf("unknown palette %q", name)
	}
	return stops, nil
}

// GetEmptyColor returns the color of days without a value
func (c *HeatmapConfig) GetEmptyColor() (gradient.Color, error) {
	if c.EmptyColor == "" {
		return gradient.DefaultEmpty, nil
	}
	return gradient.ParseHex(c.EmptyColor)
}

// RenderStyle converts the style section, keeping defaults for unset colors
func (c *StyleConfig) RenderStyle(empty gradient.Color) render.Style {
	style := render.DefaultStyle()
	style.CellSize = c.CellSize
	style.CellSpacing = c.CellSpacing
	style.CellCornerRadius = c.CornerRadius
	style.ShowWeekdayLabels = c.ShowWeekdayLabels
	style.ShowMonthLabels = c.ShowMonthLabels
	style.DefaultCellColor = empty
	if bg, err := gradient.ParseHex(c.Background); err == nil {
		style.Background = bg
	}
	return style
}

// GetDailyTime returns the configured daily render time.
// Returns hour and minute (0-23, 0-59). Default: 00:05
func (c *DaemonConfig) GetDailyTime() (hour, minute int) {
	h, m, err := c.parseDailyTime()
	if err != nil {
		return 0, 5
	}
	return h, m
}

func (c *DaemonConfig) parseDailyTime() (hour, minute int, err error) {
	var h, m int
	if _, err := fmt.Sscanf(c.DailyTime, "%d:%d", &h, &m); err != nil {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", c.DailyTime)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("time out of range: %q", c.DailyTime)
	}
	return h, m, nil
}

// ExpandEnvVars expands environment variables in paths
func (c *Config) ExpandEnvVars() {
	c.Heatmap.DataFile = os.ExpandEnv(c.Heatmap.DataFile)
	c.Daemon.OutputFile = os.ExpandEnv(c.Daemon.OutputFile)
	c.Log.File = os.ExpandEnv(c.Log.File)
	c.State.SelectionFile = os.ExpandEnv(c.State.SelectionFile)
}
