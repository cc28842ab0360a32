package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/calendar-heatmap/internal/activity"
	"github.com/username/calendar-heatmap/internal/calendar"
	"github.com/username/calendar-heatmap/internal/config"
	"github.com/username/calendar-heatmap/internal/daterange"
	"github.com/username/calendar-heatmap/internal/selection"
	"github.com/username/calendar-heatmap/pkg/dateutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Calendar heatmap",
		Long:  "Lay out daily values as a week-column calendar heatmap and render it to the terminal",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	rootCmd.AddCommand(resolveCmd())
	rootCmd.AddCommand(gridCmd())
	rootCmd.AddCommand(hitCmd())
	rootCmd.AddCommand(demoCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app is the configuration every command works from
type app struct {
	cfg      *config.Config
	calendar *calendar.Gregorian
	spec     daterange.Spec
	ref      time.Time
}

// loadApp loads the config and applies the --range and --ref overrides
func loadApp(rangeFlag, refFlag string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cal, err := cfg.Calendar.NewCalendar()
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar: %w", err)
	}

	if rangeFlag != "" {
		cfg.Heatmap.Range = rangeFlag
	}
	spec, err := cfg.Heatmap.GetSpec(cal.Location())
	if err != nil {
		return nil, fmt.Errorf("invalid range: %w", err)
	}

	ref := dateutil.Today(cal.Location())
	if refFlag != "" {
		ref, err = dateutil.ParseDate(refFlag, cal.Location())
		if err != nil {
			return nil, fmt.Errorf("invalid reference date: %w", err)
		}
	}

	return &app{cfg: cfg, calendar: cal, spec: spec, ref: ref}, nil
}

// source opens the data file, or returns nil when none is configured
func (a *app) source(dataFlag string) activity.Source {
	path := a.cfg.Heatmap.DataFile
	if dataFlag != "" {
		path = dataFlag
	}
	if path == "" {
		return nil
	}
	return activity.OpenSource(path, a.calendar, activity.Weight(a.cfg.Heatmap.Weight), logger)
}

// values loads the data of the resolved range
func (a *app) values(dataFlag string) (activity.Values, error) {
	src := a.source(dataFlag)
	if src == nil {
		return make(activity.Values), nil
	}

	r, err := daterange.Resolve(a.spec, a.calendar, a.ref)
	if err != nil {
		return nil, err
	}
	return src.LoadRange(r)
}

func (a *app) selectionStore() *selection.Store {
	return selection.NewStore(a.cfg.State.SelectionFile, a.calendar, logger)
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
