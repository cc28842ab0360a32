package main

import (
	"github.com/spf13/cobra"
	"github.com/username/calendar-heatmap/internal/daemon"
	"go.uber.org/zap"
)

func watchCmd() *cobra.Command {
	var outFlag string
	var noTray bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render the heatmap to a file once per day",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp("", "")
			if err != nil {
				return err
			}

			stops, err := a.cfg.Heatmap.GetStops()
			if err != nil {
				return err
			}
			empty, err := a.cfg.Heatmap.GetEmptyColor()
			if err != nil {
				return err
			}

			job := &daemon.RenderJob{
				Spec:       a.spec,
				Calendar:   a.calendar,
				Selection:  a.selectionStore(),
				Stops:      stops,
				Empty:      empty,
				Style:      a.cfg.Style.RenderStyle(empty),
				OutputFile: a.cfg.Daemon.OutputFile,
				Source:     a.source(""),
				Logger:     logger,
			}
			if outFlag != "" {
				job.OutputFile = outFlag
			}

			hour, minute := a.cfg.Daemon.GetDailyTime()
			d := daemon.NewDaemon(job, a.calendar.Location(), hour, minute,
				a.cfg.Daemon.SystemTray && !noTray, logger)

			logger.Info("Starting watch mode",
				zap.String("range", a.spec.String()),
				zap.String("output", job.OutputFile),
				zap.Int("daily_hour", hour),
				zap.Int("daily_minute", minute))

			return d.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&outFlag, "out", "", "Output file (default daemon.output_file)")
	cmd.Flags().BoolVar(&noTray, "no-tray", false, "Disable the system tray icon")

	return cmd
}
