package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/username/calendar-heatmap/pkg/dateutil"
	"go.uber.org/zap"
)

// ErrRenderRunning is returned when a render is requested while one is in progress
var ErrRenderRunning = errors.New("render already in progress")

// Job renders the heatmap for a reference date
type Job interface {
	Render(ctx context.Context, ref time.Time) error
}

// Daemon re-renders the heatmap once per day at a fixed local time
type Daemon struct {
	job         Job
	location    *time.Location
	dailyHour   int  // 0-23
	dailyMinute int  // 0-59
	systemTray  bool // Windows only
	logger      *zap.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	trayApp     *TrayApp

	// tick is how often the schedule is checked
	tick time.Duration
	now  func() time.Time

	mu          sync.Mutex // guards the fields below and serializes renders
	running     bool
	lastRunDate string
	lastRunTime time.Time
	lastErr     error
}

// Status is a snapshot of the daemon schedule
type Status struct {
	LastRunDate string
	LastRunTime time.Time
	LastError   error
	NextRun     time.Time
}

// NewDaemon creates a daemon rendering job every day at dailyHour:dailyMinute in loc
func NewDaemon(job Job, loc *time.Location, dailyHour, dailyMinute int, systemTray bool, logger *zap.Logger) *Daemon {
	if loc == nil {
		loc = time.Local
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Daemon{
		job:         job,
		location:    loc,
		dailyHour:   dailyHour,
		dailyMinute: dailyMinute,
		systemTray:  systemTray,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
		tick:        time.Minute,
		now:         time.Now,
	}
}

// Run blocks until ctx is cancelled, Stop is called or a termination signal arrives
func (d *Daemon) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-d.ctx.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	if d.systemTray {
		d.logger.Info("Initializing system tray")
		trayApp, err := NewTrayApp(d, d.logger)
		if err != nil {
			d.logger.Warn("Failed to initialize system tray", zap.Error(err))
		} else {
			d.trayApp = trayApp
			// Blocks until Quit
			d.trayApp.Run(ctx)
			return nil
		}
	}

	d.logger.Info("Running without system tray")
	d.runScheduledLogic(ctx)
	return nil
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	d.cancel()
}

// runScheduledLogic runs the schedule loop (called from tray or standalone)
func (d *Daemon) runScheduledLogic(ctx context.Context) {
	d.logger.Info("Daemon scheduled logic started",
		zap.Int("daily_hour", d.dailyHour),
		zap.Int("daily_minute", d.dailyMinute),
		zap.String("timezone", d.location.String()))

	// Catch up when the scheduled time already passed today
	d.checkSchedule(ctx, d.now())

	nextRun := d.calculateNextRun()
	d.logger.Info("Next render scheduled",
		zap.Time("next_run", nextRun),
		zap.Duration("wait_duration", nextRun.Sub(d.now())))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ticker := time.NewTicker(d.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Daemon stopped")
			if d.trayApp != nil {
				d.trayApp.Stop()
			}
			return

		case sig := <-sigChan:
			d.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			if d.trayApp != nil {
				d.trayApp.Stop()
			}
			d.Stop()
			return

		case <-ticker.C:
			d.checkSchedule(ctx, d.now())
		}
	}
}

// checkSchedule renders when the scheduled time of now's day has passed
// and that day has not been rendered yet
func (d *Daemon) checkSchedule(ctx context.Context, now time.Time) {
	if !d.shouldRunAt(now) {
		return
	}

	d.logger.Info("Starting scheduled render", zap.Time("time", now))

	if err := d.runRender(ctx, false); err != nil {
		d.logger.Error("Render failed", zap.Error(err))
		d.notify("Render Failed", fmt.Sprintf("Error: %v", err))
		return
	}

	d.logger.Info("Next render scheduled", zap.Time("next_run", d.calculateNextRun()))
}

// shouldRunAt reports whether now is at or past today's scheduled time and
// today has not been rendered
func (d *Daemon) shouldRunAt(now time.Time) bool {
	local := now.In(d.location)
	scheduled := time.Date(local.Year(), local.Month(), local.Day(),
		d.dailyHour, d.dailyMinute, 0, 0, d.location)

	if local.Before(scheduled) {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastRunDate != dateutil.FormatDay(local)
}

// calculateNextRun returns the next scheduled render time
func (d *Daemon) calculateNextRun() time.Time {
	now := d.now().In(d.location)

	today := time.Date(now.Year(), now.Month(), now.Day(),
		d.dailyHour, d.dailyMinute, 0, 0, d.location)

	if !now.Before(today) {
		return time.Date(now.Year(), now.Month(), now.Day()+1,
			d.dailyHour, d.dailyMinute, 0, 0, d.location)
	}

	return today
}

// runRender renders with today as the reference date. Unless force is set,
// a day that was already rendered is skipped.
func (d *Daemon) runRender(ctx context.Context, force bool) error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		d.logger.Warn("Render already running, skipping concurrent execution")
		return ErrRenderRunning
	}

	now := d.now().In(d.location)
	today := dateutil.FormatDay(now)
	if !force && d.lastRunDate == today {
		d.mu.Unlock()
		d.logger.Debug("Already rendered today, skipping",
			zap.String("last_run_date", today))
		return nil
	}

	d.running = true
	d.mu.Unlock()

	err := d.job.Render(ctx, dateutil.StartOfDay(now))

	d.mu.Lock()
	defer d.mu.Unlock()
	d.running = false
	d.lastErr = err
	if err != nil {
		return fmt.Errorf("failed to render heatmap: %w", err)
	}

	d.lastRunDate = today
	d.lastRunTime = d.now()
	d.logger.Info("Render completed", zap.String("date", today))

	return nil
}

// RenderNow triggers an immediate render (called from tray menu)
func (d *Daemon) RenderNow() {
	d.logger.Info("Manual render triggered")
	if err := d.runRender(d.ctx, true); err != nil {
		d.logger.Error("Manual render failed", zap.Error(err))
		d.notify("Render Failed", fmt.Sprintf("Error: %v", err))
		return
	}
	d.notify("Render Completed", "Heatmap updated")
}

// GetStatus returns daemon status
func (d *Daemon) GetStatus() Status {
	next := d.calculateNextRun()

	d.mu.Lock()
	defer d.mu.Unlock()
	return Status{
		LastRunDate: d.lastRunDate,
		LastRunTime: d.lastRunTime,
		LastError:   d.lastErr,
		NextRun:     next,
	}
}

func (d *Daemon) notify(title, message string) {
	if d.trayApp != nil {
		d.trayApp.ShowNotification(title, message)
	}
}
