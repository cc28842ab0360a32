package daemon

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
	"github.com/username/calendar-heatmap/internal/activity"
	"github.com/username/calendar-heatmap/internal/calendar"
	"github.com/username/calendar-heatmap/internal/daterange"
	"github.com/username/calendar-heatmap/internal/gradient"
	"github.com/username/calendar-heatmap/internal/heatmap"
	"github.com/username/calendar-heatmap/internal/render"
	"github.com/username/calendar-heatmap/internal/selection"
	"go.uber.org/zap"
)

// RenderJob draws the configured heatmap into a text file. Data and
// selection are re-read on every render.
type RenderJob struct {
	Spec       daterange.Spec
	Calendar   calendar.Calendar
	Source     activity.Source  // optional
	Selection  *selection.Store // optional
	Stops      []gradient.Color
	Empty      gradient.Color
	Style      render.Style
	OutputFile string
	Logger     *zap.Logger
}

// Render writes the heatmap for ref to OutputFile
func (j *RenderJob) Render(ctx context.Context, ref time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r, err := daterange.Resolve(j.Spec, j.Calendar, ref)
	if err != nil {
		return fmt.Errorf("failed to resolve range: %w", err)
	}

	values := make(activity.Values)
	if j.Source != nil {
		loaded, err := j.Source.LoadRange(r)
		if err != nil {
			return fmt.Errorf("failed to load activity data: %w", err)
		}
		values = loaded
	}

	var selected time.Time
	if j.Selection != nil {
		if err := j.Selection.Load(); err != nil {
			j.Logger.Warn("Failed to load selection, rendering without it", zap.Error(err))
		} else if day, ok := j.Selection.Selected(); ok {
			selected = day
		}
	}

	source := heatmap.NewGradientSource(j.Calendar, values, j.Stops, j.Empty)
	h, err := heatmap.New(j.Spec, j.Calendar, source, j.Empty)
	if err != nil {
		return err
	}

	snap, err := h.Snapshot(ref)
	if err != nil {
		return fmt.Errorf("failed to build heatmap: %w", err)
	}

	var buf bytes.Buffer
	term := render.NewTerminal(&buf, j.Style, h.Calendar())
	if err := term.Report(h, snap, selected); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(j.OutputFile), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	// Readers of the output file never see a partial render
	if err := atomic.WriteFile(j.OutputFile, &buf); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	j.Logger.Info("Heatmap written",
		zap.String("file", j.OutputFile),
		zap.String("range", j.Spec.String()),
		zap.Int("weeks", len(snap.Model.Weeks)),
		zap.Int("days_with_data", len(values)))

	return nil
}
