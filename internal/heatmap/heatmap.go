package heatmap

import (
	"errors"
	"time"

	"github.com/username/calendar-heatmap/internal/calendar"
	"github.com/username/calendar-heatmap/internal/daterange"
	"github.com/username/calendar-heatmap/internal/gradient"
	"github.com/username/calendar-heatmap/internal/grid"
)

// paddingAlpha dims padding cells relative to the empty color
const paddingAlpha = 0.3

// ErrNoColorSource is returned when a Heatmap is created without a color source
var ErrNoColorSource = errors.New("heatmap needs a color source")

// Heatmap ties a range specifier, a calendar and a color source together
type Heatmap struct {
	spec     daterange.Spec
	calendar calendar.Calendar
	source   ColorSource
	empty    gradient.Color
}

// Snapshot is a laid out grid with a color for every cell, ready to render
type Snapshot struct {
	Model *grid.Model

	// Colors holds one color per cell date, padding included
	Colors map[time.Time]gradient.Color
}

// New creates a Heatmap. empty is the base color for padding cells.
func New(spec daterange.Spec, cal calendar.Calendar, source ColorSource, empty gradient.Color) (*Heatmap, error) {
	if source == nil {
		return nil, ErrNoColorSource
	}
	return &Heatmap{
		spec:     spec,
		calendar: cal,
		source:   source,
		empty:    empty,
	}, nil
}

// Spec returns the range specifier
func (h *Heatmap) Spec() daterange.Spec {
	return h.spec
}

// Calendar returns the calendar the heatmap is laid out with
func (h *Heatmap) Calendar() calendar.Calendar {
	return h.calendar
}

// Source returns the color source
func (h *Heatmap) Source() ColorSource {
	return h.source
}

// Snapshot resolves the range against ref, builds the grid and colors every cell
func (h *Heatmap) Snapshot(ref time.Time) (*Snapshot, error) {
	model, err := grid.BuildFromSpec(h.spec, h.calendar, ref)
	if err != nil {
		return nil, err
	}

	colors := make(map[time.Time]gradient.Color, len(model.Weeks)*7)
	for _, week := range model.Weeks {
		for _, day := range week.Days {
			if day.InRange {
				colors[day.Date] = h.source.ColorFor(day.Date)
			} else {
				colors[day.Date] = PaddingColor(h.empty)
			}
		}
	}

	return &Snapshot{Model: model, Colors: colors}, nil
}

// DateAt hit-tests a grid position of the snapshot
func (s *Snapshot) DateAt(column, row int, cal calendar.Calendar) (time.Time, bool) {
	return grid.DateAt(column, row, s.Model, cal)
}

// PaddingColor is the color of days outside the range
func PaddingColor(empty gradient.Color) gradient.Color {
	return empty.ScaleAlpha(paddingAlpha)
}
