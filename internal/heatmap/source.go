package heatmap

import (
	"time"

	"github.com/username/calendar-heatmap/internal/activity"
	"github.com/username/calendar-heatmap/internal/calendar"
	"github.com/username/calendar-heatmap/internal/gradient"
)

// ColorSource decides the color of an in-range day. It is implemented by
// GradientSource and FuncSource only.
type ColorSource interface {
	ColorFor(date time.Time) gradient.Color
	isColorSource()
}

// GradientSource colors days by their normalized value along a gradient
type GradientSource struct {
	calendar calendar.Calendar
	values   activity.Values
	stops    []gradient.Color
	empty    gradient.Color
}

// NewGradientSource normalizes values and colors each day along stops.
// Days without a value get empty.
func NewGradientSource(cal calendar.Calendar, values activity.Values, stops []gradient.Color, empty gradient.Color) *GradientSource {
	return &GradientSource{
		calendar: cal,
		values:   activity.Normalize(values),
		stops:    stops,
		empty:    empty,
	}
}

// ColorFor interpolates the day's normalized value
func (g *GradientSource) ColorFor(date time.Time) gradient.Color {
	value, ok := g.values.Lookup(g.calendar, date)
	if !ok {
		return g.empty
	}
	return gradient.Interpolate(g.stops, value)
}

// Stops returns the gradient used by the source
func (g *GradientSource) Stops() []gradient.Color {
	return g.stops
}

func (g *GradientSource) isColorSource() {}

// FuncSource colors days with an application-supplied function
type FuncSource func(date time.Time) gradient.Color

// ColorFor calls the function
func (f FuncSource) ColorFor(date time.Time) gradient.Color {
	return f(date)
}

func (f FuncSource) isColorSource() {}
