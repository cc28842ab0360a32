package render

import (
	"math"
	"time"

	"github.com/username/calendar-heatmap/internal/calendar"
	"github.com/username/calendar-heatmap/internal/grid"
)

const (
	weekdayLabelWidth = 24
	monthLabelHeight  = 16
)

// Layout is the pixel geometry of a grid model drawn with a style
type Layout struct {
	style Style
	weeks int
}

// NewLayout computes the geometry of m. A nil model has no columns.
func NewLayout(style Style, m *grid.Model) Layout {
	l := Layout{style: style}
	if m != nil {
		l.weeks = len(m.Weeks)
	}
	return l
}

// CellStep is the distance between the origins of adjacent cells
func (l Layout) CellStep() float64 {
	return l.style.CellSize + l.style.CellSpacing
}

// WeekdayLabelWidth is the left gutter reserved for weekday labels
func (l Layout) WeekdayLabelWidth() float64 {
	if l.style.ShowWeekdayLabels {
		return weekdayLabelWidth
	}
	return 0
}

// MonthLabelHeight is the top gutter reserved for month labels
func (l Layout) MonthLabelHeight() float64 {
	if l.style.ShowMonthLabels {
		return monthLabelHeight
	}
	return 0
}

// Size returns the total width and height of the drawing
func (l Layout) Size() (width, height float64) {
	width = l.WeekdayLabelWidth() + float64(l.weeks)*l.CellStep()
	height = l.MonthLabelHeight() + 7*l.CellStep()
	return width, height
}

// CellOrigin returns the top-left corner of the cell at (column, row)
func (l Layout) CellOrigin(column, row int) (x, y float64) {
	x = l.WeekdayLabelWidth() + float64(column)*l.CellStep()
	y = l.MonthLabelHeight() + float64(row)*l.CellStep()
	return x, y
}

// CellAt converts a point to the grid position under it. Points left of or
// above the grid, or past its last column or row, report false. The spacing
// after a cell belongs to that cell.
func (l Layout) CellAt(x, y float64) (column, row int, ok bool) {
	step := l.CellStep()
	if step <= 0 {
		return 0, 0, false
	}

	column = int(math.Floor((x - l.WeekdayLabelWidth()) / step))
	row = int(math.Floor((y - l.MonthLabelHeight()) / step))

	if column < 0 || column >= l.weeks || row < 0 || row >= 7 {
		return 0, 0, false
	}
	return column, row, true
}

// DateAtPoint returns the in-range date drawn under a point
func (l Layout) DateAtPoint(x, y float64, m *grid.Model, cal calendar.Calendar) (time.Time, bool) {
	column, row, ok := l.CellAt(x, y)
	if !ok {
		return time.Time{}, false
	}
	return grid.DateAt(column, row, m, cal)
}
