package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/username/calendar-heatmap/internal/calendar"
	"github.com/username/calendar-heatmap/internal/gradient"
	"github.com/username/calendar-heatmap/internal/grid"
	"github.com/username/calendar-heatmap/internal/heatmap"
	"github.com/username/calendar-heatmap/pkg/dateutil"
)

const (
	cellGlyph     = "██"
	paddingGlyph  = "░░"
	selectedGlyph = "[]"
	columnWidth   = 3
	gutterWidth   = 4
)

// Terminal draws snapshots as colored text
type Terminal struct {
	out      io.Writer
	renderer *lipgloss.Renderer
	style    Style
	calendar calendar.Calendar
}

// NewTerminal creates a renderer writing to out. The color profile is
// detected from out, so plain writers get uncolored text.
func NewTerminal(out io.Writer, style Style, cal calendar.Calendar) *Terminal {
	return &Terminal{
		out:      out,
		renderer: lipgloss.NewRenderer(out),
		style:    style,
		calendar: cal,
	}
}

// Write renders the snapshot to the terminal's writer
func (t *Terminal) Write(snap *heatmap.Snapshot, selected time.Time) error {
	_, err := fmt.Fprintln(t.out, t.Render(snap, selected))
	return err
}

// Report writes a header with the range, the snapshot and, for gradient
// sources, a legend
func (t *Terminal) Report(h *heatmap.Heatmap, snap *heatmap.Snapshot, selected time.Time) error {
	if _, err := fmt.Fprintf(t.out, "%s  %s .. %s\n\n", h.Spec(),
		dateutil.FormatDay(snap.Model.StartDate), dateutil.FormatDay(snap.Model.EndDate)); err != nil {
		return err
	}
	if err := t.Write(snap, selected); err != nil {
		return err
	}

	if gs, ok := h.Source().(*heatmap.GradientSource); ok {
		_, err := fmt.Fprintf(t.out, "\n%s\n", t.Legend(gs.Stops(), "Less", "More"))
		return err
	}
	return nil
}

// Render returns the snapshot as lines of text. A zero selected time marks nothing.
func (t *Terminal) Render(snap *heatmap.Snapshot, selected time.Time) string {
	if snap == nil || snap.Model == nil {
		return ""
	}
	m := snap.Model

	selCol, selRow, hasSelection := -1, -1, false
	if !selected.IsZero() {
		selCol, selRow, hasSelection = grid.Locate(selected, m, t.calendar)
	}

	var lines []string
	if t.style.ShowMonthLabels {
		lines = append(lines, t.monthRow(m))
	}

	symbols := m.OrderedWeekdaySymbols()
	weekdayStyle := t.renderer.NewStyle().Foreground(t.color(t.style.WeekdayLabelColor))

	for row := 0; row < 7; row++ {
		var sb strings.Builder
		if t.style.ShowWeekdayLabels {
			label := ""
			if row%2 == 1 {
				label = symbols[row]
			}
			sb.WriteString(weekdayStyle.Render(fmt.Sprintf("%-*s", gutterWidth, label)))
		}

		for col, week := range m.Weeks {
			if col > 0 {
				sb.WriteString(" ")
			}
			day, ok := dayInRow(week, row, m)
			if !ok {
				sb.WriteString(strings.Repeat(" ", columnWidth-1))
				continue
			}

			glyph := cellGlyph
			switch {
			case !day.InRange:
				glyph = paddingGlyph
			case hasSelection && col == selCol && row == selRow:
				glyph = selectedGlyph
			}

			c, ok := snap.Colors[day.Date]
			if !ok {
				c = t.style.DefaultCellColor
			}
			cellStyle := t.renderer.NewStyle().Foreground(t.color(c))
			if glyph == selectedGlyph {
				cellStyle = cellStyle.Bold(true).Reverse(true)
			}
			sb.WriteString(cellStyle.Render(glyph))
		}
		lines = append(lines, sb.String())
	}

	return strings.Join(lines, "\n")
}

// Legend renders a "Less ... More" swatch row for a gradient
func (t *Terminal) Legend(stops []gradient.Color, low, high string) string {
	labelStyle := t.renderer.NewStyle().Foreground(t.color(t.style.MonthLabelColor))

	parts := []string{labelStyle.Render(low)}
	for _, stop := range stops {
		parts = append(parts, t.renderer.NewStyle().Foreground(t.color(stop)).Render(cellGlyph))
	}
	parts = append(parts, labelStyle.Render(high))

	return strings.Join(parts, " ")
}

// monthRow places each label above its column, dropping labels that would
// overlap the previous one
func (t *Terminal) monthRow(m *grid.Model) string {
	offset := 0
	if t.style.ShowWeekdayLabels {
		offset = gutterWidth
	}

	line := []rune(strings.Repeat(" ", offset+len(m.Weeks)*columnWidth))
	next := 0
	for _, label := range m.MonthLabels {
		pos := offset + label.WeekIndex*columnWidth
		name := []rune(label.Name)
		if pos < next {
			continue
		}
		for pos+len(name) > len(line) {
			line = append(line, ' ')
		}
		copy(line[pos:], name)
		next = pos + len(name) + 1
	}

	monthStyle := t.renderer.NewStyle().Foreground(t.color(t.style.MonthLabelColor))
	return monthStyle.Render(strings.TrimRight(string(line), " "))
}

// color flattens c onto the background, since terminals have no alpha
func (t *Terminal) color(c gradient.Color) lipgloss.Color {
	return lipgloss.Color(c.Flatten(t.style.Background).Hex())
}

func dayInRow(week grid.WeekColumn, row int, m *grid.Model) (grid.DayCell, bool) {
	for _, day := range week.Days {
		if m.Row(day.Weekday) == row {
			return day, true
		}
	}
	return grid.DayCell{}, false
}
