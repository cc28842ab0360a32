package render

import "github.com/username/calendar-heatmap/internal/gradient"

// Style is the visual configuration of a rendered heatmap
type Style struct {
	CellSize         float64
	CellSpacing      float64
	CellCornerRadius float64

	MonthLabelColor   gradient.Color
	WeekdayLabelColor gradient.Color
	DefaultCellColor  gradient.Color // cells the snapshot has no color for

	// Background is what translucent cells are flattened against on
	// outputs without alpha support
	Background gradient.Color

	ShowWeekdayLabels bool
	ShowMonthLabels   bool
}

var secondary = gradient.MustParseHex("#8e8e93")

// DefaultStyle returns 15pt cells with 2pt spacing and both label kinds shown
func DefaultStyle() Style {
	return Style{
		CellSize:          15,
		CellSpacing:       2,
		CellCornerRadius:  2,
		MonthLabelColor:   secondary,
		WeekdayLabelColor: secondary.WithAlpha(0.7),
		DefaultCellColor:  gradient.DefaultEmpty,
		Background:        gradient.MustParseHex("#161b22"),
		ShowWeekdayLabels: true,
		ShowMonthLabels:   true,
	}
}
