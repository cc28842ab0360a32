package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/calendar-heatmap/internal/activity"
	"github.com/username/calendar-heatmap/internal/calendar"
	"github.com/username/calendar-heatmap/internal/daterange"
	"github.com/username/calendar-heatmap/internal/grid"
	"github.com/username/calendar-heatmap/internal/heatmap"
	"github.com/username/calendar-heatmap/internal/render"
	"github.com/username/calendar-heatmap/pkg/dateutil"
	"github.com/username/calendar-heatmap/pkg/random"
	"go.uber.org/zap"
)

func resolveCmd() *cobra.Command {
	var rangeFlag, refFlag string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the concrete days a range specifier covers",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(rangeFlag, refFlag)
			if err != nil {
				return err
			}

			r, err := daterange.Resolve(a.spec, a.calendar, a.ref)
			if err != nil {
				return err
			}

			fmt.Printf("Range:  %s\n", a.spec)
			fmt.Printf("Start:  %s\n", dateutil.FormatDay(r.Start))
			fmt.Printf("End:    %s\n", dateutil.FormatDay(r.End))
			fmt.Printf("Days:   %d\n", r.Days(a.calendar))
			if err := r.Validate(); err != nil {
				fmt.Printf("Note:   %v\n", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rangeFlag, "range", "", "Range specifier (default from config)")
	cmd.Flags().StringVar(&refFlag, "ref", "", "Reference date YYYY-MM-DD (default today)")

	return cmd
}

func gridCmd() *cobra.Command {
	var rangeFlag, refFlag, dataFlag string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Render the heatmap grid to the terminal or as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(rangeFlag, refFlag)
			if err != nil {
				return err
			}

			values, err := a.values(dataFlag)
			if err != nil {
				return fmt.Errorf("failed to load data: %w", err)
			}
			stops, err := a.cfg.Heatmap.GetStops()
			if err != nil {
				return err
			}
			empty, err := a.cfg.Heatmap.GetEmptyColor()
			if err != nil {
				return err
			}

			h, err := heatmap.New(a.spec, a.calendar, heatmap.NewGradientSource(a.calendar, values, stops, empty), empty)
			if err != nil {
				return err
			}
			snap, err := h.Snapshot(a.ref)
			if err != nil {
				return err
			}

			store := a.selectionStore()
			if err := store.Load(); err != nil {
				logger.Warn("Ignoring unreadable selection", zap.Error(err))
			}
			selected, _ := store.Selected()

			logger.Debug("Grid built",
				zap.String("range", a.spec.String()),
				zap.Int("weeks", len(snap.Model.Weeks)),
				zap.Int("labels", len(snap.Model.MonthLabels)))

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(newGridJSON(a.spec, snap, activity.Normalize(values), selected,
					a.cfg.Style.RenderStyle(empty)))
			}

			term := render.NewTerminal(os.Stdout, a.cfg.Style.RenderStyle(empty), h.Calendar())
			return term.Report(h, snap, selected)
		},
	}

	cmd.Flags().StringVar(&rangeFlag, "range", "", "Range specifier (default from config)")
	cmd.Flags().StringVar(&refFlag, "ref", "", "Reference date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&dataFlag, "data", "", "Data file with 'YYYY-MM-DD value' lines")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the grid model as JSON")

	return cmd
}

func hitCmd() *cobra.Command {
	var rangeFlag, refFlag string
	var col, row int
	var x, y float64
	var clearSelection bool

	cmd := &cobra.Command{
		Use:   "hit",
		Short: "Select the date shown at a grid column and row, or at a point",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(rangeFlag, refFlag)
			if err != nil {
				return err
			}

			store := a.selectionStore()
			if err := store.Load(); err != nil {
				return err
			}

			if clearSelection {
				if err := store.Clear(); err != nil {
					return err
				}
				fmt.Println("Selection cleared")
				return nil
			}

			m, err := grid.BuildFromSpec(a.spec, a.calendar, a.ref)
			if err != nil {
				return err
			}

			byPoint := cmd.Flags().Changed("x") || cmd.Flags().Changed("y")
			empty, err := a.cfg.Heatmap.GetEmptyColor()
			if err != nil {
				return err
			}

			date, ok := hitDate(m, a.calendar, a.cfg.Style.RenderStyle(empty), col, row, x, y, byPoint)
			if !ok {
				if byPoint {
					fmt.Printf("No date at point (%g, %g)\n", x, y)
				} else {
					fmt.Printf("No date at column %d, row %d\n", col, row)
				}
				return nil
			}

			if err := store.Select(date, a.spec.String()); err != nil {
				return err
			}
			fmt.Printf("Selected %s (%s)\n", dateutil.FormatDay(date), date.Weekday())
			return nil
		},
	}

	cmd.Flags().StringVar(&rangeFlag, "range", "", "Range specifier (default from config)")
	cmd.Flags().StringVar(&refFlag, "ref", "", "Reference date YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&col, "col", 0, "Week column (0 is the leftmost)")
	cmd.Flags().IntVar(&row, "row", 0, "Weekday row (0 is the first weekday)")
	cmd.Flags().Float64Var(&x, "x", 0, "Point x in layout pixels (overrides --col/--row)")
	cmd.Flags().Float64Var(&y, "y", 0, "Point y in layout pixels (overrides --col/--row)")
	cmd.Flags().BoolVar(&clearSelection, "clear", false, "Clear the selection instead")

	return cmd
}

// hitDate finds the in-range date at a point in layout pixels, or at a
// grid position when byPoint is false
func hitDate(m *grid.Model, cal calendar.Calendar, style render.Style, col, row int, x, y float64, byPoint bool) (time.Time, bool) {
	if byPoint {
		return render.NewLayout(style, m).DateAtPoint(x, y, m, cal)
	}
	return grid.DateAt(col, row, m, cal)
}

func demoCmd() *cobra.Command {
	var rangeFlag, refFlag, outFlag, patternFlag string
	var seed int64

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Write generated demo data for the range",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(rangeFlag, refFlag)
			if err != nil {
				return err
			}

			out := outFlag
			if out == "" {
				out = a.cfg.Heatmap.DataFile
			}
			if out == "" {
				return fmt.Errorf("no output file: pass --out or set heatmap.data_file")
			}

			pattern, err := activity.ParsePattern(patternFlag)
			if err != nil {
				return err
			}

			r, err := daterange.ResolveValid(a.spec, a.calendar, a.ref)
			if err != nil {
				return err
			}

			values, err := activity.Generate(pattern, r, a.calendar, random.New(seed))
			if err != nil {
				return err
			}

			if err := activity.NewFileSource(out, a.calendar, logger).Save(values); err != nil {
				return err
			}

			fmt.Printf("Wrote %d days of %s data to %s\n", len(values), pattern, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&rangeFlag, "range", "", "Range specifier (default from config)")
	cmd.Flags().StringVar(&refFlag, "ref", "", "Reference date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&outFlag, "out", "", "Output data file (default heatmap.data_file)")
	cmd.Flags().StringVar(&patternFlag, "pattern", string(activity.PatternContributions), "random, contributions, steady or sparse")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 seeds from the clock)")

	return cmd
}

// gridJSON is the machine-readable form of a snapshot
type gridJSON struct {
	Range          string       `json:"range"`
	Start          string       `json:"start"`
	End            string       `json:"end"`
	FirstWeekday   int          `json:"first_weekday"`
	WeekdaySymbols []string     `json:"weekday_symbols"`
	MonthLabels    []labelJSON  `json:"month_labels"`
	Weeks          [][]cellJSON `json:"weeks"`
	Selected       string       `json:"selected,omitempty"`
	Layout         layoutJSON   `json:"layout"`
}

// layoutJSON is the pixel geometry of the configured style
type layoutJSON struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	CellSize     float64 `json:"cell_size"`
	CellStep     float64 `json:"cell_step"`
	CornerRadius float64 `json:"corner_radius"`
}

type labelJSON struct {
	Name string `json:"name"`
	Week int    `json:"week"`
}

type cellJSON struct {
	Date    string   `json:"date"`
	Weekday int      `json:"weekday"`
	Row     int      `json:"row"`
	InRange bool     `json:"in_range"`
	Color   string   `json:"color"`
	Value   *float64 `json:"value,omitempty"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
}

func newGridJSON(spec daterange.Spec, snap *heatmap.Snapshot, normalized activity.Values, selected time.Time, style render.Style) gridJSON {
	m := snap.Model
	symbols := m.OrderedWeekdaySymbols()
	layout := render.NewLayout(style, m)
	width, height := layout.Size()

	out := gridJSON{
		Range:          spec.String(),
		Start:          dateutil.FormatDay(m.StartDate),
		End:            dateutil.FormatDay(m.EndDate),
		FirstWeekday:   m.FirstWeekday,
		WeekdaySymbols: symbols[:],
		MonthLabels:    make([]labelJSON, 0, len(m.MonthLabels)),
		Weeks:          make([][]cellJSON, 0, len(m.Weeks)),
		Layout: layoutJSON{
			Width:        width,
			Height:       height,
			CellSize:     style.CellSize,
			CellStep:     layout.CellStep(),
			CornerRadius: style.CellCornerRadius,
		},
	}
	if !selected.IsZero() {
		out.Selected = dateutil.FormatDay(selected)
	}

	for _, label := range m.MonthLabels {
		out.MonthLabels = append(out.MonthLabels, labelJSON{Name: label.Name, Week: label.WeekIndex})
	}

	for col, week := range m.Weeks {
		cells := make([]cellJSON, 0, len(week.Days))
		for _, day := range week.Days {
			row := m.Row(day.Weekday)
			x, y := layout.CellOrigin(col, row)
			cell := cellJSON{
				Date:    dateutil.FormatDay(day.Date),
				Weekday: day.Weekday,
				Row:     row,
				InRange: day.InRange,
				Color:   snap.Colors[day.Date].Hex(),
				X:       x,
				Y:       y,
			}
			if v, ok := normalized[day.Date]; ok && day.InRange {
				v := v
				cell.Value = &v
			}
			cells = append(cells, cell)
		}
		out.Weeks = append(out.Weeks, cells)
	}

	return out
}
