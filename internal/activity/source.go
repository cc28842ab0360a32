package activity

import (
	"path/filepath"
	"strings"

	"github.com/username/calendar-heatmap/internal/calendar"
	"github.com/username/calendar-heatmap/internal/daterange"
	"go.uber.org/zap"
)

// Source loads the values of a range
type Source interface {
	LoadRange(r daterange.Range) (Values, error)
}

// LoadRange returns every value in the file. Days outside r are kept so
// normalization sees the whole data set.
func (fs *FileSource) LoadRange(daterange.Range) (Values, error) {
	return fs.Load()
}

// OpenSource picks the source for a data file by extension: .ics files are
// read as iCalendar, anything else as the text format
func OpenSource(path string, cal calendar.Calendar, weight Weight, logger *zap.Logger) Source {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ics", ".ical":
		return NewICalSource(path, cal, weight, logger)
	default:
		return NewFileSource(path, cal, logger)
	}
}
