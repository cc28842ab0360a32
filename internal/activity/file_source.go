package activity

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/username/calendar-heatmap/internal/calendar"
	"github.com/username/calendar-heatmap/pkg/dateutil"
	"go.uber.org/zap"
)

// FileSource reads and writes per-day values from a local text file.
//
// Format, one day per line:
//
//	# comment
//	2025-01-01 3
//	2025-01-02 0.5
type FileSource struct {
	filePath string
	calendar calendar.Calendar
	logger   *zap.Logger
}

// NewFileSource creates a new FileSource
func NewFileSource(filePath string, cal calendar.Calendar, logger *zap.Logger) *FileSource {
	return &FileSource{
		filePath: filePath,
		calendar: cal,
		logger:   logger,
	}
}

// Load reads all values from the file. Malformed lines are logged and skipped;
// repeated days are summed.
func (fs *FileSource) Load() (Values, error) {
	file, err := os.Open(fs.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer file.Close()

	values := make(Values)
	scanner := bufio.NewScanner(file)
	lineNo := 0
	skipped := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) != 2 {
			fs.logger.Warn("Invalid line format",
				zap.Int("line", lineNo),
				zap.String("content", line))
			skipped++
			continue
		}

		date, err := dateutil.ParseDate(parts[0], fs.calendar.Location())
		if err != nil {
			fs.logger.Warn("Failed to parse date",
				zap.Int("line", lineNo),
				zap.String("date", parts[0]),
				zap.Error(err))
			skipped++
			continue
		}

		value, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			fs.logger.Warn("Failed to parse value",
				zap.Int("line", lineNo),
				zap.String("value", parts[1]),
				zap.Error(err))
			skipped++
			continue
		}

		values.Add(fs.calendar, date, value)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading data file: %w", err)
	}

	fs.logger.Info("Data file loaded",
		zap.String("file", fs.filePath),
		zap.Int("days", len(values)),
		zap.Int("skipped_lines", skipped))

	return values, nil
}

// Save writes values to the file sorted by day, replacing its contents
func (fs *FileSource) Save(values Values) error {
	if dir := filepath.Dir(fs.filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	var sb strings.Builder
	sb.WriteString("# date value\n")
	for _, day := range values.Days() {
		fmt.Fprintf(&sb, "%s %s\n", dateutil.FormatDay(day), strconv.FormatFloat(values[day], 'f', -1, 64))
	}

	if err := atomic.WriteFile(fs.filePath, strings.NewReader(sb.String())); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}

	fs.logger.Info("Data file saved",
		zap.String("file", fs.filePath),
		zap.Int("days", len(values)))

	return nil
}
