package selection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
	"github.com/username/calendar-heatmap/internal/calendar"
	"github.com/username/calendar-heatmap/pkg/dateutil"
	"go.uber.org/zap"
)

// State is the persisted selection. Date is empty when nothing is selected.
type State struct {
	Date      string `json:"date,omitempty"`
	Range     string `json:"range,omitempty"` // range specifier the date was picked from
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Store keeps the selected date in a JSON file so every grid and every
// command invocation sees the same selection
type Store struct {
	stateFile string
	calendar  calendar.Calendar
	state     *State
	logger    *zap.Logger
}

// NewStore creates a store backed by stateFile
func NewStore(stateFile string, cal calendar.Calendar, logger *zap.Logger) *Store {
	return &Store{
		stateFile: stateFile,
		calendar:  cal,
		logger:    logger,
	}
}

// Load reads the state file. A missing file is an empty selection.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.stateFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.state = &State{}
			return nil
		}
		return fmt.Errorf("failed to read selection file: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to parse selection file: %w", err)
	}

	if state.Date != "" {
		if _, err := dateutil.ParseDate(state.Date, s.calendar.Location()); err != nil {
			return fmt.Errorf("invalid selected date %q: %w", state.Date, err)
		}
	}

	s.state = &state
	s.logger.Debug("Selection loaded",
		zap.String("date", state.Date),
		zap.String("range", state.Range))

	return nil
}

// Save writes the state file, creating its directory if needed
func (s *Store) Save() error {
	if s.state == nil {
		s.state = &State{}
	}

	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}

	if dir := filepath.Dir(s.stateFile); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create selection directory: %w", err)
		}
	}

	if err := atomic.WriteFile(s.stateFile, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write selection file: %w", err)
	}

	s.logger.Info("Selection saved", zap.String("date", s.state.Date))

	return nil
}

// Select stores date as the selection. rangeSpec records where it was picked.
func (s *Store) Select(date time.Time, rangeSpec string) error {
	day := s.calendar.StartOfDay(date)
	s.state = &State{
		Date:      dateutil.FormatDay(day),
		Range:     rangeSpec,
		UpdatedAt: time.Now().Format(time.RFC3339),
	}
	return s.Save()
}

// Clear removes the selection
func (s *Store) Clear() error {
	s.state = &State{UpdatedAt: time.Now().Format(time.RFC3339)}
	return s.Save()
}

// Selected returns the selected day, if any
func (s *Store) Selected() (time.Time, bool) {
	if s.state == nil || s.state.Date == "" {
		return time.Time{}, false
	}

	day, err := dateutil.ParseDate(s.state.Date, s.calendar.Location())
	if err != nil {
		return time.Time{}, false
	}
	return s.calendar.StartOfDay(day), true
}

// State returns the current state
func (s *Store) State() *State {
	return s.state
}
