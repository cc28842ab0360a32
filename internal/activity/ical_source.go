package activity

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/username/calendar-heatmap/internal/calendar"
	"github.com/username/calendar-heatmap/internal/daterange"
	"go.uber.org/zap"
)

// maxOccurrencesPerEvent caps recurrence expansion of a single event
const maxOccurrencesPerEvent = 5000

// Weight decides what an event occurrence adds to its day
type Weight string

const (
	// WeightCount adds 1 per occurrence
	WeightCount Weight = "count"

	// WeightHours adds the occurrence duration in hours
	WeightHours Weight = "hours"
)

// ICalSource turns the events of an iCalendar file into per-day values.
// Recurring events are expanded, EXDATEs removed and RECURRENCE-ID overrides
// moved to their new start. Every occurrence counts on the day it starts.
type ICalSource struct {
	filePath string
	calendar calendar.Calendar
	weight   Weight
	logger   *zap.Logger
}

// NewICalSource creates a source for an .ics file. An empty weight counts occurrences.
func NewICalSource(filePath string, cal calendar.Calendar, weight Weight, logger *zap.Logger) *ICalSource {
	if weight == "" {
		weight = WeightCount
	}
	return &ICalSource{
		filePath: filePath,
		calendar: cal,
		weight:   weight,
		logger:   logger,
	}
}

// icalEvent is the part of a VEVENT needed to place occurrences on days
type icalEvent struct {
	uid        string
	start      time.Time
	end        time.Time
	allDay     bool
	rrule      string
	exDates    []time.Time
	recurrence *time.Time
}

// LoadRange returns values for the occurrences starting inside r
func (s *ICalSource) LoadRange(r daterange.Range) (Values, error) {
	body, err := os.ReadFile(s.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar file: %w", err)
	}
	if len(body) == 0 {
		return nil, errors.New("empty calendar file")
	}

	parsed, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar file: %w", err)
	}

	var base []icalEvent
	overrides := make(map[string][]icalEvent)
	for _, ve := range parsed.Events() {
		ev, err := parseVEvent(ve)
		if err != nil {
			s.logger.Warn("Skipping calendar event", zap.String("file", s.filePath), zap.Error(err))
			continue
		}
		if ev.recurrence != nil {
			overrides[ev.uid] = append(overrides[ev.uid], ev)
		} else {
			base = append(base, ev)
		}
	}

	// Occurrences are collected over [start, day after end)
	from := r.Start
	to := s.calendar.AddDays(r.End, 1)

	values := make(Values)
	occurrences := 0
	for _, ev := range base {
		for _, occ := range s.expand(ev, overrides[ev.uid], from, to) {
			day := s.dayOf(occ.start, occ.allDay)
			if !r.Contains(day) {
				continue
			}
			values[day] += s.weigh(occ)
			occurrences++
		}
	}

	s.logger.Info("Calendar file loaded",
		zap.String("file", s.filePath),
		zap.Int("events", len(base)),
		zap.Int("occurrences", occurrences),
		zap.Int("days", len(values)))

	return values, nil
}

// expand lists the occurrences of ev starting in [from, to)
func (s *ICalSource) expand(ev icalEvent, overrides []icalEvent, from, to time.Time) []icalEvent {
	if ev.rrule == "" {
		if o, ok := findOverride(overrides, ev.start); ok {
			ev = o
		}
		if ev.start.Before(from) || !ev.start.Before(to) {
			return nil
		}
		return []icalEvent{ev}
	}

	rule, err := rrule.StrToRRule(ev.rrule)
	if err != nil {
		s.logger.Warn("Skipping event with invalid RRULE",
			zap.String("uid", ev.uid), zap.String("rrule", ev.rrule), zap.Error(err))
		return nil
	}
	rule.DTStart(ev.start)

	var set rrule.Set
	set.RRule(rule)
	for _, ex := range ev.exDates {
		set.ExDate(ex.In(ev.start.Location()))
	}

	starts := set.Between(from.In(ev.start.Location()), to.In(ev.start.Location()), true)
	if len(starts) > maxOccurrencesPerEvent {
		s.logger.Warn("Truncated recurring event",
			zap.String("uid", ev.uid), zap.Int("cap", maxOccurrencesPerEvent))
		starts = starts[:maxOccurrencesPerEvent]
	}

	duration := ev.end.Sub(ev.start)
	out := make([]icalEvent, 0, len(starts))
	for _, start := range starts {
		occ := ev
		occ.start = start
		occ.end = start.Add(duration)
		if o, ok := findOverride(overrides, start); ok {
			occ = o
		}
		// An override may move the occurrence past the window
		if occ.start.Before(from) || !occ.start.Before(to) {
			continue
		}
		out = append(out, occ)
	}
	return out
}

func (s *ICalSource) dayOf(t time.Time, allDay bool) time.Time {
	if allDay {
		// Floating date: keep the written day regardless of zone
		day, err := s.calendar.Date(t.Year(), int(t.Month()), t.Day())
		if err == nil {
			return day
		}
	}
	return s.calendar.StartOfDay(t)
}

func (s *ICalSource) weigh(occ icalEvent) float64 {
	if s.weight == WeightHours {
		if occ.allDay || !occ.end.After(occ.start) {
			return 0
		}
		return occ.end.Sub(occ.start).Hours()
	}
	return 1
}

func findOverride(overrides []icalEvent, start time.Time) (icalEvent, bool) {
	for _, o := range overrides {
		if o.recurrence.Equal(start) {
			return o, true
		}
	}
	return icalEvent{}, false
}

func parseVEvent(ve *ical.VEvent) (icalEvent, error) {
	var ev icalEvent

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return ev, errors.New("missing UID")
	}
	ev.uid = uid.Value

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return ev, fmt.Errorf("event %s: missing DTSTART", ev.uid)
	}
	start, err := ve.GetStartAt()
	if err != nil {
		return ev, fmt.Errorf("event %s: invalid DTSTART: %w", ev.uid, err)
	}
	ev.start = start
	ev.allDay = !strings.Contains(dtStart.Value, "T")
	if vs, ok := dtStart.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		ev.allDay = true
	}

	ev.end = start
	if end, err := ve.GetEndAt(); err == nil {
		ev.end = end
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		ev.rrule = p.Value
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			if t, err := parseICSTime(part, start.Location()); err == nil {
				ev.exDates = append(ev.exDates, t)
			}
		}
	}

	if p := ve.GetProperty("RECURRENCE-ID"); p != nil {
		if t, err := parseICSTime(p.Value, start.Location()); err == nil {
			ev.recurrence = &t
		}
	}

	return ev, nil
}

// parseICSTime parses DATE, local DATE-TIME and UTC DATE-TIME values.
// Values without a zone are read in loc.
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return time.ParseInLocation("20060102", v, loc)
	}
}
