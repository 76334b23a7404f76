// Package icalendar imports a day's events from iCalendar data and exports
// the schedule with its conflict suggestions.
package icalendar

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/felixgeelhaar/dayslot/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/dayslot/internal/scheduling/domain"
	"github.com/felixgeelhaar/dayslot/pkg/observability"
)

// Skip reasons reported for VEVENTs that cannot become same-day events.
const (
	SkipMissingTime = "missing_time"
	SkipAllDay      = "all_day"
	SkipMultiDay    = "multi_day"
	SkipCancelled   = "cancelled"
)

// ImportResult holds the commands read from a calendar and what was left out.
type ImportResult struct {
	Commands []commands.AddEventCommand
	// Skipped counts VEVENTs by skip reason.
	Skipped map[string]int
}

// SkippedTotal returns the number of skipped VEVENTs.
func (r *ImportResult) SkippedTotal() int {
	total := 0
	for _, n := range r.Skipped {
		total += n
	}
	return total
}

// Importer reads VEVENTs as add-event commands. Only the wall-clock part of
// DTSTART and DTEND is used; no timezone conversion takes place.
type Importer struct {
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewImporter creates a new Importer. A nil logger discards output.
func NewImporter(logger *slog.Logger) *Importer {
	if logger == nil {
		logger = observability.DiscardLogger()
	}
	return &Importer{logger: logger, metrics: observability.NoopMetrics{}}
}

// WithMetrics counts imported and skipped VEVENTs on m.
func (i *Importer) WithMetrics(m observability.Metrics) *Importer {
	if m != nil {
		i.metrics = m
	}
	return i
}

// ImportFile reads the calendar file at path.
func (i *Importer) ImportFile(path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	result, err := i.Import(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}

// Import reads every calendar in r. Events are returned in file order.
func (i *Importer) Import(r io.Reader) (*ImportResult, error) {
	result := &ImportResult{
		Commands: make([]commands.AddEventCommand, 0),
		Skipped:  make(map[string]int),
	}

	decoder := ical.NewDecoder(r)
	for {
		cal, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}

			cmd, reason := toCommand(comp)
			if reason != "" {
				result.Skipped[reason]++
				i.logger.Debug("skipping calendar event",
					"summary", summary(comp),
					"reason", reason,
				)
				continue
			}
			result.Commands = append(result.Commands, cmd)
		}
	}

	i.metrics.Counter(observability.MetricImportedEvents, int64(len(result.Commands)))
	for reason, n := range result.Skipped {
		i.metrics.Counter(observability.MetricImportSkipped, int64(n), observability.T("reason", reason))
	}

	return result, nil
}

func toCommand(comp *ical.Component) (commands.AddEventCommand, string) {
	if status := comp.Props.Get(ical.PropStatus); status != nil && strings.EqualFold(status.Value, "CANCELLED") {
		return commands.AddEventCommand{}, SkipCancelled
	}

	startProp := comp.Props.Get(ical.PropDateTimeStart)
	if startProp == nil {
		return commands.AddEventCommand{}, SkipMissingTime
	}
	if startProp.ValueType() == ical.ValueDate {
		return commands.AddEventCommand{}, SkipAllDay
	}
	if comp.Props.Get(ical.PropDateTimeEnd) == nil && comp.Props.Get(ical.PropDuration) == nil {
		return commands.AddEventCommand{}, SkipMissingTime
	}

	event := &ical.Event{Component: comp}
	start, err := event.DateTimeStart(time.UTC)
	if err != nil {
		return commands.AddEventCommand{}, SkipMissingTime
	}
	end, err := event.DateTimeEnd(time.UTC)
	if err != nil {
		return commands.AddEventCommand{}, SkipMissingTime
	}
	end = end.In(start.Location())

	// Events end by 23:59, so one ending at the next midnight is multi-day too.
	if !sameDay(start, end) {
		return commands.AddEventCommand{}, SkipMultiDay
	}

	return commands.AddEventCommand{
		Title: summary(comp),
		Start: clock(start),
		End:   clock(end),
	}, ""
}

func summary(comp *ical.Component) string {
	if prop := comp.Props.Get(ical.PropSummary); prop != nil {
		return prop.Value
	}
	return ""
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func clock(t time.Time) string {
	c, _ := domain.NewClockTime(t.Hour(), t.Minute())
	return c.String()
}
