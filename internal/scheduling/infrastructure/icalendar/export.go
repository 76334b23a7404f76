package icalendar

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/felixgeelhaar/dayslot/internal/scheduling/application/queries"
	"github.com/felixgeelhaar/dayslot/internal/scheduling/domain"
	"github.com/google/uuid"
)

const (
	// ProductID identifies calendars written by dayslot.
	ProductID = "-//Dayslot//Day Planner//EN"

	// PropXSuggestion carries one suggested alternative slot, as HH:MM-HH:MM.
	PropXSuggestion = "X-DAYSLOT-SUGGESTION"

	floatingFormat = "20060102T150405"
)

// Exporter writes a schedule as an iCalendar document with floating times
// on a single date.
type Exporter struct {
	now func() time.Time
}

// NewExporter creates a new Exporter.
func NewExporter() *Exporter {
	return &Exporter{now: time.Now}
}

// ExportFile writes the calendar to path, replacing any existing file.
func (e *Exporter) ExportFile(path string, day time.Time, schedule *queries.ScheduleDTO, conflicts []queries.ConflictDTO) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := e.Export(f, day, schedule, conflicts); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// Export writes one VEVENT per scheduled event. An event that is the later
// half of a conflict gets its suggested slots as X-DAYSLOT-SUGGESTION
// properties and a readable summary in DESCRIPTION.
func (e *Exporter) Export(w io.Writer, day time.Time, schedule *queries.ScheduleDTO, conflicts []queries.ConflictDTO) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)

	notes := conflictNotes(conflicts)
	stamp := e.now().UTC()

	for _, ev := range schedule.Events {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, ev.ID.String()+"@dayslot")
		event.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
		event.Props.SetText(ical.PropSummary, ev.Title)

		start, err := floating(ical.PropDateTimeStart, day, ev.Start)
		if err != nil {
			return err
		}
		end, err := floating(ical.PropDateTimeEnd, day, ev.End)
		if err != nil {
			return err
		}
		event.Props.Set(start)
		event.Props.Set(end)

		if note, ok := notes[ev.ID]; ok {
			event.Props.SetText(ical.PropDescription, note.description())
			for _, slot := range note.suggestions {
				prop := ical.NewProp(PropXSuggestion)
				prop.Value = slot.Start + "-" + slot.End
				event.Props.Add(prop)
			}
		}

		cal.Children = append(cal.Children, event.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

func floating(name string, day time.Time, hhmm string) (*ical.Prop, error) {
	c, err := domain.ParseClockTime(hhmm)
	if err != nil {
		return nil, err
	}
	t := time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC)

	prop := ical.NewProp(name)
	prop.Value = t.Format(floatingFormat)
	return prop, nil
}

type conflictNote struct {
	with        []string
	suggestions []queries.SlotDTO
}

func (n conflictNote) description() string {
	var b strings.Builder
	b.WriteString("Conflicts with: " + strings.Join(n.with, ", "))
	if len(n.suggestions) == 0 {
		b.WriteString("\nNo free slot within working hours")
		return b.String()
	}
	slots := make([]string, len(n.suggestions))
	for i, s := range n.suggestions {
		slots[i] = s.Start + "-" + s.End
	}
	b.WriteString("\nSuggested times: " + strings.Join(slots, ", "))
	return b.String()
}

// conflictNotes indexes conflicts by the later event of each pair.
func conflictNotes(conflicts []queries.ConflictDTO) map[uuid.UUID]conflictNote {
	notes := make(map[uuid.UUID]conflictNote)
	for _, c := range conflicts {
		note := notes[c.Second.ID]
		note.with = append(note.with, fmt.Sprintf("%s (%s-%s)", c.First.Title, c.First.Start, c.First.End))
		if note.suggestions == nil {
			note.suggestions = c.Suggestions
		}
		notes[c.Second.ID] = note
	}
	return notes
}
