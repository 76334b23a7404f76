package domain

import (
	sharedDomain "github.com/felixgeelhaar/dayslot/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateType = "Schedule"

	RoutingKeyEventAdded       = "scheduling.event.added"
	RoutingKeyConflictDetected = "scheduling.conflict.detected"
)

// EventAdded is emitted when an event is inserted into the schedule
type EventAdded struct {
	sharedDomain.BaseEvent
	ScheduledEventID uuid.UUID `json:"scheduled_event_id"`
	Title            string    `json:"title"`
	Start            string    `json:"start"`
	End              string    `json:"end"`
	DurationMin      int       `json:"duration_min"`
}

// NewEventAdded creates an EventAdded event
func NewEventAdded(scheduleID uuid.UUID, event *Event) *EventAdded {
	return &EventAdded{
		BaseEvent:        sharedDomain.NewBaseEvent(scheduleID, AggregateType, RoutingKeyEventAdded),
		ScheduledEventID: event.ID(),
		Title:            event.Title(),
		Start:            event.Start().String(),
		End:              event.End().String(),
		DurationMin:      event.Duration(),
	}
}

// ConflictDetected is emitted when an insertion produces a conflict involving the new event
type ConflictDetected struct {
	sharedDomain.BaseEvent
	FirstEventID  uuid.UUID `json:"first_event_id"`
	FirstTitle    string    `json:"first_title"`
	FirstRange    string    `json:"first_range"`
	SecondEventID uuid.UUID `json:"second_event_id"`
	SecondTitle   string    `json:"second_title"`
	SecondRange   string    `json:"second_range"`
	OverlapMin    int       `json:"overlap_min"`
	Suggestions   []string  `json:"suggestions"`
}

// NewConflictDetected creates a ConflictDetected event
func NewConflictDetected(scheduleID uuid.UUID, c Conflict) *ConflictDetected {
	suggestions := make([]string, len(c.Suggestions))
	for i, slot := range c.Suggestions {
		suggestions[i] = slot.String()
	}

	return &ConflictDetected{
		BaseEvent:     sharedDomain.NewBaseEvent(scheduleID, AggregateType, RoutingKeyConflictDetected),
		FirstEventID:  c.First.ID(),
		FirstTitle:    c.First.Title(),
		FirstRange:    c.First.Interval().String(),
		SecondEventID: c.Second.ID(),
		SecondTitle:   c.Second.Title(),
		SecondRange:   c.Second.Interval().String(),
		OverlapMin:    c.Overlap().Duration(),
		Suggestions:   suggestions,
	}
}
