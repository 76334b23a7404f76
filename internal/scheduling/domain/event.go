package domain

import (
	"errors"
	"fmt"

	sharedDomain "github.com/felixgeelhaar/dayslot/internal/shared/domain"
)

var (
	ErrInvalidInterval       = errors.New("end time must be after start time")
	ErrNilEvent              = errors.New("event is required")
	ErrEventAlreadyScheduled = errors.New("event is already scheduled")
)

// Event is a titled activity occupying a same-day time range.
type Event struct {
	sharedDomain.BaseEntity
	title string
	start ClockTime
	end   ClockTime
	seq   uint64 // insertion order, assigned by the scheduler
}

// NewEvent creates an event. The end must be strictly after the start and both
// must lie within 00:00-23:59; 24:00 is only a working-hours bound.
func NewEvent(title string, start, end ClockTime) (*Event, error) {
	if !start.Valid() || !end.Valid() || start == EndOfDay || end == EndOfDay {
		return nil, fmt.Errorf("%w: %d-%d minutes out of range", ErrInvalidTimeFormat, start, end)
	}
	if end <= start {
		return nil, fmt.Errorf("%w: %s-%s", ErrInvalidInterval, start, end)
	}

	return &Event{
		BaseEntity: sharedDomain.NewBaseEntity(),
		title:      title,
		start:      start,
		end:        end,
	}, nil
}

// ParseEvent creates an event from HH:MM boundary strings.
func ParseEvent(title, start, end string) (*Event, error) {
	startTime, err := ParseClockTime(start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	endTime, err := ParseClockTime(end)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}
	return NewEvent(title, startTime, endTime)
}

// Getters
func (e *Event) Title() string    { return e.title }
func (e *Event) Start() ClockTime { return e.start }
func (e *Event) End() ClockTime   { return e.end }

// Duration returns the event length in minutes.
func (e *Event) Duration() int {
	return e.end.Sub(e.start)
}

// Interval returns the event's time range.
func (e *Event) Interval() TimeRange {
	return TimeRange{Start: e.start, End: e.end}
}

// OverlapsWith checks if this event overlaps with another
func (e *Event) OverlapsWith(other *Event) bool {
	return e.Interval().Overlaps(other.Interval())
}

func (e *Event) String() string {
	return fmt.Sprintf("%q (%s)", e.title, e.Interval())
}

// before orders events by start time, then by insertion order.
func (e *Event) before(other *Event) bool {
	if e.start != other.start {
		return e.start < other.start
	}
	return e.seq < other.seq
}
