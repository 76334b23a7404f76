package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidWorkingHours is returned when the working window is empty or out of range.
var ErrInvalidWorkingHours = errors.New("working hours end must be after start")

// Default working window.
const (
	DefaultWorkStart ClockTime = 8 * 60
	DefaultWorkEnd   ClockTime = 18 * 60
)

// WorkingHours is the window alternative slots are searched in.
type WorkingHours struct {
	Start ClockTime
	End   ClockTime
}

// DefaultWorkingHours returns 08:00-18:00.
func DefaultWorkingHours() WorkingHours {
	return WorkingHours{Start: DefaultWorkStart, End: DefaultWorkEnd}
}

// NewWorkingHours validates and creates a working window.
func NewWorkingHours(start, end ClockTime) (WorkingHours, error) {
	wh := WorkingHours{Start: start, End: end}
	if err := wh.Validate(); err != nil {
		return WorkingHours{}, err
	}
	return wh, nil
}

// ParseWorkingHours parses HH:MM bounds. The end may be 24:00.
func ParseWorkingHours(start, end string) (WorkingHours, error) {
	startTime, err := ParseClockTime(start)
	if err != nil {
		return WorkingHours{}, fmt.Errorf("working hours start: %w", err)
	}
	endTime, err := ParseBoundary(end)
	if err != nil {
		return WorkingHours{}, fmt.Errorf("working hours end: %w", err)
	}
	return NewWorkingHours(startTime, endTime)
}

// Validate checks the window is non-empty and within one day.
func (w WorkingHours) Validate() error {
	if !w.Start.Valid() || !w.End.Valid() || w.End <= w.Start {
		return fmt.Errorf("%w: %s-%s", ErrInvalidWorkingHours, w.Start, w.End)
	}
	return nil
}

// Range returns the window as a time range.
func (w WorkingHours) Range() TimeRange {
	return TimeRange{Start: w.Start, End: w.End}
}

// Length returns the window length in minutes.
func (w WorkingHours) Length() int {
	return w.End.Sub(w.Start)
}

func (w WorkingHours) String() string {
	return w.Range().String()
}
