package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDetectionMode is returned for an unknown detection mode name.
var ErrInvalidDetectionMode = errors.New("invalid conflict detection mode")

// DetectionMode selects how overlapping events are paired up.
type DetectionMode string

const (
	// DetectionAdjacent compares each event with its time-sorted neighbour only.
	// An event overlapping a non-neighbour can go unreported. This is the default.
	DetectionAdjacent DetectionMode = "adjacent"

	// DetectionSweep compares each event with the earlier event that ends latest,
	// so overlaps hidden behind a short neighbour are also reported.
	DetectionSweep DetectionMode = "sweep"
)

// ParseDetectionMode parses a detection mode name. Empty selects the default.
func ParseDetectionMode(s string) (DetectionMode, error) {
	switch DetectionMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", DetectionAdjacent:
		return DetectionAdjacent, nil
	case DetectionSweep:
		return DetectionSweep, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: adjacent, sweep)", ErrInvalidDetectionMode, s)
	}
}

// Conflict is an overlapping pair of events together with alternative slots
// for the later one.
type Conflict struct {
	First       *Event
	Second      *Event
	Suggestions []Slot
}

// Overlap returns the part of the day both events claim.
func (c Conflict) Overlap() TimeRange {
	overlap, _ := c.First.Interval().Intersection(c.Second.Interval())
	return overlap
}

// Involves reports whether the event takes part in the conflict.
func (c Conflict) Involves(event *Event) bool {
	return c.First == event || c.Second == event
}
