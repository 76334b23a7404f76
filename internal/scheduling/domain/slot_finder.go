package domain

import "errors"

var (
	// ErrInvalidDuration is returned when a slot search is asked for a non-positive duration.
	ErrInvalidDuration = errors.New("slot duration must be positive")
	// ErrInvalidSlotStep is returned when the candidate step is longer than the working window.
	ErrInvalidSlotStep = errors.New("slot step must not exceed the working window")
)

const (
	// DefaultSlotStep is the distance in minutes between candidate slot starts.
	DefaultSlotStep = 30
	// DefaultMaxSuggestions caps the number of slots suggested per conflict.
	DefaultMaxSuggestions = 3
)

// Slot is a candidate free interval.
type Slot struct {
	Start ClockTime
	End   ClockTime
}

// Duration returns the slot length in minutes.
func (s Slot) Duration() int {
	return s.End.Sub(s.Start)
}

// Range returns the slot as a time range.
func (s Slot) Range() TimeRange {
	return TimeRange{Start: s.Start, End: s.End}
}

func (s Slot) String() string {
	return s.Range().String()
}

// SlotFinder searches a working window for free slots of a given length.
// Candidates start at the window start and advance by a fixed step; the first
// candidates that avoid every busy interval win.
type SlotFinder struct {
	hours          WorkingHours
	step           int
	maxSuggestions int
}

// NewSlotFinder creates a slot finder. Non-positive step or cap fall back to the defaults;
// a step longer than the window is clamped to the window length.
func NewSlotFinder(hours WorkingHours, step, maxSuggestions int) *SlotFinder {
	if step <= 0 {
		step = DefaultSlotStep
	}
	if length := hours.Length(); length > 0 && step > length {
		step = length
	}
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}
	return &SlotFinder{
		hours:          hours,
		step:           step,
		maxSuggestions: maxSuggestions,
	}
}

// WorkingHours returns the searched window.
func (f *SlotFinder) WorkingHours() WorkingHours { return f.hours }

// Step returns the candidate step in minutes.
func (f *SlotFinder) Step() int { return f.step }

// MaxSuggestions returns the result cap.
func (f *SlotFinder) MaxSuggestions() int { return f.maxSuggestions }

// Find returns up to MaxSuggestions slots of exactly duration minutes, in time order,
// that fit inside the working window and overlap none of the busy intervals.
// The result is empty, never nil, when nothing fits.
func (f *SlotFinder) Find(duration int, busy []TimeRange) []Slot {
	slots := make([]Slot, 0, min(f.maxSuggestions, DefaultMaxSuggestions))
	if duration <= 0 || duration > f.hours.Length() {
		return slots
	}

	window := f.hours.Range()
	latest := f.hours.End - ClockTime(duration)
	for t := f.hours.Start; t <= latest; t = t.Add(f.step) {
		slot := Slot{Start: t, End: t.Add(duration)}
		if !slot.Range().Within(window) {
			break
		}
		if overlapsAny(slot.Range(), busy) {
			continue
		}
		slots = append(slots, slot)
		if len(slots) >= f.maxSuggestions {
			break
		}
	}

	return slots
}
