package domain

import (
	"fmt"
	"sort"
	"sync"
	"time"

	sharedDomain "github.com/felixgeelhaar/dayslot/internal/shared/domain"
)

// SchedulerConfig fixes the scheduler's search window and policies.
type SchedulerConfig struct {
	WorkingHours   WorkingHours
	Detection      DetectionMode
	SlotStep       int // minutes between candidate slot starts
	MaxSuggestions int // slots suggested per conflict
}

// DefaultSchedulerConfig returns 08:00-18:00 working hours, adjacent detection,
// 30 minute steps and 3 suggestions.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		WorkingHours:   DefaultWorkingHours(),
		Detection:      DetectionAdjacent,
		SlotStep:       DefaultSlotStep,
		MaxSuggestions: DefaultMaxSuggestions,
	}
}

// Scheduler owns one day's events, kept sorted by start time, and reports
// overlaps between them. It is safe for concurrent use.
type Scheduler struct {
	sharedDomain.BaseAggregateRoot
	mu        sync.Mutex
	events    []*Event
	detection DetectionMode
	finder    *SlotFinder
	nextSeq   uint64
}

// NewScheduler creates an empty scheduler.
func NewScheduler(cfg SchedulerConfig) (*Scheduler, error) {
	if err := cfg.WorkingHours.Validate(); err != nil {
		return nil, err
	}
	if cfg.SlotStep > cfg.WorkingHours.Length() {
		return nil, fmt.Errorf("%w: %d minutes for %s", ErrInvalidSlotStep, cfg.SlotStep, cfg.WorkingHours)
	}
	detection, err := ParseDetectionMode(string(cfg.Detection))
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		events:            make([]*Event, 0),
		detection:         detection,
		finder:            NewSlotFinder(cfg.WorkingHours, cfg.SlotStep, cfg.MaxSuggestions),
	}, nil
}

// WorkingHours returns the configured working window.
func (s *Scheduler) WorkingHours() WorkingHours { return s.finder.WorkingHours() }

// Detection returns the configured detection mode.
func (s *Scheduler) Detection() DetectionMode { return s.detection }

// Events returns the scheduled events in start order.
func (s *Scheduler) Events() []*Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Event, len(s.events))
	copy(out, s.events)
	return out
}

// UpdatedAt returns when an event was last added.
func (s *Scheduler) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.BaseAggregateRoot.UpdatedAt()
}

// Len returns the number of scheduled events.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

// AddEvent inserts an event, restores start order and returns every conflict
// in the resulting schedule, not only those involving the new event.
func (s *Scheduler) AddEvent(event *Event) ([]Conflict, error) {
	if event == nil {
		return nil, ErrNilEvent
	}
	if event.end <= event.start {
		return nil, ErrInvalidInterval
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if event.seq != 0 {
		return nil, ErrEventAlreadyScheduled
	}
	s.nextSeq++
	event.seq = s.nextSeq

	s.events = append(s.events, event)
	s.sortEvents()
	s.Touch()

	s.RecordEvent(NewEventAdded(s.ID(), event))

	conflicts := s.detectConflicts()
	for _, c := range conflicts {
		if c.Involves(event) {
			s.RecordEvent(NewConflictDetected(s.ID(), c))
		}
	}

	return conflicts, nil
}

// DetectConflicts reports overlapping pairs in the current schedule.
// It does not change state; repeated calls give identical results.
func (s *Scheduler) DetectConflicts() []Conflict {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detectConflicts()
}

// SuggestSlots returns alternative slots for the event's duration that avoid
// every scheduled event, the event itself included.
func (s *Scheduler) SuggestSlots(event *Event) []Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finder.Find(event.Duration(), s.busy())
}

// FindFreeSlots returns free slots of the given length in minutes.
func (s *Scheduler) FindFreeSlots(duration int) ([]Slot, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finder.Find(duration, s.busy()), nil
}

// PullDomainEvents returns and clears the events raised since the last pull.
func (s *Scheduler) PullDomainEvents() []sharedDomain.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.BaseAggregateRoot.PullDomainEvents()
}

func (s *Scheduler) detectConflicts() []Conflict {
	conflicts := make([]Conflict, 0)
	if len(s.events) < 2 {
		return conflicts
	}

	busy := s.busy()
	flag := func(first, second *Event) {
		conflicts = append(conflicts, Conflict{
			First:       first,
			Second:      second,
			Suggestions: s.finder.Find(second.Duration(), busy),
		})
	}

	switch s.detection {
	case DetectionSweep:
		latest := s.events[0]
		for _, next := range s.events[1:] {
			if latest.end > next.start {
				flag(latest, next)
			}
			if next.end > latest.end {
				latest = next
			}
		}
	default:
		for i := 0; i < len(s.events)-1; i++ {
			current, next := s.events[i], s.events[i+1]
			if current.end > next.start {
				flag(current, next)
			}
		}
	}

	return conflicts
}

func (s *Scheduler) busy() []TimeRange {
	busy := make([]TimeRange, len(s.events))
	for i, e := range s.events {
		busy[i] = e.Interval()
	}
	return busy
}

// sortEvents sorts events by start time, ties by insertion order
func (s *Scheduler) sortEvents() {
	sort.Slice(s.events, func(i, j int) bool {
		return s.events[i].before(s.events[j])
	})
}
