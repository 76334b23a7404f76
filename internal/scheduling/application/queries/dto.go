package queries

import (
	"github.com/felixgeelhaar/dayslot/internal/scheduling/domain"
	"github.com/google/uuid"
)

// EventDTO is a data transfer object for scheduled events.
type EventDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Start       string    `json:"start"`
	End         string    `json:"end"`
	DurationMin int       `json:"duration_min"`
}

// SlotDTO is a data transfer object for free slots.
type SlotDTO struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	DurationMin int    `json:"duration_min"`
}

// ConflictDTO is a data transfer object for an overlapping pair.
type ConflictDTO struct {
	First       EventDTO  `json:"first"`
	Second      EventDTO  `json:"second"`
	OverlapMin  int       `json:"overlap_min"`
	Suggestions []SlotDTO `json:"suggestions"`
}

// ToEventDTO converts a domain event.
func ToEventDTO(e *domain.Event) EventDTO {
	return EventDTO{
		ID:          e.ID(),
		Title:       e.Title(),
		Start:       e.Start().String(),
		End:         e.End().String(),
		DurationMin: e.Duration(),
	}
}

// ToEventDTOs converts events, preserving order.
func ToEventDTOs(events []*domain.Event) []EventDTO {
	dtos := make([]EventDTO, len(events))
	for i, e := range events {
		dtos[i] = ToEventDTO(e)
	}
	return dtos
}

// ToSlotDTOs converts slots, preserving order.
func ToSlotDTOs(slots []domain.Slot) []SlotDTO {
	dtos := make([]SlotDTO, len(slots))
	for i, s := range slots {
		dtos[i] = SlotDTO{
			Start:       s.Start.String(),
			End:         s.End.String(),
			DurationMin: s.Duration(),
		}
	}
	return dtos
}

// ToConflictDTOs converts conflicts, preserving order.
func ToConflictDTOs(conflicts []domain.Conflict) []ConflictDTO {
	dtos := make([]ConflictDTO, len(conflicts))
	for i, c := range conflicts {
		dtos[i] = ConflictDTO{
			First:       ToEventDTO(c.First),
			Second:      ToEventDTO(c.Second),
			OverlapMin:  c.Overlap().Duration(),
			Suggestions: ToSlotDTOs(c.Suggestions),
		}
	}
	return dtos
}
