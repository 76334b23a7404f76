package queries

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/dayslot/internal/scheduling/domain"
)

// FindFreeSlotsQuery contains the parameters for finding free slots.
type FindFreeSlotsQuery struct {
	DurationMin int
}

// QueryName implements application.Query.
func (FindFreeSlotsQuery) QueryName() string { return "scheduling.find_free_slots" }

// FindFreeSlotsHandler handles the FindFreeSlotsQuery.
type FindFreeSlotsHandler struct {
	scheduler *domain.Scheduler
}

// NewFindFreeSlotsHandler creates a new FindFreeSlotsHandler.
func NewFindFreeSlotsHandler(scheduler *domain.Scheduler) *FindFreeSlotsHandler {
	return &FindFreeSlotsHandler{scheduler: scheduler}
}

// Handle executes the FindFreeSlotsQuery.
func (h *FindFreeSlotsHandler) Handle(ctx context.Context, query FindFreeSlotsQuery) ([]SlotDTO, error) {
	slots, err := h.scheduler.FindFreeSlots(query.DurationMin)
	if err != nil {
		return nil, fmt.Errorf("find free slots of %d minutes: %w", query.DurationMin, err)
	}
	return ToSlotDTOs(slots), nil
}
