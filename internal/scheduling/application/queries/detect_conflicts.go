package queries

import (
	"context"

	"github.com/felixgeelhaar/dayslot/internal/scheduling/domain"
)

// DetectConflictsQuery requests the conflicts of the current schedule.
type DetectConflictsQuery struct{}

// QueryName implements application.Query.
func (DetectConflictsQuery) QueryName() string { return "scheduling.detect_conflicts" }

// DetectConflictsHandler handles the DetectConflictsQuery.
type DetectConflictsHandler struct {
	scheduler *domain.Scheduler
}

// NewDetectConflictsHandler creates a new DetectConflictsHandler.
func NewDetectConflictsHandler(scheduler *domain.Scheduler) *DetectConflictsHandler {
	return &DetectConflictsHandler{scheduler: scheduler}
}

// Handle executes the DetectConflictsQuery. It never changes the schedule.
func (h *DetectConflictsHandler) Handle(ctx context.Context, query DetectConflictsQuery) ([]ConflictDTO, error) {
	return ToConflictDTOs(h.scheduler.DetectConflicts()), nil
}
