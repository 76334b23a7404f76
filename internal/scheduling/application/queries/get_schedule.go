package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/dayslot/internal/scheduling/domain"
	"github.com/google/uuid"
)

// ScheduleDTO is a data transfer object for the day's schedule.
type ScheduleDTO struct {
	ID                 uuid.UUID  `json:"id"`
	WorkStart          string     `json:"work_start"`
	WorkEnd            string     `json:"work_end"`
	Detection          string     `json:"detection"`
	Events             []EventDTO `json:"events"`
	TotalScheduledMins int        `json:"total_scheduled_mins"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// GetScheduleQuery requests the ordered event list.
type GetScheduleQuery struct{}

// QueryName implements application.Query.
func (GetScheduleQuery) QueryName() string { return "scheduling.get_schedule" }

// GetScheduleHandler handles the GetScheduleQuery.
type GetScheduleHandler struct {
	scheduler *domain.Scheduler
}

// NewGetScheduleHandler creates a new GetScheduleHandler.
func NewGetScheduleHandler(scheduler *domain.Scheduler) *GetScheduleHandler {
	return &GetScheduleHandler{scheduler: scheduler}
}

// Handle executes the GetScheduleQuery.
func (h *GetScheduleHandler) Handle(ctx context.Context, query GetScheduleQuery) (*ScheduleDTO, error) {
	events := h.scheduler.Events()
	hours := h.scheduler.WorkingHours()

	total := 0
	for _, e := range events {
		total += e.Duration()
	}

	return &ScheduleDTO{
		ID:                 h.scheduler.ID(),
		WorkStart:          hours.Start.String(),
		WorkEnd:            hours.End.String(),
		Detection:          string(h.scheduler.Detection()),
		Events:             ToEventDTOs(events),
		TotalScheduledMins: total,
		UpdatedAt:          h.scheduler.UpdatedAt(),
	}, nil
}
