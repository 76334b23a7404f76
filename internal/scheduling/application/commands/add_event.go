package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/dayslot/internal/scheduling/application/queries"
	"github.com/felixgeelhaar/dayslot/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/dayslot/internal/shared/application"
	"github.com/felixgeelhaar/dayslot/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/dayslot/pkg/observability"
	"github.com/google/uuid"
)

// AddEventCommand contains the data needed to add an event to the day.
// Start and End use the HH:MM format.
type AddEventCommand struct {
	Title string
	Start string
	End   string
}

// CommandName implements application.Command.
func (AddEventCommand) CommandName() string { return "scheduling.add_event" }

// AddEventResult contains the result of adding an event.
type AddEventResult struct {
	EventID uuid.UUID
	Event   queries.EventDTO
	// Conflicts lists every conflict in the schedule after the insertion.
	Conflicts []queries.ConflictDTO
}

// AddEventHandler handles the AddEventCommand.
type AddEventHandler struct {
	scheduler *domain.Scheduler
	publisher eventbus.DomainEventPublisher
	metrics   observability.Metrics
	logger    *slog.Logger
}

var _ sharedApplication.CommandHandler[AddEventCommand, *AddEventResult] = (*AddEventHandler)(nil)

// NewAddEventHandler creates a new AddEventHandler. A nil publisher drops
// domain events after they are pulled from the scheduler; a nil logger
// discards output.
func NewAddEventHandler(
	scheduler *domain.Scheduler,
	publisher eventbus.DomainEventPublisher,
	metrics observability.Metrics,
	logger *slog.Logger,
) *AddEventHandler {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if logger == nil {
		logger = observability.DiscardLogger()
	}
	return &AddEventHandler{
		scheduler: scheduler,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Handle executes the AddEventCommand.
func (h *AddEventHandler) Handle(ctx context.Context, cmd AddEventCommand) (*AddEventResult, error) {
	ctx = observability.WithOperation(ctx, "add_event")
	timer := observability.StartTimer("add_event").
		WithLogger(h.logger).
		WithMetrics(h.metrics).
		WithTags(observability.T("detection", string(h.scheduler.Detection())))

	event, err := domain.ParseEvent(cmd.Title, cmd.Start, cmd.End)
	if err != nil {
		h.metrics.Counter(observability.MetricEventsRejected, 1, observability.T("reason", rejectReason(err)))
		timer.StopWithError(ctx, err)
		return nil, fmt.Errorf("add event %q: %w", cmd.Title, err)
	}

	conflicts, err := h.scheduler.AddEvent(event)
	if err != nil {
		h.metrics.Counter(observability.MetricEventsRejected, 1, observability.T("reason", rejectReason(err)))
		timer.StopWithError(ctx, err)
		return nil, fmt.Errorf("add event %q: %w", cmd.Title, err)
	}

	h.metrics.Counter(observability.MetricEventsAdded, 1)
	h.metrics.Gauge(observability.MetricScheduleSize, float64(h.scheduler.Len()))

	h.logger.DebugContext(ctx, "event added",
		"event_id", event.ID(),
		"title", event.Title(),
		"range", event.Interval().String(),
		"conflicts", len(conflicts),
	)

	h.publishEvents(ctx)
	timer.Stop(ctx)

	return &AddEventResult{
		EventID:   event.ID(),
		Event:     queries.ToEventDTO(event),
		Conflicts: queries.ToConflictDTOs(conflicts),
	}, nil
}

// publishEvents drains the scheduler's domain events onto the bus.
// Publish failures are logged; the event is already scheduled.
func (h *AddEventHandler) publishEvents(ctx context.Context) {
	events := h.scheduler.PullDomainEvents()
	if h.publisher == nil || len(events) == 0 {
		return
	}

	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(observability.CorrelationIDFromContext(ctx)))

	for _, event := range events {
		if err := h.publisher.PublishDomainEvent(ctx, event); err != nil {
			h.logger.WarnContext(ctx, "failed to publish domain event",
				"routing_key", event.RoutingKey(),
				"event_id", event.EventID(),
				observability.ErrorKey, err,
			)
			continue
		}
		h.metrics.Counter(observability.MetricEventsPublished, 1, observability.T("routing_key", event.RoutingKey()))
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidTimeFormat):
		return "invalid_time_format"
	case errors.Is(err, domain.ErrInvalidInterval):
		return "invalid_interval"
	default:
		return "other"
	}
}
