package subscribers

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/dayslot/internal/scheduling/domain"
	"github.com/felixgeelhaar/dayslot/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/dayslot/pkg/observability"
)

// ScheduleSubscriber records schedule changes in logs and metrics.
type ScheduleSubscriber struct {
	metrics observability.Metrics
	logger  *slog.Logger
	enabled bool
}

// NewScheduleSubscriber creates a new schedule subscriber.
func NewScheduleSubscriber(metrics observability.Metrics, logger *slog.Logger) *ScheduleSubscriber {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if logger == nil {
		logger = observability.DiscardLogger()
	}
	return &ScheduleSubscriber{
		metrics: metrics,
		logger:  logger,
		enabled: true,
	}
}

// SetEnabled enables or disables the subscriber.
func (s *ScheduleSubscriber) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// EventTypes returns the event types this subscriber handles.
func (s *ScheduleSubscriber) EventTypes() []string {
	return []string{
		domain.RoutingKeyEventAdded,
		domain.RoutingKeyConflictDetected,
	}
}

// Handle processes an event.
func (s *ScheduleSubscriber) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	if !s.enabled {
		s.logger.Debug("schedule subscriber disabled, skipping event",
			"routing_key", event.RoutingKey,
		)
		return nil
	}

	if event.Metadata.CorrelationID != "" {
		ctx = observability.WithCorrelationID(ctx, event.Metadata.CorrelationID)
	}
	s.metrics.Counter(observability.MetricEventsConsumed, 1, observability.T("routing_key", event.RoutingKey))

	switch event.RoutingKey {
	case domain.RoutingKeyEventAdded:
		return s.handleEventAdded(ctx, event)
	case domain.RoutingKeyConflictDetected:
		return s.handleConflictDetected(ctx, event)
	default:
		s.logger.WarnContext(ctx, "unknown event type",
			"routing_key", event.RoutingKey,
		)
		return nil
	}
}

// EventAddedPayload is the payload for scheduling.event.added events.
type EventAddedPayload struct {
	ScheduledEventID string `json:"scheduled_event_id"`
	Title            string `json:"title"`
	Start            string `json:"start"`
	End              string `json:"end"`
	DurationMin      int    `json:"duration_min"`
}

func (s *ScheduleSubscriber) handleEventAdded(ctx context.Context, event *eventbus.ConsumedEvent) error {
	var payload EventAddedPayload
	if err := event.DecodePayload(&payload); err != nil {
		s.logger.ErrorContext(ctx, "failed to decode event payload",
			"routing_key", event.RoutingKey,
			"event_id", event.EventID,
			observability.ErrorKey, err,
		)
		return err
	}

	s.logger.InfoContext(ctx, "event scheduled",
		"event_id", payload.ScheduledEventID,
		"title", payload.Title,
		"start", payload.Start,
		"end", payload.End,
		"duration_min", payload.DurationMin,
	)
	return nil
}

// ConflictDetectedPayload is the payload for scheduling.conflict.detected events.
type ConflictDetectedPayload struct {
	FirstTitle  string   `json:"first_title"`
	FirstRange  string   `json:"first_range"`
	SecondTitle string   `json:"second_title"`
	SecondRange string   `json:"second_range"`
	OverlapMin  int      `json:"overlap_min"`
	Suggestions []string `json:"suggestions"`
}

func (s *ScheduleSubscriber) handleConflictDetected(ctx context.Context, event *eventbus.ConsumedEvent) error {
	var payload ConflictDetectedPayload
	if err := event.DecodePayload(&payload); err != nil {
		s.logger.ErrorContext(ctx, "failed to decode conflict payload",
			"routing_key", event.RoutingKey,
			"event_id", event.EventID,
			observability.ErrorKey, err,
		)
		return err
	}

	s.metrics.Counter(observability.MetricConflictsDetected, 1)
	s.metrics.Histogram(observability.MetricSuggestionsPerConflict, float64(len(payload.Suggestions)))

	s.logger.WarnContext(ctx, "scheduling conflict detected",
		"first", payload.FirstTitle,
		"first_range", payload.FirstRange,
		"second", payload.SecondTitle,
		"second_range", payload.SecondRange,
		"overlap_min", payload.OverlapMin,
		"suggestions", payload.Suggestions,
	)

	if len(payload.Suggestions) == 0 {
		s.logger.WarnContext(ctx, "no free slot within working hours",
			"title", payload.SecondTitle,
		)
	}
	return nil
}
