package subscribers_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/felixgeelhaar/dayslot/internal/scheduling/application/subscribers"
	"github.com/felixgeelhaar/dayslot/internal/scheduling/domain"
	"github.com/felixgeelhaar/dayslot/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/dayslot/pkg/observability"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubscriber(buf *bytes.Buffer) (*subscribers.ScheduleSubscriber, *observability.InMemoryMetrics) {
	metrics := observability.NewInMemoryMetrics()
	logger := observability.NewLogger(observability.LogConfig{
		Level:  observability.LogLevelDebug,
		Format: observability.LogFormatText,
		Output: buf,
	})
	return subscribers.NewScheduleSubscriber(metrics, logger), metrics
}

func envelope(routingKey, payload string) *eventbus.ConsumedEvent {
	return &eventbus.ConsumedEvent{
		EventID:       uuid.New(),
		AggregateID:   uuid.New(),
		AggregateType: domain.AggregateType,
		RoutingKey:    routingKey,
		Payload:       []byte(payload),
		Metadata:      eventbus.EventMetadata{CorrelationID: "corr-1"},
	}
}

func TestScheduleSubscriber_EventTypes(t *testing.T) {
	sub, _ := newSubscriber(&bytes.Buffer{})

	assert.ElementsMatch(t, []string{
		"scheduling.event.added",
		"scheduling.conflict.detected",
	}, sub.EventTypes())
}

func TestScheduleSubscriber_EventAdded(t *testing.T) {
	var buf bytes.Buffer
	sub, metrics := newSubscriber(&buf)

	err := sub.Handle(context.Background(), envelope(domain.RoutingKeyEventAdded,
		`{"title":"Standup","start":"09:00","end":"09:15","duration_min":15}`))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "event scheduled")
	assert.Contains(t, buf.String(), "title=Standup")
	assert.Contains(t, buf.String(), "correlation_id=corr-1")
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricEventsConsumed,
		observability.T("routing_key", domain.RoutingKeyEventAdded)))
	assert.Zero(t, metrics.GetCounter(observability.MetricConflictsDetected))
}

func TestScheduleSubscriber_ConflictDetected(t *testing.T) {
	var buf bytes.Buffer
	sub, metrics := newSubscriber(&buf)

	err := sub.Handle(context.Background(), envelope(domain.RoutingKeyConflictDetected,
		`{"first_title":"A","first_range":"09:00-10:00","second_title":"B","second_range":"09:30-10:30",`+
			`"overlap_min":30,"suggestions":["08:00-09:00","10:30-11:30","11:00-12:00"]}`))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "scheduling conflict detected")
	assert.Contains(t, buf.String(), "overlap_min=30")
	assert.NotContains(t, buf.String(), "no free slot")
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricConflictsDetected))
	assert.Equal(t, []float64{3}, metrics.GetHistogram(observability.MetricSuggestionsPerConflict))
}

func TestScheduleSubscriber_ConflictWithoutSuggestions(t *testing.T) {
	var buf bytes.Buffer
	sub, metrics := newSubscriber(&buf)

	err := sub.Handle(context.Background(), envelope(domain.RoutingKeyConflictDetected,
		`{"first_title":"A","second_title":"Offsite","overlap_min":60,"suggestions":[]}`))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "no free slot within working hours")
	assert.Equal(t, []float64{0}, metrics.GetHistogram(observability.MetricSuggestionsPerConflict))
}

func TestScheduleSubscriber_InvalidPayload(t *testing.T) {
	sub, metrics := newSubscriber(&bytes.Buffer{})

	err := sub.Handle(context.Background(), envelope(domain.RoutingKeyConflictDetected, `not json`))

	assert.Error(t, err)
	assert.Zero(t, metrics.GetCounter(observability.MetricConflictsDetected))
}

func TestScheduleSubscriber_Disabled(t *testing.T) {
	sub, metrics := newSubscriber(&bytes.Buffer{})
	sub.SetEnabled(false)

	err := sub.Handle(context.Background(), envelope(domain.RoutingKeyConflictDetected, `{}`))
	require.NoError(t, err)

	assert.Zero(t, metrics.GetCounter(observability.MetricEventsConsumed,
		observability.T("routing_key", domain.RoutingKeyConflictDetected)))
}

func TestScheduleSubscriber_ThroughBus(t *testing.T) {
	var buf bytes.Buffer
	sub, metrics := newSubscriber(&buf)
	bus := eventbus.NewInProcessEventBus(observability.DiscardLogger())
	bus.RegisterConsumer(sub)

	scheduler, err := domain.NewScheduler(domain.DefaultSchedulerConfig())
	require.NoError(t, err)
	for _, e := range [][3]string{{"A", "09:00", "10:00"}, {"B", "09:30", "10:30"}} {
		event, err := domain.ParseEvent(e[0], e[1], e[2])
		require.NoError(t, err)
		_, err = scheduler.AddEvent(event)
		require.NoError(t, err)
	}

	for _, event := range scheduler.PullDomainEvents() {
		require.NoError(t, bus.PublishDomainEvent(context.Background(), event))
	}

	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricConflictsDetected))
	assert.Equal(t, int64(2), metrics.GetCounter(observability.MetricEventsConsumed,
		observability.T("routing_key", domain.RoutingKeyEventAdded)))
	assert.Contains(t, buf.String(), "second=B")
}
