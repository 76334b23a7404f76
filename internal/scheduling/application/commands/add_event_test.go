package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/dayslot/internal/scheduling/domain"
	sharedDomain "github.com/felixgeelhaar/dayslot/internal/shared/domain"
	"github.com/felixgeelhaar/dayslot/pkg/observability"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockPublisher is a mock implementation of eventbus.DomainEventPublisher.
type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishDomainEvent(ctx context.Context, event sharedDomain.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newTestHandler(t *testing.T, publisher *mockPublisher) (*AddEventHandler, *domain.Scheduler, *observability.InMemoryMetrics) {
	t.Helper()
	scheduler, err := domain.NewScheduler(domain.DefaultSchedulerConfig())
	require.NoError(t, err)
	metrics := observability.NewInMemoryMetrics()

	var handler *AddEventHandler
	if publisher == nil {
		handler = NewAddEventHandler(scheduler, nil, metrics, observability.DiscardLogger())
	} else {
		handler = NewAddEventHandler(scheduler, publisher, metrics, observability.DiscardLogger())
	}
	return handler, scheduler, metrics
}

func TestAddEventHandler_Success(t *testing.T) {
	publisher := new(mockPublisher)
	publisher.On("PublishDomainEvent", mock.Anything, mock.AnythingOfType("*domain.EventAdded")).Return(nil).Once()

	handler, scheduler, metrics := newTestHandler(t, publisher)

	result, err := handler.Handle(context.Background(), AddEventCommand{Title: "Standup", Start: "09:00", End: "09:15"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, result.EventID)
	assert.Equal(t, "Standup", result.Event.Title)
	assert.Equal(t, 15, result.Event.DurationMin)
	assert.Empty(t, result.Conflicts)
	assert.Equal(t, 1, scheduler.Len())

	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricEventsAdded))
	assert.Equal(t, 1.0, metrics.GetGauge(observability.MetricScheduleSize))
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricOperationTotal,
		observability.T("detection", "adjacent"), observability.T("operation", "add_event")))
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricEventsPublished,
		observability.T("routing_key", domain.RoutingKeyEventAdded)))
	publisher.AssertExpectations(t)
}

func TestAddEventHandler_ReturnsConflicts(t *testing.T) {
	publisher := new(mockPublisher)
	publisher.On("PublishDomainEvent", mock.Anything, mock.Anything).Return(nil)

	handler, _, _ := newTestHandler(t, publisher)
	ctx := context.Background()

	_, err := handler.Handle(ctx, AddEventCommand{Title: "A", Start: "09:00", End: "10:00"})
	require.NoError(t, err)

	result, err := handler.Handle(ctx, AddEventCommand{Title: "B", Start: "09:30", End: "10:30"})
	require.NoError(t, err)

	require.Len(t, result.Conflicts, 1)
	conflict := result.Conflicts[0]
	assert.Equal(t, "A", conflict.First.Title)
	assert.Equal(t, "B", conflict.Second.Title)
	assert.Equal(t, 30, conflict.OverlapMin)
	require.Len(t, conflict.Suggestions, 3)
	assert.Equal(t, "08:00", conflict.Suggestions[0].Start)
	assert.Equal(t, "10:30", conflict.Suggestions[1].Start)
	assert.Equal(t, "11:00", conflict.Suggestions[2].Start)

	publisher.AssertNumberOfCalls(t, "PublishDomainEvent", 3)
	publisher.AssertCalled(t, "PublishDomainEvent", mock.Anything, mock.AnythingOfType("*domain.ConflictDetected"))
}

func TestAddEventHandler_AppliesCorrelationID(t *testing.T) {
	publisher := new(mockPublisher)
	publisher.On("PublishDomainEvent", mock.Anything, mock.MatchedBy(func(e sharedDomain.DomainEvent) bool {
		return e.Metadata().CorrelationID == "corr-7"
	})).Return(nil).Once()

	handler, _, _ := newTestHandler(t, publisher)
	ctx := observability.WithCorrelationID(context.Background(), "corr-7")

	_, err := handler.Handle(ctx, AddEventCommand{Title: "Lunch", Start: "12:00", End: "13:00"})
	require.NoError(t, err)

	publisher.AssertExpectations(t)
}

func TestAddEventHandler_PublishFailureDoesNotFail(t *testing.T) {
	publisher := new(mockPublisher)
	publisher.On("PublishDomainEvent", mock.Anything, mock.Anything).Return(errors.New("bus down"))

	handler, scheduler, metrics := newTestHandler(t, publisher)

	_, err := handler.Handle(context.Background(), AddEventCommand{Title: "Lunch", Start: "12:00", End: "13:00"})
	require.NoError(t, err)

	assert.Equal(t, 1, scheduler.Len())
	assert.Zero(t, metrics.GetCounter(observability.MetricEventsPublished,
		observability.T("routing_key", domain.RoutingKeyEventAdded)))
}

func TestAddEventHandler_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		cmd    AddEventCommand
		err    error
		reason string
	}{
		{"end before start", AddEventCommand{Title: "X", Start: "10:00", End: "09:00"}, domain.ErrInvalidInterval, "invalid_interval"},
		{"zero length", AddEventCommand{Title: "X", Start: "10:00", End: "10:00"}, domain.ErrInvalidInterval, "invalid_interval"},
		{"bad start", AddEventCommand{Title: "X", Start: "9:00", End: "10:00"}, domain.ErrInvalidTimeFormat, "invalid_time_format"},
		{"bad end", AddEventCommand{Title: "X", Start: "09:00", End: "25:00"}, domain.ErrInvalidTimeFormat, "invalid_time_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, scheduler, metrics := newTestHandler(t, nil)

			result, err := handler.Handle(context.Background(), tt.cmd)

			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.err)
			assert.Zero(t, scheduler.Len())
			assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricEventsRejected, observability.T("reason", tt.reason)))
		})
	}
}

func TestAddEventHandler_NilPublisherDrainsEvents(t *testing.T) {
	handler, scheduler, _ := newTestHandler(t, nil)

	_, err := handler.Handle(context.Background(), AddEventCommand{Title: "Solo", Start: "08:00", End: "08:30"})
	require.NoError(t, err)

	assert.Empty(t, scheduler.PullDomainEvents())
}

func TestAddEventCommand_Name(t *testing.T) {
	assert.Equal(t, "scheduling.add_event", AddEventCommand{}.CommandName())
}
