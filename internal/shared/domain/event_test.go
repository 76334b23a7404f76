package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/dayslot/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewBaseEvent(t *testing.T) {
	aggregateID := uuid.New()
	before := time.Now().UTC()

	event := domain.NewBaseEvent(aggregateID, "TestAggregate", "test.event.created")

	after := time.Now().UTC()

	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, aggregateID, event.AggregateID())
	assert.Equal(t, "TestAggregate", event.AggregateType())
	assert.Equal(t, "test.event.created", event.RoutingKey())
	assert.False(t, event.OccurredAt().Before(before))
	assert.False(t, event.OccurredAt().After(after))
}

func TestBaseEvent_SetMetadata(t *testing.T) {
	causationID := uuid.New()

	event := domain.NewBaseEvent(uuid.New(), "TestAggregate", "test.event.created")
	event.SetMetadata(domain.EventMetadata{
		CorrelationID: "corr-1",
		CausationID:   causationID,
	})

	metadata := event.Metadata()
	assert.Equal(t, "corr-1", metadata.CorrelationID)
	assert.Equal(t, causationID, metadata.CausationID)
}
