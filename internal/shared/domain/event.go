package domain

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact raised by an aggregate. The bus routes it by RoutingKey.
type DomainEvent interface {
	EventID() uuid.UUID
	AggregateID() uuid.UUID
	AggregateType() string
	RoutingKey() string
	OccurredAt() time.Time
	Metadata() EventMetadata
}

// EventMetadata links an event to the request that caused it.
type EventMetadata struct {
	CorrelationID string
	CausationID   uuid.UUID
}

// BaseEvent holds the envelope fields shared by all domain events.
// Concrete events embed it and add their payload fields.
type BaseEvent struct {
	id         uuid.UUID
	source     aggregateRef
	routingKey string
	occurredAt time.Time
	metadata   EventMetadata
}

type aggregateRef struct {
	id   uuid.UUID
	kind string
}

// NewBaseEvent stamps a new event raised by the given aggregate.
func NewBaseEvent(aggregateID uuid.UUID, aggregateType, routingKey string) BaseEvent {
	return BaseEvent{
		id:         uuid.New(),
		source:     aggregateRef{id: aggregateID, kind: aggregateType},
		routingKey: routingKey,
		occurredAt: time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() uuid.UUID      { return e.id }
func (e BaseEvent) AggregateID() uuid.UUID  { return e.source.id }
func (e BaseEvent) AggregateType() string   { return e.source.kind }
func (e BaseEvent) RoutingKey() string      { return e.routingKey }
func (e BaseEvent) OccurredAt() time.Time   { return e.occurredAt }
func (e BaseEvent) Metadata() EventMetadata { return e.metadata }

// SetMetadata attaches tracing metadata before the event is published.
func (e *BaseEvent) SetMetadata(metadata EventMetadata) {
	e.metadata = metadata
}
