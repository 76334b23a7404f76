package domain

// BaseAggregateRoot is an entity that records domain events while it is
// changed. The application layer pulls and publishes them afterwards.
type BaseAggregateRoot struct {
	BaseEntity
	pending []DomainEvent
}

// NewBaseAggregateRoot creates an aggregate root with no pending events.
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity()}
}

// RecordEvent queues an event for publishing.
func (a *BaseAggregateRoot) RecordEvent(event DomainEvent) {
	a.pending = append(a.pending, event)
}

// PullDomainEvents returns the queued events in record order and clears the queue.
// The result is empty, never nil.
func (a *BaseAggregateRoot) PullDomainEvents() []DomainEvent {
	events := a.pending
	a.pending = nil
	if events == nil {
		return []DomainEvent{}
	}
	return events
}
