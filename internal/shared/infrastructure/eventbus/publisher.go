package eventbus

import (
	"context"

	"github.com/felixgeelhaar/dayslot/internal/shared/domain"
)

// Publisher publishes raw event envelopes by routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
	Close() error
}

// DomainEventPublisher publishes domain events raised by aggregates.
type DomainEventPublisher interface {
	PublishDomainEvent(ctx context.Context, event domain.DomainEvent) error
}
