package domain

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity gives a domain object a generated identity and tracks when it
// last changed.
type BaseEntity struct {
	id        uuid.UUID
	updatedAt time.Time
}

// NewBaseEntity creates an entity with a new random ID.
func NewBaseEntity() BaseEntity {
	return BaseEntity{
		id:        uuid.New(),
		updatedAt: time.Now().UTC(),
	}
}

func (e BaseEntity) ID() uuid.UUID        { return e.id }
func (e BaseEntity) UpdatedAt() time.Time { return e.updatedAt }

// Touch marks the entity as changed now.
func (e *BaseEntity) Touch() {
	e.updatedAt = time.Now().UTC()
}
