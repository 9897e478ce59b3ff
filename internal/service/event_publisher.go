package service

import (
	"context"
	"time"
)

// EntityEvent describes a committed change to a domain entity.
type EntityEvent struct {
	Action     string      `json:"action"`
	Entity     string      `json:"entity"`
	EntityID   string      `json:"entity_id"`
	ActorID    *uint       `json:"actor_id,omitempty"`
	OldValue   interface{} `json:"old_value,omitempty"`
	NewValue   interface{} `json:"new_value,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// EventPublisher delivers entity events to a broker. The routing key is the
// event action, e.g. health_agency.create.
type EventPublisher interface {
	Publish(ctx context.Context, event EntityEvent) error
}
