// Package events publishes domain events after successful backend
// mutations so downstream consumers can follow changes.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/ballotkeeper/internal/server/models"
)

type Publisher interface {
	Publish(ctx context.Context, e models.Event) error
	Close() error
}

// New stamps an event with a fresh id and the current time.
func New(eventType, entityID, actor, details string) models.Event {
	return models.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		EntityID:   entityID,
		Actor:      actor,
		Details:    details,
		OccurredAt: time.Now().UTC(),
	}
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, models.Event) error { return nil }
func (NopPublisher) Close() error                                 { return nil }
