// Package events defines the domain events the API emits for downstream
// consumers.
package events

import (
	"context"
	"time"
)

const (
	UserSignedUp     = "user.signed_up"
	RequestCreated   = "request.created"
	RequestResponded = "request.responded"
	RequestWithdrawn = "request.withdrawn"
	MessageSent      = "message.sent"
)

type Event struct {
	Type       string                 `json:"type"`
	ActorID    uint                   `json:"actorId"`
	SubjectID  uint                   `json:"subjectId"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	OccurredAt time.Time              `json:"occurredAt"`
}

func New(eventType string, actorID, subjectID uint, payload map[string]interface{}) Event {
	return Event{
		Type:       eventType,
		ActorID:    actorID,
		SubjectID:  subjectID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
