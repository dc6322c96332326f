package services

import (
	"context"

	"campus-connect/internal/events"
	"campus-connect/internal/repositories/postgres"
	apperrors "campus-connect/pkg/errors"
	"campus-connect/pkg/logger"
)

// Broadcaster delivers a socket event to every member of a room.
type Broadcaster interface {
	EmitToRoom(room, event string, data interface{})
}

// NopBroadcaster is used where no realtime delivery is wired, such as the
// command line tools.
type NopBroadcaster struct{}

func (NopBroadcaster) EmitToRoom(string, string, interface{}) {}

// lookupError turns a missing row into NOT_FOUND with msg and anything else
// into an internal error.
func lookupError(err error, msg string) error {
	if postgres.IsNotFound(err) {
		return apperrors.NotFound(msg)
	}
	return apperrors.Internal(err, msg)
}

// publish emits a domain event. Failures are logged and swallowed.
func publish(ctx context.Context, pub events.Publisher, log *logger.Logger, ev events.Event) {
	if err := pub.Publish(ctx, ev); err != nil {
		log.Warn("Failed to publish event", "type", ev.Type, "subject_id", ev.SubjectID, "error", err)
	}
}
