// Package repositories declares the storage contracts that have more than
// one backend.
package repositories

import (
	"context"
	"time"

	"campus-connect/internal/models"
)

// MessageStore persists chat messages. The relational store is the default;
// the document store is selected with MESSAGE_STORE=mongo.
type MessageStore interface {
	Create(ctx context.Context, msg *models.Message) error
	// ListByChat returns messages in ascending (CreatedAt, ID) order. A
	// positive limit keeps only the newest limit messages; a non-nil before
	// keeps messages strictly earlier than the cursor.
	ListByChat(ctx context.Context, chatID uint, limit int, before *MessageCursor) ([]models.Message, error)
	Latest(ctx context.Context, chatID uint) (*models.Message, error)
	CountAll(ctx context.Context) (int64, error)
}

// MessageCursor is a position in a chat's history. Without an ID it
// compares on time alone.
type MessageCursor struct {
	CreatedAt time.Time
	ID        string
}

// CursorOf points just before msg.
func CursorOf(msg models.MessageResponse) *MessageCursor {
	return &MessageCursor{CreatedAt: msg.CreatedAt, ID: msg.ID}
}
