package postgres

import (
	"context"
	"fmt"

	"campus-connect/internal/models"
	"campus-connect/internal/repositories"

	"gorm.io/gorm"
)

// MessageRepository is the relational MessageStore.
type MessageRepository struct {
	db *gorm.DB
}

var _ repositories.MessageStore = (*MessageRepository)(nil)

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *MessageRepository) ListByChat(ctx context.Context, chatID uint, limit int, before *repositories.MessageCursor) ([]models.Message, error) {
	q := r.db.WithContext(ctx).Where("chat_id = ?", chatID)
	if before != nil {
		at := before.CreatedAt.UTC()
		if before.ID == "" {
			q = q.Where("created_at < ?", at)
		} else {
			q = q.Where("(created_at < ? OR (created_at = ? AND id < ?))", at, at, before.ID)
		}
	}

	var messages []models.Message
	if limit <= 0 {
		if err := q.Order("created_at ASC, id ASC").Find(&messages).Error; err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}
		return messages, nil
	}

	if err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	// newest page was fetched descending
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *MessageRepository) Latest(ctx context.Context, chatID uint) (*models.Message, error) {
	var msg models.Message
	err := r.db.WithContext(ctx).Where("chat_id = ?", chatID).Order("created_at DESC, id DESC").First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *MessageRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Message{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}
