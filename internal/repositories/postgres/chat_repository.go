package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campus-connect/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) FindByID(ctx context.Context, id uint) (*models.Chat, error) {
	var chat models.Chat
	if err := r.db.WithContext(ctx).First(&chat, id).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *ChatRepository) FindByPair(ctx context.Context, a, b uint) (*models.Chat, error) {
	return findChatByPair(r.db.WithContext(ctx), a, b)
}

// FindOrCreate returns the chat between a and b, creating it when absent.
func (r *ChatRepository) FindOrCreate(ctx context.Context, a, b uint) (*models.Chat, error) {
	return findOrCreateChat(r.db.WithContext(ctx), a, b, time.Now().UTC())
}

// ListForUser returns the user's chats, most recently active first.
func (r *ChatRepository) ListForUser(ctx context.Context, userID uint) ([]models.Chat, error) {
	var chats []models.Chat
	err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("last_message_at DESC").
		Order("id DESC").
		Find(&chats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	return chats, nil
}

// RecordMessage updates the denormalized last message fields.
func (r *ChatRepository) RecordMessage(ctx context.Context, chatID, senderID uint, text string, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.Chat{}).Where("id = ?", chatID).Updates(map[string]interface{}{
		"last_message":    text,
		"last_sender_id":  senderID,
		"last_message_at": at,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to update chat: %w", err)
	}
	return nil
}

func (r *ChatRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Chat{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count chats: %w", err)
	}
	return count, nil
}

func findChatByPair(db *gorm.DB, a, b uint) (*models.Chat, error) {
	lo, hi := models.OrderedPair(a, b)
	var chat models.Chat
	if err := db.Where("user1_id = ? AND user2_id = ?", lo, hi).First(&chat).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

// findOrCreateChat looks the pair up first. An insert that loses a race
// against a concurrent one is ignored by the unique pair index and the
// winner is re-read.
func findOrCreateChat(db *gorm.DB, a, b uint, now time.Time) (*models.Chat, error) {
	chat, err := findChatByPair(db, a, b)
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find chat: %w", err)
	}

	created := models.NewChat(a, b, now)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(created).Error; err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}

	chat, err = findChatByPair(db, a, b)
	if err != nil {
		return nil, fmt.Errorf("failed to reload chat: %w", err)
	}
	return chat, nil
}
