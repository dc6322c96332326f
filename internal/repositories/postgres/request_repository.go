package postgres

import (
	"context"
	"fmt"
	"time"

	"campus-connect/internal/models"

	"gorm.io/gorm"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(ctx context.Context, req *models.Request) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id uint) (*models.Request, error) {
	var req models.Request
	err := r.db.WithContext(ctx).Preload("FromUser").Preload("ToUser").First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListIncoming returns requests addressed to userID, newest first.
func (r *RequestRepository) ListIncoming(ctx context.Context, userID uint) ([]models.Request, error) {
	var reqs []models.Request
	err := r.db.WithContext(ctx).Preload("FromUser").
		Where("to_user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list incoming requests: %w", err)
	}
	return reqs, nil
}

// ListOutgoing returns requests sent by userID, newest first.
func (r *RequestRepository) ListOutgoing(ctx context.Context, userID uint) ([]models.Request, error) {
	var reqs []models.Request
	err := r.db.WithContext(ctx).Preload("ToUser").
		Where("from_user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list outgoing requests: %w", err)
	}
	return reqs, nil
}

func (r *RequestRepository) HasPending(ctx context.Context, fromUserID, toUserID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Request{}).
		Where("from_user_id = ? AND to_user_id = ? AND status = ?", fromUserID, toUserID, models.RequestPending).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check pending requests: %w", err)
	}
	return count > 0, nil
}

// HasAccepted reports whether an accepted request links a and b in either
// direction.
func (r *RequestRepository) HasAccepted(ctx context.Context, a, b uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Request{}).
		Where("status = ?", models.RequestAccepted).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)", a, b, b, a).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check accepted requests: %w", err)
	}
	return count > 0, nil
}

// Accept moves a pending request to ACCEPTED and links it to the pair chat,
// creating the chat if needed. Both happen in one transaction; ErrNotPending
// is returned if the request was already answered.
func (r *RequestRepository) Accept(ctx context.Context, req *models.Request, now time.Time) (*models.Chat, error) {
	var chat *models.Chat
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		chat, err = findOrCreateChat(tx, req.FromUserID, req.ToUserID, now)
		if err != nil {
			return err
		}
		return transitionPending(tx, req.ID, map[string]interface{}{
			"status":       models.RequestAccepted,
			"chat_id":      chat.ID,
			"responded_at": now,
		})
	})
	if err != nil {
		return nil, err
	}

	req.Status = models.RequestAccepted
	req.ChatID = &chat.ID
	req.RespondedAt = &now
	return chat, nil
}

// Close moves a pending request to a terminal status other than ACCEPTED.
func (r *RequestRepository) Close(ctx context.Context, req *models.Request, status models.RequestStatus, now time.Time) error {
	err := transitionPending(r.db.WithContext(ctx), req.ID, map[string]interface{}{
		"status":       status,
		"responded_at": now,
	})
	if err != nil {
		return err
	}
	req.Status = status
	req.RespondedAt = &now
	return nil
}

func (r *RequestRepository) CountByStatus(ctx context.Context) (map[models.RequestStatus]int64, error) {
	var rows []struct {
		Status models.RequestStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Request{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count requests: %w", err)
	}
	out := make(map[models.RequestStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

// transitionPending is a conditional update: it only touches the row while
// it is still PENDING.
func transitionPending(db *gorm.DB, id uint, fields map[string]interface{}) error {
	res := db.Model(&models.Request{}).
		Where("id = ? AND status = ?", id, models.RequestPending).
		Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update request: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotPending
	}
	return nil
}
