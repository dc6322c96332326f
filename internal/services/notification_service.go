package services

import (
	"context"
	"encoding/json"

	"campus-connect/internal/models"
	"campus-connect/internal/repositories/postgres"
	apperrors "campus-connect/pkg/errors"
	"campus-connect/pkg/logger"

	"gorm.io/datatypes"
)

const (
	defaultNotificationLimit = 50
	maxNotificationLimit     = 100
)

type NotifyInput struct {
	UserID   uint
	ActorID  *uint
	Type     string
	Message  string
	Meta     map[string]interface{}
	RefModel string
	RefID    *uint
}

type NotificationService struct {
	repo        *postgres.NotificationRepository
	broadcaster Broadcaster
	logger      *logger.Logger
}

func NewNotificationService(repo *postgres.NotificationRepository, broadcaster Broadcaster, log *logger.Logger) *NotificationService {
	return &NotificationService{repo: repo, broadcaster: broadcaster, logger: log}
}

// Notify persists a notification and pushes it to the recipient's room.
// Delivery is best effort: failures are logged, never returned.
func (s *NotificationService) Notify(ctx context.Context, in NotifyInput) {
	n := &models.Notification{
		UserID:   in.UserID,
		ActorID:  in.ActorID,
		Type:     in.Type,
		Message:  in.Message,
		RefModel: in.RefModel,
		RefID:    in.RefID,
	}
	if in.Meta != nil {
		raw, err := json.Marshal(in.Meta)
		if err != nil {
			s.logger.Warn("Failed to encode notification meta", "type", in.Type, "error", err)
		} else {
			n.Meta = datatypes.JSON(raw)
		}
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("Failed to persist notification", "user_id", in.UserID, "type", in.Type, "error", err)
		return
	}
	s.broadcaster.EmitToRoom(models.UserRoom(in.UserID), models.EventNotification, n.ToResponse())
}

func (s *NotificationService) List(ctx context.Context, userID uint, unreadOnly bool, limit int) (*models.NotificationListResponse, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}

	list, err := s.repo.ListForUser(ctx, userID, unreadOnly, limit)
	if err != nil {
		return nil, apperrors.Internal(err, "list notifications")
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err, "count notifications")
	}

	out := make([]models.NotificationResponse, 0, len(list))
	for i := range list {
		out = append(out, list[i].ToResponse())
	}
	return &models.NotificationListResponse{Notifications: out, UnreadCount: unread}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) (*models.NotificationResponse, error) {
	n, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return nil, lookupError(err, "notification not found")
	}
	resp := n.ToResponse()
	return &resp, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	updated, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, apperrors.Internal(err, "mark notifications read")
	}
	return updated, nil
}

func (s *NotificationService) Delete(ctx context.Context, id, userID uint) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return lookupError(err, "notification not found")
	}
	return nil
}
