package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"campus-connect/internal/models"
	"campus-connect/internal/repositories"
	"campus-connect/internal/repositories/postgres"
	apperrors "campus-connect/pkg/errors"
	"campus-connect/pkg/logger"

	"github.com/redis/go-redis/v9"
	"github.com/xuri/excelize/v2"
)

const (
	statsCacheKey = "campus:admin:stats"
	statsCacheTTL = 30 * time.Second
	exportSheet   = "Users"
)

var exportHeaders = []string{"ID", "Name", "Email", "Role", "Created At"}

type AdminService struct {
	users    *postgres.UserRepository
	requests *postgres.RequestRepository
	chats    *postgres.ChatRepository
	messages repositories.MessageStore
	redis    *RedisService
	logger   *logger.Logger
	now      func() time.Time
}

// NewAdminService builds the admin service. redis may be nil, which turns
// off stats caching and the online count.
func NewAdminService(
	users *postgres.UserRepository,
	requests *postgres.RequestRepository,
	chats *postgres.ChatRepository,
	messages repositories.MessageStore,
	redis *RedisService,
	log *logger.Logger,
) *AdminService {
	return &AdminService{
		users:    users,
		requests: requests,
		chats:    chats,
		messages: messages,
		redis:    redis,
		logger:   log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	if s.redis != nil {
		var cached models.AdminStats
		err := s.redis.Get(ctx, statsCacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("Failed to read cached stats", "error", err)
		}
	}

	stats := &models.AdminStats{}
	var err error
	if stats.UsersByRole, err = s.users.CountByRole(ctx); err != nil {
		return nil, apperrors.Internal(err, "count users")
	}
	if stats.RequestsByStatus, err = s.requests.CountByStatus(ctx); err != nil {
		return nil, apperrors.Internal(err, "count requests")
	}
	if stats.Chats, err = s.chats.Count(ctx); err != nil {
		return nil, apperrors.Internal(err, "count chats")
	}
	if stats.Messages, err = s.messages.CountAll(ctx); err != nil {
		return nil, apperrors.Internal(err, "count messages")
	}
	if stats.NewUsersLast7d, err = s.users.CountCreatedSince(ctx, s.now().Add(-7*24*time.Hour)); err != nil {
		return nil, apperrors.Internal(err, "count new users")
	}

	if s.redis != nil {
		if online, err := s.redis.CountOnlineUsers(ctx); err == nil {
			stats.OnlineUsers = &online
		}
		if err := s.redis.Set(ctx, statsCacheKey, stats, statsCacheTTL); err != nil {
			s.logger.Warn("Failed to cache stats", "error", err)
		}
	}
	return stats, nil
}

// ExportUsers writes every account as an xlsx workbook to w.
func (s *AdminService) ExportUsers(ctx context.Context, w io.Writer) error {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return apperrors.Internal(err, "list users")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return apperrors.Internal(err, "prepare sheet")
	}
	for col, header := range exportHeaders {
		if err := setCell(f, col+1, 1, header); err != nil {
			return err
		}
	}
	for i, u := range users {
		row := i + 2
		values := []interface{}{u.ID, u.Name, u.Email, string(u.Role), u.CreatedAt.UTC().Format(time.RFC3339)}
		for col, v := range values {
			if err := setCell(f, col+1, row, v); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return apperrors.Internal(err, "write workbook")
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return apperrors.Internal(err, "cell name")
	}
	if err := f.SetCellValue(exportSheet, cell, value); err != nil {
		return apperrors.Internal(err, fmt.Sprintf("set cell %s", cell))
	}
	return nil
}
