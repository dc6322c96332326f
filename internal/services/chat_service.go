package services

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"campus-connect/internal/events"
	"campus-connect/internal/models"
	"campus-connect/internal/repositories"
	"campus-connect/internal/repositories/postgres"
	"campus-connect/internal/security"
	apperrors "campus-connect/pkg/errors"
	"campus-connect/pkg/logger"
)

const MaxMessagesPage = 200

var ErrChatNotFound = apperrors.NotFound("chat not found")

type ChatService struct {
	chats       *postgres.ChatRepository
	messages    repositories.MessageStore
	users       *postgres.UserRepository
	requests    *postgres.RequestRepository
	notifier    *NotificationService
	broadcaster Broadcaster
	events      events.Publisher
	logger      *logger.Logger
	now         func() time.Time
}

func NewChatService(
	chats *postgres.ChatRepository,
	messages repositories.MessageStore,
	users *postgres.UserRepository,
	requests *postgres.RequestRepository,
	notifier *NotificationService,
	broadcaster Broadcaster,
	pub events.Publisher,
	log *logger.Logger,
) *ChatService {
	return &ChatService{
		chats:       chats,
		messages:    messages,
		users:       users,
		requests:    requests,
		notifier:    notifier,
		broadcaster: broadcaster,
		events:      pub,
		logger:      log,
		// millisecond precision matches the document store and the
		// `before` cursor
		now: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// ListChats returns the user's chats with the partner's public profile,
// most recently active first.
func (s *ChatService) ListChats(ctx context.Context, userID uint, baseURL string) ([]models.ChatSummary, error) {
	chats, err := s.chats.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err, "list chats")
	}

	partnerIDs := make([]uint, 0, len(chats))
	for i := range chats {
		partnerIDs = append(partnerIDs, chats[i].PartnerOf(userID))
	}
	partners, err := s.users.FindByIDs(ctx, partnerIDs)
	if err != nil {
		return nil, apperrors.Internal(err, "load partners")
	}

	now := s.now()
	out := make([]models.ChatSummary, 0, len(chats))
	for i := range chats {
		summary := s.summary(&chats[i], partners[chats[i].PartnerOf(userID)], userID, baseURL, now)
		if summary.LastMessage == nil {
			// the summary write is best effort, fall back to the store
			if latest, err := s.messages.Latest(ctx, chats[i].ID); err == nil {
				summary.LastMessage = &models.LastMessage{Text: latest.Text, SenderID: &latest.SenderID, CreatedAt: latest.CreatedAt}
			}
		}
		out = append(out, summary)
	}
	return out, nil
}

// OpenChat returns the chat with partnerID, creating it if needed. The two
// users must be linked by an accepted request.
func (s *ChatService) OpenChat(ctx context.Context, userID, partnerID uint, baseURL string) (*models.ChatSummary, error) {
	if partnerID == 0 || partnerID == userID {
		return nil, apperrors.Validation("invalid partner")
	}
	partner, err := s.users.FindByID(ctx, partnerID)
	if err != nil {
		return nil, lookupError(err, "user not found")
	}

	accepted, err := s.requests.HasAccepted(ctx, userID, partnerID)
	if err != nil {
		return nil, apperrors.Internal(err, "check request")
	}
	if !accepted {
		return nil, apperrors.Forbidden("no accepted request with this user")
	}

	chat, err := s.chats.FindOrCreate(ctx, userID, partnerID)
	if err != nil {
		return nil, apperrors.Internal(err, "open chat")
	}
	summary := s.summary(chat, partner, userID, baseURL, s.now())
	return &summary, nil
}

// Messages returns a chat's history in ascending order. A zero limit means
// the whole history; before pages backwards from a (time, id) cursor.
func (s *ChatService) Messages(ctx context.Context, chatID, userID uint, limit int, before *repositories.MessageCursor, baseURL string) (*models.ChatMessagesResponse, error) {
	if limit < 0 {
		return nil, apperrors.Validation("limit must be positive")
	}
	if limit > MaxMessagesPage {
		limit = MaxMessagesPage
	}

	chat, err := s.participantChat(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}

	if before != nil {
		before = &repositories.MessageCursor{CreatedAt: before.CreatedAt.UTC(), ID: before.ID}
	}
	msgs, err := s.messages.ListByChat(ctx, chatID, limit, before)
	if err != nil {
		return nil, apperrors.Internal(err, "list messages")
	}

	partner, err := s.users.FindByID(ctx, chat.PartnerOf(userID))
	if err != nil && !postgres.IsNotFound(err) {
		return nil, apperrors.Internal(err, "load partner")
	}

	out := make([]models.MessageResponse, 0, len(msgs))
	for i := range msgs {
		out = append(out, msgs[i].ToResponse())
	}
	return &models.ChatMessagesResponse{
		ChatID:   chat.ID,
		Partner:  s.partnerProfile(partner, chat.PartnerOf(userID), baseURL, s.now()),
		Messages: out,
	}, nil
}

// SendMessage is shared by the HTTP endpoint and the socket event. It
// persists the message, broadcasts it to the chat room and notifies the
// other participant.
func (s *ChatService) SendMessage(ctx context.Context, chatID, senderID uint, text string) (*models.MessageResponse, error) {
	text = security.CleanText(text, 0)
	if text == "" {
		return nil, apperrors.Validation("text required")
	}
	if utf8.RuneCountInString(text) > models.MaxMessageLength {
		return nil, apperrors.Validation(fmt.Sprintf("message exceeds %d characters", models.MaxMessageLength))
	}

	chat, err := s.participantChat(ctx, chatID, senderID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ID:        models.NewMessageID(),
		ChatID:    chat.ID,
		SenderID:  senderID,
		Text:      text,
		CreatedAt: s.now(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.Internal(err, "save message")
	}
	if err := s.chats.RecordMessage(ctx, chat.ID, senderID, text, msg.CreatedAt); err != nil {
		s.logger.Warn("Failed to update chat summary", "chat_id", chat.ID, "error", err)
	}

	resp := msg.ToResponse()
	s.broadcaster.EmitToRoom(models.ChatRoom(chat.ID), models.EventNewMessage, resp)

	recipient := chat.PartnerOf(senderID)
	sender, err := s.users.FindByID(ctx, senderID)
	if err != nil {
		s.logger.Warn("Failed to load sender for notification", "user_id", senderID, "error", err)
		sender = nil
	}
	s.notifier.Notify(ctx, NotifyInput{
		UserID:   recipient,
		ActorID:  &senderID,
		Type:     models.NotificationMessage,
		Message:  fmt.Sprintf("New message from %s", models.DisplayName(sender)),
		Meta:     map[string]interface{}{"chatId": chat.ID, "messageId": msg.ID},
		RefModel: models.RefChat,
		RefID:    &chat.ID,
	})
	publish(ctx, s.events, s.logger, events.New(events.MessageSent, senderID, chat.ID, map[string]interface{}{
		"messageId": msg.ID,
		"recipient": recipient,
	}))

	return &resp, nil
}

// CanJoin reports whether userID may join the chat's socket room.
func (s *ChatService) CanJoin(ctx context.Context, chatID, userID uint) error {
	_, err := s.participantChat(ctx, chatID, userID)
	return err
}

func (s *ChatService) participantChat(ctx context.Context, chatID, userID uint) (*models.Chat, error) {
	chat, err := s.chats.FindByID(ctx, chatID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, ErrChatNotFound
		}
		return nil, apperrors.Internal(err, "load chat")
	}
	if !chat.HasParticipant(userID) {
		return nil, ErrNotAllowed
	}
	return chat, nil
}

func (s *ChatService) summary(chat *models.Chat, partner *models.User, userID uint, baseURL string, now time.Time) models.ChatSummary {
	summary := models.ChatSummary{
		ID:        chat.ID,
		Partner:   s.partnerProfile(partner, chat.PartnerOf(userID), baseURL, now),
		UpdatedAt: chat.UpdatedAt,
	}
	if chat.LastSenderID != nil {
		summary.LastMessage = &models.LastMessage{
			Text:      chat.LastMessage,
			SenderID:  chat.LastSenderID,
			CreatedAt: chat.LastMessageAt,
		}
	}
	return summary
}

// partnerProfile tolerates a deleted partner account.
func (s *ChatService) partnerProfile(partner *models.User, partnerID uint, baseURL string, now time.Time) models.PublicProfile {
	if partner == nil {
		return models.PublicProfile{ID: partnerID, Name: "User", Tags: []string{}}
	}
	return models.NewPublicProfile(partner, now).WithAbsoluteAvatar(baseURL)
}
