package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campus-connect/internal/events"
	"campus-connect/internal/models"
	"campus-connect/internal/repositories/postgres"
	"campus-connect/internal/security"
	apperrors "campus-connect/pkg/errors"
	"campus-connect/pkg/logger"
)

const (
	maxRequestMessageLength = 1000

	DirectionIncoming = "incoming"
	DirectionOutgoing = "outgoing"
)

var (
	ErrRequestNotFound = apperrors.NotFound("request not found")
	ErrRequestHandled  = apperrors.Conflict("request already handled")
	ErrNotAllowed      = apperrors.Forbidden("not allowed")
)

type RequestService struct {
	requests *postgres.RequestRepository
	users    *postgres.UserRepository
	notifier *NotificationService
	events   events.Publisher
	logger   *logger.Logger
	now      func() time.Time
}

func NewRequestService(
	requests *postgres.RequestRepository,
	users *postgres.UserRepository,
	notifier *NotificationService,
	pub events.Publisher,
	log *logger.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		users:    users,
		notifier: notifier,
		events:   pub,
		logger:   log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create sends a mentorship request from a junior to a mentor.
func (s *RequestService) Create(ctx context.Context, fromUserID uint, req *models.CreateMentorshipRequest) (*models.RequestResponse, error) {
	from, err := s.users.FindByID(ctx, fromUserID)
	if err != nil {
		return nil, lookupError(err, "user not found")
	}
	if from.Role != models.RoleJunior {
		return nil, apperrors.Forbidden("only juniors can send requests")
	}

	toUserID := req.ToUserID.Uint()
	if toUserID == 0 {
		return nil, apperrors.Validation("toUserId required")
	}
	if toUserID == fromUserID {
		return nil, apperrors.Validation("cannot send a request to yourself")
	}

	to, err := s.users.FindByID(ctx, toUserID)
	if err != nil && !postgres.IsNotFound(err) {
		return nil, apperrors.Internal(err, "load target")
	}
	if to == nil || !to.Role.IsMentor() {
		return nil, apperrors.Validation("target not a senior")
	}

	pending, err := s.requests.HasPending(ctx, fromUserID, toUserID)
	if err != nil {
		return nil, apperrors.Internal(err, "check pending")
	}
	if pending {
		return nil, apperrors.Conflict("request already pending")
	}

	request := &models.Request{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Message:    security.CleanText(req.Message, maxRequestMessageLength),
		Status:     models.RequestPending,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, apperrors.Internal(err, "create request")
	}
	request.FromUser, request.ToUser = from, to

	s.logger.Info("Mentorship request created", "request_id", request.ID, "from", fromUserID, "to", toUserID)
	s.notifier.Notify(ctx, NotifyInput{
		UserID:   toUserID,
		ActorID:  &from.ID,
		Type:     models.NotificationRequest,
		Message:  fmt.Sprintf("%s sent you a mentorship request", models.DisplayName(from)),
		Meta:     map[string]interface{}{"requestId": request.ID, "fromUserId": fromUserID},
		RefModel: models.RefRequest,
		RefID:    &request.ID,
	})
	publish(ctx, s.events, s.logger, events.New(events.RequestCreated, fromUserID, request.ID, map[string]interface{}{
		"toUserId": toUserID,
	}))

	resp := request.ToResponse()
	return &resp, nil
}

// List returns the caller's incoming requests when they are a mentor and
// their outgoing requests otherwise, newest first.
func (s *RequestService) List(ctx context.Context, userID uint) (string, []models.RequestResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", nil, lookupError(err, "user not found")
	}

	direction := DirectionOutgoing
	var reqs []models.Request
	if user.Role.IsMentor() {
		direction = DirectionIncoming
		reqs, err = s.requests.ListIncoming(ctx, userID)
	} else {
		reqs, err = s.requests.ListOutgoing(ctx, userID)
	}
	if err != nil {
		return "", nil, apperrors.Internal(err, "list requests")
	}

	out := make([]models.RequestResponse, 0, len(reqs))
	for i := range reqs {
		out = append(out, reqs[i].ToResponse())
	}
	return direction, out, nil
}

// Respond lets the target accept or decline a pending request. Accepting
// links the request to the pair chat.
func (s *RequestService) Respond(ctx context.Context, userID, requestID uint, action string) (*models.RespondResponse, error) {
	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, ErrRequestNotFound
		}
		return nil, apperrors.Internal(err, "load request")
	}
	if request.ToUserID != userID {
		return nil, ErrNotAllowed
	}

	action = strings.ToLower(strings.TrimSpace(action))
	if action != models.ActionAccept && action != models.ActionDecline {
		return nil, apperrors.Validation("invalid action")
	}
	if request.Status != models.RequestPending {
		return nil, ErrRequestHandled
	}

	now := s.now()
	resp := &models.RespondResponse{}
	notification := NotifyInput{
		UserID:   request.FromUserID,
		ActorID:  &request.ToUserID,
		Meta:     map[string]interface{}{"requestId": request.ID},
		RefModel: models.RefRequest,
		RefID:    &request.ID,
	}
	mentorName := models.DisplayName(request.ToUser)

	if action == models.ActionAccept {
		chat, err := s.requests.Accept(ctx, request, now)
		if err != nil {
			return nil, transitionError(err)
		}
		resp.ChatID = &chat.ID
		notification.Type = models.NotificationRequestAccepted
		notification.Message = fmt.Sprintf("%s accepted your mentorship request", mentorName)
		notification.Meta["chatId"] = chat.ID
	} else {
		if err := s.requests.Close(ctx, request, models.RequestDeclined, now); err != nil {
			return nil, transitionError(err)
		}
		notification.Type = models.NotificationRequestDeclined
		notification.Message = fmt.Sprintf("%s declined your mentorship request", mentorName)
	}

	s.logger.Info("Mentorship request answered", "request_id", request.ID, "status", request.Status)
	s.notifier.Notify(ctx, notification)
	publish(ctx, s.events, s.logger, events.New(events.RequestResponded, userID, request.ID, map[string]interface{}{
		"status": request.Status,
		"chatId": resp.ChatID,
	}))

	resp.Request = request.ToResponse()
	return resp, nil
}

// Withdraw closes a pending request. The sender cancels it, the target
// declines it.
func (s *RequestService) Withdraw(ctx context.Context, userID, requestID uint) (*models.RequestResponse, error) {
	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, ErrRequestNotFound
		}
		return nil, apperrors.Internal(err, "load request")
	}

	var (
		status       models.RequestStatus
		counterpart  uint
		notification string
		message      string
	)
	switch userID {
	case request.FromUserID:
		status = models.RequestCancelled
		counterpart = request.ToUserID
		notification = models.NotificationRequestCancelled
		message = fmt.Sprintf("%s withdrew their mentorship request", models.DisplayName(request.FromUser))
	case request.ToUserID:
		status = models.RequestDeclined
		counterpart = request.FromUserID
		notification = models.NotificationRequestDeclined
		message = fmt.Sprintf("%s declined your mentorship request", models.DisplayName(request.ToUser))
	default:
		return nil, ErrNotAllowed
	}

	if request.Status != models.RequestPending {
		return nil, ErrRequestHandled
	}
	if err := s.requests.Close(ctx, request, status, s.now()); err != nil {
		return nil, transitionError(err)
	}

	s.notifier.Notify(ctx, NotifyInput{
		UserID:   counterpart,
		ActorID:  &userID,
		Type:     notification,
		Message:  message,
		Meta:     map[string]interface{}{"requestId": request.ID},
		RefModel: models.RefRequest,
		RefID:    &request.ID,
	})
	publish(ctx, s.events, s.logger, events.New(events.RequestWithdrawn, userID, request.ID, map[string]interface{}{
		"status": status,
	}))

	resp := request.ToResponse()
	return &resp, nil
}

func transitionError(err error) error {
	if errors.Is(err, postgres.ErrNotPending) {
		return ErrRequestHandled
	}
	return apperrors.Internal(err, "update request")
}
