package services

import (
	"context"
	"sync"
	"testing"

	"campus-connect/internal/events"
	"campus-connect/internal/models"
	apperrors "campus-connect/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	junior := env.user(t, "junior", models.RoleJunior)
	senior := env.user(t, "senior", models.RoleSenior)
	alumni := env.user(t, "alumni", models.RoleAlumni)
	other := env.user(t, "other", models.RoleJunior)

	req, err := env.requestSvc.Create(ctx, junior.ID, &models.CreateMentorshipRequest{
		ToUserID: models.FlexID(senior.ID),
		Message:  "  Can you explain Vec<int> vs []int? ",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, req.Status)
	assert.Equal(t, "Can you explain Vec<int> vs []int?", req.Message)
	assert.Equal(t, senior.ID, req.ToUser.ID)
	assert.Nil(t, req.ChatID)

	notified := env.broadcaster.inRoom(models.UserRoom(senior.ID))
	require.Len(t, notified, 1)
	assert.Equal(t, models.EventNotification, notified[0].Event)
	assert.Equal(t, models.NotificationRequest, notified[0].Data.(models.NotificationResponse).Type)
	assert.Equal(t, []string{events.RequestCreated}, env.publisher.types())

	_, err = env.requestSvc.Create(ctx, junior.ID, &models.CreateMentorshipRequest{ToUserID: models.FlexID(senior.ID)})
	assert.Equal(t, apperrors.ErrCodeConflict, apperrors.CodeOf(err))

	_, err = env.requestSvc.Create(ctx, junior.ID, &models.CreateMentorshipRequest{ToUserID: models.FlexID(alumni.ID)})
	assert.NoError(t, err, "alumni are mentors too")

	tests := []struct {
		name string
		from uint
		to   uint
		code string
	}{
		{"mentor cannot send", senior.ID, alumni.ID, apperrors.ErrCodeForbidden},
		{"missing target", junior.ID, 0, apperrors.ErrCodeValidation},
		{"self", junior.ID, junior.ID, apperrors.ErrCodeValidation},
		{"target is junior", junior.ID, other.ID, apperrors.ErrCodeValidation},
		{"unknown target", junior.ID, 9999, apperrors.ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.requestSvc.Create(ctx, tt.from, &models.CreateMentorshipRequest{ToUserID: models.FlexID(tt.to)})
			assert.Equal(t, tt.code, apperrors.CodeOf(err))
		})
	}
}

func TestRequestService_List(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	junior := env.user(t, "junior", models.RoleJunior)
	senior := env.user(t, "senior", models.RoleSenior)
	_, err := env.requestSvc.Create(ctx, junior.ID, &models.CreateMentorshipRequest{ToUserID: models.FlexID(senior.ID)})
	require.NoError(t, err)

	direction, list, err := env.requestSvc.List(ctx, senior.ID)
	require.NoError(t, err)
	assert.Equal(t, DirectionIncoming, direction)
	require.Len(t, list, 1)
	assert.Equal(t, junior.ID, list[0].FromUser.ID)
	assert.Equal(t, "junior@campus.edu", list[0].FromUser.Email)

	direction, list, err = env.requestSvc.List(ctx, junior.ID)
	require.NoError(t, err)
	assert.Equal(t, DirectionOutgoing, direction)
	require.Len(t, list, 1)
	assert.Equal(t, senior.ID, list[0].ToUser.ID)
}

func TestRequestService_Respond(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	junior := env.user(t, "junior", models.RoleJunior)
	senior := env.user(t, "senior", models.RoleSenior)
	stranger := env.user(t, "stranger", models.RoleSenior)

	req, err := env.requestSvc.Create(ctx, junior.ID, &models.CreateMentorshipRequest{ToUserID: models.FlexID(senior.ID)})
	require.NoError(t, err)

	_, err = env.requestSvc.Respond(ctx, senior.ID, 9999, models.ActionAccept)
	assert.Equal(t, ErrRequestNotFound, err)

	_, err = env.requestSvc.Respond(ctx, stranger.ID, req.ID, models.ActionAccept)
	assert.Equal(t, ErrNotAllowed, err)

	_, err = env.requestSvc.Respond(ctx, junior.ID, req.ID, models.ActionAccept)
	assert.Equal(t, ErrNotAllowed, err, "the sender cannot accept their own request")

	_, err = env.requestSvc.Respond(ctx, senior.ID, req.ID, "maybe")
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))

	resp, err := env.requestSvc.Respond(ctx, senior.ID, req.ID, " Accept ")
	require.NoError(t, err)
	assert.Equal(t, models.RequestAccepted, resp.Request.Status)
	require.NotNil(t, resp.ChatID)
	assert.Equal(t, resp.ChatID, resp.Request.ChatID)
	assert.NotNil(t, resp.Request.RespondedAt)

	chat, err := env.chats.FindByID(ctx, *resp.ChatID)
	require.NoError(t, err)
	assert.True(t, chat.HasParticipant(junior.ID))
	assert.True(t, chat.HasParticipant(senior.ID))

	notified := env.broadcaster.inRoom(models.UserRoom(junior.ID))
	require.Len(t, notified, 1)
	assert.Equal(t, models.NotificationRequestAccepted, notified[0].Data.(models.NotificationResponse).Type)

	_, err = env.requestSvc.Respond(ctx, senior.ID, req.ID, models.ActionDecline)
	assert.Equal(t, ErrRequestHandled, err)
}

func TestRequestService_RespondDecline(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	junior := env.user(t, "junior", models.RoleJunior)
	senior := env.user(t, "senior", models.RoleSenior)
	req, err := env.requestSvc.Create(ctx, junior.ID, &models.CreateMentorshipRequest{ToUserID: models.FlexID(senior.ID)})
	require.NoError(t, err)

	resp, err := env.requestSvc.Respond(ctx, senior.ID, req.ID, models.ActionDecline)
	require.NoError(t, err)
	assert.Equal(t, models.RequestDeclined, resp.Request.Status)
	assert.Nil(t, resp.ChatID)

	_, err = env.chats.FindByPair(ctx, junior.ID, senior.ID)
	assert.Error(t, err, "declining must not open a chat")

	// a declined request no longer blocks a new one
	_, err = env.requestSvc.Create(ctx, junior.ID, &models.CreateMentorshipRequest{ToUserID: models.FlexID(senior.ID)})
	assert.NoError(t, err)
}

func TestRequestService_ConcurrentAccept(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	junior := env.user(t, "junior", models.RoleJunior)
	senior := env.user(t, "senior", models.RoleSenior)
	req, err := env.requestSvc.Create(ctx, junior.ID, &models.CreateMentorshipRequest{ToUserID: models.FlexID(senior.ID)})
	require.NoError(t, err)

	const attempts = 5
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ok      int
		handled int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.requestSvc.Respond(ctx, senior.ID, req.ID, models.ActionAccept)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if err == ErrRequestHandled {
				handled++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, handled)
}

func TestRequestService_Withdraw(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	junior := env.user(t, "junior", models.RoleJunior)
	senior := env.user(t, "senior", models.RoleSenior)
	stranger := env.user(t, "stranger", models.RoleJunior)

	first, err := env.requestSvc.Create(ctx, junior.ID, &models.CreateMentorshipRequest{ToUserID: models.FlexID(senior.ID)})
	require.NoError(t, err)

	_, err = env.requestSvc.Withdraw(ctx, stranger.ID, first.ID)
	assert.Equal(t, ErrNotAllowed, err)

	cancelled, err := env.requestSvc.Withdraw(ctx, junior.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestCancelled, cancelled.Status)

	_, err = env.requestSvc.Withdraw(ctx, junior.ID, first.ID)
	assert.Equal(t, ErrRequestHandled, err)

	second, err := env.requestSvc.Create(ctx, junior.ID, &models.CreateMentorshipRequest{ToUserID: models.FlexID(senior.ID)})
	require.NoError(t, err)

	declined, err := env.requestSvc.Withdraw(ctx, senior.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestDeclined, declined.Status)

	_, err = env.requestSvc.Withdraw(ctx, senior.ID, 9999)
	assert.Equal(t, ErrRequestNotFound, err)

	assert.Contains(t, env.publisher.types(), events.RequestWithdrawn)
}
