package services

import (
	"context"
	"encoding/json"
	"testing"

	"campus-connect/internal/models"
	apperrors "campus-connect/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.user(t, "user", models.RoleJunior)
	other := env.user(t, "other", models.RoleJunior)

	for i := 0; i < 3; i++ {
		env.notifier.Notify(ctx, NotifyInput{
			UserID:  user.ID,
			Type:    models.NotificationMessage,
			Message: "ping",
			Meta:    map[string]interface{}{"chatId": 7},
		})
	}
	assert.Len(t, env.broadcaster.inRoom(models.UserRoom(user.ID)), 3)

	list, err := env.notifier.List(ctx, user.ID, false, 0)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 3)
	assert.EqualValues(t, 3, list.UnreadCount)

	var meta map[string]interface{}
	require.NoError(t, json.Unmarshal(list.Notifications[0].Meta, &meta))
	assert.EqualValues(t, 7, meta["chatId"])

	first := list.Notifications[0]
	read, err := env.notifier.MarkRead(ctx, first.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)

	_, err = env.notifier.MarkRead(ctx, first.ID, other.ID)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.CodeOf(err))

	unread, err := env.notifier.List(ctx, user.ID, true, 0)
	require.NoError(t, err)
	assert.Len(t, unread.Notifications, 2)
	assert.EqualValues(t, 2, unread.UnreadCount)

	updated, err := env.notifier.MarkAllRead(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated)

	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.CodeOf(env.notifier.Delete(ctx, first.ID, other.ID)))
	require.NoError(t, env.notifier.Delete(ctx, first.ID, user.ID))

	list, err = env.notifier.List(ctx, user.ID, false, 1)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 1)
	assert.EqualValues(t, 0, list.UnreadCount)
}
