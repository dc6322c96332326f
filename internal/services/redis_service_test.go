package services

import (
	"context"
	"testing"
	"time"

	"campus-connect/internal/database"
	"campus-connect/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisService(t *testing.T) (*RedisService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisService(database.NewRedisClient(client, logger.NewNop()), logger.NewNop()), mr
}

func TestRedisService_Presence(t *testing.T) {
	svc, _ := newRedisService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetUserOnline(ctx, 1))
	require.NoError(t, svc.SetUserOnline(ctx, 1))
	require.NoError(t, svc.SetUserOnline(ctx, 2))

	count, err := svc.CountOnlineUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	// one of two tabs closed
	require.NoError(t, svc.SetUserOffline(ctx, 1))
	online, err := svc.IsUserOnline(ctx, 1)
	require.NoError(t, err)
	assert.True(t, online)

	require.NoError(t, svc.SetUserOffline(ctx, 1))
	online, err = svc.IsUserOnline(ctx, 1)
	require.NoError(t, err)
	assert.False(t, online)

	count, err = svc.CountOnlineUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestRedisService_CheckRateLimit(t *testing.T) {
	svc, _ := newRedisService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := svc.CheckRateLimit(ctx, "rl:test", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "call %d", i)
	}
	allowed, err := svc.CheckRateLimit(ctx, "rl:test", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = svc.CheckRateLimit(ctx, "rl:other", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed, "keys are independent")
}

func TestRedisService_CheckRateLimitIgnoresRejectedCalls(t *testing.T) {
	svc, mr := newRedisService(t)
	ctx := context.Background()
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	for i := 0; i < 2; i++ {
		allowed, err := svc.CheckRateLimit(ctx, "rl:retry", 2, time.Minute)
		require.NoError(t, err)
		require.True(t, allowed)
	}

	// hammering while blocked must not push the unblock time out
	clock = clock.Add(30 * time.Second)
	for i := 0; i < 5; i++ {
		allowed, err := svc.CheckRateLimit(ctx, "rl:retry", 2, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
	}
	members, err := mr.ZMembers("rl:retry")
	require.NoError(t, err)
	assert.Len(t, members, 2)

	clock = clock.Add(31 * time.Second)
	allowed, err := svc.CheckRateLimit(ctx, "rl:retry", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed, "window has slid past the first two calls")
}

func TestRedisService_Cache(t *testing.T) {
	svc, mr := newRedisService(t)
	ctx := context.Background()

	type payload struct {
		Count int `json:"count"`
	}
	require.NoError(t, svc.Set(ctx, "k", payload{Count: 4}, time.Second))

	var got payload
	require.NoError(t, svc.Get(ctx, "k", &got))
	assert.Equal(t, 4, got.Count)

	mr.FastForward(2 * time.Second)
	assert.ErrorIs(t, svc.Get(ctx, "k", &got), redis.Nil)

	require.NoError(t, svc.Set(ctx, "k", payload{Count: 1}, 0))
	require.NoError(t, svc.Delete(ctx, "k"))
	assert.ErrorIs(t, svc.Get(ctx, "k", &got), redis.Nil)
}

func TestRedisService_PublishRoom(t *testing.T) {
	svc, _ := newRedisService(t)
	ctx := context.Background()

	sub := svc.PSubscribe(ctx, RoomChannelPrefix+"*")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.PublishRoom(ctx, "chat:9", []byte(`{"type":"newMessage"}`)))

	select {
	case msg := <-sub.Channel():
		assert.Equal(t, RoomChannelPrefix+"chat:9", msg.Channel)
		assert.JSONEq(t, `{"type":"newMessage"}`, msg.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}
