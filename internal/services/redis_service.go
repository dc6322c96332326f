package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"campus-connect/internal/database"
	"campus-connect/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	onlineUsersKey = "campus:online_users"
	// RoomChannelPrefix prefixes the pub/sub channel of every socket room.
	RoomChannelPrefix = "campus:room:"
)

type RedisService struct {
	client *database.RedisClient
	logger *logger.Logger
	now    func() time.Time
}

func NewRedisService(client *database.RedisClient, log *logger.Logger) *RedisService {
	return &RedisService{
		client: client,
		logger: log,
		now:    time.Now,
	}
}

// =============================================================================
// Presence
// =============================================================================

// SetUserOnline counts one more open connection for userID.
func (r *RedisService) SetUserOnline(ctx context.Context, userID uint) error {
	if err := r.client.GetClient().HIncrBy(ctx, onlineUsersKey, strconv.FormatUint(uint64(userID), 10), 1).Err(); err != nil {
		r.logger.Error("Failed to set user online", "user_id", userID, "error", err)
		return err
	}
	return nil
}

// SetUserOffline drops one connection and forgets the user at zero.
func (r *RedisService) SetUserOffline(ctx context.Context, userID uint) error {
	field := strconv.FormatUint(uint64(userID), 10)
	n, err := r.client.GetClient().HIncrBy(ctx, onlineUsersKey, field, -1).Result()
	if err != nil {
		r.logger.Error("Failed to set user offline", "user_id", userID, "error", err)
		return err
	}
	if n <= 0 {
		return r.client.GetClient().HDel(ctx, onlineUsersKey, field).Err()
	}
	return nil
}

func (r *RedisService) IsUserOnline(ctx context.Context, userID uint) (bool, error) {
	return r.client.GetClient().HExists(ctx, onlineUsersKey, strconv.FormatUint(uint64(userID), 10)).Result()
}

func (r *RedisService) CountOnlineUsers(ctx context.Context) (int64, error) {
	return r.client.GetClient().HLen(ctx, onlineUsersKey).Result()
}

// =============================================================================
// PubSub Operations
// =============================================================================

// PublishRoom fans a serialized socket frame out to every instance.
func (r *RedisService) PublishRoom(ctx context.Context, room string, frame []byte) error {
	if err := r.client.GetClient().Publish(ctx, RoomChannelPrefix+room, frame).Err(); err != nil {
		r.logger.Error("Failed to publish room message", "room", room, "error", err)
		return err
	}
	return nil
}

func (r *RedisService) PSubscribe(ctx context.Context, patterns ...string) *redis.PubSub {
	pubsub := r.client.GetClient().PSubscribe(ctx, patterns...)
	r.logger.Debug("Pattern subscribed to channels", "patterns", patterns)
	return pubsub
}

// =============================================================================
// Rate Limiting
// =============================================================================

// slidingWindow trims KEYS[1] to the window and records ARGV[3] only when
// fewer than ARGV[2] calls remain, so rejected calls do not count.
var slidingWindow = redis.NewScript(`
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
if redis.call('ZCARD', KEYS[1]) >= tonumber(ARGV[2]) then
	return 0
end
redis.call('ZADD', KEYS[1], ARGV[4], ARGV[3])
redis.call('PEXPIRE', KEYS[1], ARGV[5])
return 1
`)

// CheckRateLimit is a sliding window log: it allows at most limit calls per
// window for key. Only allowed calls are logged.
func (r *RedisService) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := r.now()
	windowStart := now.Add(-window).UnixMicro()

	allowed, err := slidingWindow.Run(ctx, r.client.GetClient(), []string{key},
		windowStart, limit, uuid.NewString(), now.UnixMicro(), window.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return allowed == 1, nil
}

// =============================================================================
// Cache Operations
// =============================================================================

func (r *RedisService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return r.client.GetClient().Set(ctx, key, data, expiration).Err()
}

// Get decodes a cached value into dest. A miss returns redis.Nil.
func (r *RedisService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.GetClient().Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func (r *RedisService) Delete(ctx context.Context, keys ...string) error {
	return r.client.GetClient().Del(ctx, keys...).Err()
}
