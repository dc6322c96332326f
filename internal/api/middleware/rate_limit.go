package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"campus-connect/internal/services"
	"campus-connect/pkg/logger"
	"campus-connect/pkg/ratelimit"
	"campus-connect/pkg/response"

	"github.com/gin-gonic/gin"
)

// Limiter decides whether one more call for key fits in limit per window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RedisLimiter is a sliding window shared by every instance.
type RedisLimiter struct {
	redis *services.RedisService
}

func NewRedisLimiter(redis *services.RedisService) *RedisLimiter {
	return &RedisLimiter{redis: redis}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return l.redis.CheckRateLimit(ctx, key, limit, window)
}

// MemoryLimiter keeps token buckets in process, one set per limit.
type MemoryLimiter struct {
	mu   sync.Mutex
	sets map[string]*ratelimit.Buckets
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{sets: make(map[string]*ratelimit.Buckets)}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	setKey := fmt.Sprintf("%d/%s", limit, window)

	l.mu.Lock()
	set, ok := l.sets[setKey]
	if !ok {
		set = ratelimit.NewBuckets(limit, window)
		l.sets[setKey] = set
	}
	l.mu.Unlock()

	return set.Allow(key), nil
}

type RateLimitMiddleware struct {
	limiter Limiter
	logger  *logger.Logger
}

func NewRateLimitMiddleware(limiter Limiter, log *logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		logger:  log,
	}
}

// RateLimit limits authenticated users per route group. It must run after
// RequireAuth.
func (rm *RateLimitMiddleware) RateLimit(scope string, requests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := UserID(c)
		rm.check(c, fmt.Sprintf("rate_limit:%s:user:%d", scope, userID), requests, window)
	}
}

// RateLimitIP limits public routes per client address.
func (rm *RateLimitMiddleware) RateLimitIP(scope string, requests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		rm.check(c, fmt.Sprintf("rate_limit:%s:ip:%s", scope, c.ClientIP()), requests, window)
	}
}

func (rm *RateLimitMiddleware) check(c *gin.Context, key string, requests int, window time.Duration) {
	allowed, err := rm.limiter.Allow(c.Request.Context(), key, requests, window)
	if err != nil {
		// fail open
		rm.logger.Warn("Rate limit check failed", "key", key, "error", err)
		c.Next()
		return
	}
	if !allowed {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": response.MsgRateLimitExceeded})
		return
	}
	c.Next()
}
