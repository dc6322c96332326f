package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campus-connect/internal/database"
	"campus-connect/internal/models"
	"campus-connect/internal/security"
	"campus-connect/internal/services"
	"campus-connect/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	tokens := security.NewTokenManager("middleware_test_secret_32_chars_long", time.Hour)
	am := NewAuthMiddleware(tokens, logger.NewNop())

	engine := gin.New()
	engine.GET("/me", am.RequireAuth(), func(c *gin.Context) {
		id, ok := UserID(c)
		require.True(t, ok)
		role, _ := c.Get(ContextRole)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})
	engine.GET("/admin", am.RequireAuth(), am.RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	junior, err := tokens.Generate(7, string(models.RoleJunior))
	require.NoError(t, err)
	admin, err := tokens.Generate(1, string(models.RoleAdmin))
	require.NoError(t, err)

	w := serve(engine, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())

	w = serve(engine, http.MethodGet, "/me", http.Header{"Authorization": {"Bearer garbage"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(engine, http.MethodGet, "/me", http.Header{"Authorization": {"Bearer " + junior}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"role":"JUNIOR"}`, w.Body.String())

	w = serve(engine, http.MethodGet, "/me?token="+junior, nil)
	assert.Equal(t, http.StatusOK, w.Code, "query token for socket handshakes")

	w = serve(engine, http.MethodGet, "/admin", http.Header{"Authorization": {"Bearer " + junior}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"forbidden"}`, w.Body.String())

	w = serve(engine, http.MethodGet, "/admin", http.Header{"Authorization": {"Bearer " + admin}})
	assert.Equal(t, http.StatusOK, w.Code)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, int, time.Duration) (bool, error) {
	return false, errors.New("redis down")
}

func TestRateLimitIP(t *testing.T) {
	rm := NewRateLimitMiddleware(NewMemoryLimiter(), logger.NewNop())
	engine := gin.New()
	engine.GET("/", rm.RateLimitIP("test", 3, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/", nil).Code)
	}
	w := serve(engine, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, w.Body.String())
}

func TestRateLimitFailsOpen(t *testing.T) {
	rm := NewRateLimitMiddleware(failingLimiter{}, logger.NewNop())
	engine := gin.New()
	engine.GET("/", rm.RateLimitIP("test", 1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/", nil).Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/", nil).Code)
}

func TestMemoryLimiterSeparatesKeysAndLimits(t *testing.T) {
	l := NewMemoryLimiter()
	ctx := context.Background()

	ok, _ := l.Allow(ctx, "a", 1, time.Minute)
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "a", 1, time.Minute)
	assert.False(t, ok)
	ok, _ = l.Allow(ctx, "b", 1, time.Minute)
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "a", 5, time.Minute)
	assert.True(t, ok, "a different limit has its own buckets")
}

func TestRedisLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	log := logger.NewNop()
	l := NewRedisLimiter(services.NewRedisService(database.NewRedisClient(client, log), log))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "k", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := l.Allow(ctx, "k", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCORS(t *testing.T) {
	engine := gin.New()
	engine.Use(CORS([]string{"https://campus.example.com/"}))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(engine, http.MethodOptions, "/", http.Header{"Origin": {"https://campus.example.com"}})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://campus.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = serve(engine, http.MethodGet, "/", http.Header{"Origin": {"http://localhost:5173"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(engine, http.MethodGet, "/", http.Header{"Origin": {"https://evil.example.com"}})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(engine, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
