package middleware

import (
	"strings"

	"campus-connect/internal/models"
	"campus-connect/internal/security"
	apperrors "campus-connect/pkg/errors"
	"campus-connect/pkg/logger"
	"campus-connect/pkg/response"

	"github.com/gin-gonic/gin"
)

// Context keys set by RequireAuth.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

var errUnauthorized = apperrors.Unauthorized(response.MsgUnauthorized)

type AuthMiddleware struct {
	tokens *security.TokenManager
	logger *logger.Logger
}

func NewAuthMiddleware(tokens *security.TokenManager, log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		logger: log,
	}
}

// RequireAuth accepts a bearer token in the Authorization header or, for
// socket handshakes that cannot set headers, in the token query parameter.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := security.BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = strings.TrimSpace(c.Query("token"))
		}
		if token == "" {
			response.Abort(c, am.logger, errUnauthorized)
			return
		}

		claims, err := am.tokens.Validate(token)
		if err != nil {
			am.logger.Debug("Rejected token", "path", c.FullPath(), "error", err)
			response.Abort(c, am.logger, errUnauthorized)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, models.Role(claims.Role))
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func (am *AuthMiddleware) RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		response.Abort(c, am.logger, apperrors.Forbidden("forbidden"))
	}
}

// UserID returns the authenticated user's ID.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
