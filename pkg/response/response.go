package response

import (
	"net/http"

	apperrors "campus-connect/pkg/errors"
	"campus-connect/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	MsgServerError       = "server error"
	MsgUnauthorized      = "unauthorized"
	MsgInvalidInput      = "invalid input"
	MsgRateLimitExceeded = "rate limit exceeded"
)

// status maps error codes onto HTTP statuses.
var status = map[string]int{
	apperrors.ErrCodeValidation:        http.StatusBadRequest,
	apperrors.ErrCodeNotFound:          http.StatusNotFound,
	apperrors.ErrCodeUnauthorized:      http.StatusUnauthorized,
	apperrors.ErrCodeForbidden:         http.StatusForbidden,
	apperrors.ErrCodeAlreadyExists:     http.StatusConflict,
	apperrors.ErrCodeConflict:          http.StatusConflict,
	apperrors.ErrCodeRateLimitExceeded: http.StatusTooManyRequests,
	apperrors.ErrCodeInternalError:     http.StatusInternalServerError,
}

// StatusFor returns the HTTP status for an error code, 500 when unknown.
func StatusFor(code string) int {
	if s, ok := status[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error writes err as {"error": msg}. Anything that is not a client error is
// logged and answered with a generic message.
func Error(c *gin.Context, log *logger.Logger, err error) {
	appErr, ok := apperrors.As(err)
	if !ok || appErr.Code == apperrors.ErrCodeInternalError {
		log.Error("Request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": MsgServerError})
		return
	}
	c.JSON(StatusFor(appErr.Code), gin.H{"error": appErr.Message})
}

// Abort is Error followed by c.Abort, for middleware.
func Abort(c *gin.Context, log *logger.Logger, err error) {
	Error(c, log, err)
	c.Abort()
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
