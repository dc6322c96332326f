package response

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "campus-connect/pkg/errors"
	"campus-connect/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"not found", apperrors.NotFound("chat not found"), http.StatusNotFound, `{"error":"chat not found"}`},
		{"wrapped forbidden", fmt.Errorf("x: %w", apperrors.Forbidden("not allowed")), http.StatusForbidden, `{"error":"not allowed"}`},
		{"conflict", apperrors.Conflict("email already registered"), http.StatusConflict, `{"error":"email already registered"}`},
		{"plain error", stderrors.New("db down"), http.StatusInternalServerError, `{"error":"server error"}`},
		{"internal", apperrors.Internal(stderrors.New("db down"), "load"), http.StatusInternalServerError, `{"error":"server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Error(c, logger.NewNop(), tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestStatusForUnknownCode(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusFor("SOMETHING_ELSE"))
	assert.Equal(t, http.StatusTooManyRequests, StatusFor(apperrors.ErrCodeRateLimitExceeded))
}
