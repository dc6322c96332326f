package handlers

import (
	"strconv"
	"strings"

	"campus-connect/internal/api/middleware"
	apperrors "campus-connect/pkg/errors"
	"campus-connect/pkg/response"

	"github.com/gin-gonic/gin"
)

var errInvalidID = apperrors.Validation("invalid id")

func currentUserID(c *gin.Context) (uint, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return 0, apperrors.Unauthorized(response.MsgUnauthorized)
	}
	return id, nil
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// baseURL is the origin avatar paths are resolved against: the configured
// public URL, else the request's own scheme and host.
func baseURL(c *gin.Context, configured string) string {
	if configured != "" {
		return configured
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	return scheme + "://" + c.Request.Host
}
