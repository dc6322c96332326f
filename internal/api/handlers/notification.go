package handlers

import (
	"net/http"
	"strconv"

	"campus-connect/internal/models"
	"campus-connect/internal/services"
	"campus-connect/pkg/logger"
	"campus-connect/pkg/response"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
	logger              *logger.Logger
}

func NewNotificationHandler(notificationService *services.NotificationService, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, logger: log}
}

// List godoc
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread query bool false "Only unread"
// @Param limit query int false "At most 100, default 50"
// @Success 200 {object} models.NotificationListResponse
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	unreadOnly, _ := strconv.ParseBool(c.Query("unread"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	resp, err := h.notificationService.List(c.Request.Context(), userID, unreadOnly, limit)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarkRead godoc
// @Summary Mark one notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} models.NotificationResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	n, err := h.notificationService.MarkRead(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// MarkAllRead godoc
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ReadAllResponse
// @Router /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	updated, err := h.notificationService.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.ReadAllResponse{Updated: updated})
}

// Delete godoc
// @Summary Delete a notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} models.StatusResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	if err := h.notificationService.Delete(c.Request.Context(), id, userID); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Message: "deleted"})
}
