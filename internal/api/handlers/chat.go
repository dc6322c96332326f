package handlers

import (
	"net/http"
	"strconv"
	"time"

	"campus-connect/internal/models"
	"campus-connect/internal/repositories"
	"campus-connect/internal/services"
	apperrors "campus-connect/pkg/errors"
	"campus-connect/pkg/logger"
	"campus-connect/pkg/response"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService   *services.ChatService
	publicBaseURL string
	logger        *logger.Logger
}

func NewChatHandler(chatService *services.ChatService, publicBaseURL string, log *logger.Logger) *ChatHandler {
	return &ChatHandler{chatService: chatService, publicBaseURL: publicBaseURL, logger: log}
}

// ListChats godoc
// @Summary List chats
// @Description Most recently active first, with the partner's public profile
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ChatSummary
// @Router /chats [get]
func (h *ChatHandler) ListChats(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	chats, err := h.chatService.ListChats(c.Request.Context(), userID, baseURL(c, h.publicBaseURL))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, chats)
}

// OpenChat godoc
// @Summary Open the chat with a partner
// @Description Requires an accepted request between the two users
// @Tags chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.OpenChatRequest true "Partner"
// @Success 200 {object} models.ChatSummary
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /chats [post]
func (h *ChatHandler) OpenChat(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	var req models.OpenChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.MsgInvalidInput)
		return
	}

	chat, err := h.chatService.OpenChat(c.Request.Context(), userID, req.PartnerID.Uint(), baseURL(c, h.publicBaseURL))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, chat)
}

// Messages godoc
// @Summary Chat history
// @Description Ascending by creation time then id. limit returns the latest page; before (unix ms) with the optional beforeId of the oldest message seen pages backwards.
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chat ID"
// @Param limit query int false "Page size, at most 200"
// @Param before query int false "Unix milliseconds"
// @Param beforeId query string false "Message id at the before timestamp"
// @Success 200 {object} models.ChatMessagesResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /chats/{id}/messages [get]
func (h *ChatHandler) Messages(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	chatID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			response.Error(c, h.logger, apperrors.Validation("invalid limit"))
			return
		}
	}
	var before *repositories.MessageCursor
	if raw := c.Query("before"); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, h.logger, apperrors.Validation("invalid before"))
			return
		}
		before = &repositories.MessageCursor{CreatedAt: time.UnixMilli(ms).UTC(), ID: c.Query("beforeId")}
	} else if c.Query("beforeId") != "" {
		response.Error(c, h.logger, apperrors.Validation("beforeId requires before"))
		return
	}

	resp, err := h.chatService.Messages(c.Request.Context(), chatID, userID, limit, before, baseURL(c, h.publicBaseURL))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SendMessage godoc
// @Summary Send a message
// @Description HTTP fallback for the sendMessage socket event
// @Tags chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chat ID"
// @Param request body models.SendMessageRequest true "Text"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /chats/{id}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	chatID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.MsgInvalidInput)
		return
	}

	msg, err := h.chatService.SendMessage(c.Request.Context(), chatID, userID, req.Text)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}
