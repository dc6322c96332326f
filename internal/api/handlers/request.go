package handlers

import (
	"net/http"

	"campus-connect/internal/models"
	"campus-connect/internal/services"
	"campus-connect/pkg/logger"
	"campus-connect/pkg/response"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	requestService *services.RequestService
	logger         *logger.Logger
}

func NewRequestHandler(requestService *services.RequestService, log *logger.Logger) *RequestHandler {
	return &RequestHandler{requestService: requestService, logger: log}
}

// Create godoc
// @Summary Send a mentorship request
// @Description Juniors only. The target must be a senior or alumni.
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateMentorshipRequest true "Target and message"
// @Success 201 {object} models.RequestResponse
// @Failure 400 {object} models.ErrorResponse "Target not a senior"
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Request already pending"
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	var req models.CreateMentorshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.MsgInvalidInput)
		return
	}

	created, err := h.requestService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List godoc
// @Summary List requests
// @Description Mentors get {incoming}, everyone else {outgoing}, newest first
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.RequestListResponse
// @Router /requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	direction, list, err := h.requestService.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{direction: list})
}

// Respond godoc
// @Summary Accept or decline a request
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body models.RespondRequest true "accept or decline"
// @Success 200 {object} models.RespondResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Request already handled"
// @Router /requests/{id}/respond [post]
func (h *RequestHandler) Respond(c *gin.Context) {
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

	var req models.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.MsgInvalidInput)
		return
	}

	resp, err := h.requestService.Respond(c.Request.Context(), userID, id, req.Action)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Withdraw godoc
// @Summary Withdraw or decline a pending request
// @Description The sender cancels the request, the target declines it
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} models.RequestResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /requests/{id} [delete]
func (h *RequestHandler) Withdraw(c *gin.Context) {
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

	resp, err := h.requestService.Withdraw(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
