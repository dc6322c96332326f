package handlers

import (
	"errors"
	"net/http"

	"campus-connect/internal/models"
	"campus-connect/internal/services"
	"campus-connect/pkg/logger"
	"campus-connect/pkg/response"

	"github.com/gin-gonic/gin"
)

const avatarField = "avatar"

type UserHandler struct {
	userService   *services.UserService
	publicBaseURL string
	logger        *logger.Logger
}

func NewUserHandler(userService *services.UserService, publicBaseURL string, log *logger.Logger) *UserHandler {
	return &UserHandler{userService: userService, publicBaseURL: publicBaseURL, logger: log}
}

// ListSeniors godoc
// @Summary Mentor directory
// @Description Seniors and alumni sorted by name, optionally filtered by a name substring
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param q query string false "Name filter"
// @Success 200 {array} models.PublicProfile
// @Failure 401 {object} models.ErrorResponse
// @Router /seniors [get]
func (h *UserHandler) ListSeniors(c *gin.Context) {
	seniors, err := h.userService.ListSeniors(c.Request.Context(), c.Query("q"), baseURL(c, h.publicBaseURL))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, seniors)
}

// GetUser godoc
// @Summary Public profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} models.PublicProfile
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	profile, err := h.userService.GetPublicProfile(c.Request.Context(), id, baseURL(c, h.publicBaseURL))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Only fields present in the body are changed. Tags accept an array or a comma separated string.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} models.UserResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /users/me [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.MsgInvalidInput)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UploadAvatar godoc
// @Summary Upload avatar
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Image file"
// @Success 200 {object} models.AvatarResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /users/me/avatar [post]
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	file, err := c.FormFile(avatarField)
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		response.BadRequest(c, response.MsgInvalidInput)
		return
	}

	resp, err := h.userService.SetAvatar(c.Request.Context(), userID, file)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	resp.User.AvatarURL = models.AbsoluteAvatar(resp.User.AvatarURL, baseURL(c, h.publicBaseURL))
	resp.AvatarURL = resp.User.AvatarURL
	c.JSON(http.StatusOK, resp)
}

// DeleteAvatar godoc
// @Summary Remove avatar
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserResponse
// @Router /users/me/avatar [delete]
func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	user, err := h.userService.RemoveAvatar(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
