package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"campus-connect/internal/services"
	"campus-connect/pkg/logger"
	"campus-connect/pkg/response"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminHandler struct {
	adminService *services.AdminService
	logger       *logger.Logger
}

func NewAdminHandler(adminService *services.AdminService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{adminService: adminService, logger: log}
}

// Stats godoc
// @Summary Platform statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AdminStats
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportUsers godoc
// @Summary Export users as xlsx
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/users/export [get]
func (h *AdminHandler) ExportUsers(c *gin.Context) {
	// buffered so a failure can still be answered with JSON
	var buf bytes.Buffer
	if err := h.adminService.ExportUsers(c.Request.Context(), &buf); err != nil {
		response.Error(c, h.logger, err)
		return
	}

	filename := fmt.Sprintf("users-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
