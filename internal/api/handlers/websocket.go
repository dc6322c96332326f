package handlers

import (
	"campus-connect/internal/websocket"
	"campus-connect/pkg/logger"
	"campus-connect/pkg/response"

	"github.com/gin-gonic/gin"
)

type WSHandler struct {
	server *websocket.Server
	logger *logger.Logger
}

func NewWSHandler(server *websocket.Server, log *logger.Logger) *WSHandler {
	return &WSHandler{server: server, logger: log}
}

// HandleWebSocket godoc
// @Summary Realtime socket
// @Description Upgrades to a websocket. Pass the token as a bearer header or the token query parameter.
// @Tags websocket
// @Param token query string false "JWT"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} models.ErrorResponse
// @Router /ws [get]
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	h.server.ServeWS(c.Writer, c.Request, userID)
}
