package websocket

import (
	"net/http"
	"net/url"
	"strings"

	"campus-connect/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
)

// Server upgrades authenticated requests and attaches the connection to the
// hub.
type Server struct {
	hub      *Hub
	events   ChatEvents
	upgrader websocket.Upgrader
	validate *validator.Validate
	logger   *logger.Logger
}

func NewServer(hub *Hub, events ChatEvents, allowedOrigins []string, log *logger.Logger) *Server {
	return &Server{
		hub:      hub,
		events:   events,
		upgrader: NewUpgrader(allowedOrigins),
		validate: validator.New(),
		logger:   log,
	}
}

// ServeWS must only be called once userID has been authenticated.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request, userID uint) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Failed to upgrade WebSocket connection", "user_id", userID, "error", err)
		return
	}

	client := NewClient(s.hub, conn, userID, s.events, s.validate, s.logger)
	select {
	case s.hub.register <- client:
	case <-s.hub.ctx.Done():
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// NewUpgrader accepts requests without an Origin header (non-browser
// clients), configured origins and any localhost origin.
func NewUpgrader(allowedOrigins []string) websocket.Upgrader {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	allowAll := false
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			allowAll = true
			continue
		}
		if normalized, ok := normalizeOrigin(origin); ok {
			allowed[normalized] = struct{}{}
		}
	}

	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			header := r.Header.Get("Origin")
			if header == "" || allowAll {
				return true
			}
			origin, ok := normalizeOrigin(header)
			if !ok {
				return false
			}
			if _, ok := allowed[origin]; ok {
				return true
			}
			u, _ := url.Parse(origin)
			host := u.Hostname()
			return host == "localhost" || host == "127.0.0.1"
		},
	}
}

func normalizeOrigin(origin string) (string, bool) {
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}
	return strings.ToLower(parsed.Scheme) + "://" + strings.ToLower(parsed.Host), true
}
