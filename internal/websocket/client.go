package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"campus-connect/internal/models"
	apperrors "campus-connect/pkg/errors"
	"campus-connect/pkg/logger"
	"campus-connect/pkg/ratelimit"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound frame, a full-length message plus envelope
	maxMessageSize = 16 * 1024

	sendBufferSize = 256

	// Inbound event throttle per connection
	eventBurst    = 20
	eventInterval = 10 * time.Second

	handleTimeout = 10 * time.Second
)

type Client struct {
	id     string
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uint

	// guarded by hub.mu
	rooms map[string]struct{}

	mu     sync.Mutex
	closed bool

	events   ChatEvents
	limiter  *ratelimit.Bucket
	validate *validator.Validate
	logger   *logger.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uint, events ChatEvents, validate *validator.Validate, log *logger.Logger) *Client {
	id := uuid.NewString()
	return &Client{
		id:       id,
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		userID:   userID,
		rooms:    make(map[string]struct{}),
		events:   events,
		limiter:  ratelimit.NewBucket(eventBurst, eventInterval),
		validate: validate,
		logger:   log.With("client_id", id, "user_id", userID),
	}
}

// trySend queues a frame without blocking. It fails when the client is
// closed or its buffer is full.
func (c *Client) trySend(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.ctx.Done():
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("WebSocket read error", "error", err)
			} else {
				c.logger.Debug("WebSocket connection closed", "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError("invalid message format")
			continue
		}
		if !c.limiter.Allow() {
			c.sendError("rate limit exceeded")
			continue
		}

		c.handle(&msg)
	}
}

func (c *Client) handle(msg *Message) {
	ctx, cancel := context.WithTimeout(c.hub.ctx, handleTimeout)
	defer cancel()

	switch msg.Type {
	case MessageTypeJoinChat:
		var data ChatRoomData
		if !c.decode(msg, &data) {
			return
		}
		chatID := data.ChatID.Uint()
		if err := c.events.CanJoin(ctx, chatID, c.userID); err != nil {
			c.sendAppError(err)
			return
		}
		room := models.ChatRoom(chatID)
		c.hub.Join(c, room)
		c.hub.EmitToRoom(room, models.EventUserJoined, UserJoinedData{UserID: c.userID, ChatID: chatID})

	case MessageTypeLeaveChat:
		var data ChatRoomData
		if !c.decode(msg, &data) {
			return
		}
		c.hub.Leave(c, models.ChatRoom(data.ChatID.Uint()))

	case MessageTypeSendMessage:
		var data SendMessageData
		if !c.decode(msg, &data) {
			return
		}
		// the chat service broadcasts newMessage to the room
		if _, err := c.events.SendMessage(ctx, data.ChatID.Uint(), c.userID, data.Text); err != nil {
			c.sendAppError(err)
		}

	default:
		c.sendError("unknown event type")
	}
}

func (c *Client) decode(msg *Message, v interface{}) bool {
	if err := msg.Decode(v); err != nil {
		c.sendError("invalid " + msg.Type.String() + " payload")
		return false
	}
	if err := c.validate.Struct(v); err != nil {
		c.sendError("invalid " + msg.Type.String() + " payload")
		return false
	}
	return true
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.logger.Debug("Error writing message", "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("Error sending ping", "error", err)
				return
			}
		}
	}
}

// sendAppError reports a domain error to this client only. Internal errors
// are logged and masked.
func (c *Client) sendAppError(err error) {
	if appErr, ok := apperrors.As(err); ok && appErr.Code != apperrors.ErrCodeInternalError {
		c.sendError(appErr.Message)
		return
	}
	c.logger.Error("Socket event failed", "error", err)
	c.sendError("server error")
}

func (c *Client) sendError(message string) {
	frame, err := encodeFrame(MessageTypeError, c.userID, ErrorData{Message: message})
	if err != nil {
		return
	}
	if !c.trySend(frame) {
		c.logger.Debug("Error frame dropped", "message", message)
	}
}
