package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"campus-connect/internal/models"

	"github.com/google/uuid"
)

// MessageType names a socket event.
type MessageType string

const (
	// Server to client
	MessageTypeConnected    MessageType = models.EventConnected
	MessageTypeUserJoined   MessageType = models.EventUserJoined
	MessageTypeNewMessage   MessageType = models.EventNewMessage
	MessageTypeNotification MessageType = models.EventNotification
	MessageTypeError        MessageType = models.EventError

	// Client to server
	MessageTypeJoinChat    MessageType = models.EventJoinChat
	MessageTypeLeaveChat   MessageType = models.EventLeaveChat
	MessageTypeSendMessage MessageType = models.EventSendMessage
)

func (mt MessageType) String() string {
	return string(mt)
}

// IsInbound reports whether clients may send this type.
func (mt MessageType) IsInbound() bool {
	switch mt {
	case MessageTypeJoinChat, MessageTypeLeaveChat, MessageTypeSendMessage:
		return true
	default:
		return false
	}
}

// Message is the envelope of every frame in both directions.
type Message struct {
	ID        string          `json:"id"`
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp int64           `json:"timestamp"`
	UserID    uint            `json:"user_id,omitempty"`
}

// Decode unmarshals the payload into v.
func (m *Message) Decode(v interface{}) error {
	if len(m.Data) == 0 {
		return fmt.Errorf("missing data")
	}
	return json.Unmarshal(m.Data, v)
}

// Inbound payloads
type ChatRoomData struct {
	ChatID models.FlexID `json:"chatId" validate:"required"`
}

type SendMessageData struct {
	ChatID models.FlexID `json:"chatId" validate:"required"`
	Text   string        `json:"text" validate:"required"`
}

// Outbound payloads
type ConnectedData struct {
	ClientID string `json:"clientId"`
	UserID   uint   `json:"userId"`
}

type UserJoinedData struct {
	UserID uint `json:"userId"`
	ChatID uint `json:"chatId"`
}

type ErrorData struct {
	Message string `json:"message"`
}

// NewMessage builds an envelope around data.
func NewMessage(msgType MessageType, userID uint, data interface{}) (*Message, error) {
	msg := &Message{
		ID:        uuid.NewString(),
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		UserID:    userID,
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s payload: %w", msgType, err)
		}
		msg.Data = raw
	}
	return msg, nil
}

// encodeFrame serializes an outbound event.
func encodeFrame(msgType MessageType, userID uint, data interface{}) ([]byte, error) {
	msg, err := NewMessage(msgType, userID, data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(msg)
}
