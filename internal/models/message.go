package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MaxMessageLength = 2000

/** --------------------ENTITIES-------------------- */
// Chat is a direct conversation between two users. User1ID is always the
// smaller of the pair so the unique index covers both orderings.
type Chat struct {
	ID            uint      `gorm:"primaryKey"`
	User1ID       uint      `gorm:"column:user1_id;not null;uniqueIndex:idx_chats_pair,priority:1"`
	User2ID       uint      `gorm:"column:user2_id;not null;uniqueIndex:idx_chats_pair,priority:2;index"`
	LastMessage   string    `gorm:"type:text"`
	LastSenderID  *uint
	LastMessageAt time.Time `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewChat orders the pair canonically.
func NewChat(a, b uint, now time.Time) *Chat {
	lo, hi := OrderedPair(a, b)
	return &Chat{User1ID: lo, User2ID: hi, LastMessageAt: now}
}

func OrderedPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

func (c *Chat) HasParticipant(userID uint) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// PartnerOf returns the other participant.
func (c *Chat) PartnerOf(userID uint) uint {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// Message is a single chat line. The ID is a UUID so the same value works
// for both the SQL and the document store. History is ordered by
// (CreatedAt, ID).
type Message struct {
	ID        string    `gorm:"primaryKey;type:varchar(36);index:idx_messages_chat_created_id,priority:3" bson:"_id"`
	ChatID    uint      `gorm:"not null;index:idx_messages_chat_created_id,priority:1" bson:"chat_id"`
	SenderID  uint      `gorm:"not null" bson:"sender_id"`
	Text      string    `gorm:"type:text;not null" bson:"text"`
	CreatedAt time.Time `gorm:"index:idx_messages_chat_created_id,priority:2" bson:"created_at"`
}

// NewMessageID returns a version 7 UUID. They sort by creation time and
// increase monotonically within the process, so messages sharing a
// millisecond keep insertion order.
func NewMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = NewMessageID()
	}
	return nil
}

/** -------------------- DTOs -------------------- */
type OpenChatRequest struct {
	PartnerID FlexID `json:"partnerId" binding:"required"`
}

type SendMessageRequest struct {
	Text string `json:"text"`
}

type MessageResponse struct {
	ID        string    `json:"_id"`
	ChatID    uint      `json:"chatId"`
	SenderID  uint      `json:"senderId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type LastMessage struct {
	Text      string    `json:"text"`
	SenderID  *uint     `json:"senderId"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChatSummary struct {
	ID          uint          `json:"_id"`
	Partner     PublicProfile `json:"partner"`
	LastMessage *LastMessage  `json:"lastMessage"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type ChatMessagesResponse struct {
	ChatID   uint              `json:"chatId"`
	Partner  PublicProfile     `json:"partner"`
	Messages []MessageResponse `json:"messages"`
}

func (m *Message) ToResponse() MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		ChatID:    m.ChatID,
		SenderID:  m.SenderID,
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
}
