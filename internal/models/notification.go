package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	NotificationRequest          = "request"
	NotificationRequestAccepted  = "request-accepted"
	NotificationRequestDeclined  = "request-declined"
	NotificationRequestCancelled = "request-cancelled"
	NotificationMessage          = "message"
)

const (
	RefRequest = "Request"
	RefChat    = "Chat"
)

/** --------------------ENTITIES-------------------- */
type Notification struct {
	ID        uint      `gorm:"primarykey"`
	UserID    uint      `gorm:"not null;index:idx_notifications_user_created,priority:1"`
	ActorID   *uint
	Type      string `gorm:"type:varchar(40);not null"`
	Message   string `gorm:"type:text"`
	Meta      datatypes.JSON
	RefModel  string `gorm:"type:varchar(40)"`
	RefID     *uint
	Read      bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time `gorm:"index:idx_notifications_user_created,priority:2"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

/** -------------------- DTOs -------------------- */
type NotificationResponse struct {
	ID        uint           `json:"_id"`
	UserID    uint           `json:"user"`
	ActorID   *uint          `json:"actor"`
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Meta      datatypes.JSON `json:"meta" swaggertype:"object"`
	RefModel  string         `json:"refModel,omitempty"`
	RefID     *uint          `json:"refId,omitempty"`
	Read      bool           `json:"read"`
	CreatedAt time.Time      `json:"createdAt"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unreadCount"`
}

type ReadAllResponse struct {
	Updated int64 `json:"updated"`
}

func (n *Notification) ToResponse() NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		ActorID:   n.ActorID,
		Type:      n.Type,
		Message:   n.Message,
		Meta:      n.Meta,
		RefModel:  n.RefModel,
		RefID:     n.RefID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
