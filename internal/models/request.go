package models

import (
	"time"

	"gorm.io/gorm"
)

type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestAccepted  RequestStatus = "ACCEPTED"
	RequestDeclined  RequestStatus = "DECLINED"
	RequestCancelled RequestStatus = "CANCELLED"
)

const (
	ActionAccept  = "accept"
	ActionDecline = "decline"
)

/** --------------------ENTITIES-------------------- */
// Request is a junior asking a mentor for help. It leaves PENDING at most
// once.
type Request struct {
	gorm.Model
	FromUserID  uint          `gorm:"not null;index:idx_requests_from_to,priority:1"`
	ToUserID    uint          `gorm:"not null;index:idx_requests_from_to,priority:2;index"`
	Message     string        `gorm:"type:text"`
	Status      RequestStatus `gorm:"type:varchar(20);not null;index"`
	ChatID      *uint
	RespondedAt *time.Time

	FromUser *User `gorm:"foreignKey:FromUserID"`
	ToUser   *User `gorm:"foreignKey:ToUserID"`
}

/** -------------------- DTOs -------------------- */
type CreateMentorshipRequest struct {
	ToUserID FlexID `json:"toUserId" binding:"required"`
	Message  string `json:"message"`
}

type RespondRequest struct {
	Action string `json:"action" binding:"required"`
}

type RequestResponse struct {
	ID          uint          `json:"_id"`
	FromUser    *UserSummary  `json:"fromUser"`
	ToUser      *UserSummary  `json:"toUser"`
	Message     string        `json:"message"`
	Status      RequestStatus `json:"status"`
	ChatID      *uint         `json:"chat"`
	RespondedAt *time.Time    `json:"respondedAt,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// RequestListResponse holds either the incoming or the outgoing list.
type RequestListResponse struct {
	Incoming []RequestResponse `json:"incoming,omitempty"`
	Outgoing []RequestResponse `json:"outgoing,omitempty"`
}

type RespondResponse struct {
	Request RequestResponse `json:"request"`
	ChatID  *uint           `json:"chatId,omitempty"`
}

func (r *Request) ToResponse() RequestResponse {
	resp := RequestResponse{
		ID:          r.ID,
		Message:     r.Message,
		Status:      r.Status,
		ChatID:      r.ChatID,
		RespondedAt: r.RespondedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.FromUser != nil {
		resp.FromUser = r.FromUser.Summary()
	} else {
		resp.FromUser = &UserSummary{ID: r.FromUserID}
	}
	if r.ToUser != nil {
		resp.ToUser = r.ToUser.Summary()
	} else {
		resp.ToUser = &UserSummary{ID: r.ToUserID}
	}
	return resp
}
