package dto

import (
	"time"

	"bsdoc-server/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

type MarkReadRequest struct {
	IDs []int64 `json:"ids,omitempty"`
	All bool    `json:"all,omitempty"`
}

// Response DTOs

type NotificationResponse struct {
	ID        int64       `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	LinkURL   string      `json:"link_url,omitempty"`
	Metadata  entity.JSON `json:"metadata,omitempty"`
	IsRead    bool        `json:"is_read"`
	CreatedAt time.Time   `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
	Total         int                    `json:"total"`
}

type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}
