package dto

import (
	"time"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	Id        uuid.UUID              `json:"id"`
	Message   string                 `json:"message"`
	IsStaff   bool                   `json:"is_staff"`
	IsActive  bool                   `json:"is_active"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type NotificationListResponse struct {
	Data  []*NotificationResponse `json:"data"`
	Total int64                   `json:"total"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
