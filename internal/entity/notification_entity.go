package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an append-only entry addressed to a profile. Only IsActive
// ever flips (true = unread).
type Notification struct {
	Id        uuid.UUID
	ProfileId int64
	Message   string
	IsStaff   bool
	IsActive  bool
	Metadata  map[string]interface{}
	CreatedAt time.Time
}
