package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification stores the persisted notification history per profile.
// Rows are append-only; is_active flips to false when read.
type Notification struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileId int64          `gorm:"not null;index:idx_notifications_profile_created,priority:1;index:idx_notifications_profile_active,priority:1" json:"profile_id"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	IsStaff   bool           `gorm:"default:false" json:"is_staff"`
	IsActive  bool           `gorm:"default:true;index:idx_notifications_profile_active,priority:2" json:"is_active"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP;index:idx_notifications_profile_created,priority:2" json:"created_at"`
}
