package specification

import "gorm.io/gorm"

type ByProfileID struct {
	ProfileID int64
}

func (s ByProfileID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("profile_id = ?", s.ProfileID)
}

// ActiveOnly keeps unread notifications.
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
