package specification

import (
	"time"

	"mentoring-marketplace-be/pkg/lifecycle"

	"gorm.io/gorm"
)

type ByStatus struct {
	Status lifecycle.ClassStatus
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status.String())
}

// EndsAtOnOrBefore selects classes whose window has elapsed. The boundary is
// inclusive: a class ending exactly at At qualifies.
type EndsAtOnOrBefore struct {
	At time.Time
}

func (s EndsAtOnOrBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("ends_at <= ?", s.At)
}

// ByParticipant matches classes where the profile is on either side.
type ByParticipant struct {
	ProfileID int64
}

func (s ByParticipant) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("professor_id = ? OR student_id = ?", s.ProfileID, s.ProfileID)
}

type ByProfessor struct {
	ProfessorID int64
}

func (s ByProfessor) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("professor_id = ?", s.ProfessorID)
}

type ByStudent struct {
	StudentID int64
}

func (s ByStudent) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("student_id = ?", s.StudentID)
}

// ByPurchaseID correlates a class to its funding transaction.
type ByPurchaseID struct {
	PurchaseID string
}

func (s ByPurchaseID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("purchase_id = ?", s.PurchaseID)
}
