package model

import "time"

// ClassSession is the persistence shape of a booked mentoring class.
type ClassSession struct {
	Id          int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfessorId int64 `gorm:"not null;index:idx_class_sessions_professor" json:"professor_id"`
	StudentId   int64 `gorm:"not null;index:idx_class_sessions_student" json:"student_id"`

	BeginsAt time.Time `gorm:"not null" json:"begins_at"`
	EndsAt   time.Time `gorm:"not null;index:idx_class_sessions_status_ends,priority:2" json:"ends_at"`

	// See pkg/lifecycle for the closed status set. The composite index backs
	// the sweep's eligibility read (status + ends_at).
	Status    string `gorm:"type:varchar(20);not null;index:idx_class_sessions_status_ends,priority:1" json:"status"`
	Confirmed bool   `gorm:"default:false" json:"confirmed"`

	ProfessorReview *string    `gorm:"type:text" json:"professor_review,omitempty"`
	ProfessorRate   *int       `json:"professor_rate,omitempty"`
	ReviewDate      *time.Time `json:"review_date,omitempty"`

	MeetingLink       *string `gorm:"type:varchar(500)" json:"meeting_link,omitempty"`
	MeetingExternalId *string `gorm:"type:varchar(100)" json:"meeting_external_id,omitempty"`

	PaymentId  *string `gorm:"type:varchar(100)" json:"payment_id,omitempty"`
	PurchaseId *string `gorm:"type:varchar(100);index:idx_class_sessions_purchase" json:"purchase_id,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}
