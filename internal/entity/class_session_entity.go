package entity

import (
	"errors"
	"time"

	"mentoring-marketplace-be/pkg/lifecycle"
)

var ErrInvalidWindow = errors.New("class window must end after it begins")

// ClassSession is a single scheduled mentoring engagement between a professor
// and a student.
type ClassSession struct {
	Id          int64
	ProfessorId int64
	StudentId   int64

	BeginsAt time.Time
	EndsAt   time.Time

	Status    lifecycle.ClassStatus
	Confirmed bool

	ProfessorReview *string
	ProfessorRate   *int
	ReviewDate      *time.Time

	MeetingLink       *string
	MeetingExternalId *string

	PaymentId  *string
	PurchaseId *string

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// ValidateWindow enforces the scheduling invariant endsAt > beginsAt.
func (c *ClassSession) ValidateWindow() error {
	if c.BeginsAt.IsZero() || c.EndsAt.IsZero() {
		return ErrInvalidWindow
	}
	if !c.EndsAt.After(c.BeginsAt) {
		return ErrInvalidWindow
	}
	return nil
}

// IsParticipant reports whether the given profile is one of the two parties.
func (c *ClassSession) IsParticipant(profileId int64) bool {
	return c.ProfessorId == profileId || c.StudentId == profileId
}

// Counterpart returns the other party's profile id, or 0 when the given
// profile is not a participant.
func (c *ClassSession) Counterpart(profileId int64) int64 {
	switch profileId {
	case c.ProfessorId:
		return c.StudentId
	case c.StudentId:
		return c.ProfessorId
	}
	return 0
}
