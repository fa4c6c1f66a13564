package dto

import "time"

type BookClassRequest struct {
	ProfessorId int64     `json:"professor_id" validate:"required,gt=0"`
	BeginsAt    time.Time `json:"begins_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required"`
}

type SubmitReviewRequest struct {
	Review string `json:"review" validate:"required,max=2000"`
	Rate   int    `json:"rate" validate:"required,min=1,max=5"`
}

type ClassResponse struct {
	Id          int64     `json:"id"`
	ProfessorId int64     `json:"professor_id"`
	StudentId   int64     `json:"student_id"`
	BeginsAt    time.Time `json:"begins_at"`
	EndsAt      time.Time `json:"ends_at"`
	Status      string    `json:"status"`
	Confirmed   bool      `json:"confirmed"`

	ProfessorReview *string    `json:"professor_review,omitempty"`
	ProfessorRate   *int       `json:"professor_rate,omitempty"`
	ReviewDate      *time.Time `json:"review_date,omitempty"`

	MeetingLink *string `json:"meeting_link,omitempty"`
	PurchaseId  *string `json:"purchase_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// EligibleClassesResponse is the read-only preview of pending transitions.
type EligibleClassesResponse struct {
	Data  []*ClassResponse `json:"data"`
	Count int64            `json:"count"`
}
