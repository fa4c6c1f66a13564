package mapper

import (
	"time"

	"mentoring-marketplace-be/internal/entity"
	"mentoring-marketplace-be/internal/model"
	"mentoring-marketplace-be/pkg/lifecycle"
)

type ClassSessionMapper struct{}

func NewClassSessionMapper() *ClassSessionMapper {
	return &ClassSessionMapper{}
}

func (m *ClassSessionMapper) ToEntity(c *model.ClassSession) *entity.ClassSession {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.ClassSession{
		Id:                c.Id,
		ProfessorId:       c.ProfessorId,
		StudentId:         c.StudentId,
		BeginsAt:          c.BeginsAt,
		EndsAt:            c.EndsAt,
		Status:            lifecycle.ClassStatus(c.Status),
		Confirmed:         c.Confirmed,
		ProfessorReview:   c.ProfessorReview,
		ProfessorRate:     c.ProfessorRate,
		ReviewDate:        c.ReviewDate,
		MeetingLink:       c.MeetingLink,
		MeetingExternalId: c.MeetingExternalId,
		PaymentId:         c.PaymentId,
		PurchaseId:        c.PurchaseId,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}

func (m *ClassSessionMapper) ToModel(c *entity.ClassSession) *model.ClassSession {
	if c == nil {
		return nil
	}

	out := &model.ClassSession{
		Id:                c.Id,
		ProfessorId:       c.ProfessorId,
		StudentId:         c.StudentId,
		BeginsAt:          c.BeginsAt,
		EndsAt:            c.EndsAt,
		Status:            c.Status.String(),
		Confirmed:         c.Confirmed,
		ProfessorReview:   c.ProfessorReview,
		ProfessorRate:     c.ProfessorRate,
		ReviewDate:        c.ReviewDate,
		MeetingLink:       c.MeetingLink,
		MeetingExternalId: c.MeetingExternalId,
		PaymentId:         c.PaymentId,
		PurchaseId:        c.PurchaseId,
		CreatedAt:         c.CreatedAt,
	}
	if c.UpdatedAt != nil {
		out.UpdatedAt = *c.UpdatedAt
	}
	return out
}

func (m *ClassSessionMapper) ToEntities(cs []*model.ClassSession) []*entity.ClassSession {
	out := make([]*entity.ClassSession, 0, len(cs))
	for _, c := range cs {
		out = append(out, m.ToEntity(c))
	}
	return out
}
