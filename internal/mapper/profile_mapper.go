package mapper

import (
	"time"

	"mentoring-marketplace-be/internal/entity"
	"mentoring-marketplace-be/internal/model"
)

type ProfileMapper struct{}

func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

func (m *ProfileMapper) ToEntity(p *model.Profile) *entity.Profile {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Profile{
		Id:        p.Id,
		Name:      p.Name,
		Email:     p.Email,
		Role:      entity.ProfileRole(p.Role),
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *ProfileMapper) ToModel(p *entity.Profile) *model.Profile {
	if p == nil {
		return nil
	}

	out := &model.Profile{
		Id:        p.Id,
		Name:      p.Name,
		Email:     p.Email,
		Role:      string(p.Role),
		CreatedAt: p.CreatedAt,
	}
	if p.UpdatedAt != nil {
		out.UpdatedAt = *p.UpdatedAt
	}
	return out
}
