package mapper

import (
	"encoding/json"

	"mentoring-marketplace-be/internal/entity"
	"mentoring-marketplace-be/internal/model"

	"gorm.io/datatypes"
)

type NotificationMapper struct{}

func NewNotificationMapper() *NotificationMapper {
	return &NotificationMapper{}
}

func (m *NotificationMapper) ToEntity(n *model.Notification) *entity.Notification {
	if n == nil {
		return nil
	}

	var meta map[string]interface{}
	if len(n.Metadata) > 0 {
		// Best effort; malformed metadata stays nil rather than failing a read.
		_ = json.Unmarshal(n.Metadata, &meta)
	}

	return &entity.Notification{
		Id:        n.Id,
		ProfileId: n.ProfileId,
		Message:   n.Message,
		IsStaff:   n.IsStaff,
		IsActive:  n.IsActive,
		Metadata:  meta,
		CreatedAt: n.CreatedAt,
	}
}

func (m *NotificationMapper) ToModel(n *entity.Notification) *model.Notification {
	if n == nil {
		return nil
	}

	var meta datatypes.JSON
	if n.Metadata != nil {
		if raw, err := json.Marshal(n.Metadata); err == nil {
			meta = datatypes.JSON(raw)
		}
	}

	return &model.Notification{
		Id:        n.Id,
		ProfileId: n.ProfileId,
		Message:   n.Message,
		IsStaff:   n.IsStaff,
		IsActive:  n.IsActive,
		Metadata:  meta,
		CreatedAt: n.CreatedAt,
	}
}

func (m *NotificationMapper) ToEntities(ns []*model.Notification) []*entity.Notification {
	out := make([]*entity.Notification, 0, len(ns))
	for _, n := range ns {
		out = append(out, m.ToEntity(n))
	}
	return out
}
