package contract

import (
	"context"

	"mentoring-marketplace-be/internal/entity"
	"mentoring-marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notification, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// MarkRead flips is_active for one notification, scoped to its owner.
	// Returns false when the row does not exist or belongs to someone else.
	MarkRead(ctx context.Context, id uuid.UUID, profileId int64) (bool, error)
	MarkAllRead(ctx context.Context, profileId int64) error
}
