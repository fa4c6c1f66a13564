package implementation

import (
	"context"

	"mentoring-marketplace-be/internal/entity"
	"mentoring-marketplace-be/internal/mapper"
	"mentoring-marketplace-be/internal/model"
	"mentoring-marketplace-be/internal/repository/contract"
	"mentoring-marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NotificationMapper
}

func NewNotificationRepository(db *gorm.DB) contract.NotificationRepository {
	return &NotificationRepositoryImpl{
		db:     db,
		mapper: mapper.NewNotificationMapper(),
	}
}

func (r *NotificationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, notification *entity.Notification) error {
	m := r.mapper.ToModel(notification)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	notification.Id = m.Id
	notification.CreatedAt = m.CreatedAt
	return nil
}

func (r *NotificationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notification, error) {
	var ms []*model.Notification
	db := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := db.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(ms), nil
}

func (r *NotificationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	db := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Notification{}), specs...)
	if err := db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *NotificationRepositoryImpl) MarkRead(ctx context.Context, id uuid.UUID, profileId int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND profile_id = ?", id, profileId).
		Update("is_active", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *NotificationRepositoryImpl) MarkAllRead(ctx context.Context, profileId int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("profile_id = ? AND is_active = ?", profileId, true).
		Update("is_active", false).Error
}
