package implementation

import (
	"context"
	"errors"
	"time"

	"mentoring-marketplace-be/internal/entity"
	"mentoring-marketplace-be/internal/mapper"
	"mentoring-marketplace-be/internal/model"
	"mentoring-marketplace-be/internal/repository/contract"
	"mentoring-marketplace-be/internal/repository/specification"
	"mentoring-marketplace-be/pkg/lifecycle"

	"gorm.io/gorm"
)

type ClassSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ClassSessionMapper
}

func NewClassSessionRepository(db *gorm.DB) contract.ClassSessionRepository {
	return &ClassSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewClassSessionMapper(),
	}
}

func (r *ClassSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ClassSessionRepositoryImpl) Create(ctx context.Context, class *entity.ClassSession) error {
	m := r.mapper.ToModel(class)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	class.Id = m.Id
	class.CreatedAt = m.CreatedAt
	return nil
}

func (r *ClassSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ClassSession, error) {
	var m model.ClassSession
	db := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := db.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ClassSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ClassSession, error) {
	var ms []*model.ClassSession
	db := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := db.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(ms), nil
}

func (r *ClassSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	db := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ClassSession{}), specs...)
	if err := db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// TransitionStatus is the optimistic guard for every status write: the WHERE
// clause matches the expected current status, so of two overlapping writers
// only one update affects a row. Zero rows affected is not an error.
func (r *ClassSessionRepositoryImpl) TransitionStatus(ctx context.Context, id int64, from, to lifecycle.ClassStatus, fields map[string]interface{}) (bool, error) {
	updates := map[string]interface{}{
		"status":     to.String(),
		"updated_at": time.Now(),
	}
	for k, v := range fields {
		updates[k] = v
	}

	result := r.db.WithContext(ctx).
		Model(&model.ClassSession{}).
		Where("id = ? AND status = ?", id, from.String()).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ClassSessionRepositoryImpl) SetPaymentId(ctx context.Context, id int64, paymentId string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.ClassSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_id": paymentId,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ClassSessionRepositoryImpl) SetWindowAndStatus(ctx context.Context, id int64, beginsAt, endsAt time.Time, status lifecycle.ClassStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.ClassSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"begins_at":  beginsAt,
			"ends_at":    endsAt,
			"status":     status.String(),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
