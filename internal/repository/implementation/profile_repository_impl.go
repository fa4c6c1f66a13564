package implementation

import (
	"context"
	"errors"

	"mentoring-marketplace-be/internal/entity"
	"mentoring-marketplace-be/internal/mapper"
	"mentoring-marketplace-be/internal/model"
	"mentoring-marketplace-be/internal/repository/contract"
	"mentoring-marketplace-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProfileMapper
}

func NewProfileRepository(db *gorm.DB) contract.ProfileRepository {
	return &ProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewProfileMapper(),
	}
}

func (r *ProfileRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProfileRepositoryImpl) Create(ctx context.Context, profile *entity.Profile) error {
	m := r.mapper.ToModel(profile)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	profile.Id = m.Id
	profile.CreatedAt = m.CreatedAt
	return nil
}

func (r *ProfileRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Profile, error) {
	var m model.Profile
	db := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := db.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ProfileRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Profile, error) {
	var ms []*model.Profile
	db := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := db.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.Profile, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.mapper.ToEntity(m))
	}
	return out, nil
}

func (r *ProfileRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	db := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Profile{}), specs...)
	if err := db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
