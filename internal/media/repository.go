package media

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, pub *MediaPublication) error
	GetByID(ctx context.Context, id uint) (*MediaPublication, error)
	List(ctx context.Context, activeOnly bool, pubType string, limit, offset int) ([]MediaPublication, int64, error)
	Update(ctx context.Context, pub *MediaPublication) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, pub *MediaPublication) error {
	return r.db.WithContext(ctx).Create(pub).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*MediaPublication, error) {
	var pub MediaPublication
	if err := r.db.WithContext(ctx).First(&pub, id).Error; err != nil {
		return nil, err
	}
	return &pub, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool, pubType string, limit, offset int) ([]MediaPublication, int64, error) {
	var pubs []MediaPublication
	var total int64

	query := r.db.WithContext(ctx).Model(&MediaPublication{})
	if activeOnly {
		query = query.Where("is_active = TRUE")
	}
	if pubType != "" {
		query = query.Where("type = ?", pubType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("sort_order ASC, published_on DESC NULLS LAST, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&pubs).Error
	if err != nil {
		return nil, 0, err
	}

	return pubs, total, nil
}

func (r *repository) Update(ctx context.Context, pub *MediaPublication) error {
	return r.db.WithContext(ctx).Save(pub).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&MediaPublication{}, id).Error
}
