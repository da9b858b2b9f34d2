package video

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, v *DoctorVideo) error
	GetByID(ctx context.Context, id uint) (*DoctorVideo, error)
	List(ctx context.Context, activeOnly bool, category string, limit, offset int) ([]DoctorVideo, int64, error)
	IncrementViews(ctx context.Context, id uint) error
	Update(ctx context.Context, v *DoctorVideo) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, v *DoctorVideo) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*DoctorVideo, error) {
	var v DoctorVideo
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool, category string, limit, offset int) ([]DoctorVideo, int64, error) {
	var videos []DoctorVideo
	var total int64

	query := r.db.WithContext(ctx).Model(&DoctorVideo{})
	if activeOnly {
		query = query.Where("is_active = TRUE")
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("sort_order ASC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

// IncrementViews bumps the view counter atomically in SQL.
func (r *repository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&DoctorVideo{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *repository) Update(ctx context.Context, v *DoctorVideo) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&DoctorVideo{}, id).Error
}
