package gallery

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, item *GalleryItem) error
	GetByID(ctx context.Context, id uint) (*GalleryItem, error)
	List(ctx context.Context, activeOnly bool, category string, limit, offset int) ([]GalleryItem, int64, error)
	Update(ctx context.Context, item *GalleryItem) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, item *GalleryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*GalleryItem, error) {
	var item GalleryItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool, category string, limit, offset int) ([]GalleryItem, int64, error) {
	var items []GalleryItem
	var total int64

	query := r.db.WithContext(ctx).Model(&GalleryItem{})
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
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *repository) Update(ctx context.Context, item *GalleryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&GalleryItem{}, id).Error
}
