package blog

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, post *BlogPost) error
	GetByID(ctx context.Context, id uint) (*BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*BlogPost, error)
	List(ctx context.Context, publishedOnly bool, category string, limit, offset int) ([]BlogPost, int64, error)
	CountSlugPrefix(ctx context.Context, slug string) (int64, error)
	Update(ctx context.Context, post *BlogPost) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, post *BlogPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*BlogPost, error) {
	var post BlogPost
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*BlogPost, error) {
	var post BlogPost
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *repository) List(ctx context.Context, publishedOnly bool, category string, limit, offset int) ([]BlogPost, int64, error) {
	var posts []BlogPost
	var total int64

	query := r.db.WithContext(ctx).Model(&BlogPost{})
	if publishedOnly {
		query = query.Where("published = TRUE")
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("is_featured DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// CountSlugPrefix counts posts whose slug is the given slug or starts
// with it plus a dash, for unique-suffix generation.
func (r *repository) CountSlugPrefix(ctx context.Context, slug string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&BlogPost{}).
		Where("slug = ? OR slug LIKE ?", slug, slug+"-%").
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, post *BlogPost) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&BlogPost{}, id).Error
}
