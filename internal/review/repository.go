package review

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, r *Review) error
	GetByID(ctx context.Context, id uint) (*Review, error)
	List(ctx context.Context, approvedOnly bool, limit, offset int) ([]Review, int64, error)
	ApprovedSummary(ctx context.Context) (*RatingSummary, error)
	Update(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rv *Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Review, error) {
	var rv Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *repository) List(ctx context.Context, approvedOnly bool, limit, offset int) ([]Review, int64, error) {
	var reviews []Review
	var total int64

	query := r.db.WithContext(ctx).Model(&Review{})
	if approvedOnly {
		query = query.Where("is_approved = TRUE")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("is_featured DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// ApprovedSummary computes count and average rating over approved rows.
func (r *repository) ApprovedSummary(ctx context.Context) (*RatingSummary, error) {
	var summary RatingSummary
	err := r.db.WithContext(ctx).
		Model(&Review{}).
		Where("is_approved = TRUE").
		Select("COUNT(*) AS total, COALESCE(AVG(rating), 0) AS average").
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *repository) Update(ctx context.Context, rv *Review) error {
	return r.db.WithContext(ctx).Save(rv).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Review{}, id).Error
}
