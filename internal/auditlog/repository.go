package auditlog

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, action *AdminAction) error
	GetByFilter(ctx context.Context, filter ActionFilter) ([]AdminAction, int64, error)
	GetByID(ctx context.Context, id uint) (*AdminAction, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts a new admin action row
func (r *repository) Create(ctx context.Context, action *AdminAction) error {
	return r.db.WithContext(ctx).Create(action).Error
}

// GetByFilter retrieves admin actions with filtering and pagination
func (r *repository) GetByFilter(ctx context.Context, filter ActionFilter) ([]AdminAction, int64, error) {
	var actions []AdminAction
	var total int64

	query := r.db.WithContext(ctx).Model(&AdminAction{})

	if filter.Action != "" {
		query = query.Where("action ILIKE ?", "%"+filter.Action+"%")
	}
	if filter.Resource != "" {
		query = query.Where("resource = ?", filter.Resource)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at <= ?", *filter.ToDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit <= 0 {
		filter.Limit = 20 // default limit
	}
	if filter.Page <= 0 {
		filter.Page = 1 // default page
	}

	offset := (filter.Page - 1) * filter.Limit
	err := query.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(offset).
		Find(&actions).Error
	if err != nil {
		return nil, 0, err
	}

	return actions, total, nil
}

// GetByID retrieves a specific admin action by ID
func (r *repository) GetByID(ctx context.Context, id uint) (*AdminAction, error) {
	var action AdminAction
	if err := r.db.WithContext(ctx).First(&action, id).Error; err != nil {
		return nil, err
	}
	return &action, nil
}
