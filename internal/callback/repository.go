package callback

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, req *CallbackRequest) error
	GetByID(ctx context.Context, id uint) (*CallbackRequest, error)
	List(ctx context.Context, filter Filter) ([]CallbackRequest, int64, error)
	Update(ctx context.Context, req *CallbackRequest) error
	Delete(ctx context.Context, id uint) error
	Aggregates(ctx context.Context) (*Aggregates, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ===========================
// 🎯 Create
func (r *repository) Create(ctx context.Context, req *CallbackRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// ===========================
// 🔍 Get By ID
func (r *repository) GetByID(ctx context.Context, id uint) (*CallbackRequest, error) {
	var req CallbackRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// ===========================
// 📄 List with filters, search and pagination
func (r *repository) List(ctx context.Context, filter Filter) ([]CallbackRequest, int64, error) {
	var requests []CallbackRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&CallbackRequest{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.Search != "" {
		ilike := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR notes ILIKE ?", ilike, ilike, ilike)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	err := query.
		Order("priority DESC, created_at DESC").
		Limit(filter.Limit).
		Offset(offset).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// ===========================
// 🛠 Update
func (r *repository) Update(ctx context.Context, req *CallbackRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// ===========================
// ❌ Delete
func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&CallbackRequest{}, id).Error
}

// ===========================
// 📊 Aggregates for the dashboard
func (r *repository) Aggregates(ctx context.Context) (*Aggregates, error) {
	agg := &Aggregates{StatusCounts: map[string]int64{}}

	type statusRow struct {
		Status string
		Count  int64
	}
	var rows []statusRow
	err := r.db.WithContext(ctx).
		Model(&CallbackRequest{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		agg.StatusCounts[row.Status] = row.Count
	}

	startOfDay := time.Now().UTC().Truncate(24 * time.Hour)

	if err := r.db.WithContext(ctx).
		Model(&CallbackRequest{}).
		Where("created_at >= ?", startOfDay).
		Count(&agg.TodayTotal).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&CallbackRequest{}).
		Where("created_at >= ? AND status = ?", startOfDay, StatusPending).
		Count(&agg.TodayPending).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&CallbackRequest{}).
		Where("priority >= ?", HighPriorityThreshold).
		Count(&agg.HighPriority).Error; err != nil {
		return nil, err
	}

	// Average response time in hours over records that were actually
	// called; COALESCE keeps it at 0 when no row qualifies.
	err = r.db.WithContext(ctx).
		Model(&CallbackRequest{}).
		Select("COALESCE(AVG(EXTRACT(EPOCH FROM (called_at - created_at)) / 3600.0), 0)").
		Where("called_at IS NOT NULL").
		Scan(&agg.AvgResponseHours).Error
	if err != nil {
		return nil, err
	}

	return agg, nil
}
