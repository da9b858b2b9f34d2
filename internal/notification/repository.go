package notification

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	UpsertToken(ctx context.Context, token *FCMDeviceToken) error
	DeactivateToken(ctx context.Context, deviceToken string) error
	ActiveTokens(ctx context.Context) ([]string, error)
	CreateLog(ctx context.Context, entry *NotificationLog) error
	ListLogs(ctx context.Context, limit, offset int) ([]NotificationLog, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// UpsertToken re-registers an existing token instead of duplicating it.
func (r *repository) UpsertToken(ctx context.Context, token *FCMDeviceToken) error {
	token.IsActive = true
	token.LastUsedAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "device_token"}},
			DoUpdates: clause.AssignmentColumns([]string{"device_type", "device_name", "is_active", "last_used_at", "updated_at"}),
		}).
		Create(token).Error
}

func (r *repository) DeactivateToken(ctx context.Context, deviceToken string) error {
	return r.db.WithContext(ctx).
		Model(&FCMDeviceToken{}).
		Where("device_token = ?", deviceToken).
		Update("is_active", false).Error
}

func (r *repository) ActiveTokens(ctx context.Context) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).
		Model(&FCMDeviceToken{}).
		Where("is_active = TRUE").
		Pluck("device_token", &tokens).Error
	return tokens, err
}

func (r *repository) CreateLog(ctx context.Context, entry *NotificationLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListLogs(ctx context.Context, limit, offset int) ([]NotificationLog, int64, error) {
	var logs []NotificationLog
	var total int64

	query := r.db.WithContext(ctx).Model(&NotificationLog{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
