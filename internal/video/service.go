package video

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vassimdr/dr-sahin-durmus-backend/internal/auditlog"
)

var ErrNotFound = errors.New("video not found")

type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return "validation failed: " + strings.Join(v, "; ")
}

type Service struct {
	repo     Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, auditSvc auditlog.Service) *Service {
	return &Service{repo: repo, auditSvc: auditSvc}
}

// ===========================
// 🎯 Create
func (s *Service) Create(ctx context.Context, req CreateRequest, ip, deviceID string) (*DoctorVideo, error) {
	var violations ValidationErrors

	title := strings.TrimSpace(req.Title)
	if title == "" {
		violations = append(violations, "title must not be empty")
	}
	if strings.TrimSpace(req.VideoURL) == "" {
		violations = append(violations, "video_url must not be empty")
	}

	category := req.Category
	if category == "" {
		category = CategoryTreatment
	}
	if !IsValidCategory(category) {
		violations = append(violations, fmt.Sprintf("category must be one of %v, got %q", Categories(), category))
	}
	if req.DurationSec != nil && *req.DurationSec < 0 {
		violations = append(violations, "duration_seconds must not be negative")
	}

	if len(violations) > 0 {
		return nil, violations
	}

	v := &DoctorVideo{
		Title:        title,
		Description:  strings.TrimSpace(req.Description),
		Category:     category,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		IsActive:     true,
	}
	if req.DurationSec != nil {
		v.DurationSec = *req.DurationSec
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		v.IsFeatured = *req.IsFeatured
	}
	if req.SortOrder != nil {
		v.SortOrder = *req.SortOrder
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	s.logAction(ctx, "VIDEO_CREATED", v.ID, map[string]interface{}{
		"title":    v.Title,
		"category": v.Category,
	}, ip, deviceID)

	return v, nil
}

// ===========================
// 📋 List
func (s *Service) List(ctx context.Context, activeOnly bool, category string, limit, offset int) ([]DoctorVideo, int64, error) {
	return s.repo.List(ctx, activeOnly, category, limit, offset)
}

func (s *Service) GetByID(ctx context.Context, id uint) (*DoctorVideo, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

// GetActive returns a single active video for the public player and
// bumps its view counter. Inactive videos are hidden from the public.
func (s *Service) GetActive(ctx context.Context, id uint) (*DoctorVideo, error) {
	v, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.IsActive {
		return nil, ErrNotFound
	}
	if err := s.repo.IncrementViews(ctx, id); err == nil {
		v.ViewCount++
	}
	return v, nil
}

// ===========================
// 🔄 Update
func (s *Service) Update(ctx context.Context, id uint, req UpdateRequest, ip, deviceID string) (*DoctorVideo, error) {
	v, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var violations ValidationErrors
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		violations = append(violations, "title must not be empty")
	}
	if req.VideoURL != nil && strings.TrimSpace(*req.VideoURL) == "" {
		violations = append(violations, "video_url must not be empty")
	}
	if req.Category != nil && !IsValidCategory(*req.Category) {
		violations = append(violations, fmt.Sprintf("category must be one of %v, got %q", Categories(), *req.Category))
	}
	if req.DurationSec != nil && *req.DurationSec < 0 {
		violations = append(violations, "duration_seconds must not be negative")
	}
	if len(violations) > 0 {
		return nil, violations
	}

	if req.Title != nil {
		v.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		v.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		v.Category = *req.Category
	}
	if req.VideoURL != nil {
		v.VideoURL = *req.VideoURL
	}
	if req.ThumbnailURL != nil {
		v.ThumbnailURL = *req.ThumbnailURL
	}
	if req.DurationSec != nil {
		v.DurationSec = *req.DurationSec
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		v.IsFeatured = *req.IsFeatured
	}
	if req.SortOrder != nil {
		v.SortOrder = *req.SortOrder
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	s.logAction(ctx, "VIDEO_UPDATED", v.ID, map[string]interface{}{
		"title": v.Title,
	}, ip, deviceID)

	return v, nil
}

// ===========================
// 🗑️ Delete
func (s *Service) Delete(ctx context.Context, id uint, ip, deviceID string) error {
	v, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logAction(ctx, "VIDEO_DELETED", id, map[string]interface{}{
		"title": v.Title,
	}, ip, deviceID)

	return nil
}

func (s *Service) logAction(ctx context.Context, action string, id uint, details map[string]interface{}, ip, deviceID string) {
	if s.auditSvc == nil {
		return
	}
	resourceID := id
	_ = s.auditSvc.LogAction(ctx, action, "video", &resourceID, details, ip, deviceID, "success")
}
