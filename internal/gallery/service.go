package gallery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vassimdr/dr-sahin-durmus-backend/internal/auditlog"
)

var ErrNotFound = errors.New("gallery item not found")

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
func (s *Service) Create(ctx context.Context, req CreateRequest, ip, deviceID string) (*GalleryItem, error) {
	var violations ValidationErrors

	title := strings.TrimSpace(req.Title)
	if title == "" {
		violations = append(violations, "title must not be empty")
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		violations = append(violations, "image_url must not be empty")
	}

	category := req.Category
	if category == "" {
		category = CategoryClinic
	}
	if !IsValidCategory(category) {
		violations = append(violations, fmt.Sprintf("category must be one of %v, got %q", Categories(), category))
	}

	if len(violations) > 0 {
		return nil, violations
	}

	item := &GalleryItem{
		Title:        title,
		Description:  strings.TrimSpace(req.Description),
		Category:     category,
		ImageURL:     req.ImageURL,
		ThumbnailURL: req.ThumbnailURL,
		AltText:      req.AltText,
		IsActive:     true,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		item.IsFeatured = *req.IsFeatured
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logAction(ctx, "GALLERY_CREATED", item.ID, map[string]interface{}{
		"title":    item.Title,
		"category": item.Category,
	}, ip, deviceID)

	return item, nil
}

// ===========================
// 📋 List
func (s *Service) List(ctx context.Context, activeOnly bool, category string, limit, offset int) ([]GalleryItem, int64, error) {
	return s.repo.List(ctx, activeOnly, category, limit, offset)
}

func (s *Service) GetByID(ctx context.Context, id uint) (*GalleryItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// ===========================
// 🔄 Update
func (s *Service) Update(ctx context.Context, id uint, req UpdateRequest, ip, deviceID string) (*GalleryItem, error) {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var violations ValidationErrors
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		violations = append(violations, "title must not be empty")
	}
	if req.ImageURL != nil && strings.TrimSpace(*req.ImageURL) == "" {
		violations = append(violations, "image_url must not be empty")
	}
	if req.Category != nil && !IsValidCategory(*req.Category) {
		violations = append(violations, fmt.Sprintf("category must be one of %v, got %q", Categories(), *req.Category))
	}
	if len(violations) > 0 {
		return nil, violations
	}

	if req.Title != nil {
		item.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.ThumbnailURL != nil {
		item.ThumbnailURL = *req.ThumbnailURL
	}
	if req.AltText != nil {
		item.AltText = *req.AltText
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		item.IsFeatured = *req.IsFeatured
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.logAction(ctx, "GALLERY_UPDATED", item.ID, map[string]interface{}{
		"title": item.Title,
	}, ip, deviceID)

	return item, nil
}

// ===========================
// 🗑️ Delete
func (s *Service) Delete(ctx context.Context, id uint, ip, deviceID string) error {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logAction(ctx, "GALLERY_DELETED", id, map[string]interface{}{
		"title": item.Title,
	}, ip, deviceID)

	return nil
}

func (s *Service) logAction(ctx context.Context, action string, id uint, details map[string]interface{}, ip, deviceID string) {
	if s.auditSvc == nil {
		return
	}
	resourceID := id
	_ = s.auditSvc.LogAction(ctx, action, "gallery", &resourceID, details, ip, deviceID, "success")
}
