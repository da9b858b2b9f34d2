package media

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vassimdr/dr-sahin-durmus-backend/internal/auditlog"
)

var ErrNotFound = errors.New("media publication not found")

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
func (s *Service) Create(ctx context.Context, req CreateRequest, ip, deviceID string) (*MediaPublication, error) {
	var violations ValidationErrors

	title := strings.TrimSpace(req.Title)
	if title == "" {
		violations = append(violations, "title must not be empty")
	}
	outlet := strings.TrimSpace(req.OutletName)
	if outlet == "" {
		violations = append(violations, "outlet_name must not be empty")
	}

	pubType := req.Type
	if pubType == "" {
		pubType = TypeNews
	}
	if !IsValidType(pubType) {
		violations = append(violations, fmt.Sprintf("type must be one of %v, got %q", Types(), pubType))
	}

	if len(violations) > 0 {
		return nil, violations
	}

	pub := &MediaPublication{
		Title:       title,
		OutletName:  outlet,
		Type:        pubType,
		Summary:     strings.TrimSpace(req.Summary),
		ExternalURL: req.ExternalURL,
		ImageURL:    req.ImageURL,
		PublishedOn: req.PublishedOn,
		IsActive:    true,
	}
	if req.IsActive != nil {
		pub.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		pub.IsFeatured = *req.IsFeatured
	}
	if req.SortOrder != nil {
		pub.SortOrder = *req.SortOrder
	}

	if err := s.repo.Create(ctx, pub); err != nil {
		return nil, err
	}

	s.logAction(ctx, "MEDIA_CREATED", pub.ID, map[string]interface{}{
		"title":  pub.Title,
		"outlet": pub.OutletName,
	}, ip, deviceID)

	return pub, nil
}

// ===========================
// 📋 List
func (s *Service) List(ctx context.Context, activeOnly bool, pubType string, limit, offset int) ([]MediaPublication, int64, error) {
	return s.repo.List(ctx, activeOnly, pubType, limit, offset)
}

func (s *Service) GetByID(ctx context.Context, id uint) (*MediaPublication, error) {
	pub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return pub, nil
}

// ===========================
// 🔄 Update
func (s *Service) Update(ctx context.Context, id uint, req UpdateRequest, ip, deviceID string) (*MediaPublication, error) {
	pub, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var violations ValidationErrors
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		violations = append(violations, "title must not be empty")
	}
	if req.OutletName != nil && strings.TrimSpace(*req.OutletName) == "" {
		violations = append(violations, "outlet_name must not be empty")
	}
	if req.Type != nil && !IsValidType(*req.Type) {
		violations = append(violations, fmt.Sprintf("type must be one of %v, got %q", Types(), *req.Type))
	}
	if len(violations) > 0 {
		return nil, violations
	}

	if req.Title != nil {
		pub.Title = strings.TrimSpace(*req.Title)
	}
	if req.OutletName != nil {
		pub.OutletName = strings.TrimSpace(*req.OutletName)
	}
	if req.Type != nil {
		pub.Type = *req.Type
	}
	if req.Summary != nil {
		pub.Summary = strings.TrimSpace(*req.Summary)
	}
	if req.ExternalURL != nil {
		pub.ExternalURL = *req.ExternalURL
	}
	if req.ImageURL != nil {
		pub.ImageURL = *req.ImageURL
	}
	if req.PublishedOn != nil {
		pub.PublishedOn = req.PublishedOn
	}
	if req.IsActive != nil {
		pub.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		pub.IsFeatured = *req.IsFeatured
	}
	if req.SortOrder != nil {
		pub.SortOrder = *req.SortOrder
	}

	if err := s.repo.Update(ctx, pub); err != nil {
		return nil, err
	}

	s.logAction(ctx, "MEDIA_UPDATED", pub.ID, map[string]interface{}{
		"title": pub.Title,
	}, ip, deviceID)

	return pub, nil
}

// ===========================
// 🗑️ Delete
func (s *Service) Delete(ctx context.Context, id uint, ip, deviceID string) error {
	pub, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logAction(ctx, "MEDIA_DELETED", id, map[string]interface{}{
		"title": pub.Title,
	}, ip, deviceID)

	return nil
}

func (s *Service) logAction(ctx context.Context, action string, id uint, details map[string]interface{}, ip, deviceID string) {
	if s.auditSvc == nil {
		return
	}
	resourceID := id
	_ = s.auditSvc.LogAction(ctx, action, "media", &resourceID, details, ip, deviceID, "success")
}
