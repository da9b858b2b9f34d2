package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vassimdr/dr-sahin-durmus-backend/internal/auditlog"
)

var ErrNotFound = errors.New("review not found")

type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return "validation failed: " + strings.Join(v, "; ")
}

// Notifier alerts the clinic about a fresh (unapproved) review.
type Notifier interface {
	NotifyNewReview(ctx context.Context, patientName string, rating int)
}

type Service struct {
	repo     Repository
	auditSvc auditlog.Service
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, auditSvc auditlog.Service, notifier Notifier) *Service {
	return &Service{repo: repo, auditSvc: auditSvc, notifier: notifier, now: time.Now}
}

// ===========================
// 🎯 Submit (public form — always lands unapproved)
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Review, error) {
	var violations ValidationErrors

	name := strings.TrimSpace(req.PatientName)
	if name == "" {
		violations = append(violations, "patient_name must not be empty")
	}
	if req.Rating < MinRating || req.Rating > MaxRating {
		violations = append(violations, fmt.Sprintf("rating must be between %d and %d, got %d", MinRating, MaxRating, req.Rating))
	}

	if len(violations) > 0 {
		return nil, violations
	}

	rv := &Review{
		PatientName: name,
		Rating:      req.Rating,
		Comment:     strings.TrimSpace(req.Comment),
		Treatment:   strings.TrimSpace(req.Treatment),
		IsApproved:  false,
	}

	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyNewReview(ctx, rv.PatientName, rv.Rating)
	}

	return rv, nil
}

// ===========================
// 📋 List
func (s *Service) List(ctx context.Context, approvedOnly bool, limit, offset int) ([]Review, int64, error) {
	return s.repo.List(ctx, approvedOnly, limit, offset)
}

func (s *Service) Summary(ctx context.Context) (*RatingSummary, error) {
	return s.repo.ApprovedSummary(ctx)
}

func (s *Service) GetByID(ctx context.Context, id uint) (*Review, error) {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rv, nil
}

// ===========================
// 🔄 Moderate (admin edit / approve / feature)
func (s *Service) Moderate(ctx context.Context, id uint, req ModerateRequest, ip, deviceID string) (*Review, error) {
	rv, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var violations ValidationErrors
	if req.PatientName != nil && strings.TrimSpace(*req.PatientName) == "" {
		violations = append(violations, "patient_name must not be empty")
	}
	if req.Rating != nil && (*req.Rating < MinRating || *req.Rating > MaxRating) {
		violations = append(violations, fmt.Sprintf("rating must be between %d and %d, got %d", MinRating, MaxRating, *req.Rating))
	}
	if len(violations) > 0 {
		return nil, violations
	}

	if req.PatientName != nil {
		rv.PatientName = strings.TrimSpace(*req.PatientName)
	}
	if req.Rating != nil {
		rv.Rating = *req.Rating
	}
	if req.Comment != nil {
		rv.Comment = strings.TrimSpace(*req.Comment)
	}
	if req.Treatment != nil {
		rv.Treatment = strings.TrimSpace(*req.Treatment)
	}
	if req.IsApproved != nil {
		// Approval timestamp is stamped on the first approval only.
		if *req.IsApproved && !rv.IsApproved && rv.ApprovedAt == nil {
			now := s.now()
			rv.ApprovedAt = &now
		}
		rv.IsApproved = *req.IsApproved
	}
	if req.IsFeatured != nil {
		rv.IsFeatured = *req.IsFeatured
	}

	if err := s.repo.Update(ctx, rv); err != nil {
		return nil, err
	}

	s.logAction(ctx, "REVIEW_MODERATED", rv.ID, map[string]interface{}{
		"patient_name": rv.PatientName,
		"approved":     rv.IsApproved,
	}, ip, deviceID)

	return rv, nil
}

// ===========================
// 🗑️ Delete
func (s *Service) Delete(ctx context.Context, id uint, ip, deviceID string) error {
	rv, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logAction(ctx, "REVIEW_DELETED", id, map[string]interface{}{
		"patient_name": rv.PatientName,
	}, ip, deviceID)

	return nil
}

func (s *Service) logAction(ctx context.Context, action string, id uint, details map[string]interface{}, ip, deviceID string) {
	if s.auditSvc == nil {
		return
	}
	resourceID := id
	_ = s.auditSvc.LogAction(ctx, action, "review", &resourceID, details, ip, deviceID, "success")
}
