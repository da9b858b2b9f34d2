package callback

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vassimdr/dr-sahin-durmus-backend/internal/auditlog"
)

// ErrNotFound distinguishes a missing record from persistence failures.
var ErrNotFound = errors.New("callback request not found")

// ValidationErrors carries every violated rule, not just the first.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return "validation failed: " + strings.Join(v, "; ")
}

// Notifier fans a new request out to the clinic staff. Implementations are
// best-effort; failures stay out of the public submit path.
type Notifier interface {
	NotifyNewCallback(ctx context.Context, req *CallbackRequest)
}

var nonDigits = regexp.MustCompile(`\D`)

// Service wraps business logic for the callback-request queue.
type Service struct {
	repo     Repository
	auditSvc auditlog.Service
	notifier Notifier

	now func() time.Time
}

func NewService(repo Repository, auditSvc auditlog.Service, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		auditSvc: auditSvc,
		notifier: notifier,
		now:      time.Now,
	}
}

// ===========================
// 🎯 Create (public form submit)
func (s *Service) Create(ctx context.Context, req CreateRequest) (*CallbackRequest, error) {
	var violations ValidationErrors

	name := strings.TrimSpace(req.Name)
	if name == "" {
		violations = append(violations, "name must not be empty")
	}

	phone, err := normalizePhone(req.Phone)
	if err != nil {
		violations = append(violations, err.Error())
	}

	source := req.Source
	if source == "" {
		source = SourceWebsite
	}
	if !IsValidSource(source) {
		violations = append(violations, fmt.Sprintf("source must be one of the supported channels, got %q", source))
	}

	if len(violations) > 0 {
		return nil, violations
	}

	record := &CallbackRequest{
		Name:     name,
		Phone:    phone,
		Status:   StatusPending,
		Priority: 3,
		Source:   source,
		Notes:    strings.TrimSpace(req.Notes),
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyNewCallback(ctx, record)
	}

	return record, nil
}

// ===========================
// 📄 List + dashboard stats
func (s *Service) List(ctx context.Context, filter Filter) ([]CallbackRequest, *Stats, int64, error) {
	requests, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, 0, err
	}

	agg, err := s.repo.Aggregates(ctx)
	if err != nil {
		return nil, nil, 0, err
	}

	return requests, buildStats(agg), total, nil
}

func buildStats(agg *Aggregates) *Stats {
	stats := &Stats{
		Pending:          agg.StatusCounts[StatusPending],
		Called:           agg.StatusCounts[StatusCalled],
		Scheduled:        agg.StatusCounts[StatusScheduled],
		Completed:        agg.StatusCounts[StatusCompleted],
		Cancelled:        agg.StatusCounts[StatusCancelled],
		TodayTotal:       agg.TodayTotal,
		TodayPending:     agg.TodayPending,
		HighPriority:     agg.HighPriority,
		AvgResponseHours: agg.AvgResponseHours,
	}
	for _, count := range agg.StatusCounts {
		stats.Total += count
	}
	return stats
}

// ===========================
// 🔍 Get
func (s *Service) Get(ctx context.Context, id uint) (*CallbackRequest, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

// ===========================
// 🛠 Update (admin)
//
// The status field accepts any value from the fixed enum; the advisory
// transition table is not enforced here. Timestamp stamping is
// special-cased: called_at and completed_at are written once and never
// overwritten on repeated transitions.
func (s *Service) Update(ctx context.Context, id uint, req UpdateRequest, ip, deviceID string) (*CallbackRequest, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var violations ValidationErrors
	var scheduledAt *time.Time

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		violations = append(violations, "name must not be empty")
	}

	normalizedPhone := ""
	if req.Phone != nil {
		normalizedPhone, err = normalizePhone(*req.Phone)
		if err != nil {
			violations = append(violations, err.Error())
		}
	}

	if req.Priority != nil && (*req.Priority < MinPriority || *req.Priority > MaxPriority) {
		violations = append(violations, fmt.Sprintf("priority must be between %d and %d, got %d", MinPriority, MaxPriority, *req.Priority))
	}

	if req.Source != nil && !IsValidSource(*req.Source) {
		violations = append(violations, fmt.Sprintf("source must be one of the supported channels, got %q", *req.Source))
	}

	if req.Status != nil && !IsValidStatus(*req.Status) {
		violations = append(violations, fmt.Sprintf("status must be one of pending, called, scheduled, completed, cancelled, got %q", *req.Status))
	}

	if req.ScheduledAt != nil {
		parsed, perr := time.Parse(time.RFC3339, *req.ScheduledAt)
		if perr != nil {
			violations = append(violations, "scheduled_at must be an RFC 3339 timestamp")
		} else {
			scheduledAt = &parsed
		}
	}

	if req.Status != nil && *req.Status == StatusScheduled &&
		scheduledAt == nil && record.ScheduledAt == nil {
		violations = append(violations, "scheduling requires a scheduled_at time")
	}

	if len(violations) > 0 {
		s.logAction(ctx, "CALLBACK_UPDATED", record.ID, map[string]interface{}{
			"violations": []string(violations),
		}, ip, deviceID, "failure")
		return nil, violations
	}

	if req.Name != nil {
		record.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		record.Phone = normalizedPhone
	}
	if req.Priority != nil {
		record.Priority = *req.Priority
	}
	if req.Source != nil {
		record.Source = *req.Source
	}
	if req.Notes != nil {
		record.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.AdminNotes != nil {
		record.AdminNotes = strings.TrimSpace(*req.AdminNotes)
	}
	if scheduledAt != nil {
		record.ScheduledAt = scheduledAt
	}

	if req.Status != nil {
		record.Status = *req.Status
		now := s.now()

		switch *req.Status {
		case StatusCalled:
			if record.CalledAt == nil {
				record.CalledAt = &now
			}
		case StatusCompleted:
			if record.CompletedAt == nil {
				record.CompletedAt = &now
			}
		}
	}

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.logAction(ctx, "CALLBACK_UPDATED", record.ID, map[string]interface{}{
		"status":   record.Status,
		"priority": record.Priority,
	}, ip, deviceID, "success")

	return record, nil
}

// ===========================
// ❌ Delete (admin)
func (s *Service) Delete(ctx context.Context, id uint, ip, deviceID string) (*CallbackRequest, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logAction(ctx, "CALLBACK_DELETED", record.ID, map[string]interface{}{
		"name":  record.Name,
		"phone": record.Phone,
	}, ip, deviceID, "success")

	return record, nil
}

func (s *Service) logAction(ctx context.Context, action string, id uint, details map[string]interface{}, ip, deviceID, status string) {
	if s.auditSvc == nil {
		return
	}
	resourceID := id
	_ = s.auditSvc.LogAction(ctx, action, "callback", &resourceID, details, ip, deviceID, status)
}

// normalizePhone strips everything but digits and requires at least ten
// of them.
func normalizePhone(raw string) (string, error) {
	cleaned := nonDigits.ReplaceAllString(raw, "")
	if len(cleaned) < 10 {
		return "", errors.New("phone must contain at least 10 digits")
	}
	return cleaned, nil
}
