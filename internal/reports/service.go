package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/vassimdr/dr-sahin-durmus-backend/internal/auditlog"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/callback"
)

// Service assembles report data from the domain repositories and hands
// it to the exporter.
type Service struct {
	callbacks callback.Repository
	actions   auditlog.Repository
	exporter  Exporter
}

func NewService(callbacks callback.Repository, actions auditlog.Repository, exporter Exporter) *Service {
	return &Service{callbacks: callbacks, actions: actions, exporter: exporter}
}

const exportRowCap = 5000

// CallbackReport exports callback requests, optionally narrowed by status.
func (s *Service) CallbackReport(ctx context.Context, format, status string) ([]byte, string, string, error) {
	if !IsValidFormat(format) {
		return nil, "", "", fmt.Errorf("unsupported format: %s", format)
	}

	rows, _, err := s.callbacks.List(ctx, callback.Filter{
		Status: status,
		Page:   1,
		Limit:  exportRowCap,
	})
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to load callback requests: %w", err)
	}

	return s.exporter.ExportCallbacks(format, rows)
}

// AdminActionReport exports the persisted admin action trail for a window.
func (s *Service) AdminActionReport(ctx context.Context, format string, from, to *time.Time) ([]byte, string, string, error) {
	if !IsValidFormat(format) {
		return nil, "", "", fmt.Errorf("unsupported format: %s", format)
	}

	rows, _, err := s.actions.GetByFilter(ctx, auditlog.ActionFilter{
		FromDate: from,
		ToDate:   to,
		Page:     1,
		Limit:    exportRowCap,
	})
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to load admin actions: %w", err)
	}

	return s.exporter.ExportAdminActions(format, rows)
}
