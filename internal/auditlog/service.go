package auditlog

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"gorm.io/datatypes"
)

type Service interface {
	LogAction(ctx context.Context, action, resource string, resourceID *uint, details map[string]interface{}, ip, deviceID, status string) error
	GetActions(ctx context.Context, filter ActionFilter) (*PaginatedActions, error)
	GetActionByID(ctx context.Context, id uint) (*AdminAction, error)
}

type service struct {
	repo   Repository
	events *Logger // live security feed, may be nil in tests
}

func NewService(repo Repository, events *Logger) Service {
	return &service{repo: repo, events: events}
}

// LogAction persists an admin action row and mirrors it into the live
// security event feed. The durable row is the record; the feed mirror is
// best-effort diagnostics.
func (s *service) LogAction(ctx context.Context, action, resource string, resourceID *uint, details map[string]interface{}, ip, deviceID, status string) error {
	if details == nil {
		details = make(map[string]interface{})
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	row := &AdminAction{
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Details:    datatypes.JSON(detailsJSON),
		IPAddress:  ip,
		DeviceID:   deviceID,
		Status:     status,
	}

	if s.events != nil {
		severity := SeverityLow
		if status != "success" {
			severity = SeverityMedium
		}
		mirrored := map[string]interface{}{
			"action":   action,
			"resource": resource,
			"status":   status,
		}
		for k, v := range details {
			mirrored[k] = v
		}
		s.events.Log(Entry{
			EventType: EventAdminAction,
			DeviceID:  deviceID,
			IPAddress: ip,
			Details:   mirrored,
			Severity:  severity,
		})
	}

	return s.repo.Create(ctx, row)
}

// GetActions retrieves paginated admin actions with filters
func (s *service) GetActions(ctx context.Context, filter ActionFilter) (*PaginatedActions, error) {
	actions, total, err := s.repo.GetByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	if filter.Limit == 0 {
		totalPages = 0
	}

	return &PaginatedActions{
		Data:       actions,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetActionByID retrieves a specific admin action by ID
func (s *service) GetActionByID(ctx context.Context, id uint) (*AdminAction, error) {
	action, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("admin action not found: %w", err)
	}
	return action, nil
}
