package callback

import (
	"time"
)

// ============================
// 🔷 Status / source enums
// ============================
// Single source of truth for the categorical fields; validation and
// handlers both consume these.

const (
	StatusPending   = "pending"
	StatusCalled    = "called"
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

const (
	SourceWebsite   = "website"
	SourcePhone     = "phone"
	SourceWhatsApp  = "whatsapp"
	SourceInstagram = "instagram"
	SourceTikTok    = "tiktok"
	SourceSocial    = "social"
	SourceReferral  = "referral"
)

const (
	MinPriority = 1
	MaxPriority = 5
	// Requests at or above this priority count as "high priority" in stats.
	HighPriorityThreshold = 4
)

var validStatuses = map[string]bool{
	StatusPending:   true,
	StatusCalled:    true,
	StatusScheduled: true,
	StatusCompleted: true,
	StatusCancelled: true,
}

var validSources = map[string]bool{
	SourceWebsite:   true,
	SourcePhone:     true,
	SourceWhatsApp:  true,
	SourceInstagram: true,
	SourceTikTok:    true,
	SourceSocial:    true,
	SourceReferral:  true,
}

func IsValidStatus(s string) bool { return validStatuses[s] }
func IsValidSource(s string) bool { return validSources[s] }

// allowedTransitions is the advisory state machine. The update endpoint
// deliberately accepts any valid status value; callers that want stricter
// behavior can consult CanTransition first.
var allowedTransitions = map[string][]string{
	StatusPending:   {StatusCalled, StatusScheduled, StatusCancelled},
	StatusCalled:    {StatusCompleted, StatusScheduled, StatusCancelled},
	StatusScheduled: {StatusCalled, StatusCompleted, StatusCancelled},
	StatusCompleted: {StatusCancelled},
	StatusCancelled: {},
}

// CanTransition reports whether moving from one status to another follows
// the advisory transition table.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ============================
// 🔷 GORM CallbackRequest Model
// ============================
type CallbackRequest struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Phone       string     `gorm:"type:varchar(32);not null" json:"phone"`
	Status      string     `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	Priority    int        `gorm:"not null;default:3;index" json:"priority"`
	Source      string     `gorm:"type:varchar(20);not null;default:website;index" json:"source"`
	Notes       string     `gorm:"type:text" json:"notes"`
	AdminNotes  string     `gorm:"type:text" json:"admin_notes"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	CalledAt    *time.Time `json:"called_at,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TableName overrides table name for CallbackRequest
func (CallbackRequest) TableName() string {
	return "callback_requests"
}

// ============================
// 🟡 Create Request (public form)
// ============================
type CreateRequest struct {
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone" binding:"required"`
	Source string `json:"source,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// ============================
// 🟠 Update Request (admin, partial)
// ============================
type UpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *int    `json:"priority,omitempty"`
	Source      *string `json:"source,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	AdminNotes  *string `json:"admin_notes,omitempty"`
	ScheduledAt *string `json:"scheduled_at,omitempty"` // RFC 3339
}

// ============================
// 📊 Aggregates
// ============================

// Stats summarizes the callback queue for the admin dashboard.
type Stats struct {
	Total            int64   `json:"total"`
	Pending          int64   `json:"pending"`
	Called           int64   `json:"called"`
	Scheduled        int64   `json:"scheduled"`
	Completed        int64   `json:"completed"`
	Cancelled        int64   `json:"cancelled"`
	TodayTotal       int64   `json:"today_total"`
	TodayPending     int64   `json:"today_pending"`
	HighPriority     int64   `json:"high_priority"`
	AvgResponseHours float64 `json:"avg_response_hours"`
}

// Filter narrows the admin list view.
type Filter struct {
	Status   string
	Source   string
	Priority *int
	Search   string
	Page     int
	Limit    int
}

// Aggregates are the raw numbers the repository computes in SQL; the
// service folds them into Stats.
type Aggregates struct {
	StatusCounts     map[string]int64
	TodayTotal       int64
	TodayPending     int64
	HighPriority     int64
	AvgResponseHours float64
}
