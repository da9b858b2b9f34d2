package auditlog

import (
	"time"

	"gorm.io/datatypes"
)

// AdminAction represents the admin_actions table: the durable record of
// every back-office mutation, shown in the admin audit viewer.
type AdminAction struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Action     string         `gorm:"size:100;not null;index" json:"action"`
	Resource   string         `gorm:"size:50;not null;index" json:"resource"` // blog, gallery, video, media, review, callback
	ResourceID *uint          `gorm:"index" json:"resource_id"`
	Details    datatypes.JSON `gorm:"type:jsonb" json:"details"`
	IPAddress  string         `gorm:"size:45" json:"ip_address"`
	DeviceID   string         `gorm:"size:64;index" json:"device_id"`
	Status     string         `gorm:"size:20;not null;index" json:"status"` // success/failure
	CreatedAt  time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName overrides table name for AdminAction
func (AdminAction) TableName() string {
	return "admin_actions"
}

// ActionFilter represents filters for querying admin actions
type ActionFilter struct {
	Action   string     `json:"action"`
	Resource string     `json:"resource"`
	Status   string     `json:"status"`
	FromDate *time.Time `json:"from_date"`
	ToDate   *time.Time `json:"to_date"`
	Page     int        `json:"page"`
	Limit    int        `json:"limit"`
}

// PaginatedActions represents a paginated admin action response
type PaginatedActions struct {
	Data       []AdminAction `json:"data"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
}
