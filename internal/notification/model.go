package notification

import (
	"time"

	"gorm.io/datatypes"
)

// Delivery channels.
const (
	ChannelEmail = "email"
	ChannelPush  = "push"
)

// 1. FCMDeviceToken - registered admin devices for push alerts
type FCMDeviceToken struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DeviceToken string    `gorm:"size:255;not null;uniqueIndex" json:"device_token"`
	DeviceType  string    `gorm:"size:20" json:"device_type"` // android, ios, web
	DeviceName  string    `gorm:"size:100" json:"device_name"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	LastUsedAt  time.Time `json:"last_used_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (FCMDeviceToken) TableName() string {
	return "fcm_device_tokens"
}

// 2. NotificationLog - each alert actually sent (or attempted)
type NotificationLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Channel    string         `gorm:"size:20;not null" json:"channel"` // email, push
	Subject    string         `gorm:"size:255" json:"subject,omitempty"`
	Body       string         `gorm:"type:text;not null" json:"body"`
	Recipients datatypes.JSON `gorm:"type:jsonb;not null" json:"recipients"`
	Status     string         `gorm:"size:20;default:'pending'" json:"status"` // sent, failed
	Error      *string        `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}

// ============================
// 🟡 Register Request
type RegisterTokenRequest struct {
	DeviceToken string `json:"device_token" binding:"required"`
	DeviceType  string `json:"device_type,omitempty"`
	DeviceName  string `json:"device_name,omitempty"`
}
