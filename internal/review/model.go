package review

import (
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// ============================
// 🔷 GORM Review Model
type Review struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	PatientName string     `gorm:"type:varchar(255);not null" json:"patient_name"`
	Rating      int        `gorm:"not null" json:"rating"`
	Comment     string     `gorm:"type:text" json:"comment"`
	Treatment   string     `gorm:"type:varchar(255)" json:"treatment"`
	IsApproved  bool       `gorm:"default:false;index" json:"is_approved"`
	IsFeatured  bool       `gorm:"default:false" json:"is_featured"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

// ============================
// 🟡 Submit Request (public form)
type SubmitRequest struct {
	PatientName string `json:"patient_name" binding:"required"`
	Rating      int    `json:"rating" binding:"required"`
	Comment     string `json:"comment,omitempty"`
	Treatment   string `json:"treatment,omitempty"`
}

// ============================
// 🟠 Moderate Request (admin, partial)
type ModerateRequest struct {
	PatientName *string `json:"patient_name,omitempty"`
	Rating      *int    `json:"rating,omitempty"`
	Comment     *string `json:"comment,omitempty"`
	Treatment   *string `json:"treatment,omitempty"`
	IsApproved  *bool   `json:"is_approved,omitempty"`
	IsFeatured  *bool   `json:"is_featured,omitempty"`
}

// RatingSummary feeds the public testimonials header.
type RatingSummary struct {
	Total   int64   `json:"total"`
	Average float64 `json:"average"`
}
