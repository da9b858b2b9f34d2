package video

import (
	"time"
)

// Video categories for the doctor video showcase.
const (
	CategoryTreatment    = "treatment"
	CategoryPatientStory = "patient-story"
	CategoryClinicTour   = "clinic-tour"
	CategoryEducation    = "education"
)

var validCategories = map[string]bool{
	CategoryTreatment:    true,
	CategoryPatientStory: true,
	CategoryClinicTour:   true,
	CategoryEducation:    true,
}

func IsValidCategory(c string) bool { return validCategories[c] }

func Categories() []string {
	return []string{CategoryTreatment, CategoryPatientStory, CategoryClinicTour, CategoryEducation}
}

// ============================
// 🔷 GORM DoctorVideo Model
type DoctorVideo struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Category     string    `gorm:"type:varchar(50);not null;default:treatment;index" json:"category"`
	VideoURL     string    `gorm:"type:text;not null" json:"video_url"`
	ThumbnailURL string    `gorm:"type:text" json:"thumbnail_url"`
	DurationSec  int       `gorm:"default:0" json:"duration_seconds"`
	ViewCount    int64     `gorm:"default:0" json:"view_count"`
	IsActive     bool      `gorm:"default:true;index" json:"is_active"`
	IsFeatured   bool      `gorm:"default:false" json:"is_featured"`
	SortOrder    int       `gorm:"default:0" json:"sort_order"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DoctorVideo) TableName() string {
	return "doctor_videos"
}

// ============================
// 🟡 Create Request
type CreateRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description,omitempty"`
	Category     string `json:"category,omitempty"`
	VideoURL     string `json:"video_url" binding:"required"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	DurationSec  *int   `json:"duration_seconds,omitempty"`
	IsActive     *bool  `json:"is_active,omitempty"`
	IsFeatured   *bool  `json:"is_featured,omitempty"`
	SortOrder    *int   `json:"sort_order,omitempty"`
}

// ============================
// 🟠 Update Request (partial)
type UpdateRequest struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	Category     *string `json:"category,omitempty"`
	VideoURL     *string `json:"video_url,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	DurationSec  *int    `json:"duration_seconds,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
	IsFeatured   *bool   `json:"is_featured,omitempty"`
	SortOrder    *int    `json:"sort_order,omitempty"`
}
