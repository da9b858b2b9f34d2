package gallery

import (
	"time"
)

// Gallery categories for the public showcase page.
const (
	CategoryBeforeAfter = "before-after"
	CategoryClinic      = "clinic"
	CategoryTeam        = "team"
	CategoryTreatments  = "treatments"
	CategoryTechnology  = "technology"
)

var validCategories = map[string]bool{
	CategoryBeforeAfter: true,
	CategoryClinic:      true,
	CategoryTeam:        true,
	CategoryTreatments:  true,
	CategoryTechnology:  true,
}

func IsValidCategory(c string) bool { return validCategories[c] }

func Categories() []string {
	return []string{CategoryBeforeAfter, CategoryClinic, CategoryTeam, CategoryTreatments, CategoryTechnology}
}

// ============================
// 🔷 GORM GalleryItem Model
type GalleryItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Category     string    `gorm:"type:varchar(50);not null;default:clinic;index" json:"category"`
	ImageURL     string    `gorm:"type:text;not null" json:"image_url"`
	ThumbnailURL string    `gorm:"type:text" json:"thumbnail_url"`
	AltText      string    `gorm:"type:varchar(255)" json:"alt_text"`
	IsActive     bool      `gorm:"default:true;index" json:"is_active"`
	IsFeatured   bool      `gorm:"default:false" json:"is_featured"`
	SortOrder    int       `gorm:"default:0" json:"sort_order"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (GalleryItem) TableName() string {
	return "gallery_items"
}

// ============================
// 🟡 Create Request
type CreateRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description,omitempty"`
	Category     string `json:"category,omitempty"`
	ImageURL     string `json:"image_url" binding:"required"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	AltText      string `json:"alt_text,omitempty"`
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
	ImageURL     *string `json:"image_url,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	AltText      *string `json:"alt_text,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
	IsFeatured   *bool   `json:"is_featured,omitempty"`
	SortOrder    *int    `json:"sort_order,omitempty"`
}
