package media

import (
	"time"
)

// Publication types for the press coverage page.
const (
	TypeNews         = "news"
	TypeInterview    = "interview"
	TypeTVAppearance = "tv-appearance"
	TypeArticle      = "article"
)

var validTypes = map[string]bool{
	TypeNews:         true,
	TypeInterview:    true,
	TypeTVAppearance: true,
	TypeArticle:      true,
}

func IsValidType(t string) bool { return validTypes[t] }

func Types() []string {
	return []string{TypeNews, TypeInterview, TypeTVAppearance, TypeArticle}
}

// ============================
// 🔷 GORM MediaPublication Model
type MediaPublication struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	OutletName  string     `gorm:"type:varchar(255);not null" json:"outlet_name"`
	Type        string     `gorm:"type:varchar(50);not null;default:news;index" json:"type"`
	Summary     string     `gorm:"type:text" json:"summary"`
	ExternalURL string     `gorm:"type:text" json:"external_url"`
	ImageURL    string     `gorm:"type:text" json:"image_url"`
	PublishedOn *time.Time `json:"published_on,omitempty"`
	IsActive    bool       `gorm:"default:true;index" json:"is_active"`
	IsFeatured  bool       `gorm:"default:false" json:"is_featured"`
	SortOrder   int        `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MediaPublication) TableName() string {
	return "media_publications"
}

// ============================
// 🟡 Create Request
type CreateRequest struct {
	Title       string     `json:"title" binding:"required"`
	OutletName  string     `json:"outlet_name" binding:"required"`
	Type        string     `json:"type,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	ExternalURL string     `json:"external_url,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	PublishedOn *time.Time `json:"published_on,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
	IsFeatured  *bool      `json:"is_featured,omitempty"`
	SortOrder   *int       `json:"sort_order,omitempty"`
}

// ============================
// 🟠 Update Request (partial)
type UpdateRequest struct {
	Title       *string    `json:"title,omitempty"`
	OutletName  *string    `json:"outlet_name,omitempty"`
	Type        *string    `json:"type,omitempty"`
	Summary     *string    `json:"summary,omitempty"`
	ExternalURL *string    `json:"external_url,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`
	PublishedOn *time.Time `json:"published_on,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
	IsFeatured  *bool      `json:"is_featured,omitempty"`
	SortOrder   *int       `json:"sort_order,omitempty"`
}
