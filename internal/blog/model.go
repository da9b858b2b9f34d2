package blog

import (
	"time"
)

// Blog categories shown on the public site. One fixed list consumed by
// both validation and the category filter endpoints.
const (
	CategoryGeneral    = "general"
	CategoryTreatments = "treatments"
	CategoryOralHealth = "oral-health"
	CategoryAesthetics = "aesthetics"
	CategoryClinicNews = "clinic-news"
)

var validCategories = map[string]bool{
	CategoryGeneral:    true,
	CategoryTreatments: true,
	CategoryOralHealth: true,
	CategoryAesthetics: true,
	CategoryClinicNews: true,
}

func IsValidCategory(c string) bool { return validCategories[c] }

// Categories returns the fixed category list for the admin form.
func Categories() []string {
	return []string{CategoryGeneral, CategoryTreatments, CategoryOralHealth, CategoryAesthetics, CategoryClinicNews}
}

// ============================
// 🔷 GORM BlogPost Model
type BlogPost struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"type:varchar(255);not null" json:"title"`
	Slug          string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Excerpt       string     `gorm:"type:text" json:"excerpt"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	Category      string     `gorm:"type:varchar(50);not null;default:general;index" json:"category"`
	CoverImageURL string     `gorm:"type:text" json:"cover_image_url"`
	Published     bool       `gorm:"default:false;index" json:"published"`
	IsFeatured    bool       `gorm:"default:false" json:"is_featured"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

// ============================
// 🟡 Create Request
type CreateRequest struct {
	Title         string `json:"title" binding:"required"`
	Excerpt       string `json:"excerpt,omitempty"`
	Content       string `json:"content" binding:"required"`
	Category      string `json:"category,omitempty"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
	Published     *bool  `json:"published,omitempty"`
	IsFeatured    *bool  `json:"is_featured,omitempty"`
}

// ============================
// 🟠 Update Request (partial)
type UpdateRequest struct {
	Title         *string `json:"title,omitempty"`
	Excerpt       *string `json:"excerpt,omitempty"`
	Content       *string `json:"content,omitempty"`
	Category      *string `json:"category,omitempty"`
	CoverImageURL *string `json:"cover_image_url,omitempty"`
	Published     *bool   `json:"published,omitempty"`
	IsFeatured    *bool   `json:"is_featured,omitempty"`
}
