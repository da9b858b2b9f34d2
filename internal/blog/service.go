package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vassimdr/dr-sahin-durmus-backend/internal/auditlog"
)

var ErrNotFound = errors.New("blog post not found")

type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return "validation failed: " + strings.Join(v, "; ")
}

// Service wraps business logic for blog posts.
type Service struct {
	repo     Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, auditSvc auditlog.Service) *Service {
	return &Service{repo: repo, auditSvc: auditSvc}
}

// ===========================
// 🎯 Create
func (s *Service) Create(ctx context.Context, req CreateRequest, ip, deviceID string) (*BlogPost, error) {
	var violations ValidationErrors

	title := strings.TrimSpace(req.Title)
	if title == "" {
		violations = append(violations, "title must not be empty")
	}
	if strings.TrimSpace(req.Content) == "" {
		violations = append(violations, "content must not be empty")
	}

	category := req.Category
	if category == "" {
		category = CategoryGeneral
	}
	if !IsValidCategory(category) {
		violations = append(violations, fmt.Sprintf("category must be one of %v, got %q", Categories(), category))
	}

	if len(violations) > 0 {
		return nil, violations
	}

	slug, err := s.uniqueSlug(ctx, title)
	if err != nil {
		return nil, err
	}

	post := &BlogPost{
		Title:         title,
		Slug:          slug,
		Excerpt:       strings.TrimSpace(req.Excerpt),
		Content:       req.Content,
		Category:      category,
		CoverImageURL: req.CoverImageURL,
	}
	if req.Published != nil && *req.Published {
		post.Published = true
		now := time.Now()
		post.PublishedAt = &now
	}
	if req.IsFeatured != nil {
		post.IsFeatured = *req.IsFeatured
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logAction(ctx, "BLOG_CREATED", post.ID, map[string]interface{}{"title": post.Title, "slug": post.Slug}, ip, deviceID)
	return post, nil
}

// uniqueSlug appends a numeric suffix when the base slug is taken.
func (s *Service) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := Slugify(title)
	count, err := s.repo.CountSlugPrefix(ctx, base)
	if err != nil {
		return "", err
	}
	if count == 0 {
		return base, nil
	}
	return fmt.Sprintf("%s-%d", base, count+1), nil
}

// ===========================
// 📄 Reads
func (s *Service) List(ctx context.Context, publishedOnly bool, category string, limit, offset int) ([]BlogPost, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.List(ctx, publishedOnly, category, limit, offset)
}

func (s *Service) Get(ctx context.Context, id uint) (*BlogPost, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// GetPublishedBySlug serves the public article page.
func (s *Service) GetPublishedBySlug(ctx context.Context, slug string) (*BlogPost, error) {
	post, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !post.Published {
		return nil, ErrNotFound
	}
	return post, nil
}

// ===========================
// 🛠 Update
func (s *Service) Update(ctx context.Context, id uint, req UpdateRequest, ip, deviceID string) (*BlogPost, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var violations ValidationErrors
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		violations = append(violations, "title must not be empty")
	}
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		violations = append(violations, "content must not be empty")
	}
	if req.Category != nil && !IsValidCategory(*req.Category) {
		violations = append(violations, fmt.Sprintf("category must be one of %v, got %q", Categories(), *req.Category))
	}
	if len(violations) > 0 {
		return nil, violations
	}

	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Excerpt != nil {
		post.Excerpt = strings.TrimSpace(*req.Excerpt)
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Category != nil {
		post.Category = *req.Category
	}
	if req.CoverImageURL != nil {
		post.CoverImageURL = *req.CoverImageURL
	}
	if req.IsFeatured != nil {
		post.IsFeatured = *req.IsFeatured
	}
	if req.Published != nil {
		wasPublished := post.Published
		post.Published = *req.Published
		if post.Published && !wasPublished && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}

	s.logAction(ctx, "BLOG_UPDATED", post.ID, map[string]interface{}{"title": post.Title, "published": post.Published}, ip, deviceID)
	return post, nil
}

// ===========================
// ❌ Delete
func (s *Service) Delete(ctx context.Context, id uint, ip, deviceID string) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logAction(ctx, "BLOG_DELETED", post.ID, map[string]interface{}{"title": post.Title}, ip, deviceID)
	return nil
}

func (s *Service) logAction(ctx context.Context, action string, id uint, details map[string]interface{}, ip, deviceID string) {
	if s.auditSvc == nil {
		return
	}
	resourceID := id
	_ = s.auditSvc.LogAction(ctx, action, "blog", &resourceID, details, ip, deviceID, "success")
}
