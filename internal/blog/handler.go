package blog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vassimdr/dr-sahin-durmus-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ListPublished handles GET /blog (public)
func (h *Handler) ListPublished(c *gin.Context) {
	limit, offset := pagination(c)
	posts, total, err := h.Service.List(c.Request.Context(), true, c.Query("category"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": posts, "total": total})
}

// GetBySlug handles GET /blog/:slug (public)
func (h *Handler) GetBySlug(c *gin.Context) {
	post, err := h.Service.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": post})
}

// ListAll handles GET /admin/blog
func (h *Handler) ListAll(c *gin.Context) {
	limit, offset := pagination(c)
	posts, total, err := h.Service.List(c.Request.Context(), false, c.Query("category"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": posts, "total": total})
}

// Create handles POST /admin/blog
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	post, err := h.Service.Create(c.Request.Context(), req, middleware.GetIPFromContext(c), c.GetString("device_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": post})
}

// Update handles PATCH /admin/blog/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	post, err := h.Service.Update(c.Request.Context(), id, req, middleware.GetIPFromContext(c), c.GetString("device_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": post})
}

// Delete handles DELETE /admin/blog/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.Service.Delete(c.Request.Context(), id, middleware.GetIPFromContext(c), c.GetString("device_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post deleted", "deletedId": id})
}

// Categories handles GET /blog/categories
func (h *Handler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": Categories()})
}

func respondError(c *gin.Context, err error) {
	var violations ValidationErrors
	switch {
	case errors.As(err, &violations):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string(violations)})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Request failed"})
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return 0, false
	}
	return uint(id), true
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = 20
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	page := 1
	if v, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && v > 0 {
		page = v
	}
	return limit, (page - 1) * limit
}
