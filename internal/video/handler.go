package video

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

// ListActive handles GET /videos (public)
func (h *Handler) ListActive(c *gin.Context) {
	limit, offset := pagination(c)
	videos, total, err := h.Service.List(c.Request.Context(), true, c.Query("category"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch videos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": videos, "total": total})
}

// GetActive handles GET /videos/:id (public) — counts the view.
func (h *Handler) GetActive(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	v, err := h.Service.GetActive(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": v})
}

// Categories handles GET /videos/categories
func (h *Handler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": Categories()})
}

// ListAll handles GET /admin/videos
func (h *Handler) ListAll(c *gin.Context) {
	limit, offset := pagination(c)
	videos, total, err := h.Service.List(c.Request.Context(), false, c.Query("category"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch videos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": videos, "total": total})
}

// Create handles POST /admin/videos
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	v, err := h.Service.Create(c.Request.Context(), req, middleware.GetIPFromContext(c), c.GetString("device_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": v})
}

// Update handles PATCH /admin/videos/:id
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

	v, err := h.Service.Update(c.Request.Context(), id, req, middleware.GetIPFromContext(c), c.GetString("device_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": v})
}

// Delete handles DELETE /admin/videos/:id
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
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Video deleted", "deletedId": id})
}

func respondError(c *gin.Context, err error) {
	var violations ValidationErrors
	switch {
	case errors.As(err, &violations):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string(violations)})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Request failed"})
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid video ID"})
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
