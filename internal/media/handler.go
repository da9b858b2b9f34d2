package media

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

// ListActive handles GET /media (public)
func (h *Handler) ListActive(c *gin.Context) {
	limit, offset := pagination(c)
	pubs, total, err := h.Service.List(c.Request.Context(), true, c.Query("type"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch publications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": pubs, "total": total})
}

// Types handles GET /media/types
func (h *Handler) Types(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": Types()})
}

// ListAll handles GET /admin/media
func (h *Handler) ListAll(c *gin.Context) {
	limit, offset := pagination(c)
	pubs, total, err := h.Service.List(c.Request.Context(), false, c.Query("type"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch publications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": pubs, "total": total})
}

// Create handles POST /admin/media
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	pub, err := h.Service.Create(c.Request.Context(), req, middleware.GetIPFromContext(c), c.GetString("device_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": pub})
}

// Update handles PATCH /admin/media/:id
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

	pub, err := h.Service.Update(c.Request.Context(), id, req, middleware.GetIPFromContext(c), c.GetString("device_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": pub})
}

// Delete handles DELETE /admin/media/:id
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
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Publication deleted", "deletedId": id})
}

func respondError(c *gin.Context, err error) {
	var violations ValidationErrors
	switch {
	case errors.As(err, &violations):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string(violations)})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Publication not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Request failed"})
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publication ID"})
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
