package review

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

// ListApproved handles GET /reviews (public)
func (h *Handler) ListApproved(c *gin.Context) {
	limit, offset := pagination(c)
	reviews, total, err := h.Service.List(c.Request.Context(), true, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": reviews, "total": total})
}

// Summary handles GET /reviews/summary (public)
func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.Service.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch summary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": summary})
}

// Submit handles POST /reviews (public) — new reviews await moderation.
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	rv, err := h.Service.Submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Review submitted, pending approval",
		"data":    rv,
	})
}

// ListAll handles GET /admin/reviews (includes unapproved)
func (h *Handler) ListAll(c *gin.Context) {
	limit, offset := pagination(c)
	reviews, total, err := h.Service.List(c.Request.Context(), false, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": reviews, "total": total})
}

// Moderate handles PATCH /admin/reviews/:id
func (h *Handler) Moderate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	rv, err := h.Service.Moderate(c.Request.Context(), id, req, middleware.GetIPFromContext(c), c.GetString("device_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rv})
}

// Delete handles DELETE /admin/reviews/:id
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
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review deleted", "deletedId": id})
}

func respondError(c *gin.Context, err error) {
	var violations ValidationErrors
	switch {
	case errors.As(err, &violations):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string(violations)})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Request failed"})
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
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
