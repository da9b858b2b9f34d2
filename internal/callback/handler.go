package callback

import (
	"errors"
	"math"
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

// ===========================
// 🎯 Create - POST /callback-requests (public)
// @Summary Submit a callback request
// @Tags Callback
// @Accept json
// @Produce json
// @Success 201 {object} gin.H
// @Failure 400 {object} gin.H
// @Router /api/v1/callback-requests [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	record, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		var violations ValidationErrors
		if errors.As(err, &violations) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Validation failed",
				"details": []string(violations),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save callback request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": record})
}

// ===========================
// 📄 List - GET /admin/callback-requests
// Query params: status, priority, source, search, page, limit
func (h *Handler) List(c *gin.Context) {
	filter := Filter{
		Status: c.Query("status"),
		Source: c.Query("source"),
		Search: c.Query("search"),
		Page:   1,
		Limit:  20,
	}

	if priorityStr := c.Query("priority"); priorityStr != "" {
		priority, err := strconv.Atoi(priorityStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority value"})
			return
		}
		filter.Priority = &priority
	}
	if pageStr := c.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}

	requests, stats, total, err := h.Service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch callback requests"})
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    requests,
		"stats":   stats,
		"pagination": gin.H{
			"page":       filter.Page,
			"limit":      filter.Limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

// ===========================
// 🔍 Get - GET /admin/callback-requests/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	record, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Callback request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch callback request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

// ===========================
// 🛠 Update - PATCH /admin/callback-requests/:id
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

	ip := middleware.GetIPFromContext(c)
	deviceID := c.GetString("device_id")

	record, err := h.Service.Update(c.Request.Context(), id, req, ip, deviceID)
	if err != nil {
		var violations ValidationErrors
		switch {
		case errors.As(err, &violations):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Validation failed",
				"details": []string(violations),
			})
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Callback request not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update callback request"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

// ===========================
// ❌ Delete - DELETE /admin/callback-requests/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ip := middleware.GetIPFromContext(c)
	deviceID := c.GetString("device_id")

	record, err := h.Service.Delete(c.Request.Context(), id, ip, deviceID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Callback request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete callback request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Callback request deleted",
		"deletedId": record.ID,
	})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return 0, false
	}
	return uint(id), true
}
