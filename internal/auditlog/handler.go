package auditlog

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
	events  *Logger
}

func NewHandler(service Service, events *Logger) *Handler {
	return &Handler{service: service, events: events}
}

// GetActions handles GET /admin/audit/actions - durable admin action rows
// @Summary Get admin actions
// @Description Retrieve the durable admin action log with optional filters and pagination
// @Tags Audit
// @Produce json
// @Param action query string false "Filter by action (partial match)"
// @Param resource query string false "Filter by resource"
// @Param status query string false "Filter by status"
// @Param from_date query string false "Filter from date (YYYY-MM-DD)"
// @Param to_date query string false "Filter to date (YYYY-MM-DD)"
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Records per page (default: 20)"
// @Success 200 {object} PaginatedActions
// @Router /api/v1/admin/audit/actions [get]
func (h *Handler) GetActions(c *gin.Context) {
	filter := ActionFilter{
		Action:   c.Query("action"),
		Resource: c.Query("resource"),
		Status:   c.Query("status"),
		Page:     1,
		Limit:    20,
	}

	if fromDateStr := c.Query("from_date"); fromDateStr != "" {
		if fromDate, err := time.Parse("2006-01-02", fromDateStr); err == nil {
			filter.FromDate = &fromDate
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from_date format. Use YYYY-MM-DD"})
			return
		}
	}
	if toDateStr := c.Query("to_date"); toDateStr != "" {
		if toDate, err := time.Parse("2006-01-02", toDateStr); err == nil {
			// Set to end of day
			endOfDay := toDate.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
			filter.ToDate = &endOfDay
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to_date format. Use YYYY-MM-DD"})
			return
		}
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

	result, err := h.service.GetActions(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch admin actions"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetActionByID handles GET /admin/audit/actions/:id
func (h *Handler) GetActionByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action ID"})
		return
	}

	action, err := h.service.GetActionByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin action not found"})
		return
	}

	c.JSON(http.StatusOK, action)
}

// GetEvents handles GET /admin/audit/events - the live security feed.
// Supported query params: type, ip, minutes, critical, limit.
func (h *Handler) GetEvents(c *gin.Context) {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil && v > 0 {
			limit = v
		}
	}

	var entries []Entry
	switch {
	case c.Query("type") != "":
		entries = h.events.LogsByType(c.Query("type"), limit)
	case c.Query("ip") != "":
		entries = h.events.LogsByIP(c.Query("ip"), limit)
	case c.Query("minutes") != "":
		minutes, err := strconv.Atoi(c.Query("minutes"))
		if err != nil || minutes <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid minutes value"})
			return
		}
		entries = h.events.Recent(minutes)
	case c.Query("critical") == "true":
		entries = h.events.Critical(limit)
	default:
		entries = h.events.Logs(limit)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
		"count":   len(entries),
	})
}

// GetEventStats handles GET /admin/audit/events/stats
func (h *Handler) GetEventStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.events.Statistics(),
	})
}

// ExportEvents handles GET /admin/audit/events/export?format=json|csv
func (h *Handler) ExportEvents(c *gin.Context) {
	format := c.DefaultQuery("format", FormatJSON)

	data, err := h.events.Export(format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	switch format {
	case FormatCSV:
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"security_events_%s.csv\"", timestamp))
		c.Data(http.StatusOK, "text/csv", data)
	default:
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"security_events_%s.json\"", timestamp))
		c.Data(http.StatusOK, "application/json", data)
	}
}

// ClearEvents handles DELETE /admin/audit/events
func (h *Handler) ClearEvents(c *gin.Context) {
	if err := h.events.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear security events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Security events cleared"})
}
