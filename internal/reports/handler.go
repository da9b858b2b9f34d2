package reports

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// CallbackReport handles GET /admin/reports/callbacks?format=csv|excel|pdf&status=...
func (h *Handler) CallbackReport(c *gin.Context) {
	format := c.DefaultQuery("format", FormatCSV)

	data, filename, contentType, err := h.Service.CallbackReport(c.Request.Context(), format, c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	serveDownload(c, data, filename, contentType)
}

// AdminActionReport handles GET /admin/reports/actions?format=...&from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) AdminActionReport(c *gin.Context) {
	format := c.DefaultQuery("format", FormatCSV)

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
			return
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
			return
		}
		end := t.Add(24*time.Hour - time.Second)
		to = &end
	}

	data, filename, contentType, err := h.Service.AdminActionReport(c.Request.Context(), format, from, to)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	serveDownload(c, data, filename, contentType)
}

func serveDownload(c *gin.Context, data []byte, filename, contentType string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}
