package adminauth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vassimdr/dr-sahin-durmus-backend/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Login handles POST /admin/auth/login
// @Summary Admin login
// @Description Authenticate the clinic admin; throttled per device fingerprint
// @Tags AdminAuth
// @Accept json
// @Produce json
// @Success 200 {object} LoginResult
// @Failure 401 {object} gin.H
// @Failure 429 {object} gin.H
// @Router /api/v1/admin/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	result, decision, err := h.service.Login(c.Request.Context(), in, ip, c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, ErrRateLimited) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":               decision.Message,
				"retry_after_seconds": decision.RetryAfterSeconds,
			})
			return
		}
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// Session handles GET /admin/auth/session - the gate check the admin
// pages run on mount, on route change and on a fixed interval.
func (h *Handler) Session(c *gin.Context) {
	deviceID := c.GetHeader("X-Device-ID")
	if deviceID == "" {
		c.JSON(http.StatusOK, SessionStatus{State: StateRedirecting})
		return
	}

	ip := middleware.GetIPFromContext(c)
	c.JSON(http.StatusOK, h.service.CheckSession(c.Request.Context(), deviceID, ip))
}

// Activity handles POST /admin/auth/activity - slides the idle marker.
func (h *Handler) Activity(c *gin.Context) {
	deviceID := c.GetHeader("X-Device-ID")
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing device id"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	c.JSON(http.StatusOK, h.service.RefreshActivity(c.Request.Context(), deviceID, ip))
}

// Logout handles POST /admin/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	deviceID := c.GetHeader("X-Device-ID")
	if deviceID == "" {
		deviceID = c.GetString("device_id")
	}
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing device id"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	h.service.Logout(c.Request.Context(), deviceID, ip)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}
