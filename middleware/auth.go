package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vassimdr/dr-sahin-durmus-backend/internal/auditlog"
)

// AdminGateFunc is the validation callback supplied by the admin auth
// service. The indirection keeps middleware free of an import cycle with
// internal/adminauth.
type AdminGateFunc func(c *gin.Context, token, ip string) (deviceID string, ok bool)

// AdminGate protects back-office routes. Requests without a valid, current
// session get 401 with a redirect flag; the client gate navigates to login.
// Every rejection lands in the security event feed.
func AdminGate(validate AdminGateFunc, events *auditlog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := GetIPFromContext(c)

		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			events.Log(auditlog.Entry{
				EventType: auditlog.EventUnauthorizedAccess,
				IPAddress: ip,
				UserAgent: c.Request.UserAgent(),
				Severity:  auditlog.SeverityMedium,
				Location:  c.Request.URL.RequestURI(),
				Details:   map[string]interface{}{"reason": "missing bearer token"},
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required", "redirect": true})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		deviceID, ok := validate(c, token, ip)
		if !ok {
			events.Log(auditlog.Entry{
				EventType: auditlog.EventUnauthorizedAccess,
				DeviceID:  deviceID,
				IPAddress: ip,
				UserAgent: c.Request.UserAgent(),
				Severity:  auditlog.SeverityHigh,
				Location:  c.Request.URL.RequestURI(),
				Details:   map[string]interface{}{"reason": "session invalid or expired"},
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired", "redirect": true})
			return
		}

		c.Set("device_id", deviceID)
		c.Next()
	}
}
