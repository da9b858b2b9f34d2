package auditlog

import (
	"time"

	"github.com/google/uuid"
)

// Security event types recorded by the in-memory logger.
const (
	EventLoginAttempt       = "LOGIN_ATTEMPT"
	EventLoginSuccess       = "LOGIN_SUCCESS"
	EventLoginFailed        = "LOGIN_FAILED"
	EventLogout             = "LOGOUT"
	EventSessionExpired     = "SESSION_EXPIRED"
	EventRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	EventUnauthorizedAccess = "UNAUTHORIZED_ACCESS"
	EventIPBlocked          = "IP_BLOCKED"
	EventAdminAction        = "ADMIN_ACTION"
	EventSecurityViolation  = "SECURITY_VIOLATION"
)

// Severity levels, lowest to highest.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Entry is one immutable security event. Entries are never mutated after
// Log; the oldest are evicted once the buffer is full.
type Entry struct {
	ID        string                 `json:"id"`
	Timestamp int64                  `json:"timestamp"` // epoch milliseconds
	EventType string                 `json:"event_type"`
	DeviceID  string                 `json:"device_id"`
	IPAddress string                 `json:"ip_address"`
	UserAgent string                 `json:"user_agent"`
	Details   map[string]interface{} `json:"details"`
	Severity  string                 `json:"severity"`
	Location  string                 `json:"location,omitempty"` // pathname+query
}

// Time converts the epoch-ms timestamp back to time.Time.
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

func newID() string {
	return uuid.NewString()
}
