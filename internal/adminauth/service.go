package adminauth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vassimdr/dr-sahin-durmus-backend/config"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/auditlog"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/security"
)

// Gate states reported by CheckSession.
const (
	StateChecking      = "checking"
	StateAuthenticated = "authenticated"
	StateRedirecting   = "redirecting"
)

// DefaultCheckInterval is how often the admin pages re-validate their
// session against this service.
const DefaultCheckInterval = 5 * time.Minute

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("too many failed login attempts")
)

// LoginInput is the admin login request payload.
type LoginInput struct {
	Email    string                 `json:"email" binding:"required"`
	Password string                 `json:"password" binding:"required"`
	Signals  security.ClientSignals `json:"signals"`
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string `json:"token"`
	DeviceID  string `json:"device_id"`
	ExpiresAt int64  `json:"expires_at"` // epoch ms, absolute session ceiling
}

// SessionStatus is the gate decision for one device.
type SessionStatus struct {
	State            string `json:"state"`
	RemainingSeconds int    `json:"remaining_seconds,omitempty"`
}

// Service is the admin auth gate: it owns the login flow, the per-device
// session records and their expiry policy. The session ceiling is absolute
// and measured from the original login; activity refresh slides the
// login-time marker but never moves the ceiling.
type Service struct {
	cfg      *config.Config
	limiter  *security.LoginLimiter
	sessions *security.SessionStore
	events   *auditlog.Logger

	now func() time.Time
}

func NewService(cfg *config.Config, limiter *security.LoginLimiter, sessions *security.SessionStore, events *auditlog.Logger) *Service {
	return &Service{
		cfg:      cfg,
		limiter:  limiter,
		sessions: sessions,
		events:   events,
		now:      time.Now,
	}
}

// sessionKey scopes a record name to one device fingerprint, mirroring
// per-browser storage on the client.
func sessionKey(base, deviceID string) string {
	return base + ":" + deviceID
}

// ============================
// 🔑 Login
// ============================

// Login throttles by device fingerprint, verifies the configured admin
// credentials and writes a fresh session record on success.
func (s *Service) Login(ctx context.Context, in LoginInput, ip, userAgent string) (*LoginResult, *security.Decision, error) {
	deviceID := security.Fingerprint(in.Signals)

	decision := s.limiter.Check(deviceID)
	if !decision.Allowed {
		s.events.Log(auditlog.Entry{
			EventType: auditlog.EventRateLimitExceeded,
			DeviceID:  deviceID,
			IPAddress: ip,
			UserAgent: userAgent,
			Severity:  auditlog.SeverityHigh,
			Details: map[string]interface{}{
				"retry_after_seconds": decision.RetryAfterSeconds,
			},
		})
		return nil, &decision, ErrRateLimited
	}

	s.events.Log(auditlog.Entry{
		EventType: auditlog.EventLoginAttempt,
		DeviceID:  deviceID,
		IPAddress: ip,
		UserAgent: userAgent,
		Severity:  auditlog.SeverityLow,
		Details:   map[string]interface{}{"email": in.Email},
	})

	if !s.credentialsValid(in.Email, in.Password) {
		s.limiter.RecordFailure(deviceID)
		s.events.Log(auditlog.Entry{
			EventType: auditlog.EventLoginFailed,
			DeviceID:  deviceID,
			IPAddress: ip,
			UserAgent: userAgent,
			Severity:  auditlog.SeverityMedium,
			Details: map[string]interface{}{
				"email":              in.Email,
				"attempts_remaining": s.limiter.Remaining(deviceID),
			},
		})
		return nil, nil, ErrInvalidCredentials
	}

	token, err := s.mintToken(deviceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to mint session token: %w", err)
	}

	now := s.now()
	nowMs := strconv.FormatInt(now.UnixMilli(), 10)

	if err := s.sessions.Set(ctx, sessionKey(security.KeyLoggedIn, deviceID), "true", deviceID); err != nil {
		return nil, nil, err
	}
	if err := s.sessions.Set(ctx, sessionKey(security.KeyToken, deviceID), token, deviceID); err != nil {
		return nil, nil, err
	}
	if err := s.sessions.Set(ctx, sessionKey(security.KeyLoginTime, deviceID), nowMs, deviceID); err != nil {
		return nil, nil, err
	}
	// Written once at login; the absolute ceiling is measured from here.
	if err := s.sessions.Set(ctx, sessionKey(security.KeySessionStart, deviceID), nowMs, deviceID); err != nil {
		return nil, nil, err
	}

	s.limiter.Clear(deviceID)
	s.events.Log(auditlog.Entry{
		EventType: auditlog.EventLoginSuccess,
		DeviceID:  deviceID,
		IPAddress: ip,
		UserAgent: userAgent,
		Severity:  auditlog.SeverityLow,
		Details:   map[string]interface{}{"email": in.Email},
	})

	return &LoginResult{
		Token:     token,
		DeviceID:  deviceID,
		ExpiresAt: now.Add(s.cfg.SessionMaxDuration()).UnixMilli(),
	}, nil, nil
}

func (s *Service) credentialsValid(email, password string) bool {
	if email == "" || s.cfg.AdminEmail == "" || email != s.cfg.AdminEmail {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)) == nil
}

func (s *Service) mintToken(deviceID string) (string, error) {
	claims := jwt.MapClaims{
		"device_id": deviceID,
		"jti":       uuid.NewString(),
		"iat":       s.now().Unix(),
		"exp":       s.now().Add(s.cfg.SessionMaxDuration()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ParseToken validates a session token and returns the device fingerprint
// embedded in it.
func (s *Service) ParseToken(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	deviceID, _ := claims["device_id"].(string)
	if deviceID == "" {
		return "", errors.New("token missing device binding")
	}
	return deviceID, nil
}

// ============================
// 🚪 Session gate
// ============================

// CheckSession evaluates the gate for one device: absent or tampered
// records redirect, an exceeded ceiling expires the session, anything
// else is authenticated.
func (s *Service) CheckSession(ctx context.Context, deviceID, ip string) SessionStatus {
	loggedIn, ok := s.sessions.Get(ctx, sessionKey(security.KeyLoggedIn, deviceID), deviceID)
	if !ok || loggedIn != "true" {
		return SessionStatus{State: StateRedirecting}
	}
	if _, ok := s.sessions.Get(ctx, sessionKey(security.KeyToken, deviceID), deviceID); !ok {
		return SessionStatus{State: StateRedirecting}
	}
	startRaw, ok := s.sessions.Get(ctx, sessionKey(security.KeySessionStart, deviceID), deviceID)
	if !ok {
		return SessionStatus{State: StateRedirecting}
	}

	startMs, err := strconv.ParseInt(startRaw, 10, 64)
	if err != nil {
		s.events.Log(auditlog.Entry{
			EventType: auditlog.EventSecurityViolation,
			DeviceID:  deviceID,
			IPAddress: ip,
			Severity:  auditlog.SeverityCritical,
			Details:   map[string]interface{}{"reason": "corrupt session start marker"},
		})
		s.clearSession(ctx, deviceID)
		return SessionStatus{State: StateRedirecting}
	}

	elapsed := s.now().Sub(time.UnixMilli(startMs))
	maxDur := s.cfg.SessionMaxDuration()
	if elapsed > maxDur {
		s.events.Log(auditlog.Entry{
			EventType: auditlog.EventSessionExpired,
			DeviceID:  deviceID,
			IPAddress: ip,
			Severity:  auditlog.SeverityMedium,
			Details:   map[string]interface{}{"reason": "maximum session duration exceeded"},
		})
		s.clearSession(ctx, deviceID)
		return SessionStatus{State: StateRedirecting}
	}

	return SessionStatus{
		State:            StateAuthenticated,
		RemainingSeconds: int((maxDur - elapsed).Seconds()),
	}
}

// RefreshActivity slides the login-time marker for an authenticated
// device. The absolute ceiling is untouched.
func (s *Service) RefreshActivity(ctx context.Context, deviceID, ip string) SessionStatus {
	status := s.CheckSession(ctx, deviceID, ip)
	if status.State != StateAuthenticated {
		return status
	}

	nowMs := strconv.FormatInt(s.now().UnixMilli(), 10)
	_ = s.sessions.Set(ctx, sessionKey(security.KeyLoginTime, deviceID), nowMs, deviceID)
	return status
}

// Logout clears the session records for a device. User-initiated
// termination is recorded as a session-expired event.
func (s *Service) Logout(ctx context.Context, deviceID, ip string) {
	s.clearSession(ctx, deviceID)
	s.events.Log(auditlog.Entry{
		EventType: auditlog.EventSessionExpired,
		DeviceID:  deviceID,
		IPAddress: ip,
		Severity:  auditlog.SeverityLow,
		Details:   map[string]interface{}{"reason": "user-initiated termination"},
	})
	s.events.Log(auditlog.Entry{
		EventType: auditlog.EventLogout,
		DeviceID:  deviceID,
		IPAddress: ip,
		Severity:  auditlog.SeverityLow,
	})
}

// ValidateRequestToken is the server-side gate used by the admin route
// middleware: the presented token must parse, and must match the record
// stored for its device with the ceiling not yet exceeded.
func (s *Service) ValidateRequestToken(ctx context.Context, raw, ip string) (string, bool) {
	deviceID, err := s.ParseToken(raw)
	if err != nil {
		return "", false
	}

	stored, ok := s.sessions.Get(ctx, sessionKey(security.KeyToken, deviceID), deviceID)
	if !ok || stored != raw {
		return deviceID, false
	}

	status := s.CheckSession(ctx, deviceID, ip)
	return deviceID, status.State == StateAuthenticated
}

func (s *Service) clearSession(ctx context.Context, deviceID string) {
	_ = s.sessions.Remove(ctx, sessionKey(security.KeyLoggedIn, deviceID))
	_ = s.sessions.Remove(ctx, sessionKey(security.KeyToken, deviceID))
	_ = s.sessions.Remove(ctx, sessionKey(security.KeyLoginTime, deviceID))
	_ = s.sessions.Remove(ctx, sessionKey(security.KeySessionStart, deviceID))
}
