package adminauth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vassimdr/dr-sahin-durmus-backend/config"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/auditlog"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/security"
)

const testPassword = "correct-horse"

func newTestService(t *testing.T) (*Service, *auditlog.Logger, *time.Time) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		AdminEmail:        "admin@clinic.example",
		AdminPasswordHash: string(hash),
		JWTSecret:         "test-secret",
		SessionMaxHours:   24,
	}

	events := auditlog.NewLogger(auditlog.NewMemoryCriticalStore(), nil)
	limiter := security.NewLoginLimiter(5, 15*time.Minute, 5*time.Minute)
	sessions := security.NewSessionStore(security.NewMemoryBackend(), 25*time.Hour)

	svc := NewService(cfg, limiter, sessions, events)
	now := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	return svc, events, &now
}

func signals(platform string) security.ClientSignals {
	return security.ClientSignals{Platform: platform, UserAgent: "test-agent"}
}

func TestLoginSuccessCreatesSession(t *testing.T) {
	svc, events, _ := newTestService(t)
	ctx := context.Background()

	result, decision, err := svc.Login(ctx, LoginInput{
		Email:    "admin@clinic.example",
		Password: testPassword,
		Signals:  signals("MacIntel"),
	}, "10.0.0.1", "test-agent")

	require.NoError(t, err)
	assert.Nil(t, decision)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.DeviceID)

	status := svc.CheckSession(ctx, result.DeviceID, "10.0.0.1")
	assert.Equal(t, StateAuthenticated, status.State)
	assert.Greater(t, status.RemainingSeconds, 0)

	assert.Len(t, events.LogsByType(auditlog.EventLoginSuccess, 0), 1)
}

func TestLoginWrongPasswordAuditsFailure(t *testing.T) {
	svc, events, _ := newTestService(t)

	_, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "admin@clinic.example",
		Password: "nope",
		Signals:  signals("MacIntel"),
	}, "10.0.0.1", "test-agent")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Len(t, events.LogsByType(auditlog.EventLoginFailed, 0), 1)
	assert.Len(t, events.LogsByType(auditlog.EventLoginAttempt, 0), 1)
}

func TestLoginThrottledAfterRepeatedFailures(t *testing.T) {
	svc, events, _ := newTestService(t)
	ctx := context.Background()

	bad := LoginInput{Email: "admin@clinic.example", Password: "nope", Signals: signals("MacIntel")}
	for i := 0; i < 5; i++ {
		_, _, err := svc.Login(ctx, bad, "10.0.0.1", "test-agent")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, decision, err := svc.Login(ctx, bad, "10.0.0.1", "test-agent")
	assert.ErrorIs(t, err, ErrRateLimited)
	require.NotNil(t, decision)
	assert.False(t, decision.Allowed)
	assert.Greater(t, decision.RetryAfterSeconds, 0)
	assert.Len(t, events.LogsByType(auditlog.EventRateLimitExceeded, 0), 1)

	// Another device with different signals is unaffected.
	_, _, err = svc.Login(ctx, LoginInput{
		Email:    "admin@clinic.example",
		Password: testPassword,
		Signals:  signals("Win32"),
	}, "10.0.0.2", "test-agent")
	assert.NoError(t, err)
}

func TestSessionCeilingIsAbsolute(t *testing.T) {
	svc, events, now := newTestService(t)
	ctx := context.Background()

	result, _, err := svc.Login(ctx, LoginInput{
		Email:    "admin@clinic.example",
		Password: testPassword,
		Signals:  signals("MacIntel"),
	}, "10.0.0.1", "test-agent")
	require.NoError(t, err)

	// Activity keeps arriving, but the ceiling never moves.
	for i := 0; i < 5; i++ {
		*now = now.Add(5 * time.Hour)
		svc.RefreshActivity(ctx, result.DeviceID, "10.0.0.1")
	}

	status := svc.CheckSession(ctx, result.DeviceID, "10.0.0.1")
	assert.Equal(t, StateRedirecting, status.State)
	assert.NotEmpty(t, events.LogsByType(auditlog.EventSessionExpired, 0))

	// Session records were cleared; a second check stays redirecting.
	assert.Equal(t, StateRedirecting, svc.CheckSession(ctx, result.DeviceID, "10.0.0.1").State)
}

func TestRefreshBeforeCeilingKeepsSession(t *testing.T) {
	svc, _, now := newTestService(t)
	ctx := context.Background()

	result, _, err := svc.Login(ctx, LoginInput{
		Email:    "admin@clinic.example",
		Password: testPassword,
		Signals:  signals("MacIntel"),
	}, "10.0.0.1", "test-agent")
	require.NoError(t, err)

	*now = now.Add(23 * time.Hour)
	status := svc.RefreshActivity(ctx, result.DeviceID, "10.0.0.1")
	assert.Equal(t, StateAuthenticated, status.State)
	assert.LessOrEqual(t, status.RemainingSeconds, int(time.Hour.Seconds()))
}

func TestLogoutClearsSession(t *testing.T) {
	svc, events, _ := newTestService(t)
	ctx := context.Background()

	result, _, err := svc.Login(ctx, LoginInput{
		Email:    "admin@clinic.example",
		Password: testPassword,
		Signals:  signals("MacIntel"),
	}, "10.0.0.1", "test-agent")
	require.NoError(t, err)

	svc.Logout(ctx, result.DeviceID, "10.0.0.1")

	assert.Equal(t, StateRedirecting, svc.CheckSession(ctx, result.DeviceID, "10.0.0.1").State)
	assert.Len(t, events.LogsByType(auditlog.EventLogout, 0), 1)
}

func TestValidateRequestToken(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	result, _, err := svc.Login(ctx, LoginInput{
		Email:    "admin@clinic.example",
		Password: testPassword,
		Signals:  signals("MacIntel"),
	}, "10.0.0.1", "test-agent")
	require.NoError(t, err)

	deviceID, ok := svc.ValidateRequestToken(ctx, result.Token, "10.0.0.1")
	assert.True(t, ok)
	assert.Equal(t, result.DeviceID, deviceID)

	_, ok = svc.ValidateRequestToken(ctx, "not-a-token", "10.0.0.1")
	assert.False(t, ok)

	// After logout the token no longer matches a stored record.
	svc.Logout(ctx, result.DeviceID, "10.0.0.1")
	_, ok = svc.ValidateRequestToken(ctx, result.Token, "10.0.0.1")
	assert.False(t, ok)
}
