package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T) (*LoginLimiter, *time.Time) {
	t.Helper()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	l := NewLoginLimiter(5, 15*time.Minute, 5*time.Minute)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiterAllowsUnknownDevice(t *testing.T) {
	l, _ := newTestLimiter(t)
	d := l.Check("device-a")
	assert.True(t, d.Allowed)
	assert.Empty(t, d.Message)
}

func TestLimiterBlocksAfterMaxFailures(t *testing.T) {
	l, _ := newTestLimiter(t)

	for i := 0; i < 5; i++ {
		require.True(t, l.Check("device-a").Allowed, "attempt %d should be allowed", i+1)
		l.RecordFailure("device-a")
	}

	d := l.Check("device-a")
	assert.False(t, d.Allowed)
	assert.NotEmpty(t, d.Message)
	assert.Greater(t, d.RetryAfterSeconds, 0)

	// Another device is unaffected.
	assert.True(t, l.Check("device-b").Allowed)
}

func TestLimiterClearRestoresAccess(t *testing.T) {
	l, _ := newTestLimiter(t)
	for i := 0; i < 5; i++ {
		l.RecordFailure("device-a")
	}
	require.False(t, l.Check("device-a").Allowed)

	l.Clear("device-a")
	assert.True(t, l.Check("device-a").Allowed)
	assert.Equal(t, 5, l.Remaining("device-a"))
}

func TestLimiterLockoutExpiresWithoutClear(t *testing.T) {
	l, now := newTestLimiter(t)
	for i := 0; i < 5; i++ {
		l.RecordFailure("device-a")
	}

	d := l.Check("device-a")
	require.False(t, d.Allowed)

	// Advance past the lockout; access must come back on its own.
	*now = now.Add(time.Duration(d.RetryAfterSeconds)*time.Second + time.Second)
	assert.True(t, l.Check("device-a").Allowed)
}

func TestLimiterWindowBoundaryStartsFresh(t *testing.T) {
	l, now := newTestLimiter(t)
	for i := 0; i < 4; i++ {
		l.RecordFailure("device-a")
	}
	assert.Equal(t, 1, l.Remaining("device-a"))

	// Exactly at the window boundary: no partial carry-over.
	*now = now.Add(15 * time.Minute)
	assert.Equal(t, 5, l.Remaining("device-a"))

	l.RecordFailure("device-a")
	assert.Equal(t, 4, l.Remaining("device-a"))
	assert.True(t, l.Check("device-a").Allowed)
}
