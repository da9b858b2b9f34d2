package security

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	store := NewSessionStore(NewMemoryBackend(), time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyToken, "tok-123", "device-a"))

	got, ok := store.Get(ctx, KeyToken, "device-a")
	require.True(t, ok)
	assert.Equal(t, "tok-123", got)
}

func TestSessionStoreRejectsForeignDevice(t *testing.T) {
	store := NewSessionStore(NewMemoryBackend(), time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyToken, "tok-123", "device-a"))

	// Reading under another fingerprint must fail closed.
	_, ok := store.Get(ctx, KeyToken, "device-b")
	assert.False(t, ok)

	// The tampered entry is gone for the original device too.
	_, ok = store.Get(ctx, KeyToken, "device-a")
	assert.False(t, ok)
}

func TestSessionStoreRemove(t *testing.T) {
	store := NewSessionStore(NewMemoryBackend(), time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyLoggedIn, "true", "device-a"))
	require.NoError(t, store.Remove(ctx, KeyLoggedIn))

	_, ok := store.Get(ctx, KeyLoggedIn, "device-a")
	assert.False(t, ok)
}

func TestFingerprintDeterministic(t *testing.T) {
	signals := ClientSignals{
		CanvasHash:     "c4nv4s",
		TimezoneOffset: "-180",
		Platform:       "MacIntel",
		ScreenMetrics:  "1920x1080x24",
		UserAgent:      "Mozilla/5.0",
		Language:       "tr-TR",
	}

	a := Fingerprint(signals)
	b := Fingerprint(signals)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestFingerprintMissingSignalsStillStable(t *testing.T) {
	a := Fingerprint(ClientSignals{Platform: "Linux x86_64"})
	b := Fingerprint(ClientSignals{Platform: "Linux x86_64"})
	c := Fingerprint(ClientSignals{Platform: "Win32"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	// All-empty signals hash the placeholder components, never fail.
	assert.NotEmpty(t, Fingerprint(ClientSignals{}))
}
