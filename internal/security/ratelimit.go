package security

import (
	"fmt"
	"sync"
	"time"
)

// ============================
// 🔒 Login attempt limiter
// ============================

// Default throttling policy for the admin login form.
const (
	DefaultMaxAttempts     = 5
	DefaultAttemptWindow   = 15 * time.Minute
	DefaultLockoutDuration = 5 * time.Minute
)

type attemptState struct {
	count       int
	windowStart time.Time
	lockedUntil time.Time
}

// Decision is the outcome of a rate-limit check.
type Decision struct {
	Allowed           bool   `json:"allowed"`
	Message           string `json:"message,omitempty"`
	RetryAfterSeconds int    `json:"retry_after_seconds,omitempty"`
}

// LoginLimiter throttles admin login attempts per device fingerprint.
// State lives in process memory only; a restart forgets every counter,
// which is acceptable for a deterrent-level control.
type LoginLimiter struct {
	mu       sync.Mutex
	attempts map[string]*attemptState

	maxAttempts int
	window      time.Duration
	lockout     time.Duration

	now func() time.Time // injectable clock
}

// NewLoginLimiter builds a limiter with the given policy. Zero values fall
// back to the defaults above.
func NewLoginLimiter(maxAttempts int, window, lockout time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if window <= 0 {
		window = DefaultAttemptWindow
	}
	if lockout <= 0 {
		lockout = DefaultLockoutDuration
	}
	return &LoginLimiter{
		attempts:    make(map[string]*attemptState),
		maxAttempts: maxAttempts,
		window:      window,
		lockout:     lockout,
		now:         time.Now,
	}
}

// Check reports whether the device may attempt a login right now.
// A lockout that has lapsed clears itself; no explicit reset is needed.
func (l *LoginLimiter) Check(deviceID string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	state, ok := l.attempts[deviceID]
	if !ok {
		return Decision{Allowed: true}
	}

	if !state.lockedUntil.IsZero() {
		if state.lockedUntil.After(now) {
			retry := int(state.lockedUntil.Sub(now).Seconds())
			if retry < 1 {
				retry = 1
			}
			return Decision{
				Allowed:           false,
				Message:           fmt.Sprintf("Too many failed attempts. Try again in %d seconds.", retry),
				RetryAfterSeconds: retry,
			}
		}
		// Lockout served: start over with a clean slate.
		delete(l.attempts, deviceID)
		return Decision{Allowed: true}
	}

	// Window lapsed with no active lockout: forget the record entirely.
	if now.Sub(state.windowStart) >= l.window {
		delete(l.attempts, deviceID)
		return Decision{Allowed: true}
	}

	if state.count >= l.maxAttempts {
		state.lockedUntil = now.Add(l.lockout)
		retry := int(l.lockout.Seconds())
		return Decision{
			Allowed:           false,
			Message:           fmt.Sprintf("Too many failed attempts. Try again in %d seconds.", retry),
			RetryAfterSeconds: retry,
		}
	}

	return Decision{Allowed: true}
}

// RecordFailure counts a failed login for the device, opening a fresh
// window when none is active or the previous one has expired.
func (l *LoginLimiter) RecordFailure(deviceID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	state, ok := l.attempts[deviceID]
	if !ok || now.Sub(state.windowStart) >= l.window {
		l.attempts[deviceID] = &attemptState{count: 1, windowStart: now}
		return
	}
	state.count++
}

// Clear resets the record for the device, typically after a successful login.
func (l *LoginLimiter) Clear(deviceID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, deviceID)
}

// Remaining returns how many attempts are left in the current window.
func (l *LoginLimiter) Remaining(deviceID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.attempts[deviceID]
	if !ok || l.now().Sub(state.windowStart) >= l.window {
		return l.maxAttempts
	}
	left := l.maxAttempts - state.count
	if left < 0 {
		return 0
	}
	return left
}
