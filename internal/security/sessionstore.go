package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Session keys written by the admin auth flow.
const (
	KeyLoggedIn     = "admin_logged_in"
	KeyToken        = "admin_token"
	KeyLoginTime    = "admin_login_time"
	KeySessionStart = "admin_session_start"
)

// signedValue is what actually gets persisted: the raw value plus a
// signature bound to the device fingerprint that wrote it.
type signedValue struct {
	Value     string `json:"value"`
	Signature string `json:"signature"`
}

// Backend is the raw KV layer under the session store. Two implementations:
// an in-process map (ephemeral) and Redis (survives restarts).
type Backend interface {
	Put(ctx context.Context, key string, raw []byte, ttl time.Duration) error
	Fetch(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, key string) error
}

// ============================
// 🗄 Session store
// ============================

// SessionStore wraps a Backend with per-device integrity signatures.
// A value written under one device fingerprint will not validate under
// another, which defeats copy-pasting raw storage content between
// browsers. It is a deterrent, not a cryptographic boundary: anything
// running with our own credentials can forge a signature.
type SessionStore struct {
	backend Backend
	ttl     time.Duration
}

func NewSessionStore(backend Backend, ttl time.Duration) *SessionStore {
	return &SessionStore{backend: backend, ttl: ttl}
}

// Set persists value under key, signed with the device fingerprint.
func (s *SessionStore) Set(ctx context.Context, key, value, deviceID string) error {
	raw, err := json.Marshal(signedValue{
		Value:     value,
		Signature: sign(value, deviceID),
	})
	if err != nil {
		return err
	}
	return s.backend.Put(ctx, key, raw, s.ttl)
}

// Get returns the stored value when its signature validates for the given
// device fingerprint. On any mismatch the entry is treated as tampered:
// it is removed and a miss is returned (fail closed).
func (s *SessionStore) Get(ctx context.Context, key, deviceID string) (string, bool) {
	raw, ok, err := s.backend.Fetch(ctx, key)
	if err != nil || !ok {
		return "", false
	}

	var stored signedValue
	if err := json.Unmarshal(raw, &stored); err != nil {
		_ = s.backend.Delete(ctx, key)
		return "", false
	}

	if sign(stored.Value, deviceID) != stored.Signature {
		_ = s.backend.Delete(ctx, key)
		return "", false
	}

	return stored.Value, true
}

// Remove deletes the key regardless of signature state.
func (s *SessionStore) Remove(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, key)
}

func sign(value, deviceID string) string {
	sum := sha256.Sum256([]byte(value + deviceID))
	return hex.EncodeToString(sum[:])
}

// ============================
// In-memory backend
// ============================

type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (m *MemoryBackend) Put(_ context.Context, key string, raw []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

func (m *MemoryBackend) Fetch(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.data[key]
	return raw, ok, nil
}

func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// ============================
// Redis backend
// ============================

type RedisBackend struct {
	client *redis.Client
	prefix string
}

func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	if prefix == "" {
		prefix = "session:"
	}
	return &RedisBackend{client: client, prefix: prefix}
}

func (r *RedisBackend) Put(ctx context.Context, key string, raw []byte, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+key, raw, ttl).Err()
}

func (r *RedisBackend) Fetch(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}
