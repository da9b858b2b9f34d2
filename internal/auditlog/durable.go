package auditlog

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ============================
// Durable critical-entry stores
// ============================

// RedisCriticalStore keeps critical entries in a capped Redis list so they
// survive process restarts.
type RedisCriticalStore struct {
	client *redis.Client
	key    string
	cap    int64
}

func NewRedisCriticalStore(client *redis.Client, key string) *RedisCriticalStore {
	if key == "" {
		key = "audit:critical"
	}
	return &RedisCriticalStore{client: client, key: key, cap: MaxCriticalEntries}
}

func (s *RedisCriticalStore) Append(e Entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.key, raw)
	pipe.LTrim(ctx, s.key, 0, s.cap-1) // keep newest, drop oldest
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisCriticalStore) All() ([]Entry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	raws, err := s.client.LRange(ctx, s.key, 0, s.cap-1).Result()
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(raws))
	for _, raw := range raws {
		var e Entry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *RedisCriticalStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return s.client.Del(ctx, s.key).Err()
}

// MemoryCriticalStore is the fallback when Redis is unavailable and the
// implementation used in tests. Same cap and eviction order as the Redis
// store, newest first.
type MemoryCriticalStore struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryCriticalStore() *MemoryCriticalStore {
	return &MemoryCriticalStore{}
}

func (s *MemoryCriticalStore) Append(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append([]Entry{e}, s.entries...)
	if len(s.entries) > MaxCriticalEntries {
		s.entries = s.entries[:MaxCriticalEntries]
	}
	return nil
}

func (s *MemoryCriticalStore) All() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *MemoryCriticalStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}
