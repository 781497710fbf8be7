package cache

import (
	"context"
	"sync"
	"time"

	"unibus/internal/enrichment/ports"
	"unibus/internal/sentinel"
)

type cachedResolution struct {
	res      ports.PostalResolution
	storedAt time.Time
}

// InMemoryStore keeps resolutions in process with TTL expiration.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string]cachedResolution
	ttl     time.Duration
	now     func() time.Time
}

func NewInMemoryStore(ttl time.Duration) *InMemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &InMemoryStore{
		entries: make(map[string]cachedResolution),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *InMemoryStore) Find(_ context.Context, code string) (ports.PostalResolution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if cached, ok := s.entries[code]; ok && s.now().Sub(cached.storedAt) < s.ttl {
		return cached.res, nil
	}
	return ports.PostalResolution{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) Save(_ context.Context, code string, res ports.PostalResolution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[code] = cachedResolution{res: res, storedAt: s.now()}
	return nil
}

// ClearAll drops every entry.
func (s *InMemoryStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]cachedResolution)
}
