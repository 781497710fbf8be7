package memory

import (
	"context"
	"sync"

	audit "unibus/pkg/platform/audit"
)

// Store keeps audit entries in process memory. Used in tests and when no
// durable sink is configured.
type Store struct {
	mu      sync.RWMutex
	entries []audit.Entry
}

func New() *Store {
	return &Store{}
}

func (s *Store) Append(_ context.Context, entry audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// List returns up to limit entries in append order. A limit <= 0 returns all.
func (s *Store) List(_ context.Context, limit int) ([]audit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]audit.Entry, n)
	copy(out, s.entries[:n])
	return out, nil
}
