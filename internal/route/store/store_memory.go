package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"unibus/internal/route/models"
	"unibus/internal/sentinel"
)

type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	routes map[int64]*models.Route
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{routes: make(map[int64]*models.Route)}
}

func (s *InMemoryStore) Create(_ context.Context, route *models.Route) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	route.ID = s.nextID
	if route.CreatedAt.IsZero() {
		route.CreatedAt = time.Now().UTC()
	}
	s.routes[route.ID] = clone(route)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*models.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	route, ok := s.routes[id]
	if !ok {
		return nil, fmt.Errorf("route %d: %w", id, sentinel.ErrNotFound)
	}
	return clone(route), nil
}

// List returns routes ordered by ID.
func (s *InMemoryStore) List(_ context.Context, skip, limit int) ([]*models.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.routes))
	for id := range s.routes {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]*models.Route, 0, min(limit, len(ids)))
	for i := skip; i < len(ids) && len(out) < limit; i++ {
		out = append(out, clone(s.routes[ids[i]]))
	}
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, route *models.Route) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.routes[route.ID]
	if !ok {
		return fmt.Errorf("route %d: %w", route.ID, sentinel.ErrNotFound)
	}
	route.CreatedAt = current.CreatedAt
	s.routes[route.ID] = clone(route)
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.routes[id]; !ok {
		return fmt.Errorf("route %d: %w", id, sentinel.ErrNotFound)
	}
	delete(s.routes, id)
	return nil
}

// clone copies the route including its optional geo fields.
func clone(r *models.Route) *models.Route {
	out := *r
	if r.DistanceKm != nil {
		d := *r.DistanceKm
		out.DistanceKm = &d
	}
	if r.DurationMin != nil {
		m := *r.DurationMin
		out.DurationMin = &m
	}
	return &out
}

var _ Store = (*InMemoryStore)(nil)
