package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"unibus/internal/sentinel"
	"unibus/internal/trip/models"
)

type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	trips  map[int64]*models.Trip
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{trips: make(map[int64]*models.Trip)}
}

func (s *InMemoryStore) Create(_ context.Context, trip *models.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	trip.ID = s.nextID
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = time.Now().UTC()
	}
	s.trips[trip.ID] = clone(trip)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	trip, ok := s.trips[id]
	if !ok {
		return nil, fmt.Errorf("trip %d: %w", id, sentinel.ErrNotFound)
	}
	return clone(trip), nil
}

// List returns trips ordered by ID.
func (s *InMemoryStore) List(_ context.Context, skip, limit int) ([]*models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.trips))
	for id := range s.trips {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]*models.Trip, 0, min(limit, len(ids)))
	for i := skip; i < len(ids) && len(out) < limit; i++ {
		out = append(out, clone(s.trips[ids[i]]))
	}
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, trip *models.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.trips[trip.ID]
	if !ok {
		return fmt.Errorf("trip %d: %w", trip.ID, sentinel.ErrNotFound)
	}
	trip.CreatedAt = current.CreatedAt
	s.trips[trip.ID] = clone(trip)
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trips[id]; !ok {
		return fmt.Errorf("trip %d: %w", id, sentinel.ErrNotFound)
	}
	delete(s.trips, id)
	return nil
}

func (s *InMemoryStore) DeleteByRoute(_ context.Context, routeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, trip := range s.trips {
		if trip.RouteID == routeID {
			delete(s.trips, id)
		}
	}
	return nil
}

func clone(t *models.Trip) *models.Trip {
	out := *t
	if t.BusPlate != nil {
		plate := *t.BusPlate
		out.BusPlate = &plate
	}
	if t.ArrivalTime != nil {
		arrival := *t.ArrivalTime
		out.ArrivalTime = &arrival
	}
	return &out
}

var _ Store = (*InMemoryStore)(nil)
