// Package service schedules trips on routes. The arrival time of a trip is
// derived from its route's estimated duration.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"unibus/internal/enrichment"
	routemodels "unibus/internal/route/models"
	"unibus/internal/sentinel"
	"unibus/internal/trip/models"
	"unibus/internal/trip/store"
	dErrors "unibus/pkg/domain-errors"
	"unibus/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks RouteFinder

// RouteFinder loads routes. It returns sentinel.ErrNotFound for unknown IDs.
type RouteFinder interface {
	FindByID(ctx context.Context, id int64) (*routemodels.Route, error)
}

// Observer is notified of persisted trips.
type Observer interface {
	IncTripsCreated()
}

type Service struct {
	store    store.Store
	routes   RouteFinder
	logger   *slog.Logger
	observer Observer
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

func WithObserver(o Observer) Option {
	return func(s *Service) {
		s.observer = o
	}
}

// New panics if store or routes is nil.
func New(st store.Store, routes RouteFinder, opts ...Option) *Service {
	if st == nil {
		panic("trip.New: store is required")
	}
	if routes == nil {
		panic("trip.New: route finder is required")
	}
	s := &Service{store: st, routes: routes, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create schedules a trip. An unknown route is a bad request, not a missing
// resource, since the trip itself is what is being created.
func (s *Service) Create(ctx context.Context, sched models.Schedule) (*models.Trip, error) {
	route, err := s.routes.FindByID(ctx, sched.RouteID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, fmt.Sprintf("route %d not found", sched.RouteID))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "find route failed")
	}

	trip := &models.Trip{
		RouteID:        sched.RouteID,
		BusPlate:       sched.BusPlate,
		DepartureTime:  sched.DepartureTime,
		ArrivalTime:    enrichment.DeriveArrival(sched.DepartureTime, route.DurationMin),
		AvailableSeats: sched.AvailableSeats,
	}
	if err := s.store.Create(ctx, trip); err != nil {
		return nil, translateStoreError(err, "create trip")
	}
	if s.observer != nil {
		s.observer.IncTripsCreated()
	}
	s.logger.InfoContext(ctx, "trip scheduled",
		"request_id", requestcontext.RequestID(ctx),
		"trip_id", trip.ID,
		"route_id", trip.RouteID,
		"arrival_known", trip.ArrivalTime != nil,
	)
	return trip, nil
}

// Update applies a partial update. When the departure changes and the arrival
// is not part of the patch, the arrival is recomputed from the route duration.
func (s *Service) Update(ctx context.Context, id int64, patch models.Patch) (*models.Trip, error) {
	trip, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, translateStoreError(err, "find trip")
	}

	if patch.BusPlate != nil {
		trip.BusPlate = patch.BusPlate
	}
	if patch.AvailableSeats != nil {
		trip.AvailableSeats = *patch.AvailableSeats
	}
	if patch.ArrivalSet {
		trip.ArrivalTime = patch.ArrivalTime
	}
	if patch.DepartureTime != nil {
		trip.DepartureTime = *patch.DepartureTime
		if !patch.ArrivalSet {
			route, err := s.routes.FindByID(ctx, trip.RouteID)
			if err != nil {
				return nil, dErrors.Wrap(err, dErrors.CodeInternal, "find trip route failed")
			}
			trip.ArrivalTime = enrichment.DeriveArrival(trip.DepartureTime, route.DurationMin)
		}
	}

	if err := s.store.Update(ctx, trip); err != nil {
		return nil, translateStoreError(err, "update trip")
	}
	return trip, nil
}

// Get returns the trip with its route.
func (s *Service) Get(ctx context.Context, id int64) (*models.Detail, error) {
	trip, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, translateStoreError(err, "find trip")
	}
	route, err := s.routes.FindByID(ctx, trip.RouteID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "find trip route failed")
	}
	return &models.Detail{Trip: trip, Route: route}, nil
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]*models.Trip, error) {
	trips, err := s.store.List(ctx, skip, limit)
	if err != nil {
		return nil, translateStoreError(err, "list trips")
	}
	return trips, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return translateStoreError(err, "delete trip")
	}
	return nil
}

func translateStoreError(err error, op string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, "trip not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, op+" failed")
}
