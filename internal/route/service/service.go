// Package service manages bus routes. Geo enrichment runs on every create
// and update; a route is stored even when enrichment is unavailable.
package service

import (
	"context"
	"errors"
	"log/slog"

	"unibus/internal/enrichment"
	"unibus/internal/route/models"
	"unibus/internal/route/store"
	"unibus/internal/sentinel"
	dErrors "unibus/pkg/domain-errors"
	"unibus/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Enricher,TripRemover

// Enricher resolves distance and duration between two cities.
type Enricher interface {
	EnrichRoute(ctx context.Context, origin, destination string) enrichment.RouteEnrichment
}

// TripRemover deletes the trips scheduled on a route.
type TripRemover interface {
	DeleteByRoute(ctx context.Context, routeID int64) error
}

// Observer is notified of persisted routes.
type Observer interface {
	IncRoutesCreated(geoEnriched bool)
}

type Service struct {
	store    store.Store
	enricher Enricher
	trips    TripRemover
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

// New panics if any dependency is nil.
func New(st store.Store, enricher Enricher, trips TripRemover, opts ...Option) *Service {
	if st == nil {
		panic("route.New: store is required")
	}
	if enricher == nil {
		panic("route.New: enricher is required")
	}
	if trips == nil {
		panic("route.New: trip remover is required")
	}
	s := &Service{store: st, enricher: enricher, trips: trips, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Create(ctx context.Context, def models.Definition) (*models.Route, error) {
	route := s.enrich(ctx, 0, def)
	if err := s.store.Create(ctx, route); err != nil {
		return nil, translateStoreError(err, "create route")
	}
	if s.observer != nil {
		s.observer.IncRoutesCreated(route.GeoEnriched())
	}
	s.logger.InfoContext(ctx, "route created",
		"request_id", requestcontext.RequestID(ctx),
		"route_id", route.ID,
		"geo_enriched", route.GeoEnriched(),
	)
	return route, nil
}

// Update replaces the route definition and recomputes its geo data.
func (s *Service) Update(ctx context.Context, id int64, def models.Definition) (*models.Route, error) {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return nil, translateStoreError(err, "find route")
	}
	route := s.enrich(ctx, id, def)
	if err := s.store.Update(ctx, route); err != nil {
		return nil, translateStoreError(err, "update route")
	}
	return route, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Route, error) {
	route, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, translateStoreError(err, "find route")
	}
	return route, nil
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]*models.Route, error) {
	routes, err := s.store.List(ctx, skip, limit)
	if err != nil {
		return nil, translateStoreError(err, "list routes")
	}
	return routes, nil
}

// Delete removes the route and every trip scheduled on it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return translateStoreError(err, "find route")
	}
	if err := s.trips.DeleteByRoute(ctx, id); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "delete route trips failed")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return translateStoreError(err, "delete route")
	}
	return nil
}

func (s *Service) enrich(ctx context.Context, id int64, def models.Definition) *models.Route {
	geo := s.enricher.EnrichRoute(ctx, def.OriginCity, def.DestinationCity)
	route := &models.Route{
		ID:              id,
		Name:            def.Name,
		OriginCity:      def.OriginCity,
		DestinationCity: def.DestinationCity,
	}
	if geo.FullyEnriched {
		route.DistanceKm = geo.DistanceKm
		route.DurationMin = geo.DurationMin
	}
	return route
}

func translateStoreError(err error, op string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, "route not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, op+" failed")
}
