package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"unibus/internal/enrichment"
	"unibus/internal/route/models"
	"unibus/internal/route/service/mocks"
	"unibus/internal/route/store"
	dErrors "unibus/pkg/domain-errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type countingObserver struct {
	enriched, degraded int
}

func (o *countingObserver) IncRoutesCreated(geoEnriched bool) {
	if geoEnriched {
		o.enriched++
		return
	}
	o.degraded++
}

type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	store    *store.InMemoryStore
	enricher *mocks.MockEnricher
	trips    *mocks.MockTripRemover
	observer *countingObserver
	service  *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.ctx = context.Background()
	s.store = store.NewInMemory()
	s.enricher = mocks.NewMockEnricher(ctrl)
	s.trips = mocks.NewMockTripRemover(ctrl)
	s.observer = &countingObserver{}
	s.service = New(s.store, s.enricher, s.trips,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithObserver(s.observer),
	)
}

var caruaru = models.Definition{Name: "Recife - Caruaru", OriginCity: "Recife", DestinationCity: "Caruaru"}

func enriched(km float64, minutes int) enrichment.RouteEnrichment {
	return enrichment.RouteEnrichment{DistanceKm: &km, DurationMin: &minutes, FullyEnriched: true}
}

func (s *ServiceSuite) TestCreate() {
	s.Run("stores geo data when fully enriched", func() {
		s.enricher.EXPECT().EnrichRoute(gomock.Any(), "Recife", "Caruaru").Return(enriched(130.2, 110))

		route, err := s.service.Create(s.ctx, caruaru)

		s.Require().NoError(err)
		s.True(route.GeoEnriched())
		s.InDelta(130.2, *route.DistanceKm, 0.001)
		s.Equal(110, *route.DurationMin)
		s.Equal(1, s.observer.enriched)
	})

	s.Run("stores degraded route when enrichment is unavailable", func() {
		s.enricher.EXPECT().EnrichRoute(gomock.Any(), "Recife", "Caruaru").Return(enrichment.RouteEnrichment{})

		route, err := s.service.Create(s.ctx, caruaru)

		s.Require().NoError(err)
		s.Positive(route.ID)
		s.False(route.GeoEnriched())
		s.Nil(route.DistanceKm)
		s.Nil(route.DurationMin)
		s.Equal(1, s.observer.degraded)

		stored, err := s.store.FindByID(s.ctx, route.ID)
		s.Require().NoError(err)
		s.Equal("Caruaru", stored.DestinationCity)
	})

	s.Run("never keeps a partial answer", func() {
		km := 50.0
		s.enricher.EXPECT().EnrichRoute(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(enrichment.RouteEnrichment{DistanceKm: &km})

		route, err := s.service.Create(s.ctx, caruaru)

		s.Require().NoError(err)
		s.Nil(route.DistanceKm)
		s.Nil(route.DurationMin)
	})
}

func (s *ServiceSuite) TestUpdate() {
	s.enricher.EXPECT().EnrichRoute(gomock.Any(), "Recife", "Caruaru").Return(enrichment.RouteEnrichment{})
	route, err := s.service.Create(s.ctx, caruaru)
	s.Require().NoError(err)

	s.Run("re-enriches with the new cities", func() {
		s.enricher.EXPECT().EnrichRoute(gomock.Any(), "Recife", "Olinda").Return(enriched(7.4, 15))

		updated, err := s.service.Update(s.ctx, route.ID, models.Definition{Name: "Recife - Olinda", OriginCity: "Recife", DestinationCity: "Olinda"})

		s.Require().NoError(err)
		s.Equal(route.ID, updated.ID)
		s.Equal(15, *updated.DurationMin)
		s.Equal(route.CreatedAt, updated.CreatedAt)
	})

	s.Run("unknown route is not found and skips enrichment", func() {
		s.enricher.EXPECT().EnrichRoute(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := s.service.Update(s.ctx, 999, caruaru)

		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestDelete() {
	s.enricher.EXPECT().EnrichRoute(gomock.Any(), gomock.Any(), gomock.Any()).Return(enrichment.RouteEnrichment{}).Times(2)
	first, err := s.service.Create(s.ctx, caruaru)
	s.Require().NoError(err)
	second, err := s.service.Create(s.ctx, caruaru)
	s.Require().NoError(err)

	s.Run("removes trips then the route", func() {
		s.trips.EXPECT().DeleteByRoute(gomock.Any(), first.ID).Return(nil)

		s.Require().NoError(s.service.Delete(s.ctx, first.ID))

		_, err := s.service.Get(s.ctx, first.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("unknown route is not found", func() {
		s.trips.EXPECT().DeleteByRoute(gomock.Any(), gomock.Any()).Times(0)

		err := s.service.Delete(s.ctx, first.ID)

		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("trip removal failure keeps the route", func() {
		s.trips.EXPECT().DeleteByRoute(gomock.Any(), second.ID).Return(errors.New("db down"))

		err := s.service.Delete(s.ctx, second.ID)

		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
		_, err = s.service.Get(s.ctx, second.ID)
		s.NoError(err)
	})
}

func (s *ServiceSuite) TestList() {
	s.enricher.EXPECT().EnrichRoute(gomock.Any(), gomock.Any(), gomock.Any()).Return(enrichment.RouteEnrichment{}).Times(3)
	for range 3 {
		_, err := s.service.Create(s.ctx, caruaru)
		s.Require().NoError(err)
	}

	routes, err := s.service.List(s.ctx, 1, 100)
	s.Require().NoError(err)
	s.Len(routes, 2)
}

func TestNew_PanicsOnMissingDependency(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := store.NewInMemory()
	enricher := mocks.NewMockEnricher(ctrl)
	trips := mocks.NewMockTripRemover(ctrl)

	assert.Panics(t, func() { New(nil, enricher, trips) })
	assert.Panics(t, func() { New(st, nil, trips) })
	assert.Panics(t, func() { New(st, enricher, nil) })
	assert.NotPanics(t, func() { New(st, enricher, trips) })
}
