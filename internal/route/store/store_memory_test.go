package store

import (
	"context"
	"testing"

	"unibus/internal/route/models"
	"unibus/internal/sentinel"

	"github.com/stretchr/testify/suite"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func enrichedRoute() *models.Route {
	km, minutes := 120.5, 95
	return &models.Route{
		Name:            "Recife - Caruaru",
		OriginCity:      "Recife",
		DestinationCity: "Caruaru",
		DistanceKm:      &km,
		DurationMin:     &minutes,
	}
}

func (s *InMemoryStoreSuite) TestCreateAndFind() {
	r := enrichedRoute()
	s.Require().NoError(s.store.Create(s.ctx, r))
	s.Equal(int64(1), r.ID)
	s.False(r.CreatedAt.IsZero())

	found, err := s.store.FindByID(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Equal(r, found)
}

func (s *InMemoryStoreSuite) TestReturnedRoutesAreCopies() {
	r := enrichedRoute()
	s.Require().NoError(s.store.Create(s.ctx, r))

	*r.DistanceKm = 1
	found, err := s.store.FindByID(s.ctx, r.ID)
	s.Require().NoError(err)
	s.InDelta(120.5, *found.DistanceKm, 0.001)

	*found.DurationMin = 1
	again, err := s.store.FindByID(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Equal(95, *again.DurationMin)
}

func (s *InMemoryStoreSuite) TestUpdateKeepsCreatedAt() {
	r := enrichedRoute()
	s.Require().NoError(s.store.Create(s.ctx, r))
	createdAt := r.CreatedAt

	update := &models.Route{ID: r.ID, Name: "Recife - Olinda", OriginCity: "Recife", DestinationCity: "Olinda"}
	s.Require().NoError(s.store.Update(s.ctx, update))
	s.Equal(createdAt, update.CreatedAt)

	found, err := s.store.FindByID(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Equal("Olinda", found.DestinationCity)
	s.Nil(found.DistanceKm)
	s.Nil(found.DurationMin)
}

func (s *InMemoryStoreSuite) TestNotFound() {
	_, err := s.store.FindByID(s.ctx, 42)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.Update(s.ctx, &models.Route{ID: 42}), sentinel.ErrNotFound)
	s.ErrorIs(s.store.Delete(s.ctx, 42), sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestListPagination() {
	for range 5 {
		s.Require().NoError(s.store.Create(s.ctx, enrichedRoute()))
	}

	page, err := s.store.List(s.ctx, 1, 2)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal(int64(2), page[0].ID)
	s.Equal(int64(3), page[1].ID)

	tail, err := s.store.List(s.ctx, 4, 10)
	s.Require().NoError(err)
	s.Len(tail, 1)

	empty, err := s.store.List(s.ctx, 10, 10)
	s.Require().NoError(err)
	s.Empty(empty)
}

func (s *InMemoryStoreSuite) TestDelete() {
	r := enrichedRoute()
	s.Require().NoError(s.store.Create(s.ctx, r))
	s.Require().NoError(s.store.Delete(s.ctx, r.ID))

	_, err := s.store.FindByID(s.ctx, r.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
