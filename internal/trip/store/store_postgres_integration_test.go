//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"unibus/internal/sentinel"
	"unibus/internal/trip/models"
	"unibus/internal/trip/store"
	"unibus/pkg/testutil/containers"

	"github.com/stretchr/testify/suite"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
	ctx      context.Context
	routeID  int64
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.ctx = context.Background()
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(s.ctx, "trips", "routes"))
	err := s.postgres.DB.QueryRowContext(s.ctx,
		`INSERT INTO routes (name, origin_city, destination_city) VALUES ('Recife - Caruaru', 'Recife', 'Caruaru') RETURNING id`,
	).Scan(&s.routeID)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) trip() *models.Trip {
	return &models.Trip{
		RouteID:        s.routeID,
		DepartureTime:  time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC),
		AvailableSeats: 40,
	}
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	t := s.trip()
	s.Require().NoError(s.store.Create(s.ctx, t))
	s.Positive(t.ID)

	found, err := s.store.FindByID(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Nil(found.BusPlate)
	s.Nil(found.ArrivalTime)
	s.True(t.DepartureTime.Equal(found.DepartureTime))
}

func (s *PostgresStoreSuite) TestUpdate() {
	t := s.trip()
	s.Require().NoError(s.store.Create(s.ctx, t))

	plate := "PEX-1A23"
	arrival := t.DepartureTime.Add(time.Hour)
	t.BusPlate, t.ArrivalTime, t.AvailableSeats = &plate, &arrival, 5
	s.Require().NoError(s.store.Update(s.ctx, t))

	found, err := s.store.FindByID(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal("PEX-1A23", *found.BusPlate)
	s.True(arrival.Equal(*found.ArrivalTime))
	s.Equal(5, found.AvailableSeats)
}

func (s *PostgresStoreSuite) TestUnknownRouteRejected() {
	t := s.trip()
	t.RouteID = s.routeID + 100
	s.Error(s.store.Create(s.ctx, t))
}

func (s *PostgresStoreSuite) TestDeleteByRouteAndCascade() {
	s.Require().NoError(s.store.Create(s.ctx, s.trip()))
	s.Require().NoError(s.store.Create(s.ctx, s.trip()))

	s.Require().NoError(s.store.DeleteByRoute(s.ctx, s.routeID))
	trips, err := s.store.List(s.ctx, 0, 10)
	s.Require().NoError(err)
	s.Empty(trips)

	kept := s.trip()
	s.Require().NoError(s.store.Create(s.ctx, kept))
	_, err = s.postgres.DB.ExecContext(s.ctx, `DELETE FROM routes WHERE id = $1`, s.routeID)
	s.Require().NoError(err)
	_, err = s.store.FindByID(s.ctx, kept.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
