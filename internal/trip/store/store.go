package store

import (
	"context"

	"unibus/internal/trip/models"
)

// Store persists trips.
//
// Error contract:
//   - sentinel.ErrNotFound when the trip does not exist
//   - wrapped errors for infrastructure failures
type Store interface {
	Create(ctx context.Context, trip *models.Trip) error
	FindByID(ctx context.Context, id int64) (*models.Trip, error)
	List(ctx context.Context, skip, limit int) ([]*models.Trip, error)
	Update(ctx context.Context, trip *models.Trip) error
	Delete(ctx context.Context, id int64) error
	// DeleteByRoute removes every trip on the route. Deleting from a route
	// with no trips is not an error.
	DeleteByRoute(ctx context.Context, routeID int64) error
}
