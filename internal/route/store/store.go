package store

import (
	"context"

	"unibus/internal/route/models"
)

// Store persists routes.
//
// Error contract:
//   - sentinel.ErrNotFound when the route does not exist
//   - wrapped errors for infrastructure failures
type Store interface {
	Create(ctx context.Context, route *models.Route) error
	FindByID(ctx context.Context, id int64) (*models.Route, error)
	List(ctx context.Context, skip, limit int) ([]*models.Route, error)
	Update(ctx context.Context, route *models.Route) error
	Delete(ctx context.Context, id int64) error
}
