package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"unibus/internal/route/models"
	"unibus/internal/sentinel"
)

// PostgresStore persists routes in PostgreSQL. Trips referencing a deleted
// route are removed by the foreign key cascade.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const routeColumns = `id, name, origin_city, destination_city, distance_km, estimated_duration_min, created_at`

func (s *PostgresStore) Create(ctx context.Context, route *models.Route) error {
	if route == nil {
		return fmt.Errorf("route is required")
	}
	query := `
		INSERT INTO routes (name, origin_city, destination_city, distance_km, estimated_duration_min)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := s.db.QueryRowContext(ctx, query,
		route.Name,
		route.OriginCity,
		route.DestinationCity,
		nullFloat(route.DistanceKm),
		nullInt(route.DurationMin),
	).Scan(&route.ID, &route.CreatedAt)
	if err != nil {
		return fmt.Errorf("create route: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*models.Route, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+routeColumns+` FROM routes WHERE id = $1`, id)
	route, err := scanRoute(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("route %d: %w", id, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find route: %w", err)
	}
	return route, nil
}

func (s *PostgresStore) List(ctx context.Context, skip, limit int) ([]*models.Route, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+routeColumns+` FROM routes ORDER BY id OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	defer rows.Close()

	routes := make([]*models.Route, 0)
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate routes: %w", err)
	}
	return routes, nil
}

func (s *PostgresStore) Update(ctx context.Context, route *models.Route) error {
	if route == nil {
		return fmt.Errorf("route is required")
	}
	query := `
		UPDATE routes
		SET name = $2, origin_city = $3, destination_city = $4,
		    distance_km = $5, estimated_duration_min = $6
		WHERE id = $1
		RETURNING created_at
	`
	err := s.db.QueryRowContext(ctx, query,
		route.ID,
		route.Name,
		route.OriginCity,
		route.DestinationCity,
		nullFloat(route.DistanceKm),
		nullInt(route.DurationMin),
	).Scan(&route.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("route %d: %w", route.ID, sentinel.ErrNotFound)
		}
		return fmt.Errorf("update route: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete route: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete route rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("route %d: %w", id, sentinel.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoute(row rowScanner) (*models.Route, error) {
	var (
		route    models.Route
		distance sql.NullFloat64
		duration sql.NullInt32
	)
	if err := row.Scan(
		&route.ID,
		&route.Name,
		&route.OriginCity,
		&route.DestinationCity,
		&distance,
		&duration,
		&route.CreatedAt,
	); err != nil {
		return nil, err
	}
	if distance.Valid {
		route.DistanceKm = &distance.Float64
	}
	if duration.Valid {
		m := int(duration.Int32)
		route.DurationMin = &m
	}
	return &route, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}

var _ Store = (*PostgresStore)(nil)
