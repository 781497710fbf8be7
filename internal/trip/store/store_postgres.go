package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"unibus/internal/sentinel"
	"unibus/internal/trip/models"
)

// PostgresStore persists trips in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const tripColumns = `id, route_id, bus_plate, departure_time, arrival_time, available_seats, created_at`

func (s *PostgresStore) Create(ctx context.Context, trip *models.Trip) error {
	if trip == nil {
		return fmt.Errorf("trip is required")
	}
	query := `
		INSERT INTO trips (route_id, bus_plate, departure_time, arrival_time, available_seats)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := s.db.QueryRowContext(ctx, query,
		trip.RouteID,
		nullString(trip.BusPlate),
		trip.DepartureTime,
		nullTime(trip.ArrivalTime),
		trip.AvailableSeats,
	).Scan(&trip.ID, &trip.CreatedAt)
	if err != nil {
		return fmt.Errorf("create trip: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*models.Trip, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = $1`, id)
	trip, err := scanTrip(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("trip %d: %w", id, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find trip: %w", err)
	}
	return trip, nil
}

func (s *PostgresStore) List(ctx context.Context, skip, limit int) ([]*models.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tripColumns+` FROM trips ORDER BY id OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	trips := make([]*models.Trip, 0)
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trips: %w", err)
	}
	return trips, nil
}

func (s *PostgresStore) Update(ctx context.Context, trip *models.Trip) error {
	if trip == nil {
		return fmt.Errorf("trip is required")
	}
	query := `
		UPDATE trips
		SET bus_plate = $2, departure_time = $3, arrival_time = $4, available_seats = $5
		WHERE id = $1
		RETURNING route_id, created_at
	`
	err := s.db.QueryRowContext(ctx, query,
		trip.ID,
		nullString(trip.BusPlate),
		trip.DepartureTime,
		nullTime(trip.ArrivalTime),
		trip.AvailableSeats,
	).Scan(&trip.RouteID, &trip.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("trip %d: %w", trip.ID, sentinel.ErrNotFound)
		}
		return fmt.Errorf("update trip: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete trip rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("trip %d: %w", id, sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) DeleteByRoute(ctx context.Context, routeID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM trips WHERE route_id = $1`, routeID); err != nil {
		return fmt.Errorf("delete trips for route %d: %w", routeID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*models.Trip, error) {
	var (
		trip    models.Trip
		plate   sql.NullString
		arrival sql.NullTime
	)
	if err := row.Scan(
		&trip.ID,
		&trip.RouteID,
		&plate,
		&trip.DepartureTime,
		&arrival,
		&trip.AvailableSeats,
		&trip.CreatedAt,
	); err != nil {
		return nil, err
	}
	if plate.Valid {
		trip.BusPlate = &plate.String
	}
	if arrival.Valid {
		trip.ArrivalTime = &arrival.Time
	}
	return &trip, nil
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

var _ Store = (*PostgresStore)(nil)
