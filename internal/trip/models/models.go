package models

import (
	"time"

	routemodels "unibus/internal/route/models"
)

// Trip is a scheduled departure on a route. ArrivalTime is nil when the
// route has no known duration and no arrival was supplied.
type Trip struct {
	ID             int64
	RouteID        int64
	BusPlate       *string
	DepartureTime  time.Time
	ArrivalTime    *time.Time
	AvailableSeats int
	CreatedAt      time.Time
}

// Schedule holds the client-supplied fields of a new trip.
type Schedule struct {
	RouteID        int64
	BusPlate       *string
	DepartureTime  time.Time
	AvailableSeats int
}

// Patch is a partial trip update. Nil fields are left unchanged, except
// ArrivalTime: when ArrivalSet is true a nil ArrivalTime clears the arrival.
type Patch struct {
	BusPlate       *string
	DepartureTime  *time.Time
	ArrivalTime    *time.Time
	ArrivalSet     bool
	AvailableSeats *int
}

// Detail is a trip together with its route.
type Detail struct {
	Trip  *Trip
	Route *routemodels.Route
}
