package models

import "time"

// Route is a bus route between two cities. DistanceKm and DurationMin are
// both set or both nil.
type Route struct {
	ID              int64
	Name            string
	OriginCity      string
	DestinationCity string
	DistanceKm      *float64
	DurationMin     *int
	CreatedAt       time.Time
}

// GeoEnriched reports whether the route carries distance and duration.
func (r *Route) GeoEnriched() bool {
	return r.DistanceKm != nil && r.DurationMin != nil
}

// Definition holds the client-supplied route fields.
type Definition struct {
	Name            string
	OriginCity      string
	DestinationCity string
}
