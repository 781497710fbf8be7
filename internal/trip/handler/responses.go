package handler

import (
	"time"

	routemodels "unibus/internal/route/models"
	"unibus/internal/trip/models"
)

type TripResponse struct {
	ID             int64      `json:"id"`
	RouteID        int64      `json:"route_id"`
	BusPlate       *string    `json:"bus_plate"`
	DepartureTime  time.Time  `json:"departure_time"`
	ArrivalTime    *time.Time `json:"arrival_time"`
	AvailableSeats int        `json:"available_seats"`
	CreatedAt      time.Time  `json:"created_at"`
}

// TripDetailResponse is returned by GET /trips/{id}.
type TripDetailResponse struct {
	TripResponse
	Route RouteSummary `json:"route"`
}

type RouteSummary struct {
	ID                   int64    `json:"id"`
	Name                 string   `json:"name"`
	OriginCity           string   `json:"origin_city"`
	DestinationCity      string   `json:"destination_city"`
	DistanceKm           *float64 `json:"distance_km"`
	EstimatedDurationMin *int     `json:"estimated_duration_min"`
}

func toTripResponse(t *models.Trip) TripResponse {
	return TripResponse{
		ID:             t.ID,
		RouteID:        t.RouteID,
		BusPlate:       t.BusPlate,
		DepartureTime:  t.DepartureTime,
		ArrivalTime:    t.ArrivalTime,
		AvailableSeats: t.AvailableSeats,
		CreatedAt:      t.CreatedAt,
	}
}

func toTripResponses(trips []*models.Trip) []TripResponse {
	out := make([]TripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, toTripResponse(t))
	}
	return out
}

func toTripDetailResponse(d *models.Detail) TripDetailResponse {
	return TripDetailResponse{
		TripResponse: toTripResponse(d.Trip),
		Route:        toRouteSummary(d.Route),
	}
}

func toRouteSummary(r *routemodels.Route) RouteSummary {
	return RouteSummary{
		ID:                   r.ID,
		Name:                 r.Name,
		OriginCity:           r.OriginCity,
		DestinationCity:      r.DestinationCity,
		DistanceKm:           r.DistanceKm,
		EstimatedDurationMin: r.DurationMin,
	}
}
