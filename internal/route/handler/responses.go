package handler

import (
	"time"

	"unibus/internal/route/models"
)

type RouteResponse struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	OriginCity           string    `json:"origin_city"`
	DestinationCity      string    `json:"destination_city"`
	DistanceKm           *float64  `json:"distance_km"`
	EstimatedDurationMin *int      `json:"estimated_duration_min"`
	GeoEnriched          bool      `json:"geo_enriched"`
	CreatedAt            time.Time `json:"created_at"`
}

func toRouteResponse(r *models.Route) RouteResponse {
	return RouteResponse{
		ID:                   r.ID,
		Name:                 r.Name,
		OriginCity:           r.OriginCity,
		DestinationCity:      r.DestinationCity,
		DistanceKm:           r.DistanceKm,
		EstimatedDurationMin: r.DurationMin,
		GeoEnriched:          r.GeoEnriched(),
		CreatedAt:            r.CreatedAt,
	}
}

func toRouteResponses(routes []*models.Route) []RouteResponse {
	out := make([]RouteResponse, 0, len(routes))
	for _, r := range routes {
		out = append(out, toRouteResponse(r))
	}
	return out
}
