// Package geo estimates distance and travel time between cities through the
// geo API.
package geo

import (
	"context"
	"math"

	"unibus/internal/enrichment/clients/adapter"
	"unibus/internal/enrichment/ports"
	"unibus/internal/enrichment/tracer"
)

const ProviderID = "geo"

// maxDurationMin bounds durations to what the routes table can store.
const maxDurationMin = math.MaxInt32

type distanceRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

type distanceResponse struct {
	DistanceKm           *float64 `json:"distance_km"`
	EstimatedDurationMin *float64 `json:"estimated_duration_min"`
}

type Client struct {
	http   *adapter.Adapter
	tracer tracer.Tracer
}

type Option func(*Client)

func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

func New(a *adapter.Adapter, opts ...Option) *Client {
	if a == nil {
		panic("geo.New: adapter is required")
	}
	c := &Client{http: a, tracer: tracer.NewNoop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Distance returns an estimate with both fields set, or an unreachable
// estimate with neither. A 200 carrying only one of the fields counts as
// unreachable.
func (c *Client) Distance(ctx context.Context, origin, destination string) ports.GeoEstimate {
	ctx, span := c.tracer.Start(ctx, tracer.SpanGeoDistance,
		tracer.String(tracer.AttrOrigin, origin),
		tracer.String(tracer.AttrDestination, destination),
	)

	resp, err := c.http.PostJSON(ctx, "/distance", distanceRequest{Origin: origin, Destination: destination})
	if err != nil {
		span.SetAttributes(tracer.Bool(tracer.AttrServiceReachable, false))
		span.End(err)
		return ports.GeoEstimate{}
	}

	var body distanceResponse
	if err := resp.DecodeJSON(ProviderID, &body); err != nil {
		span.End(c.http.Fail(ctx, err))
		return ports.GeoEstimate{}
	}
	if body.DistanceKm == nil || body.EstimatedDurationMin == nil {
		span.End(c.http.Fail(ctx, adapter.NewProviderError(adapter.ErrorContractMismatch, ProviderID, "response missing distance or duration", nil)))
		return ports.GeoEstimate{}
	}
	if *body.DistanceKm < 0 || *body.EstimatedDurationMin < 0 {
		span.End(c.http.Fail(ctx, adapter.NewProviderError(adapter.ErrorBadData, ProviderID, "negative distance or duration", nil)))
		return ports.GeoEstimate{}
	}
	if *body.EstimatedDurationMin+0.5 >= maxDurationMin {
		span.End(c.http.Fail(ctx, adapter.NewProviderError(adapter.ErrorBadData, ProviderID, "duration out of range", nil)))
		return ports.GeoEstimate{}
	}

	distance := *body.DistanceKm
	duration := int(*body.EstimatedDurationMin + 0.5)
	span.SetAttributes(
		tracer.Bool(tracer.AttrServiceReachable, true),
		tracer.Float64("route.distance_km", distance),
		tracer.Int64("route.duration_min", int64(duration)),
	)
	span.End(nil)
	return ports.GeoEstimate{
		DistanceKm:       &distance,
		DurationMin:      &duration,
		ServiceReachable: true,
	}
}

var _ ports.GeoEstimator = (*Client)(nil)
