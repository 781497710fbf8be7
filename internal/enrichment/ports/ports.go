// Package ports defines the capabilities the enrichment orchestrator consumes.
//
// Every capability reports degradation in its return value instead of an error:
// callers never need to distinguish network failures, timeouts, non-2xx answers
// and malformed bodies. Adapters in internal/enrichment/clients implement these
// interfaces over HTTP.
package ports

//go:generate mockgen -source=ports.go -destination=../mocks/mocks.go -package=mocks

import (
	"context"

	"unibus/pkg/platform/audit"
)

// PostalResolution is the outcome of a postal code lookup. An unreachable
// service is reported as Valid=false with ReasonPostalUnavailable.
type PostalResolution struct {
	Valid        bool   `json:"valid"`
	Locality     string `json:"locality,omitempty"`
	RegionCode   string `json:"region_code,omitempty"`
	State        string `json:"state,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	Street       string `json:"street,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

// Rejection reasons reported by postal lookups.
const (
	ReasonPostalMalformed   = "postal code must have 8 digits"
	ReasonPostalNotFound    = "postal code not found"
	ReasonPostalUnavailable = "postal lookup unavailable"
)

// EligibilityVerdict is the answer of the student eligibility service.
type EligibilityVerdict struct {
	Eligible         bool
	Reason           string
	ServiceReachable bool
}

// GeoEstimate carries the distance and travel time between two cities.
// DistanceKm and DurationMin are both set or both nil.
type GeoEstimate struct {
	DistanceKm       *float64
	DurationMin      *int
	ServiceReachable bool
}

// PostalLookup resolves a normalized 8-digit postal code.
type PostalLookup interface {
	Lookup(ctx context.Context, code string) PostalResolution
}

// EligibilityValidator decides whether a person is an eligible student.
// token is the registration token forwarded to the service.
type EligibilityValidator interface {
	Validate(ctx context.Context, name, email, token string) EligibilityVerdict
}

// GeoEstimator estimates distance and duration between two cities.
type GeoEstimator interface {
	Distance(ctx context.Context, origin, destination string) GeoEstimate
}

// AuditSink accepts audit entries. Append never reports failure to the caller.
type AuditSink interface {
	Append(ctx context.Context, entry audit.Entry)
}
