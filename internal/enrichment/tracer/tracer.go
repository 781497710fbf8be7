// Package tracer provides a small tracing abstraction for the enrichment workflows.
//
// The orchestrator and its clients emit spans through this interface so they do not
// depend on OpenTelemetry APIs directly.
//
// Implementations:
//   - NoopTracer: for tests
//   - OTelTracer: OpenTelemetry adapter for production
package tracer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span. A non-nil err marks the span as failed.
	// End must be called exactly once, typically via defer.
	End(err error)

	SetAttributes(attrs ...Attribute)

	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a new span with the given name and attributes.
	// The returned context carries the span and should be passed to child operations.
	//
	// Example:
	//   ctx, span := tr.Start(ctx, tracer.SpanAdmit,
	//       tracer.String(tracer.AttrEmailHash, tracer.HashEmail(email)),
	//   )
	//   defer span.End(nil)
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

func Float64(key string, value float64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// HashEmail returns a short SHA-256 digest of the lowercased email so traces
// can be correlated without carrying the address itself.
func HashEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(email))
	return hex.EncodeToString(hash[:8])
}

// Span names.
const (
	SpanAdmit           = "enrichment.admit"
	SpanRoute           = "enrichment.route"
	SpanPostalLookup    = "postal.lookup"
	SpanEligibilityCall = "eligibility.validate"
	SpanGeoDistance     = "geo.distance"
)

// Attribute keys.
const (
	AttrEmailHash        = "student.email_hash"
	AttrPostalCode       = "postal.code"
	AttrPostalValid      = "postal.valid"
	AttrEligible         = "eligibility.eligible"
	AttrServiceReachable = "service.reachable"
	AttrDefaultAccepted  = "eligibility.default_accepted"
	AttrCacheHit         = "cache.hit"
	AttrFullyEnriched    = "route.fully_enriched"
	AttrOrigin           = "route.origin"
	AttrDestination      = "route.destination"
)

// Event names.
const (
	EventAuditAppended = "audit.appended"
)
