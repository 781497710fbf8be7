// Package enrichment orchestrates the external checks that gate and enrich
// student, route and trip records.
//
// Postal lookup failures are fatal for an admission; eligibility outages are
// not, and the student is accepted by default. Geo outages never fail a route.
// Every dependency is called at most once per workflow and every check is
// audited before the workflow returns.
package enrichment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"unibus/internal/enrichment/metrics"
	"unibus/internal/enrichment/ports"
	"unibus/internal/enrichment/tracer"
	"unibus/internal/platform/privacy"
	"unibus/pkg/platform/audit"
	"unibus/pkg/requestcontext"
	"unibus/pkg/validation"
)

const (
	detailEligibilityDefault = "eligibility service unavailable, accepted by default"
	detailEligible           = "eligible"
	detailNotEligible        = "not eligible"

	workflowAdmit = "admit"
	workflowRoute = "route"
)

// Service is stateless between calls and safe for concurrent use.
type Service struct {
	postal      ports.PostalLookup
	eligibility ports.EligibilityValidator
	geo         ports.GeoEstimator
	auditor     ports.AuditSink
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      tracer.Tracer
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New creates the orchestrator. Panics if a capability is nil.
func New(
	postal ports.PostalLookup,
	eligibility ports.EligibilityValidator,
	geo ports.GeoEstimator,
	auditor ports.AuditSink,
	opts ...Option,
) *Service {
	if postal == nil {
		panic("enrichment.New: postal lookup is required")
	}
	if eligibility == nil {
		panic("enrichment.New: eligibility validator is required")
	}
	if geo == nil {
		panic("enrichment.New: geo estimator is required")
	}
	if auditor == nil {
		panic("enrichment.New: audit sink is required")
	}

	s := &Service{
		postal:      postal,
		eligibility: eligibility,
		geo:         geo,
		auditor:     auditor,
		logger:      slog.Default(),
		tracer:      tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AdmitStudent runs the postal check and then the eligibility check.
//
// An invalid or unresolvable postal code stops the workflow with
// KindInvalidPostalCode before eligibility is consulted. A reachable
// eligibility service that rejects the student yields KindNotEligible.
// Errors are always *AdmissionError.
func (s *Service) AdmitStudent(ctx context.Context, req AdmissionRequest) (*Admission, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, tracer.SpanAdmit,
		tracer.String(tracer.AttrEmailHash, tracer.HashEmail(req.Email)),
	)

	admission, err := s.admit(ctx, span, req)

	span.End(err)
	if s.metrics != nil {
		s.metrics.ObserveWorkflow(workflowAdmit, time.Since(start))
		s.metrics.IncAdmission(admissionOutcome(err))
	}
	return admission, err
}

func (s *Service) admit(ctx context.Context, span tracer.Span, req AdmissionRequest) (*Admission, error) {
	code := validation.NormalizePostalCode(req.PostalCode)
	span.SetAttributes(tracer.String(tracer.AttrPostalCode, code))
	postalSubject := map[string]string{"cep": code}

	resolution := s.postal.Lookup(ctx, code)
	if !resolution.Valid {
		reason := resolution.Reason
		if reason == "" {
			reason = ports.ReasonPostalUnavailable
		}
		s.appendAudit(ctx, span, audit.CategoryPostalCheck, postalSubject, false, reason)
		s.logger.InfoContext(ctx, "admission rejected: invalid postal code",
			"request_id", requestcontext.RequestID(ctx),
			"cep", privacy.MaskPostalCode(code),
			"reason", reason,
		)
		return nil, &AdmissionError{Kind: KindInvalidPostalCode, Reason: reason}
	}
	s.appendAudit(ctx, span, audit.CategoryPostalCheck, postalSubject, true,
		fmt.Sprintf("resolved to %s (%s)", resolution.Locality, resolution.RegionCode))

	eligibilitySubject := map[string]string{"email": req.Email, "cep": code}
	verdict := s.eligibility.Validate(ctx, req.Name, req.Email, req.PostalCode)
	span.SetAttributes(tracer.Bool(tracer.AttrServiceReachable, verdict.ServiceReachable))

	switch {
	case !verdict.ServiceReachable:
		s.logger.WarnContext(ctx, "eligibility service unavailable, accepting student by default",
			"request_id", requestcontext.RequestID(ctx),
			"email", privacy.MaskEmail(req.Email),
		)
		span.SetAttributes(tracer.Bool(tracer.AttrDefaultAccepted, true))
		if s.metrics != nil {
			s.metrics.IncEligibilityDefault()
		}
		s.appendAudit(ctx, span, audit.CategoryEligibilityCheck, eligibilitySubject, true, detailEligibilityDefault)

	case !verdict.Eligible:
		reason := verdict.Reason
		if reason == "" {
			reason = detailNotEligible
		}
		span.SetAttributes(tracer.Bool(tracer.AttrEligible, false))
		s.appendAudit(ctx, span, audit.CategoryEligibilityCheck, eligibilitySubject, false, reason)
		s.logger.InfoContext(ctx, "admission rejected: not eligible",
			"request_id", requestcontext.RequestID(ctx),
			"email", privacy.MaskEmail(req.Email),
			"reason", reason,
		)
		return nil, &AdmissionError{Kind: KindNotEligible, Reason: reason}

	default:
		detail := verdict.Reason
		if detail == "" {
			detail = detailEligible
		}
		span.SetAttributes(tracer.Bool(tracer.AttrEligible, true))
		s.appendAudit(ctx, span, audit.CategoryEligibilityCheck, eligibilitySubject, true, detail)
	}

	return &Admission{
		Locality:   resolution.Locality,
		RegionCode: resolution.RegionCode,
		PostalCode: formatPostalCode(code),
	}, nil
}

// EnrichRoute asks the geo service for distance and duration. It never
// fails: an unreachable service or a partial answer yields an enrichment
// with neither field set.
func (s *Service) EnrichRoute(ctx context.Context, origin, destination string) RouteEnrichment {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, tracer.SpanRoute,
		tracer.String(tracer.AttrOrigin, origin),
		tracer.String(tracer.AttrDestination, destination),
	)
	defer span.End(nil)

	var result RouteEnrichment
	estimate := s.geo.Distance(ctx, origin, destination)
	if estimate.ServiceReachable && estimate.DistanceKm != nil && estimate.DurationMin != nil {
		result = RouteEnrichment{
			DistanceKm:    estimate.DistanceKm,
			DurationMin:   estimate.DurationMin,
			FullyEnriched: true,
		}
	} else {
		s.logger.WarnContext(ctx, "geo service unavailable, route stored without distance",
			"request_id", requestcontext.RequestID(ctx),
			"origin", origin,
			"destination", destination,
		)
	}

	span.SetAttributes(tracer.Bool(tracer.AttrFullyEnriched, result.FullyEnriched))
	if s.metrics != nil {
		s.metrics.ObserveWorkflow(workflowRoute, time.Since(start))
		s.metrics.IncRouteEnrichment(result.FullyEnriched)
	}
	return result
}

func (s *Service) appendAudit(ctx context.Context, span tracer.Span, category audit.Category, subject map[string]string, outcome bool, detail string) {
	s.auditor.Append(ctx, audit.NewEntry(ctx, category, subject, outcome, detail))
	span.AddEvent(tracer.EventAuditAppended,
		tracer.String("audit.category", string(category)),
		tracer.Bool("audit.outcome", outcome),
	)
}

func admissionOutcome(err error) string {
	if err == nil {
		return metrics.OutcomeAdmitted
	}
	var ae *AdmissionError
	if errors.As(err, &ae) && ae.Kind == KindNotEligible {
		return metrics.OutcomeNotEligible
	}
	return metrics.OutcomeInvalidPostalCode
}

// formatPostalCode renders a normalized 8-digit code as 00000-000.
func formatPostalCode(code string) string {
	if len(code) != 8 {
		return code
	}
	return code[:5] + "-" + code[5:]
}
