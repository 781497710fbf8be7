// Package metrics provides Prometheus metrics for the enrichment workflows and
// their outbound clients.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Admission outcomes.
const (
	OutcomeAdmitted          = "admitted"
	OutcomeInvalidPostalCode = "invalid_postal_code"
	OutcomeNotEligible       = "not_eligible"
)

type Metrics struct {
	AdmissionsTotal         *prometheus.CounterVec
	EligibilityDefaults     prometheus.Counter
	RouteEnrichmentsTotal   *prometheus.CounterVec
	WorkflowDurationSeconds *prometheus.HistogramVec

	// Outbound calls
	ClientCallDurationSeconds *prometheus.HistogramVec
	ClientFailuresTotal       *prometheus.CounterVec

	// Postal cache
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter
}

// New registers the enrichment metrics with the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AdmissionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "unibus_enrichment_admissions_total",
			Help: "Total number of student admissions by outcome",
		}, []string{"outcome"}),

		EligibilityDefaults: f.NewCounter(prometheus.CounterOpts{
			Name: "unibus_enrichment_eligibility_default_accepts_total",
			Help: "Total number of students accepted because the eligibility service was unreachable",
		}),

		RouteEnrichmentsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "unibus_enrichment_route_enrichments_total",
			Help: "Total number of route enrichments by whether geo data was obtained",
		}, []string{"fully_enriched"}),

		WorkflowDurationSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "unibus_enrichment_workflow_duration_seconds",
			Help:    "End-to-end duration of an enrichment workflow",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"workflow"}),

		ClientCallDurationSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "unibus_enrichment_client_call_duration_seconds",
			Help:    "Duration of outbound calls to external services",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),

		ClientFailuresTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "unibus_enrichment_client_failures_total",
			Help: "Total number of failed outbound calls by provider and failure category",
		}, []string{"provider", "category"}),

		CacheHitsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "unibus_enrichment_postal_cache_hits_total",
			Help: "Total number of postal resolutions served from cache",
		}),

		CacheMissesTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "unibus_enrichment_postal_cache_misses_total",
			Help: "Total number of postal cache misses",
		}),
	}
}

func (m *Metrics) IncAdmission(outcome string) {
	m.AdmissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncEligibilityDefault() {
	m.EligibilityDefaults.Inc()
}

func (m *Metrics) IncRouteEnrichment(fullyEnriched bool) {
	m.RouteEnrichmentsTotal.WithLabelValues(strconv.FormatBool(fullyEnriched)).Inc()
}

func (m *Metrics) ObserveWorkflow(workflow string, d time.Duration) {
	m.WorkflowDurationSeconds.WithLabelValues(workflow).Observe(d.Seconds())
}

func (m *Metrics) ObserveCall(provider string, d time.Duration) {
	m.ClientCallDurationSeconds.WithLabelValues(provider).Observe(d.Seconds())
}

func (m *Metrics) IncCallFailure(provider, category string) {
	m.ClientFailuresTotal.WithLabelValues(provider, category).Inc()
}

func (m *Metrics) RecordCacheHit()  { m.CacheHitsTotal.Inc() }
func (m *Metrics) RecordCacheMiss() { m.CacheMissesTotal.Inc() }
