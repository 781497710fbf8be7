package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the audit publisher.
type Metrics struct {
	QueueDepth      prometheus.Gauge
	EntriesDropped  prometheus.Counter
	EntriesEnqueued prometheus.Counter

	PersistDuration  prometheus.Histogram
	PersistFailures  prometheus.Counter
	EntriesPersisted *prometheus.CounterVec
}

// New registers the audit publisher metrics with the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the metrics with reg. Tests pass a fresh registry.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		QueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: "unibus_audit_queue_depth",
			Help: "Current number of entries waiting in the audit publisher queue",
		}),
		EntriesDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "unibus_audit_entries_dropped_total",
			Help: "Total number of audit entries dropped because the buffer was full",
		}),
		EntriesEnqueued: f.NewCounter(prometheus.CounterOpts{
			Name: "unibus_audit_entries_enqueued_total",
			Help: "Total number of audit entries enqueued for async persistence",
		}),
		PersistDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "unibus_audit_persist_duration_seconds",
			Help:    "Time taken to persist an audit entry to the store",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		PersistFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "unibus_audit_persist_failures_total",
			Help: "Total number of audit entry persistence failures",
		}),
		EntriesPersisted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "unibus_audit_entries_persisted_total",
			Help: "Total number of audit entries persisted, by category and outcome",
		}, []string{"category", "outcome"}),
	}
}

func (m *Metrics) IncQueueDepth()  { m.QueueDepth.Inc() }
func (m *Metrics) DecQueueDepth()  { m.QueueDepth.Dec() }
func (m *Metrics) IncDropped()     { m.EntriesDropped.Inc() }
func (m *Metrics) IncEnqueued()    { m.EntriesEnqueued.Inc() }
func (m *Metrics) IncPersistFail() { m.PersistFailures.Inc() }

func (m *Metrics) ObservePersistDuration(durationSeconds float64) {
	m.PersistDuration.Observe(durationSeconds)
}

func (m *Metrics) IncPersisted(category string, outcome bool) {
	label := "rejected"
	if outcome {
		label = "accepted"
	}
	m.EntriesPersisted.WithLabelValues(category, label).Inc()
}
