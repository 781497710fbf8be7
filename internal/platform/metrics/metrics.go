package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the record counters for the CRUD resources.
type Metrics struct {
	StudentsCreated prometheus.Counter
	RoutesCreated   *prometheus.CounterVec
	TripsCreated    prometheus.Counter
}

// New creates and registers the metrics with the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		StudentsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "unibus_students_created_total",
			Help: "Total number of students registered",
		}),
		RoutesCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "unibus_routes_created_total",
			Help: "Total number of routes created, labeled by whether geo data was stored",
		}, []string{"geo_enriched"}),
		TripsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "unibus_trips_created_total",
			Help: "Total number of trips scheduled",
		}),
	}
}

func (m *Metrics) IncStudentsCreated() {
	m.StudentsCreated.Inc()
}

func (m *Metrics) IncRoutesCreated(geoEnriched bool) {
	m.RoutesCreated.WithLabelValues(strconv.FormatBool(geoEnriched)).Inc()
}

func (m *Metrics) IncTripsCreated() {
	m.TripsCreated.Inc()
}
