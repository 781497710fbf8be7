package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.IncStudentsCreated()
	m.IncStudentsCreated()
	m.IncRoutesCreated(true)
	m.IncRoutesCreated(false)
	m.IncRoutesCreated(false)
	m.IncTripsCreated()

	assert.InDelta(t, 2, testutil.ToFloat64(m.StudentsCreated), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RoutesCreated.WithLabelValues("true")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.RoutesCreated.WithLabelValues("false")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.TripsCreated), 0)
}
