package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPipelineMetrics_ObserveLoad(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewPipelineMetrics(registry)

	m.ObserveLoad("monthly", LoadResultMiss)
	m.ObserveLoad("monthly", LoadResultHit)
	m.ObserveLoad("monthly", LoadResultHit)
	m.ObserveLoad("yearly", LoadResultError)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.loads.WithLabelValues("monthly", LoadResultMiss)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.loads.WithLabelValues("monthly", LoadResultHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loads.WithLabelValues("yearly", LoadResultError)))
}

func TestPipelineMetrics_ObserveParseAndInvalidation(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewPipelineMetrics(registry)

	m.ObserveParse("yearly", 3*time.Millisecond, 2)
	m.ObserveInvalidation()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.records.WithLabelValues("yearly")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.invalidations))
	assert.Equal(t, 1, testutil.CollectAndCount(m.parseDuration))
}

func TestPipelineMetrics_NilReceiver(t *testing.T) {
	var m *PipelineMetrics

	assert.NotPanics(t, func() {
		m.ObserveLoad("monthly", LoadResultHit)
		m.ObserveParse("monthly", time.Millisecond, 1)
		m.ObserveInvalidation()
	})
}
