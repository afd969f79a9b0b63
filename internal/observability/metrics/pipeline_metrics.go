// Package metrics contém as métricas Prometheus da aplicação
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Resultados possíveis de uma carga de tabela
const (
	LoadResultHit   = "hit"
	LoadResultMiss  = "miss"
	LoadResultError = "error"
)

// PipelineMetrics registra a saúde das cargas do pipeline de receita.
// Os métodos aceitam receptor nil para uso em testes sem registro.
type PipelineMetrics struct {
	loads         *prometheus.CounterVec
	parseDuration *prometheus.HistogramVec
	records       *prometheus.GaugeVec
	invalidations prometheus.Counter
}

// NewPipelineMetrics cria e registra as métricas no registerer informado
func NewPipelineMetrics(registerer prometheus.Registerer) *PipelineMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	loads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "revenue_pipeline_loads_total",
		Help: "Table loads by table and result (hit, miss, error).",
	}, []string{"table", "result"})
	parseDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "revenue_pipeline_parse_duration_seconds",
		Help:    "Time spent reading and parsing a table on cache miss.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"table"})
	records := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "revenue_pipeline_records",
		Help: "Number of records in the last parsed table.",
	}, []string{"table"})
	invalidations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "revenue_pipeline_cache_invalidations_total",
		Help: "Explicit cache invalidations.",
	})

	registerer.MustRegister(loads, parseDuration, records, invalidations)

	return &PipelineMetrics{
		loads:         loads,
		parseDuration: parseDuration,
		records:       records,
		invalidations: invalidations,
	}
}

// ObserveLoad conta uma carga de tabela
func (m *PipelineMetrics) ObserveLoad(table, result string) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(table, result).Inc()
}

// ObserveParse registra a duração e o tamanho de uma leitura efetiva
func (m *PipelineMetrics) ObserveParse(table string, elapsed time.Duration, records int) {
	if m == nil {
		return
	}
	m.parseDuration.WithLabelValues(table).Observe(elapsed.Seconds())
	m.records.WithLabelValues(table).Set(float64(records))
}

// ObserveInvalidation conta uma invalidação explícita do cache
func (m *PipelineMetrics) ObserveInvalidation() {
	if m == nil {
		return
	}
	m.invalidations.Inc()
}
