package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors for question answering and dataset loads.
// Each instance has its own registry so tests and embedders do not clash
// with the global one.
type Metrics struct {
	registry    *prometheus.Registry
	resolutions *prometheus.CounterVec
	duration    prometheus.Histogram
	loads       *prometheus.CounterVec
	rows        prometheus.Gauge
	cacheHits   prometheus.Counter
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ask_resolutions_total",
			Help: "Questions answered, by result mode (column, row, none).",
		}, []string{"mode"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ask_resolution_duration_seconds",
			Help:    "Time spent resolving a question.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ask_dataset_loads_total",
			Help: "Dataset loads, by result (ok, error).",
		}, []string{"result"}),
		rows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ask_dataset_rows",
			Help: "Rows in the current dataset.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ask_cache_hits_total",
			Help: "Questions answered from the memo cache.",
		}),
	}
	m.registry.MustRegister(m.resolutions, m.duration, m.loads, m.rows, m.cacheHits)
	return m
}

// ObserveResolution records one answered question.
func (m *Metrics) ObserveResolution(mode string, d time.Duration) {
	m.resolutions.WithLabelValues(mode).Inc()
	m.duration.Observe(d.Seconds())
}

// ObserveCacheHit records a memoized answer.
func (m *Metrics) ObserveCacheHit() {
	m.cacheHits.Inc()
}

// ObserveLoad records a dataset load. rows is ignored when err is set.
func (m *Metrics) ObserveLoad(rows int, err error) {
	if err != nil {
		m.loads.WithLabelValues("error").Inc()
		return
	}
	m.loads.WithLabelValues("ok").Inc()
	m.rows.Set(float64(rows))
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
