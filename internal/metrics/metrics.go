// Package metrics wraps the pool's Observer hook with Prometheus
// counters, kept outside the pool package so the core stays free of a
// prometheus import.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"oss.nandlabs.io/writerpool/pool"
)

// PoolMetrics implements pool.Observer, recording acquire/release/sweep
// activity per journal name, plus a gauge tracking the pool's current
// count of idle cached writers.
type PoolMetrics struct {
	acquired  *prometheus.CounterVec
	released  *prometheus.CounterVec
	reclaimed *prometheus.CounterVec
	free      prometheus.GaugeFunc
}

// NewPoolMetrics creates and registers the pool's Prometheus metrics.
func NewPoolMetrics() *PoolMetrics {
	m := &PoolMetrics{
		acquired: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "writerpool_writers_acquired_total",
				Help: "Writers handed out by the pool, by journal name.",
			},
			[]string{"journal"},
		),
		released: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "writerpool_writers_released_total",
				Help: "Writers returned to the pool's cache, by journal name.",
			},
			[]string{"journal"},
		),
		reclaimed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "writerpool_sweep_reclaimed_total",
				Help: "Writers physically destroyed by a sweep pass, by journal name.",
			},
			[]string{"journal"},
		),
	}
	prometheus.MustRegister(m.acquired, m.released, m.reclaimed)
	return m
}

// WatchFreeWriters registers a gauge that reports p.CountFreeWriters on
// every scrape. It must be called once, after the pool it watches has
// been constructed, and before the metrics handler is served.
func (m *PoolMetrics) WatchFreeWriters(p *pool.Pool) {
	m.free = prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "writerpool_free_writers",
			Help: "Writers currently cached and idle, available for immediate reuse.",
		},
		func() float64 { return float64(p.CountFreeWriters()) },
	)
	prometheus.MustRegister(m.free)
}

// WriterAcquired implements pool.Observer.
func (m *PoolMetrics) WriterAcquired(name string) {
	m.acquired.WithLabelValues(name).Inc()
}

// WriterReleased implements pool.Observer.
func (m *PoolMetrics) WriterReleased(name string) {
	m.released.WithLabelValues(name).Inc()
}

// SweepReclaimed implements pool.Observer.
func (m *PoolMetrics) SweepReclaimed(name string) {
	m.reclaimed.WithLabelValues(name).Inc()
}

// Handler returns the Prometheus scrape handler.
func (m *PoolMetrics) Handler() http.Handler {
	return promhttp.Handler()
}

var _ pool.Observer = (*PoolMetrics)(nil)
