package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the ingestion counters. Each Metrics instance carries
// its own registry so the /metrics endpoint serves exactly what this
// server registered.
type Metrics struct {
	registry      *prometheus.Registry
	readingsTotal *prometheus.CounterVec
	ingestErrors  *prometheus.CounterVec
}

// NewMetrics creates and registers the server's counters.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		readingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecoview_readings_total",
				Help: "Readings persisted, by monitoring target.",
			},
			[]string{"target"},
		),
		ingestErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecoview_ingest_errors_total",
				Help: "Failed ingest requests, by error kind.",
			},
			[]string{"kind"},
		),
	}
	m.registry.MustRegister(m.readingsTotal, m.ingestErrors)
	return m
}

// ReadingPersisted counts one successful ingest for a target.
func (m *Metrics) ReadingPersisted(target string) {
	m.readingsTotal.WithLabelValues(target).Inc()
}

// IngestFailed counts one failed ingest by error kind.
func (m *Metrics) IngestFailed(kind string) {
	m.ingestErrors.WithLabelValues(kind).Inc()
}
