package fetch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/joe/fetch-examples/internal/loop"
)

// Metrics holds the client-side request metrics.
type Metrics struct {
	Started  *prometheus.CounterVec
	Settled  *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	InFlight prometheus.Gauge
}

// NewMetrics registers the request metrics with reg. A nil reg yields
// metrics that are recorded but never exported.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Started: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fetch_requests_started_total",
				Help: "Total number of requests started",
			},
			[]string{"path"},
		),
		Settled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fetch_requests_settled_total",
				Help: "Total number of requests settled, by outcome",
			},
			[]string{"path", "outcome"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fetch_request_duration_seconds",
				Help:    "Time from start until the request settled",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"outcome"},
		),
		InFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "fetch_requests_in_flight",
				Help: "Number of requests that have not settled yet",
			},
		),
	}
}

func (m *Metrics) recordStart(endpoint loop.Endpoint) {
	m.Started.WithLabelValues(endpoint.Path).Inc()
	m.InFlight.Inc()
}

func (m *Metrics) recordSettled(endpoint loop.Endpoint, result loop.Result, elapsed time.Duration) {
	outcome := result.Outcome()
	m.Settled.WithLabelValues(endpoint.Path, outcome).Inc()
	m.Duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	m.InFlight.Dec()
}
