package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors of one server. Each server owns its registry
// so several servers can run in one process.
type Metrics struct {
	registry *prometheus.Registry

	Calculations        *prometheus.CounterVec
	CalculationDuration *prometheus.HistogramVec
	HTTPRequests        *prometheus.CounterVec
	RateLimited         prometheus.Counter
	WebSocketClients    prometheus.Gauge
}

// NewMetrics creates and registers the server collectors
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		Calculations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mrw_calculations_total",
				Help: "Total number of calculations by calculator and status",
			},
			[]string{"calculator", "status"},
		),

		CalculationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mrw_calculation_duration_seconds",
				Help:    "Time taken to validate and run a calculation",
				Buckets: []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .05},
			},
			[]string{"calculator"},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mrw_http_requests_total",
				Help: "Total number of HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),

		RateLimited: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "mrw_http_rate_limited_total",
				Help: "Total number of requests rejected by the rate limiter",
			},
		),

		WebSocketClients: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "mrw_websocket_clients",
				Help: "Number of connected WebSocket clients",
			},
		),
	}
}

// Registry returns the prometheus registry of the server
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
