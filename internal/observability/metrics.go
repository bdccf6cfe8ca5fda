package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors for the service. All record
// methods tolerate a nil receiver so call sites never need guards.
type Metrics struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	errors        *prometheus.CounterVec
	authDecisions *prometheus.CounterVec
}

// NewMetrics builds and registers the collectors on the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_request_errors_total",
				Help: "Total number of failed HTTP requests by error code",
			},
			[]string{"path", "method", "code"},
		),
		authDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_decisions_total",
				Help: "Authentication decisions by transport and outcome",
			},
			[]string{"transport", "outcome"},
		),
	}
	reg.MustRegister(m.requests, m.duration, m.errors, m.authDecisions)
	return m
}

// RecordRequest increments request counters.
func (m *Metrics) RecordRequest(path, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(path, method).Observe(elapsed.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(path, method, code).Inc()
}

// RecordAuthDecision counts an authentication outcome per transport. The
// outcome label holds either "ok" or the server-side failure reason; clients
// never see it.
func (m *Metrics) RecordAuthDecision(transport, outcome string) {
	if m == nil {
		return
	}
	m.authDecisions.WithLabelValues(transport, outcome).Inc()
}
