package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the service.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	ErrorsTotal      *prometheus.CounterVec
	TransitionsTotal *prometheus.CounterVec
	EarlyStartAlerts prometheus.Counter
}

// NewMetrics initializes and registers the collectors on the default
// registry.
func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "interview_service",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "interview_service",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		ErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "interview_service",
			Subsystem: "http",
			Name:      "errors_total",
			Help:      "Total number of failed requests by route and error code.",
		}, []string{"route", "code"}),
		TransitionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "interview_service",
			Subsystem: "lifecycle",
			Name:      "transitions_total",
			Help:      "Total number of interview status transitions.",
		}, []string{"from", "to"}),
		EarlyStartAlerts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "interview_service",
			Subsystem: "lifecycle",
			Name:      "early_start_alerts_total",
			Help:      "Total number of early-start alerts emitted to candidates.",
		}),
	}
}

// ObserveRequest records a completed HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(route, method, statusLabel(status)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// ObserveError records a request that ended in a domain error.
func (m *Metrics) ObserveError(route, code string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(route, code).Inc()
}

// ObserveTransition records a lifecycle status change.
func (m *Metrics) ObserveTransition(from, to string) {
	if m == nil {
		return
	}
	m.TransitionsTotal.WithLabelValues(from, to).Inc()
}

// ObserveEarlyStartAlert records one emitted early-start alert.
func (m *Metrics) ObserveEarlyStartAlert() {
	if m == nil {
		return
	}
	m.EarlyStartAlerts.Inc()
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
