package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics manages the gateway's Prometheus metrics.
type Metrics struct {
	RequestTotal      *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	CredentialResolve *prometheus.CounterVec
	TokenAdminOps     *prometheus.CounterVec
	GraphUpstream     *prometheus.CounterVec
}

// NewMetrics creates and registers the gateway metrics with the given
// registerer. Pass prometheus.DefaultRegisterer in production; tests use a
// fresh registry to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphgate_requests_total",
				Help: "Total number of gateway requests by operation and result.",
			},
			[]string{"operation", "result"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "graphgate_request_duration_seconds",
				Help:    "Latency of gateway requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		CredentialResolve: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphgate_credential_resolutions_total",
				Help: "Credential resolutions by origin and result.",
			},
			[]string{"origin", "result"},
		),
		TokenAdminOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphgate_token_admin_operations_total",
				Help: "External token admin operations by action and result.",
			},
			[]string{"action", "result"},
		),
		GraphUpstream: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphgate_graph_upstream_responses_total",
				Help: "Upstream Graph responses by status class.",
			},
			[]string{"status_class"},
		),
	}
}

// RecordRequest records the outcome and duration of one gateway operation.
func (m *Metrics) RecordRequest(operation string, success bool, duration time.Duration) {
	result := "error"
	if success {
		result = "success"
	}
	m.RequestTotal.WithLabelValues(operation, result).Inc()
	m.RequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCredentialResolution records one resolver outcome.
func (m *Metrics) RecordCredentialResolution(origin string, success bool) {
	result := "error"
	if success {
		result = "success"
	}
	m.CredentialResolve.WithLabelValues(origin, result).Inc()
}

// RecordTokenAdmin records one token admin action.
func (m *Metrics) RecordTokenAdmin(action string, success bool) {
	result := "error"
	if success {
		result = "success"
	}
	m.TokenAdminOps.WithLabelValues(action, result).Inc()
}

// RecordGraphResponse records the status class of one upstream response.
func (m *Metrics) RecordGraphResponse(status int) {
	m.GraphUpstream.WithLabelValues(strconv.Itoa(status/100) + "xx").Inc()
}
