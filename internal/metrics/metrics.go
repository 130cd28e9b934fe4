// Package metrics provides Prometheus metrics for the storefront API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	AuthRejections  *prometheus.CounterVec
	LoginAttempts   *prometheus.CounterVec
	TokensActive    prometheus.Gauge
	StoreErrors     *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates and registers all metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_http_requests_total",
				Help: "Total HTTP requests by method, route and status code.",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "storefront_http_request_duration_seconds",
				Help:    "HTTP request duration by method and route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		AuthRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_admin_auth_rejections_total",
				Help: "Rejected admin requests by reason.",
			},
			[]string{"reason"},
		),
		LoginAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_admin_logins_total",
				Help: "Admin login attempts by result.",
			},
			[]string{"result"},
		),
		TokensActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "storefront_admin_tokens_active",
				Help: "Number of admin session tokens held in memory.",
			},
		),
		StoreErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_store_errors_total",
				Help: "Document store failures by operation.",
			},
			[]string{"op"},
		),
		registry: reg,
	}

	reg.MustRegister(m.RequestsTotal)
	reg.MustRegister(m.RequestDuration)
	reg.MustRegister(m.AuthRejections)
	reg.MustRegister(m.LoginAttempts)
	reg.MustRegister(m.TokensActive)
	reg.MustRegister(m.StoreErrors)

	return m
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	m.RequestsTotal.WithLabelValues(method, route, status).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordAuthRejection increments the admin rejection counter.
func (m *Metrics) RecordAuthRejection(reason string) {
	m.AuthRejections.WithLabelValues(reason).Inc()
}

// RecordLogin increments the login counter.
func (m *Metrics) RecordLogin(result string) {
	m.LoginAttempts.WithLabelValues(result).Inc()
}

// RecordStoreError increments the store failure counter.
func (m *Metrics) RecordStoreError(op string) {
	m.StoreErrors.WithLabelValues(op).Inc()
}

// SetTokensActive sets the active token count.
func (m *Metrics) SetTokensActive(count int) {
	m.TokensActive.Set(float64(count))
}
