// Package observability exposes the Prometheus registry and the counters used
// to flag data-quality problems and background job outcomes.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()

	normalizaciones = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "salonpos_normalizaciones_total",
		Help: "Stored ledger fields replaced by a default while aggregating (zero price, blank method).",
	}, []string{"campo"})

	jobs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "salonpos_jobs_total",
		Help: "Background jobs processed by type and result.",
	}, []string{"tipo", "resultado"})

	requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "salonpos_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		normalizaciones, jobs, requests,
	)
}

// Normalizacion records that a stored field was replaced by a default value.
func Normalizacion(campo string) { normalizaciones.WithLabelValues(campo).Inc() }

// Job records the outcome of a background job ("ok", "reintento", "dlq").
func Job(tipo, resultado string) { jobs.WithLabelValues(tipo, resultado).Inc() }

// Request records a served HTTP request.
func Request(route, code string) { requests.WithLabelValues(route, code).Inc() }

// Handler serves the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// Registerer exposes the registry for extra collectors.
func Registerer() prometheus.Registerer { return registry }
