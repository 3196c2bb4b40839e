// Package metrics exposes Prometheus collectors for the HTTP surface, the
// session flows and the enrichment collaborator. A nil *Metrics is valid and
// records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	logins       *prometheus.CounterVec
	flows        *prometheus.CounterVec
	enrichment   *prometheus.CounterVec
	sessions     prometheus.Gauge
}

// New registers every collector on a fresh registry under namespace.
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Login and registration attempts by mode and outcome.",
		}, []string{"mode", "outcome"}),
		flows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flow_events_total",
			Help:      "Checkout and gateway flow lifecycle events.",
		}, []string{"flow", "event"}),
		enrichment: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichment_requests_total",
			Help:      "Generative text requests by kind and outcome.",
		}, []string{"kind", "outcome"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_live",
			Help:      "Sessions currently held in memory.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration, m.logins, m.flows, m.enrichment, m.sessions,
	)
	return m
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency per mux route template.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tmpl, err := cur.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		m.httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) AuthAttempt(mode, outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(mode, outcome).Inc()
}

func (m *Metrics) FlowEvent(flow, event string) {
	if m == nil {
		return
	}
	m.flows.WithLabelValues(flow, event).Inc()
}

func (m *Metrics) Enrichment(kind, outcome string) {
	if m == nil {
		return
	}
	m.enrichment.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) SetLiveSessions(n int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(n))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
