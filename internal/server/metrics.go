package server

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/crossgrid/pkg/errors"
	"github.com/matzehuels/crossgrid/pkg/observability"
)

const metricsNamespace = "crossgrid"

// Metrics implements the observability hooks on Prometheus collectors.
// Each Metrics owns its registry so tests can create as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge

	generateTotal    *prometheus.CounterVec
	generateDuration prometheus.Histogram
	candidates       prometheus.Histogram
	searchesActive   prometheus.Gauge

	cacheEvents *prometheus.CounterVec
	cacheBytes  *prometheus.CounterVec
}

// NewMetrics registers all collectors, plus the Go and process collectors,
// on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		requestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 10},
		}, []string{"route"}),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
		generateTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "generate",
			Name:      "runs_total",
			Help:      "Grid generation runs by outcome (ok or an error code).",
		}, []string{"outcome"}),
		generateDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "generate",
			Name:      "duration_seconds",
			Help:      "Wall-clock time of grid generation.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		candidates: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "generate",
			Name:      "candidates",
			Help:      "Complete crosswords examined per run.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		searchesActive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "generate",
			Name:      "active",
			Help:      "Searches currently running.",
		}),
		cacheEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "events_total",
			Help:      "Cache hits, misses and writes by key type.",
		}, []string{"key_type", "event"}),
		cacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Bytes written to the cache by key type.",
		}, []string{"key_type"}),
	}
}

// Install registers m as the process-wide observability hooks.
func (m *Metrics) Install() {
	observability.SetGenerateHooks(m)
	observability.SetCacheHooks(m)
	observability.SetRequestHooks(m)
}

func (m *Metrics) OnGenerateStart(context.Context, int) {
	m.searchesActive.Inc()
}

func (m *Metrics) OnGenerateComplete(_ context.Context, _, candidates, _ int, d time.Duration, err error) {
	m.searchesActive.Dec()
	outcome := "ok"
	if err != nil {
		outcome = "error"
		if code := errors.GetCode(err); code != "" {
			outcome = string(code)
		}
	}
	m.generateTotal.WithLabelValues(outcome).Inc()
	m.generateDuration.Observe(d.Seconds())
	m.candidates.Observe(float64(candidates))
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheEvents.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *Metrics) OnRequest(context.Context, string) {
	m.inFlight.Inc()
}

func (m *Metrics) OnResponse(_ context.Context, route string, status int, d time.Duration) {
	m.inFlight.Dec()
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}
