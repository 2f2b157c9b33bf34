package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/pinmap/pkg/observability"
)

const namespace = "pinmap"

// Metrics exports HTTP, pipeline, cache and base-map metrics to Prometheus.
// It implements the observability hook interfaces.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	layoutDuration *prometheus.HistogramVec
	layoutPoints   *prometheus.CounterVec
	layoutErrors   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderErrors   *prometheus.CounterVec
	cacheEvents    *prometheus.CounterVec
	cacheBytes     *prometheus.CounterVec
	baseMaps       *prometheus.CounterVec
	baseMapTime    *prometheus.HistogramVec
}

// NewMetrics creates collectors on a private registry, so several servers
// (tests) can coexist in one process.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),
		layoutDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "duration_seconds",
			Help:      "Layout composition latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"region"}),
		layoutPoints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "points_total",
			Help:      "Points laid out, by outcome",
		}, []string{"outcome"}),
		layoutErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "errors_total",
			Help:      "Failed layout compositions",
		}, []string{"region"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "Rendering latency in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"formats"}),
		renderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "errors_total",
			Help:      "Failed renders",
		}, []string{"formats"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "events_total",
			Help:      "Cache hits, misses and writes",
		}, []string{"kind", "event"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Bytes written to the cache",
		}, []string{"kind"}),
		baseMaps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "basemap",
			Name:      "generated_total",
			Help:      "Base-map images generated",
		}, []string{"projection", "status"}),
		baseMapTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "basemap",
			Name:      "duration_seconds",
			Help:      "Base-map generation latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"projection"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration,
		m.layoutDuration, m.layoutPoints, m.layoutErrors,
		m.renderDuration, m.renderErrors,
		m.cacheEvents, m.cacheBytes,
		m.baseMaps, m.baseMapTime,
	)
	return m
}

// Register installs m as the process-wide observability hooks.
func (m *Metrics) Register() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetBaseMapHooks(m)
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, statusText(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// =============================================================================
// Hook implementations
// =============================================================================

func (m *Metrics) OnLayoutStart(context.Context, string, string, int) {}

func (m *Metrics) OnLayoutComplete(_ context.Context, region string, placed, excluded int, d time.Duration, err error) {
	if err != nil {
		m.layoutErrors.WithLabelValues(region).Inc()
		return
	}
	m.layoutDuration.WithLabelValues(region).Observe(d.Seconds())
	m.layoutPoints.WithLabelValues("placed").Add(float64(placed))
	m.layoutPoints.WithLabelValues("excluded").Add(float64(excluded))
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	label := strings.Join(formats, ",")
	if err != nil {
		m.renderErrors.WithLabelValues(label).Inc()
		return
	}
	m.renderDuration.WithLabelValues(label).Observe(d.Seconds())
}

func (m *Metrics) OnCacheHit(_ context.Context, kind string) {
	m.cacheEvents.WithLabelValues(kind, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, kind string) {
	m.cacheEvents.WithLabelValues(kind, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, kind string, size int) {
	m.cacheEvents.WithLabelValues(kind, "set").Inc()
	m.cacheBytes.WithLabelValues(kind).Add(float64(size))
}

func (m *Metrics) OnBaseMapGenerated(_ context.Context, _ string, projection string, _, _ int, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.baseMaps.WithLabelValues(projection, status).Inc()
	if err == nil {
		m.baseMapTime.WithLabelValues(projection).Observe(d.Seconds())
	}
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.BaseMapHooks  = (*Metrics)(nil)
)
