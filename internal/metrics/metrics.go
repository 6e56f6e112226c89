// Package metrics exposes Prometheus counters for the tour subsystem.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tourguide"

// Metrics owns a private registry so tests and multiple servers never collide.
type Metrics struct {
	registry *prometheus.Registry

	upstreamCalls *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
	presetHits    *prometheus.CounterVec
	evictions     *prometheus.CounterVec
	toolCalls     *prometheus.CounterVec
	toolDuration  *prometheus.HistogramVec
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		upstreamCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_calls_total",
				Help:      "Tour API requests by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Cache lookups by namespace and result.",
			},
			[]string{"namespace", "result"}, // result: hit/miss
		),
		presetHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "preset_hits_total",
				Help:      "Requests answered from fixed presets.",
			},
			[]string{"namespace"},
		),
		evictions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_evictions_total",
				Help:      "Namespace flushes performed.",
			},
			[]string{"namespace"},
		),
		toolCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tool_calls_total",
				Help:      "Assistant tool invocations by tool and status.",
			},
			[]string{"tool", "status"},
		),
		toolDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tool_call_duration_seconds",
				Help:      "Assistant tool latency in seconds.",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"tool"},
		),
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// UpstreamCall implements tour.Observer.
func (m *Metrics) UpstreamCall(operation, outcome string) {
	m.upstreamCalls.WithLabelValues(operation, outcome).Inc()
}

// CacheLookup implements tour.Observer.
func (m *Metrics) CacheLookup(namespace string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(namespace, result).Inc()
}

// PresetServed implements tour.Observer.
func (m *Metrics) PresetServed(namespace string) {
	m.presetHits.WithLabelValues(namespace).Inc()
}

// CacheEvicted implements cache.EvictionRecorder.
func (m *Metrics) CacheEvicted(namespace string) {
	m.evictions.WithLabelValues(namespace).Inc()
}

// ToolCall records one tool invocation.
func (m *Metrics) ToolCall(tool string, ok bool, seconds float64) {
	m.toolCalls.WithLabelValues(tool, strconv.FormatBool(ok)).Inc()
	m.toolDuration.WithLabelValues(tool).Observe(seconds)
}
