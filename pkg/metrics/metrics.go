// Package metrics provides Prometheus metrics for the regatta service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns every collector of the service. A nil *Manager is valid and records nothing.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	intentsClassified *prometheus.CounterVec
	classifierErrors  prometheus.Counter
	disambiguations   *prometheus.CounterVec

	searchResults   *prometheus.HistogramVec
	recordsImported prometheus.Counter
	rowsSkipped     prometheus.Counter
	recordsCleared  prometheus.Counter
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom buckets for latency histograms.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRegistry registers collectors on the given registry instead of a fresh one.
func WithRegistry(r *prometheus.Registry) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// NewManager creates a Manager with its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "regatta",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.init()
	return m
}

func (m *Manager) init() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status code",
	}, []string{"method", "route", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   m.histogramBuckets,
	}, []string{"method", "route"})

	m.intentsClassified = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "intent",
		Name:      "classified_total",
		Help:      "Classified queries by strategy and resulting intent",
	}, []string{"strategy", "intent"})

	m.classifierErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "intent",
		Name:      "classifier_errors_total",
		Help:      "Failed calls to the external text classifier",
	})

	m.disambiguations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "resolver",
		Name:      "resolutions_total",
		Help:      "Empty sailor searches by the entity they were re-resolved to",
	}, []string{"resolved_as"})

	m.searchResults = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "search",
		Name:      "results",
		Help:      "Number of records returned per search",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
	}, []string{"mode"})

	m.recordsImported = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ingest",
		Name:      "records_imported_total",
		Help:      "Records stored from uploaded CSV files",
	})

	m.rowsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ingest",
		Name:      "rows_skipped_total",
		Help:      "CSV rows rejected for missing regatta name or skipper",
	})

	m.recordsCleared = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ingest",
		Name:      "records_cleared_total",
		Help:      "Records removed by clear operations",
	})
}

// Handler exposes the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Manager) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Manager) IntentClassified(strategy, intent string) {
	if m == nil {
		return
	}
	m.intentsClassified.WithLabelValues(strategy, intent).Inc()
}

func (m *Manager) ClassifierError() {
	if m == nil {
		return
	}
	m.classifierErrors.Inc()
}

func (m *Manager) Disambiguated(resolvedAs string) {
	if m == nil {
		return
	}
	m.disambiguations.WithLabelValues(resolvedAs).Inc()
}

func (m *Manager) SearchResults(mode string, n int) {
	if m == nil {
		return
	}
	m.searchResults.WithLabelValues(mode).Observe(float64(n))
}

func (m *Manager) RecordsImported(stored, skipped int) {
	if m == nil {
		return
	}
	m.recordsImported.Add(float64(stored))
	m.rowsSkipped.Add(float64(skipped))
}

func (m *Manager) RecordsCleared(n int64) {
	if m == nil {
		return
	}
	m.recordsCleared.Add(float64(n))
}
