package observability

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetrics exports metrics through a Prometheus registry.
// Collectors are created on first use; the label names of a metric are
// fixed by the tags of its first observation. Later observations with a
// different tag set are dropped.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
}

var _ Metrics = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics creates metrics backed by a fresh registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	return NewPrometheusMetricsWithRegistry(prometheus.NewRegistry())
}

// NewPrometheusMetricsWithRegistry creates metrics that register into registry.
func NewPrometheusMetricsWithRegistry(registry *prometheus.Registry) *PrometheusMetrics {
	return &PrometheusMetrics{
		registry:   registry,
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

// Registry returns the underlying registry.
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler exposing the registry in text format.
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *PrometheusMetrics) Counter(name string, value int64, tags ...Tag) {
	if value < 0 {
		return
	}
	m.mu.Lock()
	vec, ok := m.counters[name]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: promName(name, "_total"),
			Help: "Counter " + name,
		}, labelNames(tags))
		vec = registerOrExisting(m.registry, vec)
		m.counters[name] = vec
	}
	m.mu.Unlock()

	if c, err := vec.GetMetricWith(labels(tags)); err == nil {
		c.Add(float64(value))
	}
}

func (m *PrometheusMetrics) Gauge(name string, value float64, tags ...Tag) {
	m.mu.Lock()
	vec, ok := m.gauges[name]
	if !ok {
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: promName(name, ""),
			Help: "Gauge " + name,
		}, labelNames(tags))
		vec = registerOrExisting(m.registry, vec)
		m.gauges[name] = vec
	}
	m.mu.Unlock()

	if g, err := vec.GetMetricWith(labels(tags)); err == nil {
		g.Set(value)
	}
}

func (m *PrometheusMetrics) Histogram(name string, value float64, tags ...Tag) {
	m.observe(promName(name, ""), name, prometheus.LinearBuckets(0, 1, 6), value, tags)
}

// Timing records the duration in seconds on a histogram named <name>_seconds.
func (m *PrometheusMetrics) Timing(name string, duration time.Duration, tags ...Tag) {
	m.observe(promName(name, "_seconds"), name, prometheus.DefBuckets, duration.Seconds(), tags)
}

func (m *PrometheusMetrics) observe(fqName, name string, buckets []float64, value float64, tags []Tag) {
	m.mu.Lock()
	vec, ok := m.histograms[fqName]
	if !ok {
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    fqName,
			Help:    "Histogram " + name,
			Buckets: buckets,
		}, labelNames(tags))
		vec = registerOrExisting(m.registry, vec)
		m.histograms[fqName] = vec
	}
	m.mu.Unlock()

	if h, err := vec.GetMetricWith(labels(tags)); err == nil {
		h.Observe(value)
	}
}

func registerOrExisting[C prometheus.Collector](registry *prometheus.Registry, c C) C {
	if err := registry.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}

// promName converts a dotted metric name to a Prometheus name with suffix.
func promName(name, suffix string) string {
	n := strings.NewReplacer(".", "_", "-", "_").Replace(name)
	if suffix != "" && !strings.HasSuffix(n, suffix) {
		n += suffix
	}
	return n
}

func labelNames(tags []Tag) []string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Key
	}
	sort.Strings(names)
	return names
}

func labels(tags []Tag) prometheus.Labels {
	l := make(prometheus.Labels, len(tags))
	for _, t := range tags {
		l[t.Key] = t.Value
	}
	return l
}

// MetricsServer serves /metrics and /health on a dedicated listener.
type MetricsServer struct {
	server *http.Server
	logger *slog.Logger
}

// StartMetricsServer starts serving the registry on addr in the background.
// An empty addr returns nil and starts nothing.
func StartMetricsServer(addr string, metrics *PrometheusMetrics, logger *slog.Logger) *MetricsServer {
	if addr == "" || metrics == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s := &MetricsServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "addr", addr, ErrorKey, err)
		}
	}()
	logger.Info("metrics server listening", "addr", addr)

	return s
}

// Shutdown stops the server. It is safe to call on a nil server.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
