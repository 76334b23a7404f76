package observability

import (
	"strings"
	"sync"
	"time"
)

// Metrics provides an interface for recording application metrics.
type Metrics interface {
	// Counter increments a counter metric.
	Counter(name string, value int64, tags ...Tag)

	// Gauge sets a gauge metric to the given value.
	Gauge(name string, value float64, tags ...Tag)

	// Histogram records a value in a histogram.
	Histogram(name string, value float64, tags ...Tag)

	// Timing records a duration.
	Timing(name string, duration time.Duration, tags ...Tag)
}

// Tag represents a key-value pair for metric labeling.
type Tag struct {
	Key   string
	Value string
}

// T creates a new Tag.
func T(key, value string) Tag {
	return Tag{Key: key, Value: value}
}

// NoopMetrics discards every observation.
type NoopMetrics struct{}

func (NoopMetrics) Counter(string, int64, ...Tag)        {}
func (NoopMetrics) Gauge(string, float64, ...Tag)        {}
func (NoopMetrics) Histogram(string, float64, ...Tag)    {}
func (NoopMetrics) Timing(string, time.Duration, ...Tag) {}

var (
	_ Metrics = NoopMetrics{}
	_ Metrics = (*InMemoryMetrics)(nil)
)

type metricKind string

const (
	kindCounter   metricKind = "counter"
	kindGauge     metricKind = "gauge"
	kindHistogram metricKind = "histogram"
	kindTiming    metricKind = "timing"
)

// InMemoryMetrics keeps every observation per series. Tests use it to
// assert on what a handler reported.
type InMemoryMetrics struct {
	mu     sync.RWMutex
	series map[metricKind]map[string][]float64
}

// NewInMemoryMetrics creates an empty collector.
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{series: make(map[metricKind]map[string][]float64)}
}

func (m *InMemoryMetrics) Counter(name string, value int64, tags ...Tag) {
	m.record(kindCounter, name, float64(value), tags)
}

func (m *InMemoryMetrics) Gauge(name string, value float64, tags ...Tag) {
	m.record(kindGauge, name, value, tags)
}

func (m *InMemoryMetrics) Histogram(name string, value float64, tags ...Tag) {
	m.record(kindHistogram, name, value, tags)
}

func (m *InMemoryMetrics) Timing(name string, duration time.Duration, tags ...Tag) {
	m.record(kindTiming, name, float64(duration), tags)
}

// GetCounter returns the sum of all increments of a counter series.
func (m *InMemoryMetrics) GetCounter(name string, tags ...Tag) int64 {
	var total int64
	for _, v := range m.values(kindCounter, name, tags) {
		total += int64(v)
	}
	return total
}

// GetGauge returns the last value set on a gauge series.
func (m *InMemoryMetrics) GetGauge(name string, tags ...Tag) float64 {
	values := m.values(kindGauge, name, tags)
	if len(values) == 0 {
		return 0
	}
	return values[len(values)-1]
}

// GetHistogram returns the observations of a histogram series in order.
func (m *InMemoryMetrics) GetHistogram(name string, tags ...Tag) []float64 {
	return m.values(kindHistogram, name, tags)
}

// GetTimings returns the durations recorded on a timing series in order.
func (m *InMemoryMetrics) GetTimings(name string, tags ...Tag) []time.Duration {
	values := m.values(kindTiming, name, tags)
	if values == nil {
		return nil
	}
	out := make([]time.Duration, len(values))
	for i, v := range values {
		out[i] = time.Duration(v)
	}
	return out
}

func (m *InMemoryMetrics) record(kind metricKind, name string, value float64, tags []Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()

	byKey, ok := m.series[kind]
	if !ok {
		byKey = make(map[string][]float64)
		m.series[kind] = byKey
	}
	key := seriesKey(name, tags)
	byKey[key] = append(byKey[key], value)
}

func (m *InMemoryMetrics) values(kind metricKind, name string, tags []Tag) []float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	values := m.series[kind][seriesKey(name, tags)]
	if values == nil {
		return nil
	}
	return append([]float64(nil), values...)
}

// seriesKey renders name{k=v,...} with tags in the order given.
func seriesKey(name string, tags []Tag) string {
	if len(tags) == 0 {
		return name
	}
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('{')
	for i, t := range tags {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(t.Key)
		b.WriteByte('=')
		b.WriteString(t.Value)
	}
	b.WriteByte('}')
	return b.String()
}

// Metric names recorded by dayslot. Dots become underscores when exported
// to Prometheus.
const (
	// Operation metrics
	MetricOperationTotal    = "dayslot.operation.total"
	MetricOperationDuration = "dayslot.operation.duration"
	MetricOperationErrors   = "dayslot.operation.errors"

	// Schedule metrics
	MetricEventsAdded            = "dayslot.events.added"
	MetricEventsRejected         = "dayslot.events.rejected"
	MetricScheduleSize           = "dayslot.schedule.events"
	MetricConflictsDetected      = "dayslot.conflicts.detected"
	MetricSuggestionsPerConflict = "dayslot.suggestions_per_conflict"

	// Import metrics
	MetricImportedEvents = "dayslot.import.events"
	MetricImportSkipped  = "dayslot.import.skipped"

	// Event bus metrics
	MetricEventsPublished = "dayslot.bus.published"
	MetricEventsConsumed  = "dayslot.bus.consumed"
)
