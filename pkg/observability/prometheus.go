package observability

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetrics implements Metrics on a dedicated Prometheus registry.
// Vectors are created on first use; label names are fixed by that first
// call and later calls with a different label set are dropped.
type PrometheusMetrics struct {
	mu         sync.Mutex
	registry   *prometheus.Registry
	factory    promauto.Factory
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
	labelSets  map[string][]string
}

// NewPrometheusMetrics creates a collector with Go runtime and process
// collectors registered.
func NewPrometheusMetrics() *PrometheusMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector())
	reg.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	return &PrometheusMetrics{
		registry:   reg,
		factory:    promauto.With(reg),
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
		labelSets:  make(map[string][]string),
	}
}

// Registry exposes the underlying registry.
func (p *PrometheusMetrics) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (p *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func (p *PrometheusMetrics) Counter(name string, value int64, tags ...Tag) {
	p.mu.Lock()
	defer p.mu.Unlock()

	keys, values := splitTags(tags)
	if !p.sameLabels(name, keys) {
		return
	}
	vec, ok := p.counters[name]
	if !ok {
		vec = p.factory.NewCounterVec(prometheus.CounterOpts{
			Name: promName(name) + "_total",
			Help: "Counter " + name,
		}, keys)
		p.counters[name] = vec
	}
	vec.WithLabelValues(values...).Add(float64(value))
}

func (p *PrometheusMetrics) Gauge(name string, value float64, tags ...Tag) {
	p.mu.Lock()
	defer p.mu.Unlock()

	keys, values := splitTags(tags)
	if !p.sameLabels(name, keys) {
		return
	}
	vec, ok := p.gauges[name]
	if !ok {
		vec = p.factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: promName(name),
			Help: "Gauge " + name,
		}, keys)
		p.gauges[name] = vec
	}
	vec.WithLabelValues(values...).Set(value)
}

func (p *PrometheusMetrics) Timing(name string, duration time.Duration, tags ...Tag) {
	p.mu.Lock()
	defer p.mu.Unlock()

	keys, values := splitTags(tags)
	if !p.sameLabels(name, keys) {
		return
	}
	vec, ok := p.histograms[name]
	if !ok {
		vec = p.factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    promName(name) + "_seconds",
			Help:    "Duration " + name,
			Buckets: prometheus.DefBuckets,
		}, keys)
		p.histograms[name] = vec
	}
	vec.WithLabelValues(values...).Observe(duration.Seconds())
}

func (p *PrometheusMetrics) sameLabels(name string, keys []string) bool {
	existing, ok := p.labelSets[name]
	if !ok {
		p.labelSets[name] = keys
		return true
	}
	if len(existing) != len(keys) {
		return false
	}
	for i := range keys {
		if existing[i] != keys[i] {
			return false
		}
	}
	return true
}

// splitTags returns label names and values sorted by name.
func splitTags(tags []Tag) ([]string, []string) {
	sorted := make([]Tag, len(tags))
	copy(sorted, tags)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	keys := make([]string, len(sorted))
	values := make([]string, len(sorted))
	for i, t := range sorted {
		keys[i] = t.Key
		values[i] = t.Value
	}
	return keys, values
}

// promName converts a dotted metric name to Prometheus form.
func promName(name string) string {
	return strings.NewReplacer(".", "_", "-", "_").Replace(name)
}
