package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EngineMetrics carries every counter and histogram the matching engine
// emits, on its own registry so tests can build isolated instances.
type EngineMetrics struct {
	registry *prometheus.Registry

	cacheLookupsTotal  *prometheus.CounterVec
	providerCallsTotal *prometheus.CounterVec
	matchTotal         *prometheus.CounterVec
	matchDuration      prometheus.Histogram
	prefilterDuration  prometheus.Histogram
	prefilterExclusion prometheus.Histogram
}

func NewEngineMetrics(service string) *EngineMetrics {
	registry := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"service": service}

	cacheLookupsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "compass",
			Subsystem:   "geo",
			Name:        "cache_lookups_total",
			Help:        "Geocode cache lookups by tier and result.",
			ConstLabels: constLabels,
		},
		[]string{"tier", "result"},
	)
	providerCallsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "compass",
			Subsystem:   "geo",
			Name:        "provider_requests_total",
			Help:        "Outbound geo provider requests by operation and status.",
			ConstLabels: constLabels,
		},
		[]string{"op", "status"},
	)
	matchTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "compass",
			Subsystem:   "matching",
			Name:        "match_total",
			Help:        "Completed match evaluations by recommendation.",
			ConstLabels: constLabels,
		},
		[]string{"recommendation"},
	)
	matchDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   "compass",
			Subsystem:   "matching",
			Name:        "match_duration_seconds",
			Help:        "Match evaluation duration in seconds.",
			Buckets:     []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			ConstLabels: constLabels,
		},
	)
	prefilterDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   "compass",
			Subsystem:   "matching",
			Name:        "prefilter_duration_seconds",
			Help:        "Pre-filter pass duration in seconds.",
			Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			ConstLabels: constLabels,
		},
	)
	prefilterExclusion := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   "compass",
			Subsystem:   "matching",
			Name:        "prefilter_excluded_ratio",
			Help:        "Fraction of jobs excluded per pre-filter pass.",
			Buckets:     []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1},
			ConstLabels: constLabels,
		},
	)

	registry.MustRegister(
		cacheLookupsTotal,
		providerCallsTotal,
		matchTotal,
		matchDuration,
		prefilterDuration,
		prefilterExclusion,
	)

	return &EngineMetrics{
		registry:           registry,
		cacheLookupsTotal:  cacheLookupsTotal,
		providerCallsTotal: providerCallsTotal,
		matchTotal:         matchTotal,
		matchDuration:      matchDuration,
		prefilterDuration:  prefilterDuration,
		prefilterExclusion: prefilterExclusion,
	}
}

func (m *EngineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// CacheLookup implements the geocode cache observer.
func (m *EngineMetrics) CacheLookup(tier, result string) {
	m.cacheLookupsTotal.WithLabelValues(tier, result).Inc()
}

// ProviderCall implements the geocode cache observer.
func (m *EngineMetrics) ProviderCall(op string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.providerCallsTotal.WithLabelValues(op, status).Inc()
}

// ObserveMatch implements the match scorer observer.
func (m *EngineMetrics) ObserveMatch(elapsed time.Duration, recommendation string) {
	if recommendation == "" {
		recommendation = "unknown"
	}
	m.matchTotal.WithLabelValues(recommendation).Inc()
	m.matchDuration.Observe(elapsed.Seconds())
}

// ObserveFilter implements the pre-filter observer.
func (m *EngineMetrics) ObserveFilter(elapsed time.Duration, excludedRatio float64) {
	m.prefilterDuration.Observe(elapsed.Seconds())
	m.prefilterExclusion.Observe(excludedRatio)
}
