package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments the bucket cache. A nil registerer yields working but
// unregistered collectors.
type Metrics struct {
	cacheLookups *prometheus.CounterVec
	cacheWrites  *prometheus.CounterVec
	aggregations prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "presence_stats",
			Subsystem: "bucket_cache",
			Name:      "lookups_total",
			Help:      "Bucket cache lookups by entry kind and outcome.",
		}, []string{"kind", "result"}),
		cacheWrites: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "presence_stats",
			Subsystem: "bucket_cache",
			Name:      "writes_total",
			Help:      "Background bucket cache writes by outcome.",
		}, []string{"result"}),
		aggregations: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "presence_stats",
			Subsystem: "aggregator",
			Name:      "duration_seconds",
			Help:      "Time spent aggregating sessions from the session store.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) lookup(kind, result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) write(result string) {
	if m == nil {
		return
	}
	m.cacheWrites.WithLabelValues(result).Inc()
}

func (m *Metrics) observeAggregation(seconds float64) {
	if m == nil {
		return
	}
	m.aggregations.Observe(seconds)
}
