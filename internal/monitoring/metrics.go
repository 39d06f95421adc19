package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. A nil *Metrics
// is valid and records nothing, which keeps tests free of duplicate
// collector registration.
type Metrics struct {
	ScrapesTotal       *prometheus.CounterVec
	ScrapeErrorsTotal  *prometheus.CounterVec
	CacheHitsTotal     *prometheus.CounterVec
	SmartScaleFailures prometheus.Counter
	FetchDuration      prometheus.Histogram
}

func NewMetrics() *Metrics {
	return &Metrics{
		ScrapesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ladle_scrapes_total",
			Help: "The total number of successful recipe extractions by method",
		}, []string{"method"}),
		ScrapeErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ladle_scrape_errors_total",
			Help: "The total number of failed scrape requests by error code",
		}, []string{"code"}),
		CacheHitsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ladle_cache_hits_total",
			Help: "The total number of cache hits by cache name",
		}, []string{"cache"}),
		SmartScaleFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ladle_smart_scale_failures_total",
			Help: "The total number of smart-scale requests that fell back to deterministic output",
		}),
		FetchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ladle_fetch_duration_seconds",
			Help:    "Time spent fetching remote recipe pages",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncScraped(method string) {
	if m == nil {
		return
	}
	m.ScrapesTotal.WithLabelValues(method).Inc()
}

func (m *Metrics) IncScrapeError(code string) {
	if m == nil {
		return
	}
	m.ScrapeErrorsTotal.WithLabelValues(code).Inc()
}

func (m *Metrics) IncCacheHit(cache string) {
	if m == nil {
		return
	}
	m.CacheHitsTotal.WithLabelValues(cache).Inc()
}

func (m *Metrics) IncSmartScaleFailure() {
	if m == nil {
		return
	}
	m.SmartScaleFailures.Inc()
}

func (m *Metrics) ObserveFetchDuration(seconds float64) {
	if m == nil {
		return
	}
	m.FetchDuration.Observe(seconds)
}
