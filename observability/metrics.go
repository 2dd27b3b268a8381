package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms of the case statistics service.
type Metrics struct {
	SummariesComputed prometheus.Counter
	ForecastsComputed prometheus.Counter
	LookupErrors      prometheus.Counter
	CacheLookups      *prometheus.CounterVec // labels: kind={table,summary,forecast}, result={hit,miss}
	ChartsBuilt       *prometheus.CounterVec // labels: chart={top,daily,global,forecast}

	RefreshRuns     *prometheus.CounterVec // labels: outcome={success,error}
	RefreshDuration prometheus.Histogram
	TableRegions    prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SummariesComputed,
		m.ForecastsComputed,
		m.LookupErrors,
		m.CacheLookups,
		m.ChartsBuilt,
		m.RefreshRuns,
		m.RefreshDuration,
		m.TableRegions,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SummariesComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "covid_stats",
			Name:      "summaries_computed_total",
			Help:      "Total region summary rows computed.",
		}),
		ForecastsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "covid_stats",
			Name:      "forecasts_computed_total",
			Help:      "Total forecast series computed.",
		}),
		LookupErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "covid_stats",
			Name:      "lookup_errors_total",
			Help:      "Requests for regions with no column in the case table.",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "covid_stats",
			Name:      "cache_lookups_total",
			Help:      "Redis cache lookups by kind and result.",
		}, []string{"kind", "result"}),
		ChartsBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "covid_stats",
			Name:      "charts_built_total",
			Help:      "Chart descriptions built by chart kind.",
		}, []string{"chart"}),
		RefreshRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "covid_stats",
			Name:      "refresh_runs_total",
			Help:      "Summary refresher runs by outcome.",
		}, []string{"outcome"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "covid_stats",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete summary refresh.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		TableRegions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "covid_stats",
			Name:      "table_regions",
			Help:      "Number of region columns in the current case table.",
		}),
	}
}
