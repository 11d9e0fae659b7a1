// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "menuscore"

var (
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Analyses run, by outcome (ranked, empty, cancelled).",
	}, []string{"outcome"})

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Wall time of a scoring run.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
	})

	ParseFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "parse_failures_total",
		Help:      "CSV imports rejected for missing required columns.",
	})

	DatasetItems = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "dataset_items",
		Help:      "Menu items in the loaded dataset.",
	})

	RestaurantsRanked = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "restaurants_ranked",
		Help:      "Restaurants in the most recent full-dataset ranking.",
	})
)

const (
	OutcomeRanked    = "ranked"
	OutcomeEmpty     = "empty"
	OutcomeCancelled = "cancelled"
)

// ObserveAnalysis records one scoring run.
func ObserveAnalysis(outcome string, took time.Duration) {
	AnalysesTotal.WithLabelValues(outcome).Inc()
	AnalysisDuration.Observe(took.Seconds())
}
