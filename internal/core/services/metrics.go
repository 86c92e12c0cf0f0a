package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics of the reclaim pipeline.
var (
	// eventsTotal counts deletion events by mode (apply or plan).
	eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reclaim_events_total",
		Help: "Deletion events processed, by mode",
	}, []string{"mode"})

	// outcomesTotal counts per-medium decisions.
	outcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reclaim_outcomes_total",
		Help: "Per-medium decisions, by action and skip reason",
	}, []string{"action", "reason"})

	// candidatesTotal counts candidates produced by each extractor.
	candidatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reclaim_candidates_total",
		Help: "Media reference candidates extracted, by encoding",
	}, []string{"encoding"})

	// encodingFailuresTotal counts failed extractions.
	encodingFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reclaim_encoding_failures_total",
		Help: "Extractions that failed, by encoding",
	}, []string{"encoding"})

	resolverCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reclaim_resolver_cache_hits_total",
		Help: "URL resolutions served from the per-event memo",
	})

	resolverCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reclaim_resolver_cache_misses_total",
		Help: "URL resolutions that queried the content store",
	})

	eventDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reclaim_event_duration_seconds",
		Help:    "Duration of a deletion event pipeline in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})
)
