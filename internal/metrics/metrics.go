// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

// Package metrics exposes Prometheus instrumentation for the HTTP
// surface, the ranking engine, and the two caches (franchise lookup,
// arranged views). All recorders are safe for concurrent use.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	// Ranking metrics
	RankDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rank_duration_seconds",
			Help:    "Duration of one hybrid ranking pass in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RankRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rank_requests_total",
			Help: "Total ranking requests by serving path",
		},
		[]string{"path"}, // "profile", "fallback"
	)

	// Sequence metrics
	SequenceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sequence_build_duration_seconds",
			Help:    "Duration of play sequence construction in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Cache metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "franchise_lookup", "arranged_view"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	// External lookup metrics
	LookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "franchise_lookup_duration_seconds",
			Help:    "Duration of external franchise order lookups",
			Buckets: prometheus.DefBuckets,
		},
	)

	LookupErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "franchise_lookup_errors_total",
			Help: "Total number of failed external franchise order lookups",
		},
	)
)

// RecordHTTPRequest records one completed request.
func RecordHTTPRequest(method, endpoint, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRank records one ranking pass. path is "profile" when user
// signals drove the ranking, "fallback" for the no-signal sample.
func RecordRank(path string, duration time.Duration) {
	RankRequests.WithLabelValues(path).Inc()
	RankDuration.Observe(duration.Seconds())
}

// RecordSequenceBuild records one play sequence construction.
func RecordSequenceBuild(duration time.Duration) {
	SequenceDuration.Observe(duration.Seconds())
}

// RecordCacheAccess records one cache probe.
func RecordCacheAccess(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
	} else {
		CacheMisses.WithLabelValues(cacheType).Inc()
	}
}

// RecordLookup records one external lookup attempt.
func RecordLookup(duration time.Duration, err error) {
	LookupDuration.Observe(duration.Seconds())
	if err != nil {
		LookupErrors.Inc()
	}
}
