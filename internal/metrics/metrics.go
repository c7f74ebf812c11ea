// Package metrics exposes the Prometheus collectors of the gallery service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Preview pipeline metrics
var (
	PreviewsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_previews_total",
			Help: "Total number of resolved preview requests by outcome (preview, download, icon)",
		},
		[]string{"outcome"},
	)

	PreviewDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gallery_preview_duration_seconds",
			Help:    "Time spent resolving a preview request",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	CacheRepairs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_preview_cache_repairs_total",
			Help: "Total number of repaired previews by result (cached, uncached)",
		},
		[]string{"result"},
	)

	AnimatedScans = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_animated_scans_total",
			Help: "Total number of GIF animation scans by verdict",
		},
		[]string{"animated"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_preview_cache_lookups_total",
			Help: "Preview cache lookups by the preview engine (hit, miss)",
		},
		[]string{"result"},
	)

	CachePurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gallery_preview_cache_purged_total",
			Help: "Cached previews removed by housekeeping",
		},
	)
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gallery_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)
