// Package metrics registra los collectors de Prometheus del servicio.
// Se exponen en /metrics vía promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tingrrr_http_requests_total",
			Help: "Total HTTP requests by route pattern, method and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tingrrr_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Swipes y matching
	SwipesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tingrrr_swipes_recorded_total",
			Help: "Swipes recorded by direction",
		},
		[]string{"direction"},
	)

	ProfileRecomputes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tingrrr_profile_recomputes_total",
			Help: "Preference profiles recomputed after a right swipe",
		},
	)

	ProfileRecomputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tingrrr_profile_recompute_duration_seconds",
			Help:    "Time to load the liked set, recompute and save a profile",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	RankedCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tingrrr_ranked_candidates",
			Help:    "Candidate pool size per ranking call",
			Buckets: []float64{0, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	ProfileResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tingrrr_profile_resets_total",
			Help: "Swipe history resets",
		},
	)

	// Vision
	VisionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tingrrr_vision_requests_total",
			Help: "Image analysis requests by outcome (ok, error, mock, breaker_open)",
		},
		[]string{"outcome"},
	)

	VisionRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tingrrr_vision_request_duration_seconds",
			Help:    "Latency of calls to the image analysis API",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	// Auth
	AuthResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tingrrr_auth_resolutions_total",
			Help: "Requests by how the caller identity was resolved (anonymous, debug_header, token, rejected)",
		},
		[]string{"source"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tingrrr_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)
