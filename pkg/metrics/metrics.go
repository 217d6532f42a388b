// Package metrics provides Prometheus metrics for the homescreen client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal tracks outbound API requests by method and status code
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homescreen",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of outbound API requests",
		},
		[]string{"method", "status_code"},
	)

	// APIRequestDuration tracks outbound API request duration
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "homescreen",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Duration of outbound API requests in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method"},
	)

	// APIRequestsInFlight tracks requests currently awaiting a response
	APIRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "homescreen",
			Subsystem: "api",
			Name:      "requests_in_flight",
			Help:      "Number of API requests currently in flight",
		},
	)

	// APIRetriesTotal tracks automatic request retries
	APIRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homescreen",
			Subsystem: "api",
			Name:      "retries_total",
			Help:      "Total number of automatic API request retries",
		},
		[]string{"method"},
	)

	// TokenRefreshesTotal tracks access token refresh attempts by outcome
	TokenRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homescreen",
			Subsystem: "auth",
			Name:      "token_refreshes_total",
			Help:      "Total number of access token refresh attempts by outcome",
		},
		[]string{"status"},
	)

	// SubmissionsTotal tracks visualization submissions by tenant and status
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homescreen",
			Subsystem: "pipeline",
			Name:      "submissions_total",
			Help:      "Total number of visualization submissions by tenant and status",
		},
		[]string{"tenant_id", "status"},
	)

	// PollCyclesTotal tracks polling cycles by outcome
	PollCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homescreen",
			Subsystem: "polling",
			Name:      "cycles_total",
			Help:      "Total number of status poll cycles by outcome",
		},
		[]string{"outcome"},
	)

	// PollWatchDuration tracks how long a watch runs until it terminates
	PollWatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "homescreen",
			Subsystem: "polling",
			Name:      "watch_duration_seconds",
			Help:      "Duration of a status watch from start until a terminal state",
			Buckets:   []float64{1, 3, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	// StateSavesTotal tracks snapshot persistence attempts by outcome
	StateSavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homescreen",
			Subsystem: "store",
			Name:      "saves_total",
			Help:      "Total number of state snapshot saves by outcome",
		},
		[]string{"status"},
	)

	// TenantFallbacksTotal tracks requests for unknown tenants that fell back
	TenantFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homescreen",
			Subsystem: "tenants",
			Name:      "fallbacks_total",
			Help:      "Total number of tenant lookups that fell back to the default catalog",
		},
		[]string{"tenant_id"},
	)
)
