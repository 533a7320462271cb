// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studyplanner_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studyplanner_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Outbound calls to the generative language and search APIs
	RemoteCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studyplanner_remote_calls_total",
			Help: "Outbound API calls by client and result",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "studyplanner_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studyplanner_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Domain
	PlansGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studyplanner_plans_generated_total",
			Help: "Study plans generated by topic origin",
		},
		[]string{"origin"}, // "catalog", "ai", "template"
	)

	MoodsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studyplanner_moods_detected_total",
			Help: "Primary moods detected by the motivation coach",
		},
		[]string{"mood"},
	)

	TopicCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studyplanner_topic_cache_lookups_total",
			Help: "AI topic cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss"
	)

	DocumentsArchived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studyplanner_documents_archived_total",
			Help: "Uploaded study documents archived to object storage",
		},
		[]string{"result"},
	)
)
