// Package metrics defines the Prometheus collectors exposed on
// /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Mutation label values.
const (
	MutationStart          = "start"
	MutationFinish         = "finish"
	MutationCancel         = "cancel"
	MutationAddExercise    = "add_exercise"
	MutationRemoveExercise = "remove_exercise"
	MutationLogSet         = "log_set"
	MutationUpdateSet      = "update_set"
	MutationDeleteSet      = "delete_set"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymlog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymlog_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "status_code"},
	)

	SessionMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymlog_session_mutations_total",
			Help: "Session state machine transitions by kind",
		},
		[]string{"mutation"},
	)

	SetsLoggedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymlog_sets_logged_total",
			Help: "Total number of sets logged",
		},
	)
)
