// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total number of registration submissions",
		},
		[]string{"module"},
	)

	DecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registration_decisions_total",
			Help: "Admin approve/reject decisions",
		},
		[]string{"module", "decision"},
	)

	PortalLoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_logins_total",
			Help: "Portal login attempts by result",
		},
		[]string{"result"},
	)

	PhaseTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phase_transitions_total",
			Help: "Successful phase transitions by target phase",
		},
		[]string{"phase"},
	)

	EvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evaluations_total",
			Help: "Evaluations submitted by phase",
		},
		[]string{"phase"},
	)

	EvaluationScoreHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "evaluation_total_score",
			Help:    "Distribution of evaluation total scores",
			Buckets: prometheus.LinearBuckets(0, 6, 11),
		},
		[]string{"phase"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
