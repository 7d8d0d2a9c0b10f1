// Package metrics provides Prometheus metrics for match generation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GenerationsTotal tracks match generation runs by outcome
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "purposematch",
			Subsystem: "matching",
			Name:      "generations_total",
			Help:      "Total number of match generation runs by outcome",
		},
		[]string{"outcome"},
	)

	// GenerationDuration tracks match generation duration in seconds
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "purposematch",
			Subsystem: "matching",
			Name:      "generation_duration_seconds",
			Help:      "Duration of match generation runs in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"outcome"},
	)

	// CandidatesScored tracks how many candidates were scored
	CandidatesScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "purposematch",
			Subsystem: "matching",
			Name:      "candidates_scored_total",
			Help:      "Total number of candidates scored",
		},
	)

	// MatchesPersisted tracks matches written to the store
	MatchesPersisted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "purposematch",
			Subsystem: "matching",
			Name:      "matches_persisted_total",
			Help:      "Total number of matches persisted",
		},
	)

	// MatchResponsesTotal tracks like/reject responses
	MatchResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "purposematch",
			Subsystem: "matching",
			Name:      "responses_total",
			Help:      "Total number of match responses by action",
		},
		[]string{"action"},
	)
)

// Recorder reports matching activity to the package level collectors.
type Recorder struct{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (Recorder) ObserveGeneration(outcome string, duration time.Duration, scored, persisted int) {
	GenerationsTotal.WithLabelValues(outcome).Inc()
	GenerationDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	CandidatesScored.Add(float64(scored))
	MatchesPersisted.Add(float64(persisted))
}

func (Recorder) ObserveResponse(action string) {
	MatchResponsesTotal.WithLabelValues(action).Inc()
}
