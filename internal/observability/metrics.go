// Package observability holds the Prometheus collectors of the streak engine.
package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/codequest/streak-engine/internal/core/domain"
)

var (
	streakUpdates = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "streak_engine",
		Subsystem: "streak",
		Name:      "updates_total",
		Help:      "Qualifying completions processed, by outcome.",
	}, []string{"outcome"})
	answersRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "streak_engine",
		Subsystem: "activity",
		Name:      "answers_total",
		Help:      "Answers submitted by players, by activity and correctness.",
	}, []string{"activity", "correct"})
)

func init() {
	prometheus.MustRegister(streakUpdates, answersRecorded)
}

// RecordStreakOutcome counts one processed completion.
func RecordStreakOutcome(outcome domain.StreakOutcome) {
	if outcome == "" {
		return
	}
	streakUpdates.WithLabelValues(string(outcome)).Inc()
}

// RecordAnswer counts one submitted answer.
func RecordAnswer(activity domain.Activity, correct bool) {
	answersRecorded.WithLabelValues(string(activity), strconv.FormatBool(correct)).Inc()
}
