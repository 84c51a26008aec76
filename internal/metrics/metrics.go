// Package metrics exposes the engine's live counters as Prometheus
// collectors, served by cmd/simcore behind the --metrics-addr flag.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SentRequestsTotal counts RequestRecords received from engine.Run's
	// output, one per completed step; it is fed by ObserveStep, not from
	// engine.SharedState's dispatch-time sent-requests counter.
	SentRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "simcore",
			Name:      "sent_requests_total",
			Help:      "Total number of step records received across all scenarios",
		},
	)

	// ConcurrentScenarios mirrors engine.SharedState's concurrent-scenarios
	// gauge: how many User Loop walks are in flight right now.
	ConcurrentScenarios = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "simcore",
			Name:      "concurrent_scenarios",
			Help:      "Number of scenario walks currently in progress",
		},
	)

	// StepDuration observes one step's Execute wall time, labelled by
	// scenario and step name so slow steps stand out in a histogram query.
	StepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "simcore",
			Name:      "step_duration_seconds",
			Help:      "Step execution duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 15),
		},
		[]string{"scenario", "step"},
	)

	// RampTargetConcurrency tracks the Concurrency Shaper's computed target
	// (concurrency * distribution(progress)) per scenario, so a ramp curve
	// can be graphed against observed concurrency.
	RampTargetConcurrency = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "simcore",
			Name:      "ramp_target_concurrency",
			Help:      "Target concurrency computed by the ramp distribution",
		},
		[]string{"scenario"},
	)
)

// ObserveStep records one step's duration and bumps the sent-requests
// counter. Called from the reporting loop that drains engine.Run's output
// channel, not from inside the engine itself, so the engine package stays
// free of a hard Prometheus dependency.
func ObserveStep(scenario, step string, seconds float64) {
	StepDuration.WithLabelValues(scenario, step).Observe(seconds)
	SentRequestsTotal.Inc()
}

// SetConcurrency sets the live concurrent-scenarios gauge.
func SetConcurrency(n int64) {
	ConcurrentScenarios.Set(float64(n))
}

// SetRampTarget records the shaper's current target concurrency for a
// scenario.
func SetRampTarget(scenario string, target float64) {
	RampTargetConcurrency.WithLabelValues(scenario).Set(target)
}
