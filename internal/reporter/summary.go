package reporter

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/sentra-lab/simcore/internal/engine"
)

// Reporter renders a run's Summary and the ScenarioRecords it was
// computed from to w, in whatever format the implementation owns.
type Reporter interface {
	Report(w io.Writer, summary Summary, results []engine.ScenarioRecord) error
}

// Summary aggregates a completed run's ScenarioRecords into the numbers
// an operator actually reads: counts, failure rate, and step latency
// percentiles.
type Summary struct {
	Name            string
	Start           time.Time
	End             time.Time
	TotalScenarios  int
	TotalRequests   int64
	FailedRequests  int64
	MeanLatency     time.Duration
	P50Latency      time.Duration
	P95Latency      time.Duration
	P99Latency      time.Duration
	MaxLatency      time.Duration
}

// Summarize computes a Summary over a finished batch of ScenarioRecords.
// Latency percentiles are computed over every RequestRecord's End-Start
// duration across all scenarios, not per-scenario.
func Summarize(name string, records []engine.ScenarioRecord) Summary {
	s := Summary{Name: name, TotalScenarios: len(records)}

	var latencies []time.Duration
	var total time.Duration

	for _, rec := range records {
		if s.Start.IsZero() || (!rec.Start.IsZero() && rec.Start.Before(s.Start)) {
			s.Start = rec.Start
		}
		if rec.End.After(s.End) {
			s.End = rec.End
		}
		for _, req := range rec.Requests {
			s.TotalRequests++
			if !req.Result {
				s.FailedRequests++
			}
			d := req.End.Sub(req.Start)
			latencies = append(latencies, d)
			total += d
			if d > s.MaxLatency {
				s.MaxLatency = d
			}
		}
	}

	if len(latencies) == 0 {
		return s
	}

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	s.MeanLatency = total / time.Duration(len(latencies))
	s.P50Latency = percentile(latencies, 0.50)
	s.P95Latency = percentile(latencies, 0.95)
	s.P99Latency = percentile(latencies, 0.99)

	return s
}

// percentile expects sorted ascending durations.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// FailureRate returns the fraction of requests that failed, in [0,1].
func (s Summary) FailureRate() float64 {
	if s.TotalRequests == 0 {
		return 0
	}
	return float64(s.FailedRequests) / float64(s.TotalRequests)
}

func (s Summary) String() string {
	return fmt.Sprintf("requests=%d failed=%d p95=%s", s.TotalRequests, s.FailedRequests, s.P95Latency)
}
