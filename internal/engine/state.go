package engine

import "sync/atomic"

// SharedState holds the two counters every running simulation shares:
// sent-requests and concurrent-scenarios. Both are lock-free atomics --
// readers (the Runner, the Concurrency Shaper) tolerate stale values.
// Grounded on the sibling module's internal/ratelimit.Limiter, which
// tracks check/allow/deny counts the same way with atomic.Int64.
type SharedState struct {
	sentRequests       atomic.Int64
	concurrentScenarios atomic.Int64
}

// NewSharedState returns a zeroed SharedState for one simulation run.
func NewSharedState() *SharedState {
	return &SharedState{}
}

// IncrSent increments sent-requests and returns the new value. Called at
// step dispatch time, before the timeout race begins -- so the counter is
// a conservative, slightly-over-counting bound on completed requests.
func (s *SharedState) IncrSent() int64 {
	return s.sentRequests.Add(1)
}

// SentRequests returns the current sent-requests count.
func (s *SharedState) SentRequests() int64 {
	return s.sentRequests.Load()
}

// IncrConcurrent increments concurrent-scenarios around a Scenario Walker
// execution.
func (s *SharedState) IncrConcurrent() int64 {
	return s.concurrentScenarios.Add(1)
}

// DecrConcurrent decrements concurrent-scenarios.
func (s *SharedState) DecrConcurrent() int64 {
	return s.concurrentScenarios.Add(-1)
}

// ConcurrentScenarios returns the current number of in-flight Scenario
// Walker executions.
func (s *SharedState) ConcurrentScenarios() int64 {
	return s.concurrentScenarios.Load()
}
