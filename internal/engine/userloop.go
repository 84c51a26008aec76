package engine

import (
	"context"
	"time"
)

// runUserLoop repeatedly walks scenario for one virtual user while the
// Runner and, if configured, the Concurrency Shaper's admission gate
// permit. It sends each ScenarioRecord to out and returns
// when the runner stops, the iteration cap (FixedUserRunner) is hit, or
// ctx is cancelled.
func runUserLoop(ctx context.Context, scenario *Scenario, userID string, opts *SimulationOptions, runner Runner, state *SharedState, sink ErrorSink, shaper *Shaper, start time.Time, out chan<- ScenarioRecord) {
	maxIter := runner.MaxIterationsPerUser()
	iterations := 0

	stopped := func() bool {
		return !runner.Continue(state.SentRequests(), start)
	}

	for runner.Continue(state.SentRequests(), start) {
		if maxIter > 0 && iterations >= maxIter {
			return
		}

		if shaper != nil {
			if !shaper.Admit(ctx) {
				return
			}
		}

		select {
		case <-ctx.Done():
			return
		default:
		}

		state.IncrConcurrent()
		baseCtx := opts.Context
		if baseCtx == nil {
			baseCtx = Context{}
		}
		rec := WalkOnce(ctx, scenario, baseCtx, userID, opts.timeout(), state, sink, stopped)
		state.DecrConcurrent()

		select {
		case out <- rec:
		case <-ctx.Done():
			return
		}

		iterations++
	}
}
