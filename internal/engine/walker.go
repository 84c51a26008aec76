package engine

import (
	"context"
	"time"
)

// stepCursor walks a Scenario's static Steps first, then consults StepFn
// (if any) once the static list is exhausted. It pulls one step ahead of
// where the walker currently is so "no further step available" can be
// checked without calling a stateful generator twice for the same
// position.
type stepCursor struct {
	steps []Step
	idx   int
	fn    StepFn
}

func newStepCursor(s *Scenario) *stepCursor {
	return &stepCursor{steps: s.Steps, fn: s.StepFn}
}

func (c *stepCursor) pull(ctx Context) (*Step, Context, bool) {
	if c.idx < len(c.steps) {
		step := &c.steps[c.idx]
		c.idx++
		return step, ctx, true
	}
	if c.fn == nil {
		return nil, ctx, false
	}
	step, next, ok := c.fn(ctx)
	if !ok {
		return nil, ctx, false
	}
	if next == nil {
		next = ctx
	}
	return step, next, true
}

// WalkOnce runs one execution of scenario for one virtual user, producing
// its ScenarioRecord. stopped reports whether the
// simulation's overall stopping condition has already fired; it only cuts
// the walk short when scenario.AllowEarlyTermination is true.
func WalkOnce(ctx context.Context, scenario *Scenario, baseCtx Context, userID string, timeout time.Duration, state *SharedState, sink ErrorSink, stopped func() bool) ScenarioRecord {
	merged := baseCtx
	if scenario.Context != nil {
		merged = baseCtx.Merge(scenario.Context)
	}

	walkCtx := merged
	if scenario.PreHook != nil {
		walkCtx = scenario.PreHook(merged)
	}

	cur := newStepCursor(scenario)

	var requests []RequestRecord

	// lastSuccessCtx tracks the most recent successful step's resulting
	// context, separately from walkCtx (which also carries a failing
	// step's own replacement context forward so the next pull() sees it).
	// The post-hook below only ever sees lastSuccessCtx.
	lastSuccessCtx := walkCtx

	step, stepCtx, ok := cur.pull(walkCtx)
	for ok {
		rec, ctxOut := Execute(ctx, step, stepCtx, userID, timeout, state, sink, scenario.Name)
		requests = append(requests, rec)
		walkCtx = ctxOut

		failed := !rec.Result
		if !failed {
			lastSuccessCtx = ctxOut
		}
		nextStep, nextCtx, hasNext := cur.pull(walkCtx)

		if (stopped() && scenario.AllowEarlyTermination) || !hasNext || (scenario.SkipNextAfterFailure && failed) {
			break
		}
		step, stepCtx, ok = nextStep, nextCtx, hasNext
	}

	if scenario.PostHook != nil {
		scenario.PostHook(lastSuccessCtx)
	}

	rec := ScenarioRecord{
		Name:     scenario.Name,
		UserID:   userID,
		Requests: requests,
	}
	if len(requests) > 0 {
		rec.Start = requests[0].Start
		rec.End = requests[len(requests)-1].End
	}
	return rec
}
