package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func neverStopped() bool { return false }

func TestWalkOnce_TwoStepSuccess(t *testing.T) {
	scenario := NewScenario("checkout",
		WithSteps(
			Step{Name: "login", Request: func(ctx Context) StepReturn { return Result(true) }},
			Step{Name: "pay", Request: func(ctx Context) StepReturn { return Result(true) }},
		),
	)

	rec := WalkOnce(context.Background(), scenario, Context{}, "u1", time.Second, NewSharedState(), nil, neverStopped)

	require.Len(t, rec.Requests, 2)
	assert.Equal(t, "login", rec.Requests[0].Name)
	assert.Equal(t, "pay", rec.Requests[1].Name)
	assert.True(t, rec.Requests[0].Result)
	assert.True(t, rec.Requests[1].Result)
	assert.Equal(t, "u1", rec.UserID)
}

func TestWalkOnce_SkipOnFailure(t *testing.T) {
	scenario := NewScenario("checkout",
		WithSteps(
			Step{Name: "fail", Request: func(ctx Context) StepReturn { return Result(false) }},
			Step{Name: "succeed", Request: func(ctx Context) StepReturn { return Result(true) }},
		),
		WithSkipNextAfterFailure(true),
	)

	rec := WalkOnce(context.Background(), scenario, Context{}, "u1", time.Second, NewSharedState(), nil, neverStopped)

	require.Len(t, rec.Requests, 1)
	assert.Equal(t, "fail", rec.Requests[0].Name)
	assert.False(t, rec.Requests[0].Result)
}

func TestWalkOnce_NoSkip(t *testing.T) {
	scenario := NewScenario("checkout",
		WithSteps(
			Step{Name: "fail", Request: func(ctx Context) StepReturn { return Result(false) }},
			Step{Name: "succeed", Request: func(ctx Context) StepReturn { return Result(true) }},
		),
		WithSkipNextAfterFailure(false),
	)

	rec := WalkOnce(context.Background(), scenario, Context{}, "u1", time.Second, NewSharedState(), nil, neverStopped)

	require.Len(t, rec.Requests, 2)
	assert.False(t, rec.Requests[0].Result)
	assert.True(t, rec.Requests[1].Result)
}

func TestWalkOnce_ContextThreading(t *testing.T) {
	scenario := NewScenario("thread",
		WithSteps(
			Step{Name: "set", Request: func(ctx Context) StepReturn {
				return ResultWithContext(true, ctx.With("token", "abc"))
			}},
			Step{Name: "check", Request: func(ctx Context) StepReturn {
				tok, _ := ctx["token"].(string)
				return Result(tok == "abc")
			}},
		),
	)

	rec := WalkOnce(context.Background(), scenario, Context{}, "u1", time.Second, NewSharedState(), nil, neverStopped)

	require.Len(t, rec.Requests, 2)
	assert.True(t, rec.Requests[1].Result)
	assert.Equal(t, "abc", rec.Requests[0].ContextAfter["token"])
}

func TestWalkOnce_PerStepTimeout(t *testing.T) {
	scenario := NewScenario("slow",
		WithSteps(
			Step{Name: "hang", Request: func(ctx Context) StepReturn {
				time.Sleep(200 * time.Millisecond)
				return Result(true)
			}},
		),
	)

	rec := WalkOnce(context.Background(), scenario, Context{}, "u1", 10*time.Millisecond, NewSharedState(), nil, neverStopped)

	require.Len(t, rec.Requests, 1)
	req := rec.Requests[0]
	assert.False(t, req.Result)
	assert.True(t, !req.End.Before(req.Start))
	assert.True(t, req.End.Sub(req.Start) < 150*time.Millisecond)

	// The hung step's own goroutine is still sleeping; give it room to
	// finish writing to its buffered result channel before any leak check
	// in other tests runs.
	time.Sleep(250 * time.Millisecond)
}

func TestWalkOnce_EarlyTerminationHonored(t *testing.T) {
	calls := 0
	scenario := NewScenario("loop",
		WithStepFn(func(ctx Context) (*Step, Context, bool) {
			calls++
			if calls > 3 {
				return nil, ctx, false
			}
			return &Step{Name: "step", Request: func(ctx Context) StepReturn { return Result(true) }}, ctx, true
		}),
		WithAllowEarlyTermination(true),
	)

	stopped := func() bool { return true }
	rec := WalkOnce(context.Background(), scenario, Context{}, "u1", time.Second, NewSharedState(), nil, stopped)

	require.Len(t, rec.Requests, 1)
}
