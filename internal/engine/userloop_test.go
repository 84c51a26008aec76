package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkOnce_ContextThreadingAcrossIterations(t *testing.T) {
	scenario := NewScenario("counter",
		WithStepFn(func(ctx Context) (*Step, Context, bool) {
			n, _ := ctx["counter"].(int)
			if n >= 3 {
				return nil, ctx, false
			}
			return &Step{
				Name: "tick",
				Request: func(ctx Context) StepReturn {
					n, _ := ctx["counter"].(int)
					return ResultWithContext(true, ctx.With("counter", n+1))
				},
			}, ctx, true
		}),
	)

	rec := WalkOnce(context.Background(), scenario, Context{"counter": 0}, "u1", time.Second, NewSharedState(), nil, neverStopped)

	require.Len(t, rec.Requests, 3)
	for i, req := range rec.Requests {
		assert.Equal(t, i, req.ContextBefore["counter"])
		assert.Equal(t, i+1, req.ContextAfter["counter"])
	}
}

func TestRequestCountRunner_NeverUndershoots(t *testing.T) {
	const n = 25
	const concurrency = 4

	sim := &Simulation{
		Name: "sim",
		Scenarios: []*ScenarioSpec{
			{Scenario: NewScenario("s", WithSteps(Step{
				Name:    "step",
				Request: func(ctx Context) StepReturn { return Result(true) },
			}))},
		},
	}

	out, err := Run(context.Background(), sim, SimulationOptions{Concurrency: concurrency, Requests: n})
	require.NoError(t, err)

	total := 0
	for rec := range out {
		total += len(rec.Requests)
	}

	assert.GreaterOrEqual(t, total, n)
	assert.LessOrEqual(t, total, n+concurrency)
}

func TestDistribution_ZeroIdlesWithoutRecords(t *testing.T) {
	sim := &Simulation{
		Name: "sim",
		Scenarios: []*ScenarioSpec{
			{Scenario: NewScenario("s", WithSteps(Step{
				Name:    "step",
				Request: func(ctx Context) StepReturn { return Result(true) },
			}))},
		},
	}

	zero := func(progress float64, ctx Context) float64 { return 0 }
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	out, err := Run(ctx, sim, SimulationOptions{
		Concurrency:  3,
		Duration:     200 * time.Millisecond,
		Distribution: zero,
	})
	require.NoError(t, err)

	count := 0
	for range out {
		count++
	}
	assert.Equal(t, 0, count)
}
