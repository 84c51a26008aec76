package engine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// The executor deliberately abandons a goroutine racing a timed-out
	// step rather than killing it; it exits on its own once the step
	// body returns. goleak's retry/grace window absorbs that, so it's
	// safe to verify process-wide rather than per test.
	goleak.VerifyTestMain(m)
}

func TestRun_FixedUsersCompleteExactlyOnce(t *testing.T) {
	var calls int64
	sim := &Simulation{
		Name: "sim",
		Scenarios: []*ScenarioSpec{
			{Scenario: NewScenario("s", WithSteps(Step{
				Name: "step",
				Request: func(ctx Context) StepReturn {
					atomic.AddInt64(&calls, 1)
					return Result(true)
				},
			}))},
		},
	}

	out, err := Run(context.Background(), sim, SimulationOptions{Concurrency: 5})
	require.NoError(t, err)

	var records []ScenarioRecord
	for rec := range out {
		records = append(records, rec)
	}

	assert.Len(t, records, 5)
	assert.Equal(t, int64(5), atomic.LoadInt64(&calls))
}

func TestRun_ValidatesNegativeConcurrency(t *testing.T) {
	sim := &Simulation{
		Name:      "sim",
		Scenarios: []*ScenarioSpec{{Scenario: NewScenario("s", WithSteps(Step{Name: "s", Request: func(ctx Context) StepReturn { return Result(true) }}))}},
	}
	_, err := Run(context.Background(), sim, SimulationOptions{Concurrency: -1})
	assert.Error(t, err)
}

func TestRun_RequiresAtLeastOneScenario(t *testing.T) {
	_, err := Run(context.Background(), &Simulation{Name: "sim"}, SimulationOptions{Concurrency: 1})
	assert.Error(t, err)
}

func TestRun_ZeroConcurrencyProducesEmptyStream(t *testing.T) {
	sim := &Simulation{
		Name:      "sim",
		Scenarios: []*ScenarioSpec{{Scenario: NewScenario("s", WithSteps(Step{Name: "s", Request: func(ctx Context) StepReturn { return Result(true) }}))}},
	}
	out, err := Run(context.Background(), sim, SimulationOptions{Concurrency: 0})
	require.NoError(t, err)

	count := 0
	for range out {
		count++
	}
	assert.Equal(t, 0, count)
}

func TestRun_RampRespectsConcurrencyBound(t *testing.T) {
	const nominal = 20
	var peak int64

	sim := &Simulation{
		Name: "sim",
		Scenarios: []*ScenarioSpec{
			{Scenario: NewScenario("s", WithSteps(Step{
				Name: "step",
				Request: func(ctx Context) StepReturn {
					time.Sleep(15 * time.Millisecond)
					return Result(true)
				},
			}))},
		},
	}

	opts := SimulationOptions{
		Concurrency:    nominal,
		Duration:       200 * time.Millisecond,
		Distribution:   Linear,
		TimeoutPerStep: time.Second,
		StatsSink: func(state *SharedState) {
			go func() {
				ticker := time.NewTicker(2 * time.Millisecond)
				defer ticker.Stop()
				deadline := time.After(300 * time.Millisecond)
				for {
					select {
					case <-ticker.C:
						if c := state.ConcurrentScenarios(); c > atomic.LoadInt64(&peak) {
							atomic.StoreInt64(&peak, c)
						}
					case <-deadline:
						return
					}
				}
			}()
		},
	}

	out, err := Run(context.Background(), sim, opts)
	require.NoError(t, err)
	for range out {
	}

	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(nominal))
}
