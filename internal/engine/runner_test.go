package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChooseRunner(t *testing.T) {
	assert.IsType(t, DurationRunner{}, ChooseRunner(&SimulationOptions{Duration: time.Second}))
	assert.IsType(t, RequestCountRunner{}, ChooseRunner(&SimulationOptions{Requests: 10}))
	assert.IsType(t, FixedUserRunner{}, ChooseRunner(&SimulationOptions{Concurrency: 3}))

	// Duration wins over a request count when both are set.
	r := ChooseRunner(&SimulationOptions{Duration: time.Second, Requests: 10})
	assert.IsType(t, DurationRunner{}, r)
}

func TestFixedUserRunner_SingleIterationPerUser(t *testing.T) {
	r := FixedUserRunner{Users: 5}
	assert.Equal(t, 1, r.MaxIterationsPerUser())
	assert.True(t, r.Continue(0, time.Now()))
	assert.True(t, r.Continue(1000, time.Now()))
}

func TestRequestCountRunner_StopsAtN(t *testing.T) {
	r := RequestCountRunner{N: 3}
	assert.True(t, r.Continue(0, time.Time{}))
	assert.True(t, r.Continue(2, time.Time{}))
	assert.False(t, r.Continue(3, time.Time{}))
	assert.Equal(t, 0, r.MaxIterationsPerUser())
}

func TestDurationRunner_Progress(t *testing.T) {
	start := time.Now().Add(-500 * time.Millisecond)
	r := DurationRunner{Duration: time.Second}
	p := r.Progress(0, start)
	assert.Greater(t, p, 0.3)
	assert.Less(t, p, 0.8)
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, clamp01(-1))
	assert.Equal(t, 1.0, clamp01(2))
	assert.Equal(t, 0.5, clamp01(0.5))
}
