package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinear(t *testing.T) {
	assert.Equal(t, 0.0, Linear(0, nil))
	assert.Equal(t, 0.5, Linear(0.5, nil))
	assert.Equal(t, 1.0, Linear(1, nil))
	// Out-of-range progress is clamped rather than propagated.
	assert.Equal(t, 1.0, Linear(1.5, nil))
	assert.Equal(t, 0.0, Linear(-1, nil))
}

func TestRampUpDown(t *testing.T) {
	dist := RampUpDown(0.25, 0.25)

	assert.Equal(t, 0.0, dist(0, nil))
	assert.InDelta(t, 0.5, dist(0.125, nil), 0.001)
	assert.Equal(t, 1.0, dist(0.25, nil))
	assert.Equal(t, 1.0, dist(0.5, nil))
	assert.Equal(t, 1.0, dist(0.75, nil))
	assert.InDelta(t, 0.5, dist(0.875, nil), 0.001)
	assert.InDelta(t, 0.0, dist(1, nil), 0.001)
}
