package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateScenario_RejectsNoWork(t *testing.T) {
	err := validateScenario(NewScenario("empty"))
	assert.Error(t, err)
}

func TestValidateScenario_RejectsBlankName(t *testing.T) {
	err := validateScenario(&Scenario{Steps: []Step{{Name: "s", Request: func(ctx Context) StepReturn { return Result(true) }}}})
	assert.Error(t, err)
}

func TestValidateScenario_AcceptsStepFnOnly(t *testing.T) {
	s := NewScenario("dyn", WithStepFn(func(ctx Context) (*Step, Context, bool) { return nil, ctx, false }))
	assert.NoError(t, validateScenario(s))
}

func TestDistributeUsers_ByWeight(t *testing.T) {
	ids := make([]string, 10)
	for i := range ids {
		ids[i] = string(rune('a' + i))
	}
	specs := []*ScenarioSpec{
		{Scenario: NewScenario("heavy", WithStepFn(func(ctx Context) (*Step, Context, bool) { return nil, ctx, false })), Weight: 3},
		{Scenario: NewScenario("light", WithStepFn(func(ctx Context) (*Step, Context, bool) { return nil, ctx, false })), Weight: 1},
	}

	out := distributeUsers(ids, specs)

	assert.Len(t, out[0].Scenario.Users, 7)
	assert.Len(t, out[1].Scenario.Users, 3)
}
