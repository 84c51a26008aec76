// Package engine implements the concurrent simulation core: the scheduler
// that spawns virtual users, paces their progress through scenario steps,
// enforces per-step timeouts, honors ramp-up/ramp-down concurrency shaping,
// aggregates results, and shuts down cleanly.
package engine

import (
	"strconv"
	"time"
)

// RequestFunc is a user-supplied step body. It must not block forever and
// must not panic for expected failures -- a falsy Result means "this
// request failed", not "something went wrong in the engine".
type RequestFunc func(ctx Context) StepReturn

// StepFn dynamically produces the next Step for a scenario whose steps
// aren't a fixed list. Returning ok=false terminates the walk. Returning a
// nil ctx leaves the walker's current context unchanged.
type StepFn func(ctx Context) (step *Step, next Context, ok bool)

// HookFn transforms a context once per scenario invocation.
type HookFn func(ctx Context) Context

// PostHookFn observes the final context of a scenario invocation.
type PostHookFn func(ctx Context)

// DistributionFn maps simulation progress in [0,1] to a concurrency factor
// in [0, +inf). Values above 1 permit overshoot beyond the nominal
// concurrency.
type DistributionFn func(progress float64, ctx Context) float64

// Step is one unit of work within a Scenario.
type Step struct {
	Name        string
	Request     RequestFunc
	SleepBefore func(ctx Context) time.Duration
}

// Scenario is an ordered workflow of Steps representing what one virtual
// user does. Steps and StepFn may both be set: the walker drains Steps
// first, then consults StepFn until it returns ok=false.
type Scenario struct {
	Name    string
	Steps   []Step
	StepFn  StepFn
	Context Context
	Users   []string

	PreHook  HookFn
	PostHook PostHookFn

	// SkipNextAfterFailure defaults to true via NewScenario.
	SkipNextAfterFailure bool
	AllowEarlyTermination bool
}

// ScenarioOption configures a Scenario built with NewScenario.
type ScenarioOption func(*Scenario)

// NewScenario constructs a Scenario with its default behavior:
// SkipNextAfterFailure=true, AllowEarlyTermination=false.
func NewScenario(name string, opts ...ScenarioOption) *Scenario {
	s := &Scenario{
		Name:                  name,
		SkipNextAfterFailure:  true,
		AllowEarlyTermination: false,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func WithSteps(steps ...Step) ScenarioOption {
	return func(s *Scenario) { s.Steps = append(s.Steps, steps...) }
}

func WithStepFn(fn StepFn) ScenarioOption {
	return func(s *Scenario) { s.StepFn = fn }
}

func WithContext(ctx Context) ScenarioOption {
	return func(s *Scenario) { s.Context = ctx }
}

func WithUsers(users ...string) ScenarioOption {
	return func(s *Scenario) { s.Users = users }
}

func WithPreHook(fn HookFn) ScenarioOption {
	return func(s *Scenario) { s.PreHook = fn }
}

func WithPostHook(fn PostHookFn) ScenarioOption {
	return func(s *Scenario) { s.PostHook = fn }
}

func WithSkipNextAfterFailure(v bool) ScenarioOption {
	return func(s *Scenario) { s.SkipNextAfterFailure = v }
}

func WithAllowEarlyTermination(v bool) ScenarioOption {
	return func(s *Scenario) { s.AllowEarlyTermination = v }
}

// hasWork reports whether the scenario can ever produce a RequestRecord.
func (s *Scenario) hasWork() bool {
	return len(s.Steps) > 0 || s.StepFn != nil
}

// RequestRecord is emitted once per step invocation.
type RequestRecord struct {
	Name          string
	UserID        string
	Start         time.Time
	End           time.Time
	Result        bool
	ContextBefore Context
	ContextAfter  Context
	Exception     error
}

// ScenarioRecord is emitted once per scenario execution by one virtual
// user.
type ScenarioRecord struct {
	Name     string
	UserID   string
	Start    time.Time
	End      time.Time
	Requests []RequestRecord
}

// ErrorSink receives captured step exceptions. A nil sink silently drops
// them (still logged via zerolog inside the engine).
type ErrorSink interface {
	Record(scenarioName, stepName, userID string, err error)
}

// ScenarioSpec pairs a Scenario with its weight for user distribution.
// Weight defaults to 1 when zero.
type ScenarioSpec struct {
	Scenario *Scenario
	Weight   int
}

// Simulation is the top-level object passed to Run.
type Simulation struct {
	Name      string
	Scenarios []*ScenarioSpec
	PreHook   HookFn
	PostHook  PostHookFn
}

// SimulationOptions configures one simulation run.
type SimulationOptions struct {
	Concurrency int
	Users       []string
	Requests    int64
	Duration    time.Duration
	// TimeoutPerStep defaults to 5000ms when zero.
	TimeoutPerStep time.Duration
	Context        Context
	Distribution   DistributionFn
	ErrorSink      ErrorSink

	// StatsSink, if set, is handed the run's SharedState once before any
	// virtual user starts. Callers that want a live concurrency/throughput
	// gauge (a metrics poller, say) read off the pointer at their own
	// cadence; the engine itself never calls back into it.
	StatsSink func(*SharedState)
}

func (o *SimulationOptions) timeout() time.Duration {
	if o.TimeoutPerStep <= 0 {
		return 5000 * time.Millisecond
	}
	return o.TimeoutPerStep
}

func (o *SimulationOptions) userIDs() []string {
	if len(o.Users) > 0 {
		return o.Users
	}
	ids := make([]string, o.Concurrency)
	for i := range ids {
		ids[i] = strconv.Itoa(i)
	}
	return ids
}
