package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Run is the top-level library entry point: it validates the simulation,
// derives user-ids, runs the simulation-level pre-hook, distributes users
// across scenarios by weight, and merges every scenario's result stream
// into one.
func Run(ctx context.Context, sim *Simulation, opts SimulationOptions) (<-chan ScenarioRecord, error) {
	if err := validateSimulation(sim); err != nil {
		return nil, err
	}

	// Preflight: config validation and any error-sink I/O (e.g. creating
	// its parent directory) are independent checks, fanned out with
	// errgroup so a slow or failing sink doesn't serialize behind
	// validation. Both must pass before any virtual user starts.
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { return validateOptions(&opts) })
	if preparer, ok := opts.ErrorSink.(interface{ Prepare() error }); ok {
		g.Go(preparer.Prepare)
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	userIDs := opts.userIDs()

	simCtx := opts.Context
	if simCtx == nil {
		simCtx = Context{}
	}
	if sim.PreHook != nil {
		simCtx = sim.PreHook(simCtx)
	}
	opts.Context = simCtx

	specs := distributeUsers(userIDs, sim.Scenarios)

	out := runScenarios(ctx, &opts, specs)

	finalCtx := simCtx
	done := make(chan ScenarioRecord, 64)
	go func() {
		defer close(done)
		for rec := range out {
			done <- rec
		}
		if sim.PostHook != nil {
			sim.PostHook(finalCtx)
		}
	}()

	return done, nil
}

// RunScenarios is the lower-level entry point: it skips the
// simulation-level pre-hook and user-id derivation implied by a
// Simulation, running exactly the scenarios given with whatever Users
// each ScenarioSpec's Scenario already carries (or opts.Users/Concurrency
// as a fallback for specs that don't set their own).
func RunScenarios(ctx context.Context, opts SimulationOptions, specs []*ScenarioSpec) (<-chan ScenarioRecord, error) {
	if err := validateOptions(&opts); err != nil {
		return nil, err
	}
	for _, spec := range specs {
		if err := validateScenario(spec.Scenario); err != nil {
			return nil, err
		}
	}
	return runScenarios(ctx, &opts, specs), nil
}

func runScenarios(ctx context.Context, opts *SimulationOptions, specs []*ScenarioSpec) <-chan ScenarioRecord {
	state := NewSharedState()
	if opts.StatsSink != nil {
		opts.StatsSink(state)
	}
	runner := ChooseRunner(opts)
	start := time.Now()

	chans := make([]<-chan ScenarioRecord, 0, len(specs))
	for _, spec := range specs {
		users := spec.Scenario.Users
		if len(users) == 0 {
			users = opts.userIDs()
		}
		shaper := NewShaper(len(users), opts.Distribution, runner, state, start, opts.Context)
		chans = append(chans, scenarioPipeline(ctx, spec.Scenario, users, opts, runner, state, shaper, start))
	}

	return fanIn(ctx, chans)
}

func scenarioPipeline(ctx context.Context, scenario *Scenario, users []string, opts *SimulationOptions, runner Runner, state *SharedState, shaper *Shaper, start time.Time) <-chan ScenarioRecord {
	spawn := func(userID string) <-chan ScenarioRecord {
		out := make(chan ScenarioRecord, 1)
		go func() {
			defer close(out)
			runUserLoop(ctx, scenario, userID, opts, runner, state, opts.ErrorSink, shaper, start, out)
		}()
		return out
	}
	return shaper.Ramp(ctx, users, spawn)
}

func fanIn(ctx context.Context, chans []<-chan ScenarioRecord) <-chan ScenarioRecord {
	merged := make(chan ScenarioRecord, 64)
	done := make(chan struct{}, len(chans))

	for _, ch := range chans {
		ch := ch
		go func() {
			defer func() { done <- struct{}{} }()
			for {
				select {
				case rec, ok := <-ch:
					if !ok {
						return
					}
					select {
					case merged <- rec:
					case <-ctx.Done():
						return
					}
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		for range chans {
			<-done
		}
		close(merged)
	}()

	return merged
}

// distributeUsers assigns user-ids to scenarios proportional to their
// declared weight, in contiguous blocks. A zero weight is treated as 1.
func distributeUsers(userIDs []string, specs []*ScenarioSpec) []*ScenarioSpec {
	if len(specs) == 0 {
		return specs
	}

	totalWeight := 0
	for _, s := range specs {
		w := s.Weight
		if w <= 0 {
			w = 1
		}
		totalWeight += w
	}

	out := make([]*ScenarioSpec, len(specs))
	cursor := 0
	for i, s := range specs {
		w := s.Weight
		if w <= 0 {
			w = 1
		}

		var count int
		if i == len(specs)-1 {
			count = len(userIDs) - cursor
		} else {
			count = len(userIDs) * w / totalWeight
		}
		if count < 0 {
			count = 0
		}
		if cursor+count > len(userIDs) {
			count = len(userIDs) - cursor
		}

		assigned := append([]string(nil), userIDs[cursor:cursor+count]...)
		cursor += count

		scenarioCopy := *s.Scenario
		scenarioCopy.Users = assigned
		out[i] = &ScenarioSpec{Scenario: &scenarioCopy, Weight: s.Weight}
	}
	return out
}

func validateSimulation(sim *Simulation) error {
	if sim == nil {
		return fmt.Errorf("simulation: nil simulation")
	}
	if len(sim.Scenarios) == 0 {
		return fmt.Errorf("simulation %q: at least one scenario is required", sim.Name)
	}
	for _, spec := range sim.Scenarios {
		if err := validateScenario(spec.Scenario); err != nil {
			return err
		}
	}
	return nil
}

func validateScenario(s *Scenario) error {
	if s == nil {
		return fmt.Errorf("scenario: nil scenario")
	}
	if s.Name == "" {
		return fmt.Errorf("scenario: name is required")
	}
	if !s.hasWork() {
		return fmt.Errorf("scenario %q: must declare at least one step or a step-fn", s.Name)
	}
	return nil
}

// validateOptions rejects only genuinely invalid configuration.
// concurrency=0 is valid, if unusual: it simply produces an empty output
// stream that closes cleanly.
func validateOptions(opts *SimulationOptions) error {
	if opts.Concurrency < 0 {
		return fmt.Errorf("options: concurrency must be >= 0")
	}
	return nil
}
