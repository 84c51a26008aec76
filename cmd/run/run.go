// Package run implements "simcore run": loading a run descriptor,
// driving it through the engine, and rendering the result.
package run

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sentra-lab/simcore/internal/config"
	"github.com/sentra-lab/simcore/internal/engine"
	"github.com/sentra-lab/simcore/internal/errorsink"
	"github.com/sentra-lab/simcore/internal/metrics"
	"github.com/sentra-lab/simcore/internal/reporter"
	"github.com/sentra-lab/simcore/internal/steplib"
	"github.com/sentra-lab/simcore/internal/ui"
	"github.com/sentra-lab/simcore/internal/utils"
	"github.com/spf13/cobra"
)

type runCommand struct {
	logger      *utils.Logger
	verbose     bool
	watch       bool
	metricsAddr string
}

func NewRunCommand(logger *utils.Logger) *cobra.Command {
	rc := &runCommand{logger: logger}

	cmd := &cobra.Command{
		Use:   "run <run.yaml>",
		Short: "Drive a run descriptor against its target",
		Long: `Loads a run descriptor, builds the default HTTP scenario against
target.url, and drives it through the simulation engine.

Example:
  simcore run run.yaml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: rc.run,
	}

	cmd.Flags().BoolVar(&rc.verbose, "verbose", false, "Print a per-scenario breakdown in console output")
	cmd.Flags().BoolVar(&rc.watch, "watch", false, "Show a live dashboard instead of console output while the run is in flight")
	cmd.Flags().StringVar(&rc.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (overrides the descriptor's metrics.addr)")

	return cmd
}

func (rc *runCommand) run(cmd *cobra.Command, args []string) error {
	loader, err := config.NewLoader(args[0])
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	sink := errorsink.NewFileSink(cfg.Reporting.ErrorFile)
	defer sink.Close()

	addr := cfg.Metrics.Addr
	if rc.metricsAddr != "" {
		addr = rc.metricsAddr
	}
	metricsEnabled := cfg.Metrics.Enabled || rc.metricsAddr != ""
	if metricsEnabled {
		srv := &http.Server{Addr: addr, Handler: promhttp.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				rc.logger.Error(fmt.Sprintf("metrics server: %v", err))
			}
		}()
		defer srv.Close()
		rc.logger.Info(fmt.Sprintf("metrics listening on %s", addr))
	}

	sim := engine.NewScenario(cfg.Name,
		engine.WithSteps(
			steplib.Get(cfg.Name+"-request", cfg.Target.URL),
		),
	)

	opts := engine.SimulationOptions{
		Concurrency:    cfg.Simulation.Concurrency,
		Requests:       cfg.Simulation.Requests,
		Duration:       cfg.DurationValue(),
		TimeoutPerStep: cfg.TimeoutPerStepValue(),
		ErrorSink:      sink,
		Distribution:   buildDistribution(cfg.Simulation.Ramp),
	}
	if n := cfg.Simulation.Users; n > 0 {
		opts.Users = make([]string, n)
		for i := range opts.Users {
			opts.Users[i] = fmt.Sprint(i)
		}
	}
	if metricsEnabled {
		runner := engine.ChooseRunner(&opts)
		start := time.Now()
		concurrency := opts.Concurrency
		if len(opts.Users) > 0 {
			concurrency = len(opts.Users)
		}
		opts.StatsSink = func(state *engine.SharedState) {
			go pollStats(cmd.Context(), cfg.Name, state, runner, opts.Distribution, concurrency, start)
		}
	}

	simulation := &engine.Simulation{
		Name:      cfg.Name,
		Scenarios: []*engine.ScenarioSpec{{Scenario: sim, Weight: 1}},
	}

	records, err := engine.Run(cmd.Context(), simulation, opts)
	if err != nil {
		return fmt.Errorf("start run: %w", err)
	}

	results, err := rc.collect(cmd.Context(), cfg, records)
	if err != nil {
		return err
	}

	summary := reporter.Summarize(cfg.Name, results)
	rep := chooseReporter(cfg.Reporting.Format, rc.verbose)

	out := os.Stdout
	if cfg.Reporting.OutFile != "" {
		f, err := os.Create(cfg.Reporting.OutFile)
		if err != nil {
			return fmt.Errorf("create out file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := rep.Report(out, summary, results); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if summary.FailedRequests > 0 {
		return fmt.Errorf("run completed with %d failed request(s)", summary.FailedRequests)
	}
	return nil
}

// collect drains records into a slice, optionally tee-ing them to a live
// dashboard first: the dashboard consumes the channel directly, so when
// --watch is set the run command re-forwards each record into its own
// buffered relay instead of handing the TUI and the collector the same
// channel.
func (rc *runCommand) collect(ctx context.Context, cfg *config.Config, records <-chan engine.ScenarioRecord) ([]engine.ScenarioRecord, error) {
	if !rc.watch {
		return drain(records), nil
	}

	relay := make(chan engine.ScenarioRecord, 64)
	dashboardFeed := make(chan engine.ScenarioRecord, 64)
	go func() {
		defer close(relay)
		defer close(dashboardFeed)
		for rec := range records {
			relay <- rec
			dashboardFeed <- rec
		}
	}()

	model := ui.NewDashboardModel(cfg.Name, dashboardFeed)
	errCh := make(chan error, 1)
	go func() { errCh <- ui.RunUI(model) }()

	results := drain(relay)
	if err := <-errCh; err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return results, nil
}

func drain(records <-chan engine.ScenarioRecord) []engine.ScenarioRecord {
	var results []engine.ScenarioRecord
	for rec := range records {
		for _, req := range rec.Requests {
			metrics.ObserveStep(rec.Name, req.Name, req.End.Sub(req.Start).Seconds())
		}
		results = append(results, rec)
	}
	return results
}

// pollStats samples a running simulation's SharedState for the
// concurrent-scenarios and ramp-target gauges until ctx is done; the
// engine has no notion of Prometheus, so this is the only place those
// gauges get fed.
// The ramp-target gauge is recomputed here with the same formula as the
// engine's own Shaper.Deficit, since the Shaper itself is scoped inside
// the engine with no exported handle.
func pollStats(ctx context.Context, scenario string, state *engine.SharedState, runner engine.Runner, dist engine.DistributionFn, concurrency int, start time.Time) {
	ticker := time.NewTicker(rampStatsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.SetConcurrency(state.ConcurrentScenarios())
			if dist != nil {
				progress := runner.Progress(state.SentRequests(), start)
				target := float64(concurrency) * dist(progress, nil)
				metrics.SetRampTarget(scenario, target)
			}
		}
	}
}

const rampStatsInterval = 250 * time.Millisecond

func buildDistribution(ramp string) engine.DistributionFn {
	switch ramp {
	case "linear":
		return engine.Linear
	case "up-down":
		return engine.RampUpDown(0.25, 0.25)
	default:
		return nil
	}
}

func chooseReporter(format string, verbose bool) reporter.Reporter {
	switch format {
	case "json":
		return reporter.NewJSONReporter()
	case "junit":
		return reporter.NewJUnitReporter()
	case "markdown":
		return reporter.NewMarkdownReporter()
	case "html":
		return reporter.NewHTMLReporter()
	default:
		return reporter.NewConsoleReporter(verbose)
	}
}
