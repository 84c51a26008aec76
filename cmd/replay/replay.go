// Package replay implements "simcore replay": re-rendering or
// interactively stepping through a previously saved JSON result set.
// There is nothing to re-execute -- no recorded request/response bodies
// survive a run -- so replay is read-only.
package replay

import (
	"fmt"
	"os"

	"github.com/sentra-lab/simcore/internal/engine"
	"github.com/sentra-lab/simcore/internal/reporter"
	"github.com/sentra-lab/simcore/internal/ui"
	"github.com/sentra-lab/simcore/internal/utils"
	"github.com/spf13/cobra"
)

type replayCommand struct {
	logger  *utils.Logger
	format  string
	compare string
}

func NewReplayCommand(logger *utils.Logger) *cobra.Command {
	rc := &replayCommand{logger: logger}

	cmd := &cobra.Command{
		Use:   "replay <results.json>",
		Short: "Step through or re-render a saved run",
		Long: `Loads a JSON result set written by "simcore run" with a run descriptor
whose reporting.format is json, and either renders it through another reporter format or drives an
interactive step-by-step timeline viewer.

Example:
  simcore replay results.json                  # interactive timeline
  simcore replay results.json --format markdown
  simcore replay results.json --compare other.json`,
		Args: cobra.ExactArgs(1),
		RunE: rc.run,
	}

	cmd.Flags().StringVar(&rc.format, "format", "", "Re-render through this reporter instead of the interactive viewer (console, json, junit, markdown, html)")
	cmd.Flags().StringVar(&rc.compare, "compare", "", "Show this run's summary side by side with another saved run")

	return cmd
}

func (rc *replayCommand) run(cmd *cobra.Command, args []string) error {
	summary, results, err := loadSaved(args[0])
	if err != nil {
		return err
	}

	if rc.compare != "" {
		otherSummary, _, err := loadSaved(rc.compare)
		if err != nil {
			return err
		}
		model := ui.NewComparisonModel(summary.Name, summary, otherSummary.Name, otherSummary)
		return ui.RunComparisonUI(model)
	}

	if rc.format != "" {
		rep := chooseReporter(rc.format)
		return rep.Report(os.Stdout, summary, results)
	}

	model := ui.NewReplayModel(results)
	return ui.RunReplayUI(model)
}

func loadSaved(path string) (reporter.Summary, []engine.ScenarioRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return reporter.Summary{}, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	summary, results, err := reporter.LoadJSON(f)
	if err != nil {
		return reporter.Summary{}, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return summary, results, nil
}

func chooseReporter(format string) reporter.Reporter {
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
		return reporter.NewConsoleReporter(true)
	}
}
