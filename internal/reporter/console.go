package reporter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/sentra-lab/simcore/internal/engine"
	"github.com/sentra-lab/simcore/internal/ui"
)

// ConsoleReporter renders a human-readable summary in the CLI's
// ANSI-boxed style.
type ConsoleReporter struct {
	verbose bool
}

func NewConsoleReporter(verbose bool) Reporter {
	return &ConsoleReporter{verbose: verbose}
}

func (cr *ConsoleReporter) Report(w io.Writer, summary Summary, results []engine.ScenarioRecord) error {
	fmt.Fprintln(w, "\n━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintf(w, "Run: %s\n", summary.Name)
	fmt.Fprintln(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintf(w, "scenarios:  %d\n", summary.TotalScenarios)
	fmt.Fprintf(w, "requests:   %d (%d failed, %.2f%%)\n", summary.TotalRequests, summary.FailedRequests, summary.FailureRate()*100)
	fmt.Fprintf(w, "latency:    mean=%s p50=%s p95=%s p99=%s max=%s\n",
		summary.MeanLatency, summary.P50Latency, summary.P95Latency, summary.P99Latency, summary.MaxLatency)
	fmt.Fprintf(w, "duration:   %s\n", summary.End.Sub(summary.Start))

	if !cr.verbose {
		return nil
	}

	fmt.Fprintln(w, "\nscenario detail:")
	t := ui.NewTable([]string{"scenario", "user", "steps", "failed"})
	for _, rec := range results {
		failed := 0
		for _, req := range rec.Requests {
			if !req.Result {
				failed++
			}
		}
		t.AddRow([]string{rec.Name, rec.UserID, strconv.Itoa(len(rec.Requests)), strconv.Itoa(failed)})
	}
	fmt.Fprintln(w, t.Render())
	return nil
}
