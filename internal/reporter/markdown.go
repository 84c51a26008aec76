package reporter

import (
	"fmt"
	"io"

	"github.com/sentra-lab/simcore/internal/engine"
)

type MarkdownReporter struct{}

func NewMarkdownReporter() Reporter {
	return &MarkdownReporter{}
}

func (mr *MarkdownReporter) Report(w io.Writer, summary Summary, results []engine.ScenarioRecord) error {
	fmt.Fprintf(w, "# %s\n\n", summary.Name)
	fmt.Fprintln(w, "## Summary")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "| metric | value |")
	fmt.Fprintln(w, "|---|---|")
	fmt.Fprintf(w, "| scenarios | %d |\n", summary.TotalScenarios)
	fmt.Fprintf(w, "| requests | %d |\n", summary.TotalRequests)
	fmt.Fprintf(w, "| failed | %d (%.2f%%) |\n", summary.FailedRequests, summary.FailureRate()*100)
	fmt.Fprintf(w, "| p50 | %s |\n", summary.P50Latency)
	fmt.Fprintf(w, "| p95 | %s |\n", summary.P95Latency)
	fmt.Fprintf(w, "| p99 | %s |\n", summary.P99Latency)
	fmt.Fprintf(w, "| max | %s |\n", summary.MaxLatency)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "## Scenarios")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "| scenario | user | steps | failed |")
	fmt.Fprintln(w, "|---|---|---|---|")
	for _, rec := range results {
		failed := 0
		for _, req := range rec.Requests {
			if !req.Result {
				failed++
			}
		}
		fmt.Fprintf(w, "| %s | %s | %d | %d |\n", rec.Name, rec.UserID, len(rec.Requests), failed)
	}

	return nil
}

type HTMLReporter struct{}

func NewHTMLReporter() Reporter {
	return &HTMLReporter{}
}

func (hr *HTMLReporter) Report(w io.Writer, summary Summary, results []engine.ScenarioRecord) error {
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>%s</title>
    <style>
        body { font-family: system-ui; max-width: 1200px; margin: 0 auto; padding: 20px; }
        .header { background: #7D56F4; color: white; padding: 20px; border-radius: 8px; }
        .summary { background: #f5f5f5; padding: 20px; margin: 20px 0; border-radius: 8px; }
        .result { padding: 10px; margin: 10px 0; border-left: 4px solid #7D56F4; }
        .passed { border-left-color: #04B575; }
        .failed { border-left-color: #FF0000; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
    </div>
    <div class="summary">
        <h2>Summary</h2>
        <p>scenarios: %d, requests: %d, failed: %d (%.2f%%)</p>
        <p>p50: %s, p95: %s, p99: %s, max: %s</p>
    </div>
    <div class="results">
        <h2>Scenarios</h2>
`, summary.Name, summary.Name, summary.TotalScenarios, summary.TotalRequests, summary.FailedRequests, summary.FailureRate()*100,
		summary.P50Latency, summary.P95Latency, summary.P99Latency, summary.MaxLatency)

	for _, rec := range results {
		failed := 0
		for _, req := range rec.Requests {
			if !req.Result {
				failed++
			}
		}
		class := "passed"
		if failed > 0 {
			class = "failed"
		}
		fmt.Fprintf(w, "        <div class=\"result %s\">%s [%s] steps=%d failed=%d</div>\n", class, rec.Name, rec.UserID, len(rec.Requests), failed)
	}

	fmt.Fprintln(w, `    </div>
</body>
</html>`)
	return nil
}
