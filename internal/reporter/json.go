package reporter

import (
	"encoding/json"
	"io"

	"github.com/sentra-lab/simcore/internal/engine"
)

type JSONReporter struct{}

func NewJSONReporter() Reporter {
	return &JSONReporter{}
}

// jsonDocument is the on-disk shape cmd/simcore replay reads back and
// cmd/simcore cloud push uploads as-is: a saved run's summary alongside
// its raw records.
type jsonDocument struct {
	Summary Summary                 `json:"summary"`
	Results []engine.ScenarioRecord `json:"results"`
}

func (jr *JSONReporter) Report(w io.Writer, summary Summary, results []engine.ScenarioRecord) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonDocument{Summary: summary, Results: results})
}

// LoadJSON reads back a document written by JSONReporter.Report, for
// cmd/simcore replay, which re-renders a saved run rather than producing
// one.
func LoadJSON(r io.Reader) (Summary, []engine.ScenarioRecord, error) {
	var doc jsonDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Summary{}, nil, err
	}
	return doc.Summary, doc.Results, nil
}
