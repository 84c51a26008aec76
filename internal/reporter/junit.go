package reporter

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/sentra-lab/simcore/internal/engine"
)

type JUnitReporter struct{}

func NewJUnitReporter() Reporter {
	return &JUnitReporter{}
}

// Report maps one ScenarioRecord (one user's run through one scenario) to
// one JUnit testcase, and one failed RequestRecord inside it to that
// testcase's failure.
func (jr *JUnitReporter) Report(w io.Writer, summary Summary, results []engine.ScenarioRecord) error {
	suite := JUnitTestSuite{
		Name:      summary.Name,
		Tests:     len(results),
		Time:      summary.End.Sub(summary.Start).Seconds(),
		Timestamp: time.Now().Format(time.RFC3339),
		TestCases: make([]JUnitTestCase, 0, len(results)),
	}

	for _, rec := range results {
		tc := JUnitTestCase{
			Name:      fmt.Sprintf("%s[%s]", rec.Name, rec.UserID),
			ClassName: rec.Name,
			Time:      rec.End.Sub(rec.Start).Seconds(),
		}
		for _, req := range rec.Requests {
			if req.Result {
				continue
			}
			suite.Failures++
			msg := "request failed"
			if req.Exception != nil {
				suite.Errors++
				msg = req.Exception.Error()
			}
			tc.Failure = &JUnitFailure{
				Message: msg,
				Type:    req.Name,
				Content: msg,
			}
			break
		}
		suite.TestCases = append(suite.TestCases, tc)
	}

	data, err := xml.MarshalIndent(suite, "", "  ")
	if err != nil {
		return err
	}

	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

type JUnitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Errors    int             `xml:"errors,attr"`
	Time      float64         `xml:"time,attr"`
	Timestamp string          `xml:"timestamp,attr"`
	TestCases []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Content string `xml:",chardata"`
}
