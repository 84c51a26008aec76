package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sentra-lab/simcore/internal/engine"
)

// DashboardModel is a bubbletea Model driven by a simulation's live output
// channel: each received ScenarioRecord updates running totals, no
// polling of a remote status endpoint required.
type DashboardModel struct {
	name      string
	records   <-chan engine.ScenarioRecord
	width     int
	height    int
	startTime time.Time

	scenarios int64
	requests  int64
	failed    int64
	done      bool
}

func NewDashboardModel(name string, records <-chan engine.ScenarioRecord) *DashboardModel {
	return &DashboardModel{
		name:      name,
		records:   records,
		startTime: time.Now(),
	}
}

// recordMsg wraps one ScenarioRecord pulled off the channel.
type recordMsg struct {
	rec engine.ScenarioRecord
	ok  bool
}

func (m *DashboardModel) waitForRecord() tea.Cmd {
	return func() tea.Msg {
		rec, ok := <-m.records
		return recordMsg{rec: rec, ok: ok}
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.waitForRecord(), tea.EnterAltScreen)
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case recordMsg:
		if !msg.ok {
			m.done = true
			return m, nil
		}
		m.scenarios++
		for _, req := range msg.rec.Requests {
			m.requests++
			if !req.Result {
				m.failed++
			}
		}
		return m, m.waitForRecord()
	}

	return m, nil
}

func (m *DashboardModel) View() string {
	var b strings.Builder

	status := "running"
	if m.done {
		status = "complete"
	}
	header := FormatHeader(fmt.Sprintf(" %s — %s (%s) ", m.name, status, formatDuration(time.Since(m.startTime))))
	b.WriteString(header)
	b.WriteString("\n\n")

	failRate := 0.0
	if m.requests > 0 {
		failRate = float64(m.failed) / float64(m.requests) * 100
	}

	b.WriteString(fmt.Sprintf("scenarios completed: %d\n", m.scenarios))
	b.WriteString(fmt.Sprintf("requests dispatched: %d\n", m.requests))

	failStyle := successStyle
	if m.failed > 0 {
		failStyle = errorStyle
	}
	b.WriteString(failStyle.Render(fmt.Sprintf("failed:              %d (%.1f%%)\n", m.failed, failRate)))
	b.WriteString("\n")

	if m.done {
		b.WriteString(FormatSuccess("run finished — press q to exit"))
	} else {
		b.WriteString(FormatInfo("streaming..."))
	}
	b.WriteString("\n\n")

	b.WriteString(FormatStatusBar("[Ctrl+C] Stop", "", m.width))

	return b.String()
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return d.String()
}
