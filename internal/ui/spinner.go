package ui

import (
	"fmt"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sentra-lab/simcore/internal/engine"
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// timelineEntry flattens a saved run's RequestRecords into a single
// chronological list for step-by-step replay.
type timelineEntry struct {
	scenario string
	userID   string
	req      engine.RequestRecord
}

// ReplayModel steps through a previously-saved run's requests in
// recorded order, one at a time or auto-advancing at a fixed interval --
// cmd/simcore replay's interactive mode. This re-renders a saved report;
// it never re-executes requests, so navigation is read-only.
type ReplayModel struct {
	timeline   []timelineEntry
	currentIdx int
	paused     bool
	width      int
	height     int
}

func NewReplayModel(records []engine.ScenarioRecord) *ReplayModel {
	var timeline []timelineEntry
	for _, rec := range records {
		for _, req := range rec.Requests {
			timeline = append(timeline, timelineEntry{scenario: rec.Name, userID: rec.UserID, req: req})
		}
	}
	sort.Slice(timeline, func(i, j int) bool { return timeline[i].req.Start.Before(timeline[j].req.Start) })

	return &ReplayModel{timeline: timeline, paused: true}
}

func (m *ReplayModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(), tea.EnterAltScreen)
}

func (m *ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "left":
			if m.currentIdx > 0 {
				m.currentIdx--
			}
		case "right":
			if m.currentIdx < len(m.timeline)-1 {
				m.currentIdx++
			}
		}

	case tickMsg:
		if !m.paused && m.currentIdx < len(m.timeline)-1 {
			m.currentIdx++
		}
		return m, tickCmd()
	}

	return m, nil
}

func (m *ReplayModel) View() string {
	header := FormatHeader(" Replay ")

	content := "\n\n"
	if len(m.timeline) == 0 {
		content += FormatInfo("no requests recorded in this run") + "\n"
	} else {
		e := m.timeline[m.currentIdx]
		content += FormatInfo(fmt.Sprintf("event %d/%d", m.currentIdx+1, len(m.timeline))) + "\n\n"
		content += fmt.Sprintf("scenario: %s\n", e.scenario)
		content += fmt.Sprintf("user:     %s\n", e.userID)
		content += fmt.Sprintf("step:     %s\n", e.req.Name)
		content += fmt.Sprintf("duration: %s\n", e.req.End.Sub(e.req.Start))
		if e.req.Result {
			content += FormatSuccess("passed") + "\n"
		} else {
			content += FormatError("failed") + "\n"
			if e.req.Exception != nil {
				content += fmt.Sprintf("  %s\n", e.req.Exception)
			}
		}
	}
	content += "\n"

	statusBar := FormatStatusBar("[←/→] Step  [Space] Play/Pause  [Q] Quit", "", m.width)

	return header + content + statusBar
}

func RunReplayUI(model *ReplayModel) error {
	return RunUI(model)
}

// ComparisonModel shows two saved Summaries side by side, useful for
// comparing a run against a previous baseline.
type ComparisonModel struct {
	nameA, nameB string
	summaryA     fmt.Stringer
	summaryB     fmt.Stringer
	width        int
	height       int
}

func NewComparisonModel(nameA string, summaryA fmt.Stringer, nameB string, summaryB fmt.Stringer) *ComparisonModel {
	return &ComparisonModel{nameA: nameA, summaryA: summaryA, nameB: nameB, summaryB: summaryB}
}

func (m *ComparisonModel) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (m *ComparisonModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
	}

	return m, nil
}

func (m *ComparisonModel) View() string {
	header := FormatHeader(" Run Comparison ")

	content := "\n\n"
	content += fmt.Sprintf("%s: %s\n\n", m.nameA, m.summaryA)
	content += fmt.Sprintf("%s: %s\n", m.nameB, m.summaryB)

	statusBar := FormatStatusBar("[Q] Quit", "", m.width)

	return header + content + statusBar
}

func RunComparisonUI(model *ComparisonModel) error {
	return RunUI(model)
}
