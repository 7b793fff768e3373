// Package tui provides the Bubble Tea terminal UI for the checker,
// displaying live progress tallies and a styled summary of the run.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Wicoco/sitemap/checker"
	"github.com/Wicoco/sitemap/result"
	"github.com/Wicoco/sitemap/sitemap"
)

// Model is the Bubble Tea model for the check TUI.
type Model struct {
	ctx             context.Context
	cancel          context.CancelFunc
	checkerInstance *checker.Checker
	records         []sitemap.URLRecord
	spinner         spinner.Model
	events          <-chan checker.Event

	processed int
	total     int
	tallies   map[result.Bucket]int
	current   string
	quitting  bool
	done      bool
	results   *result.ResultSet
	report    result.Report
	err       error
	width     int
}

// NewModel creates a TUI model wired to the given checker, record list, and
// event channel.
func NewModel(ctx context.Context, cancel context.CancelFunc, chk *checker.Checker, records []sitemap.URLRecord, events <-chan checker.Event) Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		ctx:             ctx,
		cancel:          cancel,
		checkerInstance: chk,
		records:         records,
		spinner:         spin,
		events:          events,
		total:           len(records),
		tallies:         map[result.Bucket]int{},
	}
}

// Init starts the spinner, the check run, and the event listener concurrently.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startCheck(), waitForEvent(m.events))
}

// startCheck returns a tea.Cmd that runs the checker and sends CheckDoneMsg.
func (m Model) startCheck() tea.Cmd {
	return func() tea.Msg {
		rs := m.checkerInstance.Run(m.ctx, m.records)
		rep := result.BuildReport(rs, m.checkerInstance.Config().SlowThreshold)
		return CheckDoneMsg{Results: rs, Report: rep}
	}
}

// Update handles messages from the Bubble Tea runtime.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case CheckProgressMsg:
		m.processed = msg.Event.Processed
		m.current = msg.Event.URL
		m.tallies[msg.Event.Bucket]++
		return m, waitForEvent(m.events)

	case CheckDoneMsg:
		m.done = true
		m.results = msg.Results
		m.report = msg.Report
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the current TUI state.
func (m Model) View() string {
	if m.done && m.results != nil {
		return RenderSummary(m.results, m.report)
	}
	if m.done && m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}
	return fmt.Sprintf("%s Checking %d/%d... ok %d, redirects %d, errors %d, timeouts %d\n%s\n",
		m.spinner.View(), m.processed, m.total,
		m.tallies[result.BucketWorking], m.tallies[result.BucketWarnings],
		m.tallies[result.BucketErrors], m.tallies[result.BucketTimeouts],
		dimStyle.Render("  "+m.current))
}

// Succeeded reports whether the run completed with a passing verdict.
func (m Model) Succeeded() bool {
	return m.done && m.results != nil && m.report.Success
}

// Results returns the completed result set for output formatting.
func (m Model) Results() *result.ResultSet {
	return m.results
}

// Report returns the aggregate report of the completed run.
func (m Model) Report() result.Report {
	return m.report
}
