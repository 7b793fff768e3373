package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Wicoco/sitemap/checker"
	"github.com/Wicoco/sitemap/result"
)

// CheckProgressMsg wraps one settled-record event from the checker.
type CheckProgressMsg struct {
	Event checker.Event
}

// CheckDoneMsg signals the run has completed.
type CheckDoneMsg struct {
	Results *result.ResultSet
	Report  result.Report
	Err     error
}

// waitForEvent returns a tea.Cmd that reads one event from the checker's
// event channel. When the channel closes, it returns a CheckDoneMsg with nil
// Results (the actual results come from startCheck).
func waitForEvent(ch <-chan checker.Event) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return CheckDoneMsg{}
		}
		return CheckProgressMsg{Event: evt}
	}
}
