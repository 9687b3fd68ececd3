package testing

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Collect runs cmd and returns the messages it produces, expanding batches. Commands
// that block longer than timeout, such as channel listeners, are abandoned.
func Collect(cmd tea.Cmd, timeout time.Duration) []tea.Msg {
	if cmd == nil {
		return nil
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(timeout):
		return nil
	}

	switch msg := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, Collect(c, timeout)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}
