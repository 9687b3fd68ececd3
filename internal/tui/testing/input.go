package testing

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Key builds a message for a special key such as tea.KeyEnter.
func Key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// KeyPress builds a message for printable input. Multi-rune strings arrive as one
// paste-like message; use Type for keystroke-by-keystroke input.
func KeyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// Type splits text into one message per rune.
func Type(text string) []tea.Msg {
	var msgs []tea.Msg
	for _, r := range text {
		msgs = append(msgs, KeyPress(string(r)))
	}
	return msgs
}

func KeyEnter() tea.KeyMsg    { return Key(tea.KeyEnter) }
func KeyEsc() tea.KeyMsg      { return Key(tea.KeyEsc) }
func KeyTab() tea.KeyMsg      { return Key(tea.KeyTab) }
func KeyShiftTab() tea.KeyMsg { return Key(tea.KeyShiftTab) }
func KeyDown() tea.KeyMsg     { return Key(tea.KeyDown) }
func KeyRight() tea.KeyMsg    { return Key(tea.KeyRight) }
func KeyCtrlC() tea.KeyMsg    { return Key(tea.KeyCtrlC) }
