package testing

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "hello", StripANSI("\x1b[1;31mhello\x1b[0m"))
	assert.Equal(t, "a b", NormalizeWhitespace("  a \n\t b "))
	assert.True(t, ContainsInOrder("one two three", "one", "three"))
	assert.False(t, ContainsInOrder("one two three", "three", "one"))
}

func TestType(t *testing.T) {
	msgs := Type("ab")

	assert.Len(t, msgs, 2)
	assert.Equal(t, "a", msgs[0].(tea.KeyMsg).String())
	assert.Equal(t, "shift+tab", KeyShiftTab().String())
}

type ping struct{}

func TestCollect(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	cmd := tea.Batch(
		func() tea.Msg { return ping{} },
		func() tea.Msg { <-block; return ping{} },
		nil,
	)

	msgs := Collect(cmd, 50*time.Millisecond)

	assert.Equal(t, []tea.Msg{ping{}}, msgs)
	assert.Nil(t, Collect(nil, time.Millisecond))
}
