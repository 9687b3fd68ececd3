package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/txscope/internal/model"
)

func TestGetTheme(t *testing.T) {
	assert.Equal(t, "catppuccin-mocha", GetTheme("catppuccin-mocha").Name)
	assert.Equal(t, "default", GetTheme("default").Name)
	assert.Equal(t, "default", GetTheme("unknown").Name)
}

func TestStatusStyle(t *testing.T) {
	theme := Default

	assert.Equal(t, theme.Success, theme.StatusStyle(model.StatusConfirmed).GetForeground())
	assert.Equal(t, theme.Error, theme.StatusStyle(model.StatusFailed).GetForeground())
	assert.Equal(t, theme.Warning, theme.StatusStyle(model.StatusPending).GetForeground())
}

func TestStatusIcon(t *testing.T) {
	assert.Equal(t, "✓", StatusIcon(model.StatusConfirmed))
	assert.Equal(t, "✗", StatusIcon(model.StatusFailed))
	assert.Equal(t, "…", StatusIcon(model.StatusPending))
	assert.Equal(t, "?", StatusIcon("weird"))
}
