// Package cli provides styled terminal output and prompts for the txscope commands.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/txscope/internal/model"
	"github.com/Veraticus/txscope/internal/tui/themes"
)

// Theme is the palette used for command output. It matches the browser's default theme
// so both surfaces color statuses the same way.
var Theme = themes.Default

var (
	successStyle = lipgloss.NewStyle().Foreground(Theme.Success)
	warningStyle = lipgloss.NewStyle().Foreground(Theme.Warning)
	errorStyle   = lipgloss.NewStyle().Foreground(Theme.Error)
	infoStyle    = lipgloss.NewStyle().Foreground(Theme.Info)
	promptStyle  = lipgloss.NewStyle().Bold(true).Foreground(Theme.Primary)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(Theme.Primary)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Theme.Border).
			Padding(1, 2)

	// TableHeaderStyle renders table headers.
	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(Theme.Secondary)
	// TableCellStyle renders table cells.
	TableCellStyle = lipgloss.NewStyle()
)

// Message icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "!"
	InfoIcon    = "i"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return successStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return errorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return warningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return infoStyle.Render(InfoIcon + " " + message)
}

// FormatPrompt formats a prompt label.
func FormatPrompt(prompt string) string {
	return promptStyle.Render(prompt + " → ")
}

// StatusLabel renders a status with its icon in the status color.
func StatusLabel(status model.Status) string {
	return Theme.StatusStyle(status).Render(themes.StatusIcon(status) + " " + status.Title())
}

// RenderBox renders content under a title in a rounded box.
func RenderBox(title, content string) string {
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), content))
}
