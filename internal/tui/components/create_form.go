package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/txscope/internal/model"
	"github.com/Veraticus/txscope/internal/tui/themes"
	"github.com/Veraticus/txscope/internal/validate"
)

// Create form field keys, matching the validate field names.
const (
	FieldFrom     = "fromAddress"
	FieldTo       = "toAddress"
	FieldAmount   = "amount"
	FieldGasLimit = "gasLimit"
	FieldGasPrice = "gasPrice"
)

type formField struct {
	key   string
	label string
	input textinput.Model
}

// CreateFormModel collects and validates a new transaction.
type CreateFormModel struct {
	errors      map[string]error
	submitError error
	theme       themes.Theme
	fields      []formField
	focus       int
	submitting  bool
}

type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

var formKeys = formKeyMap{
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter", "ctrl+s"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// NewCreateForm creates an empty form with the first field focused.
func NewCreateForm(theme themes.Theme) CreateFormModel {
	newInput := func(placeholder string, limit int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		ti.Width = 44
		return ti
	}

	m := CreateFormModel{
		theme:  theme,
		errors: map[string]error{},
		fields: []formField{
			{key: FieldFrom, label: "From address", input: newInput("0x…", 42)},
			{key: FieldTo, label: "To address", input: newInput("0x…", 42)},
			{key: FieldAmount, label: "Amount", input: newInput("0.0", 40)},
			{key: FieldGasLimit, label: "Gas limit", input: newInput("optional", 20)},
			{key: FieldGasPrice, label: "Gas price", input: newInput("optional", 40)},
		},
	}
	m.fields[0].input.Focus()
	return m
}

// Request returns the current form values, trimmed.
func (m CreateFormModel) Request() model.CreateRequest {
	values := make(map[string]string, len(m.fields))
	for _, f := range m.fields {
		values[f.key] = f.input.Value()
	}
	return validate.Normalize(model.CreateRequest{
		FromAddress: values[FieldFrom],
		ToAddress:   values[FieldTo],
		Amount:      values[FieldAmount],
		GasLimit:    values[FieldGasLimit],
		GasPrice:    values[FieldGasPrice],
	})
}

// SetValue fills a field by key.
func (m *CreateFormModel) SetValue(field, value string) {
	for i := range m.fields {
		if m.fields[i].key == field {
			m.fields[i].input.SetValue(value)
		}
	}
}

// FieldError returns the validation error shown under field.
func (m CreateFormModel) FieldError(field string) error {
	return m.errors[field]
}

// Focused returns the key of the focused field.
func (m CreateFormModel) Focused() string {
	return m.fields[m.focus].key
}

// Submitting reports whether a request is in flight.
func (m CreateFormModel) Submitting() bool {
	return m.submitting
}

// SetSubmitError records a failed submission and re-enables the form.
func (m *CreateFormModel) SetSubmitError(err error) {
	m.submitting = false
	m.submitError = err
}

// Update handles messages.
func (m CreateFormModel) Update(msg tea.Msg) (CreateFormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
		return m, cmd
	}

	if m.submitting {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, formKeys.Cancel):
		return m, func() tea.Msg { return CancelCreateMsg{} }

	case key.Matches(keyMsg, formKeys.Next):
		return m, m.moveFocus(1)

	case key.Matches(keyMsg, formKeys.Prev):
		return m, m.moveFocus(-1)

	case key.Matches(keyMsg, formKeys.Submit):
		return m.submit()
	}

	var cmd tea.Cmd
	m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
	return m, cmd
}

func (m *CreateFormModel) moveFocus(delta int) tea.Cmd {
	m.fields[m.focus].input.Blur()
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	return m.fields[m.focus].input.Focus()
}

// submit validates the form. Errors focus the first failing field; a valid form emits
// SubmitCreateMsg and waits for SetSubmitError or closure by the parent.
func (m CreateFormModel) submit() (CreateFormModel, tea.Cmd) {
	req := m.Request()
	m.submitError = nil
	m.errors = validate.FieldErrors(validate.CreateRequest(req))

	if len(m.errors) > 0 {
		for i, f := range m.fields {
			if _, bad := m.errors[f.key]; bad {
				if i == m.focus {
					break
				}
				m.fields[m.focus].input.Blur()
				m.focus = i
				return m, m.fields[i].input.Focus()
			}
		}
		return m, nil
	}

	m.submitting = true
	return m, func() tea.Msg { return SubmitCreateMsg{Request: req} }
}

// View renders the form.
func (m CreateFormModel) View() string {
	labelStyle := m.theme.Bold.Width(14)
	errStyle := m.theme.StatusError.PaddingLeft(14)

	var b strings.Builder
	for i, f := range m.fields {
		label := f.label
		if i == m.focus {
			label = "› " + label
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), f.input.View()))
		b.WriteString("\n")
		if err := m.errors[f.key]; err != nil {
			b.WriteString(errStyle.Render(err.Error()))
			b.WriteString("\n")
		}
	}

	footer := m.theme.Faint.Render("tab next • shift+tab previous • enter submit • esc cancel")
	switch {
	case m.submitting:
		footer = m.theme.StatusInfo.Render("Submitting…")
	case m.submitError != nil:
		footer = m.theme.StatusError.Render("Create failed: "+m.submitError.Error()) + "\n" + footer
	}

	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("New transaction"),
		"",
		b.String(),
		footer,
	))
}
