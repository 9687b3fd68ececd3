package components

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/txscope/internal/format"
	"github.com/Veraticus/txscope/internal/model"
	"github.com/Veraticus/txscope/internal/tui/themes"
)

// TransactionTableModel renders one page of transactions and tracks the row cursor.
type TransactionTableModel struct {
	now   func() time.Time
	theme themes.Theme
	rows  []model.Transaction
	table table.Model
	keys  tableKeyMap
	width int
}

type tableKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	First  key.Binding
	Last   key.Binding
	Select key.Binding
}

var tableKeys = tableKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("↓/j", "down"),
	),
	First: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "first row"),
	),
	Last: key.NewBinding(
		key.WithKeys("G"),
		key.WithHelp("G", "last row"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
}

// TransactionSelectedMsg is sent when the highlighted row is opened.
type TransactionSelectedMsg struct {
	Transaction model.Transaction
}

// tableColumns are sized for the shortened hash and address forms.
func tableColumns() []table.Column {
	return []table.Column{
		{Title: "Hash", Width: 16},
		{Title: "From", Width: 12},
		{Title: "To", Width: 12},
		{Title: "Amount", Width: 16},
		{Title: "Status", Width: 11},
		{Title: "Time", Width: 16},
		{Title: "Age", Width: 8},
	}
}

// NewTransactionTable creates an empty table. now is used for the age column.
func NewTransactionTable(theme themes.Theme, now func() time.Time) TransactionTableModel {
	if now == nil {
		now = time.Now
	}

	t := table.New(
		table.WithColumns(tableColumns()),
		table.WithFocused(true),
		table.WithHeight(16),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = theme.Selected
	t.SetStyles(s)

	return TransactionTableModel{
		now:   now,
		theme: theme,
		table: t,
		keys:  tableKeys,
	}
}

// SetRows replaces the displayed page. The cursor is kept when still in range.
func (m *TransactionTableModel) SetRows(transactions []model.Transaction) {
	m.rows = transactions

	now := m.now()
	rows := make([]table.Row, 0, len(transactions))
	for _, txn := range transactions {
		at, ok := txn.EffectiveTime()
		rows = append(rows, table.Row{
			format.ShortHash(txn.Hash),
			format.ShortAddress(txn.FromAddress),
			format.ShortAddress(txn.ToAddress),
			format.AmountFixed6(txn.Amount),
			themes.StatusIcon(txn.Status) + " " + txn.Status.Title(),
			format.Timestamp(at, ok),
			format.Age(now, at, ok),
		})
	}
	m.table.SetRows(rows)

	if cursor := m.table.Cursor(); cursor >= len(rows) || cursor < 0 {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

// Rows returns the displayed page.
func (m TransactionTableModel) Rows() []model.Transaction {
	return m.rows
}

// Selected returns the highlighted transaction.
func (m TransactionTableModel) Selected() (model.Transaction, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.rows) {
		return model.Transaction{}, false
	}
	return m.rows[cursor], true
}

// Cursor returns the index of the highlighted row within the page.
func (m TransactionTableModel) Cursor() int {
	return m.table.Cursor()
}

// Update handles row navigation. Keys it does not own are ignored so the parent can
// bind them.
func (m TransactionTableModel) Update(msg tea.Msg) (TransactionTableModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.table.MoveUp(1)
	case key.Matches(keyMsg, m.keys.Down):
		m.table.MoveDown(1)
	case key.Matches(keyMsg, m.keys.First):
		m.table.GotoTop()
	case key.Matches(keyMsg, m.keys.Last):
		m.table.GotoBottom()
	case key.Matches(keyMsg, m.keys.Select):
		if txn, ok := m.Selected(); ok {
			return m, func() tea.Msg {
				return TransactionSelectedMsg{Transaction: txn}
			}
		}
	}

	return m, nil
}

// Resize updates the table dimensions. height counts the header row.
func (m *TransactionTableModel) Resize(width, height int) {
	m.width = width
	m.table.SetWidth(width)
	m.table.SetHeight(max(3, height))
}

// View renders the table.
func (m TransactionTableModel) View() string {
	return m.table.View()
}

// KeyBindings returns the bindings the table handles, for the help view.
func (m TransactionTableModel) KeyBindings() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.First, m.keys.Last, m.keys.Select}
}
