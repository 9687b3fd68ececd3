package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/txscope/internal/format"
	"github.com/Veraticus/txscope/internal/model"
	"github.com/Veraticus/txscope/internal/tui/themes"
)

// TransactionDetailModel represents the transaction detail view.
type TransactionDetailModel struct {
	now         func() time.Time
	explorerURL func(hash string) string
	theme       themes.Theme
	transaction model.Transaction
	width       int
	height      int
}

type detailKeyMap struct {
	CopyHash key.Binding
	CopyLink key.Binding
	Back     key.Binding
}

var detailKeys = detailKeyMap{
	CopyHash: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy hash"),
	),
	CopyLink: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "copy explorer link"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back to list"),
	),
}

// NewTransactionDetailModel creates a detail view for txn. explorerURL may be nil.
func NewTransactionDetailModel(
	txn model.Transaction,
	theme themes.Theme,
	explorerURL func(hash string) string,
	now func() time.Time,
) TransactionDetailModel {
	if now == nil {
		now = time.Now
	}
	return TransactionDetailModel{
		now:         now,
		explorerURL: explorerURL,
		theme:       theme,
		transaction: txn,
	}
}

// Transaction returns the displayed transaction.
func (m TransactionDetailModel) Transaction() model.Transaction {
	return m.transaction
}

// ExplorerLink returns the block explorer URL for the transaction, or "".
func (m TransactionDetailModel) ExplorerLink() string {
	if m.explorerURL == nil {
		return ""
	}
	return m.explorerURL(m.transaction.Hash)
}

// Update handles messages.
func (m TransactionDetailModel) Update(msg tea.Msg) (TransactionDetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, detailKeys.Back):
			return m, func() tea.Msg { return BackToListMsg{} }

		case key.Matches(msg, detailKeys.CopyHash):
			hash := m.transaction.Hash
			return m, func() tea.Msg {
				return CopyRequestMsg{Label: "hash", Value: hash}
			}

		case key.Matches(msg, detailKeys.CopyLink):
			link := m.ExplorerLink()
			if link == "" {
				return m, nil
			}
			return m, func() tea.Msg {
				return CopyRequestMsg{Label: "explorer link", Value: link}
			}
		}
	}

	return m, nil
}

// View renders the transaction detail view.
func (m TransactionDetailModel) View() string {
	txn := m.transaction
	at, ok := txn.EffectiveTime()

	labelStyle := m.theme.Bold.
		Width(18).
		Align(lipgloss.Right)

	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(label+": "),
			m.theme.Normal.Render(value),
		)
	}

	status := m.theme.StatusStyle(txn.Status).Render(themes.StatusIcon(txn.Status) + " " + txn.Status.Title())

	lines := []string{
		row("Hash", orNA(txn.Hash)),
		row("From", orNA(format.ChecksumAddress(txn.FromAddress))),
		row("To", orNA(format.ChecksumAddress(txn.ToAddress))),
		row("Amount", format.AmountFixed6(txn.Amount)),
		lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render("Status: "), status),
		row("Gas limit", format.Gas(txn.GasLimit)),
		row("Gas price", orNA(txn.GasPrice)),
		row("Transaction fee", format.Fee(txn.GasLimit, txn.GasPrice)),
		row("Time", format.FullTimestamp(at, ok)),
		row("Age", format.Age(m.now(), at, ok)),
	}
	if link := m.ExplorerLink(); link != "" {
		lines = append(lines, row("Explorer", link))
	}

	actions := []string{"y copy hash"}
	if m.ExplorerLink() != "" {
		actions = append(actions, "o copy explorer link")
	}
	actions = append(actions, "esc back")

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("Transaction "+format.ShortHash(txn.Hash)),
		"",
		strings.Join(lines, "\n"),
		"",
		m.theme.Faint.Render(strings.Join(actions, " • ")),
	)

	box := m.theme.RoundedBox
	if m.width > 4 {
		box = box.MaxWidth(m.width)
	}
	return box.Render(content)
}

// Resize updates the component dimensions.
func (m *TransactionDetailModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func orNA(s string) string {
	if s == "" {
		return format.NotAvailable
	}
	return s
}
