package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/txscope/internal/format"
	"github.com/Veraticus/txscope/internal/model"
	"github.com/Veraticus/txscope/internal/tui/themes"
)

// Stats summarizes a filtered collection.
type Stats struct {
	ByStatus    map[model.Status]int
	TotalAmount decimal.Decimal
	Total       int
	Filtered    int
}

// ComputeStats counts statuses and sums amounts over filtered. Unparseable amounts
// count as zero.
func ComputeStats(total int, filtered []model.Transaction) Stats {
	s := Stats{
		ByStatus:    make(map[model.Status]int, 3),
		TotalAmount: decimal.Zero,
		Total:       total,
		Filtered:    len(filtered),
	}
	for _, txn := range filtered {
		s.ByStatus[txn.Status]++
		if d, ok := format.Decimal(txn.Amount); ok {
			s.TotalAmount = s.TotalAmount.Add(d)
		}
	}
	return s
}

// ConfirmedRatio is the share of confirmed transactions, 0 when empty.
func (s Stats) ConfirmedRatio() float64 {
	if s.Filtered == 0 {
		return 0
	}
	return float64(s.ByStatus[model.StatusConfirmed]) / float64(s.Filtered)
}

// StatsPanelModel displays totals for the current filter.
type StatsPanelModel struct {
	theme       themes.Theme
	stats       Stats
	progressBar progress.Model
	width       int
}

// NewStatsPanelModel creates a new stats panel.
func NewStatsPanelModel(theme themes.Theme) StatsPanelModel {
	prog := progress.New(
		progress.WithSolidFill(string(theme.Success)),
		progress.WithWidth(20),
	)
	prog.ShowPercentage = false

	return StatsPanelModel{
		theme:       theme,
		progressBar: prog,
	}
}

// SetStats replaces the displayed figures.
func (m *StatsPanelModel) SetStats(s Stats) {
	m.stats = s
}

// Stats returns the displayed figures.
func (m StatsPanelModel) Stats() Stats {
	return m.stats
}

// Resize updates the panel width.
func (m *StatsPanelModel) Resize(width int) {
	m.width = width
	m.progressBar.Width = min(max(width/4, 10), 30)
}

// View renders the panel as a single line.
func (m StatsPanelModel) View() string {
	s := m.stats

	parts := []string{
		m.theme.Bold.Render(fmt.Sprintf("%d", s.Filtered)) +
			m.theme.Faint.Render(fmt.Sprintf(" of %d transactions", s.Total)),
	}
	for _, st := range model.AllStatuses() {
		parts = append(parts, m.theme.StatusStyle(st).Render(
			fmt.Sprintf("%s %d %s", themes.StatusIcon(st), s.ByStatus[st], st)))
	}
	parts = append(parts, m.theme.Normal.Render("Σ "+s.TotalAmount.StringFixed(6)))

	confirmed := lipgloss.JoinHorizontal(lipgloss.Center,
		m.progressBar.ViewAs(s.ConfirmedRatio()),
		m.theme.Faint.Render(fmt.Sprintf(" %.0f%% confirmed", s.ConfirmedRatio()*100)),
	)
	parts = append(parts, confirmed)

	return strings.Join(parts, m.theme.Faint.Render("  │  "))
}
