package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/txscope/internal/common"
	"github.com/Veraticus/txscope/internal/format"
	"github.com/Veraticus/txscope/internal/model"
	"github.com/Veraticus/txscope/internal/pipeline"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.mode {
	case modeDetail:
		body = m.detail.View()
	case modeCreate:
		body = m.form.View()
	default:
		body = m.renderBrowse()
	}

	sections := []string{m.renderHeader(), body}
	if t := m.renderToast(); t != "" {
		sections = append(sections, t)
	}
	if m.mode == modeBrowse {
		sections = append(sections, m.help.View(m.keymap))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title line with the sync state.
func (m Model) renderHeader() string {
	title := m.theme.Title.Render("txscope")
	source := m.theme.Faint.Render("[" + m.config.SourceLabel + "]")

	var status string
	switch {
	case m.loading:
		status = m.spinner.View() + " " + m.theme.Faint.Render("Loading transactions…")
	case m.exporting:
		status = m.spinner.View() + " " + m.theme.Faint.Render("Exporting…")
	case m.fromCache:
		status = m.theme.StatusWarning.Render("cached snapshot")
		if !m.lastSync.IsZero() {
			status += m.theme.Faint.Render(" from " + format.Age(m.config.Clock.Now(), m.lastSync, true))
		}
	case m.lastErr != nil:
		status = m.theme.StatusError.Render("load failed")
	case !m.lastSync.IsZero():
		status = m.theme.Faint.Render("synced " + format.Age(m.config.Clock.Now(), m.lastSync, true))
	}

	return strings.Join([]string{title, source, status}, " ")
}

// renderBrowse renders filters, table, pager and stats.
func (m Model) renderBrowse() string {
	view := m.controller.View()

	sections := []string{
		m.renderFilterBar(),
		m.renderSortBar(),
		"",
	}

	if empty := m.renderEmptyState(view); empty != "" {
		sections = append(sections, m.theme.Box.Render(empty))
	} else {
		sections = append(sections, m.table.View(), m.renderPager(view))
	}

	sections = append(sections, m.stats.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderEmptyState(view pipeline.View) string {
	switch {
	case m.loading && !m.loaded:
		return m.spinner.View() + " Loading transactions…"
	case view.TotalCount == 0 && m.lastErr != nil:
		return m.theme.StatusError.Render("Could not load transactions: "+common.UserMessage(m.lastErr)) +
			"\n" + m.theme.Faint.Render("Press r to retry.")
	case view.TotalCount == 0:
		return m.theme.Faint.Render("No transactions yet.")
	case view.FilteredCount == 0:
		return m.theme.Faint.Render("No transactions match the current filters. Press c to clear them.")
	default:
		return ""
	}
}

func (m Model) renderFilterBar() string {
	state := m.controller.State()
	label := m.theme.Bold.Render

	search := m.theme.Faint.Render("/ to search")
	switch {
	case m.mode == modeSearch:
		search = m.searchInput.View()
	case m.searchInput.Value() != "":
		search = m.theme.Normal.Render(m.searchInput.Value())
		if m.debouncer.Pending() {
			search += m.theme.Faint.Render(" …")
		}
	}

	statuses := make([]string, 0, 3)
	for i, st := range model.AllStatuses() {
		text := fmt.Sprintf("%d %s", i+1, st.Title())
		if state.HasStatus(st) {
			statuses = append(statuses, m.theme.StatusStyle(st).Render("["+text+"]"))
		} else {
			statuses = append(statuses, m.theme.Faint.Render(" "+text+" "))
		}
	}

	return strings.Join([]string{
		label("Search:") + " " + search,
		label("Status:") + " " + strings.Join(statuses, " "),
		label("From:") + " " + m.renderDate(modeDateFrom, state.DateFrom),
		label("To:") + " " + m.renderDate(modeDateTo, state.DateTo),
	}, "   ")
}

func (m Model) renderDate(target mode, value *time.Time) string {
	if m.mode == target {
		return m.dateInput.View()
	}
	if value == nil {
		return m.theme.Faint.Render("any")
	}
	return m.theme.Normal.Render(value.Format("2006-01-02"))
}

func (m Model) renderSortBar() string {
	state := m.controller.State()

	arrow := "↓"
	if state.SortDirection == pipeline.Ascending {
		arrow = "↑"
	}

	return m.theme.Faint.Render(fmt.Sprintf("Sort: %s %s   Per page: %d",
		format.Capitalize(string(state.SortField)), arrow, state.ItemsPerPage))
}

// renderPager renders the page window, e.g. "‹ 1 2 [3] 4 5 ›  Page 3 of 9".
func (m Model) renderPager(view pipeline.View) string {
	parts := make([]string, 0, len(view.PageWindow)+2)

	prev := m.theme.Faint.Render("‹")
	if view.CurrentPage > 1 {
		prev = m.theme.Normal.Render("‹")
	}
	parts = append(parts, prev)

	for _, p := range view.PageWindow {
		if p == view.CurrentPage {
			parts = append(parts, m.theme.Selected.Render("["+strconv.Itoa(p)+"]"))
		} else {
			parts = append(parts, m.theme.Normal.Render(strconv.Itoa(p)))
		}
	}

	next := m.theme.Faint.Render("›")
	if view.CurrentPage < view.TotalPages {
		next = m.theme.Normal.Render("›")
	}
	parts = append(parts, next)

	return strings.Join(parts, " ") + "  " +
		m.theme.Faint.Render(fmt.Sprintf("Page %d of %d", view.CurrentPage, view.TotalPages))
}

func (m Model) renderToast() string {
	if m.toast.text == "" {
		return ""
	}
	switch m.toast.kind {
	case toastSuccess:
		return m.theme.StatusSuccess.Render("✓ " + m.toast.text)
	case toastWarning:
		return m.theme.StatusWarning.Render("! " + m.toast.text)
	case toastError:
		return m.theme.StatusError.Render("✗ " + m.toast.text)
	default:
		return m.theme.StatusInfo.Render(m.toast.text)
	}
}
