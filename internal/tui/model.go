// Package tui implements the interactive transaction browser.
package tui

import (
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/txscope/internal/common"
	"github.com/Veraticus/txscope/internal/debounce"
	"github.com/Veraticus/txscope/internal/model"
	"github.com/Veraticus/txscope/internal/pipeline"
	"github.com/Veraticus/txscope/internal/tui/components"
	"github.com/Veraticus/txscope/internal/tui/themes"
)

// mode is the screen or input that currently receives keys.
type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeDateFrom
	modeDateTo
	modeDetail
	modeCreate
)

// sortCycle is the order the sort key steps through.
var sortCycle = []pipeline.SortField{
	pipeline.SortByTimestamp,
	pipeline.SortByAmount,
	pipeline.SortByStatus,
}

// Model holds the main TUI state.
type Model struct {
	lastSync    time.Time
	lastErr     error
	debouncer   *debounce.Debouncer[string]
	search      *searchSink
	theme       themes.Theme
	config      Config
	keymap      KeyMap
	toast       toast
	controller  pipeline.Controller
	form        components.CreateFormModel
	detail      components.TransactionDetailModel
	table       components.TransactionTableModel
	stats       components.StatsPanelModel
	searchInput textinput.Model
	dateInput   textinput.Model
	help        help.Model
	spinner     spinner.Model
	loadSeq     int
	toastSeq    int
	width       int
	height      int
	mode        mode
	loading     bool
	loaded      bool
	exporting   bool
	fromCache   bool
	quitting    bool
}

// New creates the browser model. The first fetch starts from Init.
func New(opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newModel(cfg)
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	state := pipeline.DefaultState()
	if pipeline.ValidPageSize(cfg.ItemsPerPage) {
		state.ItemsPerPage = cfg.ItemsPerPage
	}

	search := textinput.New()
	search.Placeholder = "hash or address"
	search.Prompt = ""
	search.CharLimit = 80
	search.Width = 30

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.Prompt = ""
	date.CharLimit = 10
	date.Width = 12

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = cfg.Theme.StatusInfo

	sink := newSearchSink()

	m := Model{
		config:      cfg,
		theme:       cfg.Theme,
		keymap:      DefaultKeyMap(),
		help:        help.New(),
		spinner:     spin,
		search:      sink,
		debouncer:   debounce.New(cfg.SearchDelay, cfg.Clock, sink.put),
		controller:  pipeline.NewController(nil, state),
		table:       components.NewTransactionTable(cfg.Theme, cfg.Clock.Now),
		stats:       components.NewStatsPanelModel(cfg.Theme),
		searchInput: search,
		dateInput:   date,
		width:       cfg.Width,
		height:      cfg.Height,
		loadSeq:     1,
		loading:     true,
	}
	m.resize()
	m.syncView()
	return m
}

// Init starts the first fetch and the search listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetch(m.loadSeq),
		waitForSearch(m.search),
		m.spinner.Tick,
	)
}

// Close stops the search debouncer.
func (m Model) Close() {
	m.debouncer.Stop()
}

// Controller exposes the pipeline state, mainly for tests and the CLI.
func (m Model) Controller() pipeline.Controller {
	return m.controller
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.exporting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case transactionsLoadedMsg:
		return m.handleLoaded(msg)

	case searchDeliveredMsg:
		m.dispatch(pipeline.SetSearch{Query: msg.query})
		return m, waitForSearch(m.search)

	case transactionCreatedMsg:
		return m.handleCreated(msg)

	case exportFinishedMsg:
		return m.handleExported(msg)

	case clipboardMsg:
		if msg.err != nil {
			cmd := m.showToast(toastError, fmt.Sprintf("Could not copy %s: %v", msg.label, msg.err))
			return m, cmd
		}
		cmd := m.showToast(toastSuccess, "Copied "+msg.label)
		return m, cmd

	case toastExpiredMsg:
		if msg.id == m.toast.id {
			m.toast = toast{}
		}
		return m, nil

	case components.TransactionSelectedMsg:
		m.detail = components.NewTransactionDetailModel(msg.Transaction, m.theme, m.config.ExplorerURL, m.config.Clock.Now)
		m.detail.Resize(m.width, m.height)
		m.mode = modeDetail
		return m, nil

	case components.BackToListMsg, components.CancelCreateMsg:
		m.mode = modeBrowse
		return m, nil

	case components.CopyRequestMsg:
		return m, copyToClipboard(m.config.Clipboard, msg.Label, msg.Value)

	case components.SubmitCreateMsg:
		return m, createTransaction(m.config.Creator, msg.Request, m.config.FetchTimeout)

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			return m.quit()
		}
		return m.handleKey(msg)
	}

	if m.mode == modeCreate {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeDateFrom, modeDateTo:
		return m.handleDateKey(msg)
	case modeDetail:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	case modeCreate:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.controller.State()
	view := m.controller.View()

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m.quit()

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keymap.Search):
		m.mode = modeSearch
		cmd := m.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keymap.Pending):
		m.dispatch(pipeline.ToggleStatus{Status: model.StatusPending})
	case key.Matches(msg, m.keymap.Confirmed):
		m.dispatch(pipeline.ToggleStatus{Status: model.StatusConfirmed})
	case key.Matches(msg, m.keymap.Failed):
		m.dispatch(pipeline.ToggleStatus{Status: model.StatusFailed})

	case key.Matches(msg, m.keymap.DateFrom):
		cmd := m.editDate(modeDateFrom, state.DateFrom)
		return m, cmd
	case key.Matches(msg, m.keymap.DateTo):
		cmd := m.editDate(modeDateTo, state.DateTo)
		return m, cmd

	case key.Matches(msg, m.keymap.ClearFilters):
		m.debouncer.Flush("")
		m.searchInput.SetValue("")
		m.dispatch(pipeline.ClearAllFilters{})

	case key.Matches(msg, m.keymap.CycleSort):
		i := slices.Index(sortCycle, state.SortField)
		m.dispatch(pipeline.SetSort{Field: sortCycle[(i+1)%len(sortCycle)]})
	case key.Matches(msg, m.keymap.FlipSort):
		m.dispatch(pipeline.SetSort{Field: state.SortField})

	case key.Matches(msg, m.keymap.PrevPage):
		m.dispatch(pipeline.SetPage{Page: view.CurrentPage - 1})
	case key.Matches(msg, m.keymap.NextPage):
		m.dispatch(pipeline.SetPage{Page: view.CurrentPage + 1})
	case key.Matches(msg, m.keymap.FirstPage):
		m.dispatch(pipeline.SetPage{Page: 1})
	case key.Matches(msg, m.keymap.LastPage):
		m.dispatch(pipeline.SetPage{Page: view.TotalPages})

	case key.Matches(msg, m.keymap.PageSizeUp):
		m.dispatch(pipeline.SetItemsPerPage{Size: stepPageSize(state.ItemsPerPage, 1)})
	case key.Matches(msg, m.keymap.PageSizeDown):
		m.dispatch(pipeline.SetItemsPerPage{Size: stepPageSize(state.ItemsPerPage, -1)})

	case key.Matches(msg, m.keymap.Reload):
		cmd := m.reload()
		return m, cmd

	case key.Matches(msg, m.keymap.Export):
		return m.startExport()

	case key.Matches(msg, m.keymap.Create):
		if m.config.Creator == nil {
			cmd := m.showToast(toastWarning, "Creating transactions is not available for this source")
			return m, cmd
		}
		m.form = components.NewCreateForm(m.theme)
		m.mode = modeCreate

	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleSearchKey shows typed input at once and hands it to the debouncer. Clearing the
// field bypasses the delay.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.debouncer.Flush("")
		m.mode = modeBrowse
		return m, nil

	case tea.KeyEnter:
		m.searchInput.Blur()
		m.debouncer.Flush(m.searchInput.Value())
		m.mode = modeBrowse
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	if value := m.searchInput.Value(); value != before {
		if value == "" {
			m.debouncer.Flush("")
		} else {
			m.debouncer.Trigger(value)
		}
	}
	return m, cmd
}

func (m *Model) editDate(target mode, current *time.Time) tea.Cmd {
	m.mode = target
	m.dateInput.SetValue("")
	if current != nil {
		m.dateInput.SetValue(current.Format("2006-01-02"))
	}
	m.dateInput.CursorEnd()
	return m.dateInput.Focus()
}

// handleDateKey applies the typed date on enter. An empty value clears the bound.
func (m Model) handleDateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.dateInput.Blur()
		m.mode = modeBrowse
		return m, nil

	case tea.KeyEnter:
		date, err := pipeline.ParseDate(m.dateInput.Value())
		if err != nil {
			cmd := m.showToast(toastError, err.Error())
			return m, cmd
		}
		if m.mode == modeDateFrom {
			m.dispatch(pipeline.SetDateFrom{Date: date})
		} else {
			m.dispatch(pipeline.SetDateTo{Date: date})
		}
		m.dateInput.Blur()
		m.mode = modeBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.dateInput, cmd = m.dateInput.Update(msg)
	return m, cmd
}

func (m Model) handleLoaded(msg transactionsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.loadSeq {
		m.config.Logger.Debug("discarding stale fetch result", "seq", msg.seq, "current", m.loadSeq)
		return m, nil
	}

	m.loading = false

	if msg.err != nil {
		m.lastErr = msg.err
		m.config.Logger.Error("failed to load transactions", "error", msg.err)
		text := fmt.Sprintf("%s. Press r to retry", common.UserMessage(msg.err))
		if msg.fromCache {
			m.fromCache = true
			m.loaded = true
			m.lastSync = msg.at
			m.controller.Replace(msg.transactions)
			m.syncView()
			text = "API unavailable, showing cached snapshot. Press r to retry"
		}
		cmd := m.showToast(toastError, text)
		return m, cmd
	}

	m.lastErr = nil
	m.loaded = true
	m.fromCache = false
	m.lastSync = msg.at
	m.controller.Replace(msg.transactions)
	m.syncView()
	m.config.Logger.Debug("transactions loaded", "count", len(msg.transactions))
	return m, nil
}

func (m Model) handleCreated(msg transactionCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.form.SetSubmitError(msg.err)
		return m, nil
	}

	m.mode = modeBrowse
	text := "Transaction submitted"
	if msg.transaction != nil && msg.transaction.Hash != "" {
		text = "Transaction " + msg.transaction.Hash + " submitted"
	}
	cmds := []tea.Cmd{m.showToast(toastSuccess, text), m.reload()}
	return m, tea.Batch(cmds...)
}

func (m Model) startExport() (tea.Model, tea.Cmd) {
	if m.exporting {
		return m, nil
	}
	rows := m.controller.View().Filtered
	if len(rows) == 0 {
		cmd := m.showToast(toastWarning, "Nothing to export")
		return m, cmd
	}
	m.exporting = true
	return m, tea.Batch(
		exportTransactions(m.config.ExportDir, m.config.Clock.Now(), rows, m.config.Logger),
		m.spinner.Tick,
	)
}

func (m Model) handleExported(msg exportFinishedMsg) (tea.Model, tea.Cmd) {
	m.exporting = false
	switch {
	case msg.err != nil:
		cmd := m.showToast(toastError, "Export failed: "+msg.err.Error())
		return m, cmd
	case !msg.result.Written:
		cmd := m.showToast(toastWarning, "Nothing to export")
		return m, cmd
	default:
		cmd := m.showToast(toastSuccess, fmt.Sprintf("Exported %d transactions to %s", msg.result.Rows, msg.result.Path))
		return m, cmd
	}
}

// reload starts a new fetch. Results of earlier fetches still in flight are dropped.
func (m *Model) reload() tea.Cmd {
	m.loadSeq++
	m.loading = true
	return tea.Batch(m.fetch(m.loadSeq), m.spinner.Tick)
}

func (m Model) fetch(seq int) tea.Cmd {
	return fetchTransactions(seq, m.config.Source, m.config.Cache, m.config.FetchTimeout, m.config.Clock.Now, m.config.Logger)
}

func (m *Model) showToast(kind toastKind, text string) tea.Cmd {
	m.toastSeq++
	m.toast = toast{id: m.toastSeq, kind: kind, text: text}
	return expireToast(m.toastSeq, m.config.ToastTTL)
}

func (m *Model) dispatch(intent pipeline.Intent) {
	m.controller.Dispatch(intent)
	m.resize()
	m.syncView()
}

// syncView pushes the derived view into the table and stats panel.
func (m *Model) syncView() {
	view := m.controller.View()
	m.table.SetRows(view.VisibleRows)
	m.stats.SetStats(components.ComputeStats(view.TotalCount, view.Filtered))
}

// chromeHeight is the number of lines around the table.
const chromeHeight = 10

func (m *Model) resize() {
	rows := m.controller.State().ItemsPerPage
	m.table.Resize(m.width-2, min(rows+2, max(m.height-chromeHeight, 5)))
	m.stats.Resize(m.width)
	m.help.Width = m.width
	m.detail.Resize(m.width, m.height)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.debouncer.Stop()
	return m, tea.Quit
}

// stepPageSize moves to the neighbouring allowed page size, staying at the ends.
func stepPageSize(current, delta int) int {
	i := slices.Index(pipeline.PageSizes, current)
	if i < 0 {
		return pipeline.DefaultItemsPerPage
	}
	i = min(max(i+delta, 0), len(pipeline.PageSizes)-1)
	return pipeline.PageSizes[i]
}
