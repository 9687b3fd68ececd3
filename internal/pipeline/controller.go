package pipeline

import (
	"github.com/Veraticus/txscope/internal/model"
)

// View is the derived output of the pipeline for one state and collection.
type View struct {
	// VisibleRows is the current page of the filtered, sorted collection.
	VisibleRows []model.Transaction
	// Filtered is the full filtered, sorted collection; exports read it.
	Filtered      []model.Transaction
	PageWindow    []int
	TotalCount    int
	FilteredCount int
	TotalPages    int
	CurrentPage   int
	ItemsPerPage  int
}

// Derive runs filter → sort → paginate. The returned state has CurrentPage clamped into
// [1, TotalPages].
func Derive(transactions []model.Transaction, state State) (View, State) {
	if !ValidPageSize(state.ItemsPerPage) {
		state.ItemsPerPage = DefaultItemsPerPage
	}

	filtered := Sort(Filter(transactions, state), state.SortField, state.SortDirection)
	total := TotalPages(len(filtered), state.ItemsPerPage)
	state.CurrentPage = clamp(state.CurrentPage, 1, total)

	return View{
		VisibleRows:   Paginate(filtered, state.CurrentPage, state.ItemsPerPage),
		Filtered:      filtered,
		PageWindow:    PageWindow(state.CurrentPage, total),
		TotalCount:    len(transactions),
		FilteredCount: len(filtered),
		TotalPages:    total,
		CurrentPage:   state.CurrentPage,
		ItemsPerPage:  state.ItemsPerPage,
	}, state
}

// Controller owns the raw collection and the view state, and keeps the derived view in
// step with both. It is a value type; copies share the immutable collection.
type Controller struct {
	transactions []model.Transaction
	state        State
	view         View
}

// NewController creates a controller over transactions with the given initial state.
func NewController(transactions []model.Transaction, state State) Controller {
	c := Controller{transactions: transactions, state: state}
	c.recompute()
	return c
}

// Dispatch applies an intent and re-derives the view.
func (c *Controller) Dispatch(intent Intent) View {
	c.state = Reduce(c.state, intent)
	c.recompute()
	return c.view
}

// Replace swaps in a new raw collection. Filters are kept; the page is clamped.
func (c *Controller) Replace(transactions []model.Transaction) View {
	c.transactions = transactions
	c.recompute()
	return c.view
}

// State returns the current view state.
func (c Controller) State() State {
	return c.state
}

// View returns the current derived view.
func (c Controller) View() View {
	return c.view
}

// Transactions returns the raw collection.
func (c Controller) Transactions() []model.Transaction {
	return c.transactions
}

func (c *Controller) recompute() {
	c.view, c.state = Derive(c.transactions, c.state)
}
