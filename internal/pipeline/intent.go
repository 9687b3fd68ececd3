package pipeline

import (
	"time"

	"github.com/Veraticus/txscope/internal/model"
)

// Intent is a named change to the view state.
type Intent interface {
	apply(State) State
}

// SetStatuses replaces the status selection. An empty selection means no status filter.
type SetStatuses struct {
	Statuses []model.Status
}

// ToggleStatus adds or removes a single status from the selection.
type ToggleStatus struct {
	Status model.Status
}

// SetDateFrom sets or clears (nil) the inclusive lower date bound.
type SetDateFrom struct {
	Date *time.Time
}

// SetDateTo sets or clears (nil) the inclusive upper date bound.
type SetDateTo struct {
	Date *time.Time
}

// SetSearch sets the free-text query.
type SetSearch struct {
	Query string
}

// SetSort orders by Field. Choosing the current field flips the direction; a new
// field starts descending.
type SetSort struct {
	Field SortField
}

// SetPage moves to a 1-based page. The controller clamps it to the available pages.
type SetPage struct {
	Page int
}

// SetItemsPerPage changes the page size. Sizes outside PageSizes are ignored.
type SetItemsPerPage struct {
	Size int
}

// ClearAllFilters removes every filter criterion. Sort order and page size are kept.
type ClearAllFilters struct{}

func (i SetStatuses) apply(s State) State {
	s.Statuses = normalizeStatuses(i.Statuses)
	s.CurrentPage = 1
	return s
}

func (i ToggleStatus) apply(s State) State {
	next := make([]model.Status, 0, len(s.Statuses)+1)
	found := false
	for _, st := range s.Statuses {
		if st == i.Status {
			found = true
			continue
		}
		next = append(next, st)
	}
	if !found {
		next = append(next, i.Status)
	}
	s.Statuses = normalizeStatuses(next)
	s.CurrentPage = 1
	return s
}

func (i SetDateFrom) apply(s State) State {
	s.DateFrom = copyTime(i.Date)
	s.CurrentPage = 1
	return s
}

func (i SetDateTo) apply(s State) State {
	s.DateTo = copyTime(i.Date)
	s.CurrentPage = 1
	return s
}

func (i SetSearch) apply(s State) State {
	s.Search = i.Query
	s.CurrentPage = 1
	return s
}

func (i SetSort) apply(s State) State {
	if i.Field == s.SortField {
		s.SortDirection = s.SortDirection.Toggle()
		return s
	}
	s.SortField = i.Field
	s.SortDirection = Descending
	return s
}

func (i SetPage) apply(s State) State {
	s.CurrentPage = max(1, i.Page)
	return s
}

func (i SetItemsPerPage) apply(s State) State {
	if !ValidPageSize(i.Size) {
		return s
	}
	s.ItemsPerPage = i.Size
	s.CurrentPage = 1
	return s
}

func (ClearAllFilters) apply(s State) State {
	s.Statuses = nil
	s.DateFrom = nil
	s.DateTo = nil
	s.Search = ""
	s.CurrentPage = 1
	return s
}

// Reduce applies intent to state and returns the new state. It does not know the data,
// so page clamping happens in Controller.
func Reduce(state State, intent Intent) State {
	if intent == nil {
		return state
	}
	return intent.apply(state)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
