package pipeline

import (
	"testing"

	"github.com/Veraticus/txscope/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive_EmptyStateShowsEverything(t *testing.T) {
	all := generate(12)

	view, state := Derive(all, DefaultState())

	assert.Equal(t, 1, state.CurrentPage)
	assert.Equal(t, 12, view.TotalCount)
	assert.Equal(t, 12, view.FilteredCount)
	assert.ElementsMatch(t, ids(all), ids(view.VisibleRows))
	// Newest first.
	assert.Equal(t, "011", view.VisibleRows[0].ID)
}

func TestDerive_ThirtySevenRowsFifteenPerPage(t *testing.T) {
	all := generate(37)
	state := DefaultState()
	state.SortDirection = Ascending
	state.CurrentPage = 3

	view, state := Derive(all, state)

	assert.Equal(t, 3, view.TotalPages)
	assert.Equal(t, 3, state.CurrentPage)
	assert.Equal(t, ids(all[30:37]), ids(view.VisibleRows))
	assert.Equal(t, []int{1, 2, 3}, view.PageWindow)
}

func TestDerive_IsIdempotent(t *testing.T) {
	all := generate(40)
	state := Reduce(DefaultState(), SetSearch{Query: "0"})
	state = Reduce(state, ToggleStatus{Status: model.StatusConfirmed})
	state = Reduce(state, SetSort{Field: SortByAmount})

	first, s1 := Derive(all, state)
	second, s2 := Derive(all, s1)

	assert.Equal(t, s1, s2)
	assert.Equal(t, ids(first.Filtered), ids(second.Filtered))
	assert.Equal(t, ids(first.VisibleRows), ids(second.VisibleRows))
}

func TestDerive_InvalidPageSizeFallsBack(t *testing.T) {
	state := DefaultState()
	state.ItemsPerPage = 7

	view, state := Derive(generate(20), state)

	assert.Equal(t, DefaultItemsPerPage, state.ItemsPerPage)
	assert.Len(t, view.VisibleRows, DefaultItemsPerPage)
}

func TestDerive_PageClampedWithinBounds(t *testing.T) {
	for _, page := range []int{-3, 0, 1, 2, 99} {
		state := DefaultState()
		state.CurrentPage = page

		view, state := Derive(generate(20), state)

		assert.GreaterOrEqual(t, state.CurrentPage, 1)
		assert.LessOrEqual(t, state.CurrentPage, view.TotalPages)
	}
}

func TestReduce_FilterIntentsResetPage(t *testing.T) {
	start := DefaultState()
	start.CurrentPage = 4

	day := localDay(2024, 1, 1)
	tests := []struct {
		intent Intent
		name   string
	}{
		{name: "statuses", intent: SetStatuses{Statuses: []model.Status{model.StatusFailed}}},
		{name: "toggle", intent: ToggleStatus{Status: model.StatusPending}},
		{name: "date from", intent: SetDateFrom{Date: day}},
		{name: "date to", intent: SetDateTo{Date: day}},
		{name: "search", intent: SetSearch{Query: "0x"}},
		{name: "page size", intent: SetItemsPerPage{Size: 25}},
		{name: "clear", intent: ClearAllFilters{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 1, Reduce(start, tt.intent).CurrentPage)
		})
	}
}

func TestReduce_SortAndPageKeepPage(t *testing.T) {
	start := DefaultState()
	start.CurrentPage = 4

	assert.Equal(t, 4, Reduce(start, SetSort{Field: SortByAmount}).CurrentPage)
	assert.Equal(t, 2, Reduce(start, SetPage{Page: 2}).CurrentPage)
	assert.Equal(t, 1, Reduce(start, SetPage{Page: -5}).CurrentPage)
	assert.Equal(t, start, Reduce(start, nil))
}

func TestReduce_SetSort(t *testing.T) {
	s := DefaultState()
	require.Equal(t, SortByTimestamp, s.SortField)
	require.Equal(t, Descending, s.SortDirection)

	s = Reduce(s, SetSort{Field: SortByTimestamp})
	assert.Equal(t, Ascending, s.SortDirection)

	s = Reduce(s, SetSort{Field: SortByTimestamp})
	assert.Equal(t, Descending, s.SortDirection)

	s = Reduce(s, SetSort{Field: SortByAmount})
	assert.Equal(t, SortByAmount, s.SortField)
	assert.Equal(t, Descending, s.SortDirection)
}

func TestReduce_InvalidPageSizeIgnored(t *testing.T) {
	start := DefaultState()
	start.CurrentPage = 3

	got := Reduce(start, SetItemsPerPage{Size: 12})

	assert.Equal(t, start, got)
}

func TestReduce_ToggleStatus(t *testing.T) {
	s := Reduce(DefaultState(), ToggleStatus{Status: model.StatusPending})
	s = Reduce(s, ToggleStatus{Status: model.StatusConfirmed})
	assert.Equal(t, []model.Status{model.StatusConfirmed, model.StatusPending}, s.Statuses)
	assert.True(t, s.HasStatus(model.StatusPending))

	s = Reduce(s, ToggleStatus{Status: model.StatusPending})
	assert.Equal(t, []model.Status{model.StatusConfirmed}, s.Statuses)

	s = Reduce(s, ToggleStatus{Status: model.StatusConfirmed})
	assert.Empty(t, s.Statuses)
	assert.False(t, s.HasFilters())
}

func TestReduce_ClearAllFiltersKeepsSortAndPageSize(t *testing.T) {
	s := DefaultState()
	s = Reduce(s, SetSort{Field: SortByAmount})
	s = Reduce(s, SetItemsPerPage{Size: 50})
	s = Reduce(s, SetSearch{Query: "abc"})
	s = Reduce(s, SetDateFrom{Date: localDay(2024, 1, 1)})
	s = Reduce(s, ToggleStatus{Status: model.StatusFailed})
	require.True(t, s.HasFilters())

	s = Reduce(s, ClearAllFilters{})

	assert.False(t, s.HasFilters())
	assert.Equal(t, SortByAmount, s.SortField)
	assert.Equal(t, 50, s.ItemsPerPage)
}

func TestReduce_DatesAreCopied(t *testing.T) {
	day := localDay(2024, 5, 1)
	s := Reduce(DefaultState(), SetDateFrom{Date: day})

	*day = day.AddDate(1, 0, 0)

	assert.Equal(t, 2024, s.DateFrom.Year())
}

func TestController_DispatchAndReplace(t *testing.T) {
	c := NewController(generate(50), DefaultState())
	require.Equal(t, 4, c.View().TotalPages)

	view := c.Dispatch(SetPage{Page: 4})
	assert.Equal(t, 4, view.CurrentPage)
	assert.Len(t, view.VisibleRows, 5)

	// Shrinking the collection clamps the page but keeps filters.
	c.Dispatch(SetSearch{Query: "0"})
	c.Dispatch(SetPage{Page: 3})
	require.Equal(t, 3, c.State().CurrentPage)

	view = c.Replace(generate(10))
	assert.Equal(t, "0", c.State().Search)
	assert.Equal(t, view.TotalPages, c.State().CurrentPage)
	assert.Equal(t, 10, len(c.Transactions()))
}

func TestController_PageBeyondRangeIsClamped(t *testing.T) {
	c := NewController(generate(20), DefaultState())

	view := c.Dispatch(SetPage{Page: 9})

	assert.Equal(t, 2, view.CurrentPage)
	assert.Equal(t, 2, c.State().CurrentPage)
	assert.Len(t, view.VisibleRows, 5)
}

func TestController_EmptyCollection(t *testing.T) {
	c := NewController(nil, DefaultState())

	view := c.View()

	assert.Equal(t, 1, view.TotalPages)
	assert.Equal(t, 1, view.CurrentPage)
	assert.Empty(t, view.VisibleRows)
	assert.Equal(t, []int{1}, view.PageWindow)
}
