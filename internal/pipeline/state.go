// Package pipeline turns a raw transaction collection plus user-controlled view state
// into the rows shown on screen: filter, then sort, then paginate.
package pipeline

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Veraticus/txscope/internal/model"
)

// SortField identifies the column transactions are ordered by.
type SortField string

const (
	SortByTimestamp SortField = "timestamp"
	SortByAmount    SortField = "amount"
	SortByStatus    SortField = "status"
)

// ParseSortField converts a string into a SortField.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case SortByTimestamp, SortByAmount, SortByStatus:
		return f, nil
	default:
		return "", fmt.Errorf("invalid sort field: %q", s)
	}
}

// SortDirection is ascending or descending.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// ParseSortDirection converts a string into a SortDirection.
func ParseSortDirection(s string) (SortDirection, error) {
	switch d := SortDirection(strings.ToLower(strings.TrimSpace(s))); d {
	case Ascending, Descending:
		return d, nil
	default:
		return "", fmt.Errorf("invalid sort direction: %q", s)
	}
}

// Toggle returns the opposite direction.
func (d SortDirection) Toggle() SortDirection {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// DefaultItemsPerPage is the initial page size.
const DefaultItemsPerPage = 15

// PageSizes lists the allowed page sizes.
var PageSizes = []int{10, 15, 25, 50}

// ValidPageSize reports whether n is one of PageSizes.
func ValidPageSize(n int) bool {
	return slices.Contains(PageSizes, n)
}

// State is the full set of user-controlled parameters that decide which
// transactions are shown and in what order. Treat it as a value: intents
// return modified copies and never mutate the receiver's slices.
type State struct {
	DateFrom      *time.Time
	DateTo        *time.Time
	Search        string
	SortField     SortField
	SortDirection SortDirection
	Statuses      []model.Status
	CurrentPage   int
	ItemsPerPage  int
}

// DefaultState returns the initial view state: no filters, newest first, page 1.
func DefaultState() State {
	return State{
		SortField:     SortByTimestamp,
		SortDirection: Descending,
		CurrentPage:   1,
		ItemsPerPage:  DefaultItemsPerPage,
	}
}

// HasStatus reports whether s is part of the status selection.
func (s State) HasStatus(st model.Status) bool {
	return slices.Contains(s.Statuses, st)
}

// HasFilters reports whether any filter criterion is active.
func (s State) HasFilters() bool {
	return len(s.Statuses) > 0 || s.DateFrom != nil || s.DateTo != nil || s.Search != ""
}

// normalizeStatuses returns a sorted copy without duplicates.
func normalizeStatuses(in []model.Status) []model.Status {
	if len(in) == 0 {
		return nil
	}
	out := slices.Clone(in)
	slices.Sort(out)
	return slices.Compact(out)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// ParseDate parses a YYYY-MM-DD calendar day in local time. An empty string yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return &d, nil
}
