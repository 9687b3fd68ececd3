package pipeline

import (
	"strings"
	"time"

	"github.com/Veraticus/txscope/internal/model"
)

// Predicate composes the active filter criteria of s into a single test. Criteria are
// AND-ed; inactive criteria pass everything.
func Predicate(s State) func(model.Transaction) bool {
	var checks []func(model.Transaction) bool

	if len(s.Statuses) > 0 {
		statuses := s.Statuses
		checks = append(checks, func(t model.Transaction) bool {
			for _, st := range statuses {
				if t.Status == st {
					return true
				}
			}
			return false
		})
	}

	if s.DateFrom != nil || s.DateTo != nil {
		checks = append(checks, dateRangeCheck(s.DateFrom, s.DateTo))
	}

	if s.Search != "" {
		query := strings.ToLower(s.Search)
		checks = append(checks, func(t model.Transaction) bool {
			return strings.Contains(strings.ToLower(t.Hash), query) ||
				strings.Contains(strings.ToLower(t.FromAddress), query) ||
				strings.Contains(strings.ToLower(t.ToAddress), query)
		})
	}

	return func(t model.Transaction) bool {
		for _, check := range checks {
			if !check(t) {
				return false
			}
		}
		return true
	}
}

// dateRangeCheck bounds the effective time by whole calendar days. Transactions without
// a parseable time never satisfy an active bound.
func dateRangeCheck(from, to *time.Time) func(model.Transaction) bool {
	var start, end time.Time
	if from != nil {
		start = StartOfDay(*from)
	}
	if to != nil {
		end = EndOfDay(*to)
	}

	return func(t model.Transaction) bool {
		at, ok := t.EffectiveTime()
		if !ok {
			return false
		}
		if from != nil && at.Before(start) {
			return false
		}
		if to != nil && at.After(end) {
			return false
		}
		return true
	}
}

// Filter returns the transactions that satisfy s. The input is left untouched.
func Filter(transactions []model.Transaction, s State) []model.Transaction {
	keep := Predicate(s)
	out := make([]model.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
