package pipeline

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Veraticus/txscope/internal/model"
)

// comparators maps each sort field to its ascending comparison.
var comparators = map[SortField]func(a, b model.Transaction) int{
	SortByTimestamp: func(a, b model.Transaction) int {
		return cmp.Compare(epochMillis(a), epochMillis(b))
	},
	SortByAmount: func(a, b model.Transaction) int {
		return cmp.Compare(a.AmountFloat(), b.AmountFloat())
	},
	SortByStatus: func(a, b model.Transaction) int {
		return strings.Compare(string(a.Status), string(b.Status))
	},
}

// epochMillis is the effective time in Unix milliseconds; unknown times count as 0.
func epochMillis(t model.Transaction) int64 {
	at, ok := t.EffectiveTime()
	if !ok {
		return 0
	}
	return at.UnixMilli()
}

// Comparator returns the ordering for field and direction. Unknown fields order by
// timestamp.
func Comparator(field SortField, dir SortDirection) func(a, b model.Transaction) int {
	compare, ok := comparators[field]
	if !ok {
		compare = comparators[SortByTimestamp]
	}
	if dir == Descending {
		return func(a, b model.Transaction) int {
			return compare(b, a)
		}
	}
	return compare
}

// Sort returns a stably sorted copy of transactions.
func Sort(transactions []model.Transaction, field SortField, dir SortDirection) []model.Transaction {
	out := slices.Clone(transactions)
	slices.SortStableFunc(out, Comparator(field, dir))
	return out
}
