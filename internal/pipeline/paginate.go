package pipeline

import "github.com/Veraticus/txscope/internal/model"

// MaxPageButtons is the width of the page-number window.
const MaxPageButtons = 5

// TotalPages returns max(1, ceil(n/perPage)).
func TotalPages(n, perPage int) int {
	if perPage <= 0 || n <= 0 {
		return 1
	}
	return (n + perPage - 1) / perPage
}

// Paginate returns the slice for a 1-based page, clipped to the bounds of seq.
// Out-of-range pages yield an empty slice; correcting the page is the caller's job.
func Paginate(seq []model.Transaction, page, perPage int) []model.Transaction {
	if perPage <= 0 || page < 1 {
		return []model.Transaction{}
	}
	start := (page - 1) * perPage
	if start >= len(seq) {
		return []model.Transaction{}
	}
	end := min(start+perPage, len(seq))
	return seq[start:end:end]
}

// PageWindow returns up to MaxPageButtons page numbers centered on current, shifted
// to stay inside [1, total].
func PageWindow(current, total int) []int {
	if total < 1 {
		total = 1
	}
	current = clamp(current, 1, total)

	size := min(MaxPageButtons, total)
	first := current - size/2
	first = clamp(first, 1, total-size+1)

	pages := make([]int, size)
	for i := range pages {
		pages[i] = first + i
	}
	return pages
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
