package tui

import (
	"time"

	"github.com/Veraticus/txscope/internal/export"
	"github.com/Veraticus/txscope/internal/model"
)

// transactionsLoadedMsg carries the result of fetch number seq. On failure transactions
// may hold the cached snapshot.
type transactionsLoadedMsg struct {
	at           time.Time
	err          error
	transactions []model.Transaction
	seq          int
	fromCache    bool
}

// searchDeliveredMsg is a query released by the search debouncer.
type searchDeliveredMsg struct {
	query string
}

type transactionCreatedMsg struct {
	err         error
	transaction *model.Transaction
}

type exportFinishedMsg struct {
	err    error
	result export.Result
}

type clipboardMsg struct {
	err   error
	label string
}

type toastExpiredMsg struct {
	id int
}

// toastKind selects the toast style.
type toastKind int

const (
	toastInfo toastKind = iota
	toastSuccess
	toastWarning
	toastError
)

type toast struct {
	text string
	kind toastKind
	id   int
}
