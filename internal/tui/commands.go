package tui

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/txscope/internal/common"
	"github.com/Veraticus/txscope/internal/export"
	"github.com/Veraticus/txscope/internal/model"
	"github.com/Veraticus/txscope/internal/service"
)

var errNoSource = errors.New("no transaction source configured")

// fetchTransactions loads the full collection for request seq. A successful fetch
// replaces the cached snapshot; a failed one falls back to it.
func fetchTransactions(
	seq int,
	source service.TransactionSource,
	cache service.SnapshotStore,
	timeout time.Duration,
	now func() time.Time,
	logger *slog.Logger,
) tea.Cmd {
	return func() tea.Msg {
		if source == nil {
			return transactionsLoadedMsg{seq: seq, err: errNoSource}
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		transactions, err := source.FetchAllTransactions(ctx)
		if err != nil {
			msg := transactionsLoadedMsg{seq: seq, err: err}
			if cache != nil {
				msg.transactions, msg.at = readCache(ctx, cache, timeout, logger)
				msg.fromCache = len(msg.transactions) > 0
			}
			return msg
		}

		if cache != nil {
			if err := cache.ReplaceTransactions(ctx, transactions); err != nil {
				logger.Warn("failed to cache transactions", "error", err, "count", len(transactions))
			}
		}

		return transactionsLoadedMsg{
			seq:          seq,
			transactions: transactions,
			at:           now(),
		}
	}
}

// readCache loads the cached snapshot and the time it was stored. It runs on its own
// deadline since ctx has usually expired when the fetch timed out.
func readCache(
	ctx context.Context,
	cache service.SnapshotStore,
	timeout time.Duration,
	logger *slog.Logger,
) ([]model.Transaction, time.Time) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	cached, err := cache.FetchAllTransactions(ctx)
	if err != nil {
		logger.Warn("failed to read cached transactions", "error", err)
		return nil, time.Time{}
	}

	at, err := cache.LastSync(ctx)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		logger.Warn("failed to read last sync time", "error", err)
	}
	return cached, at
}

// searchSink hands debounced queries to the event loop. It holds at most the newest
// undelivered query.
type searchSink struct {
	ch chan string
	mu sync.Mutex
}

func newSearchSink() *searchSink {
	return &searchSink{ch: make(chan string, 1)}
}

func (s *searchSink) put(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-s.ch:
	default:
	}
	s.ch <- query
}

// waitForSearch blocks until the debouncer releases a query.
func waitForSearch(s *searchSink) tea.Cmd {
	return func() tea.Msg {
		return searchDeliveredMsg{query: <-s.ch}
	}
}

func createTransaction(creator service.TransactionCreator, req model.CreateRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		txn, err := creator.CreateTransaction(ctx, req)
		return transactionCreatedMsg{transaction: txn, err: err}
	}
}

// exportTransactions writes transactions to transactions-<date>.xlsx in dir.
func exportTransactions(dir string, now time.Time, transactions []model.Transaction, logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		writer := export.NewXLSXWriter(export.WithLogger(logger))
		path := filepath.Join(dir, export.DefaultFilename(now))

		result, err := writer.Export(context.Background(), path, transactions)
		if err != nil {
			common.LogError(err, "export failed", common.Fields{"path": path})
		}
		return exportFinishedMsg{result: result, err: err}
	}
}

func copyToClipboard(write func(string) error, label, value string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{label: label, err: write(value)}
	}
}

func expireToast(id int, ttl time.Duration) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
