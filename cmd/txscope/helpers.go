package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/txscope/internal/api"
	"github.com/Veraticus/txscope/internal/common"
	"github.com/Veraticus/txscope/internal/config"
	"github.com/Veraticus/txscope/internal/model"
	"github.com/Veraticus/txscope/internal/pipeline"
	"github.com/Veraticus/txscope/internal/service"
	"github.com/Veraticus/txscope/internal/storage"
)

// envKeyReplacer maps nested keys like api.base_url onto TXSCOPE_API_BASE_URL.
var envKeyReplacer = strings.NewReplacer(".", "_")

// fetchRetry is used by commands that fetch outside the interactive browser.
var fetchRetry = service.RetryOptions{
	MaxAttempts:  3,
	InitialDelay: 500 * time.Millisecond,
	MaxDelay:     5 * time.Second,
	Multiplier:   2,
}

func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}

// initStorage opens the snapshot cache and brings its schema up to date.
func initStorage(ctx context.Context, cfg *config.Config) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func newAPIClient(cfg *config.Config) (*api.Client, error) {
	if err := cfg.RequireAPI(); err != nil {
		return nil, err
	}
	return api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		APIKey:  cfg.API.Key,
		Timeout: cfg.API.Timeout,
	}, nil, slog.Default())
}

// openSource returns the API client, or the snapshot cache when offline is set. The
// returned function releases the source.
func openSource(ctx context.Context, cfg *config.Config, offline bool) (service.TransactionSource, func(), error) {
	if offline {
		store, err := initStorage(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}

	client, err := newAPIClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, func() {}, nil
}

// fetchWithRetry retries transport failures and server errors. Client errors are final.
func fetchWithRetry(ctx context.Context, source service.TransactionSource) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := common.WithRetry(ctx, func() error {
		var fetchErr error
		transactions, fetchErr = source.FetchAllTransactions(ctx)
		var statusErr *api.StatusError
		if errors.As(fetchErr, &statusErr) && statusErr.StatusCode < http.StatusInternalServerError &&
			statusErr.StatusCode != http.StatusTooManyRequests {
			return common.Permanent(fetchErr)
		}
		return fetchErr
	}, fetchRetry)
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// viewFlags holds the filter, sort and paging flags shared by list and export.
type viewFlags struct {
	statuses  []string
	from      string
	to        string
	search    string
	sortField string
	sortDir   string
	page      int
	perPage   int
}

func addViewFlags(cmd *cobra.Command, f *viewFlags, paging bool) {
	cmd.Flags().StringSliceVar(&f.statuses, "status", nil, "only show these statuses (pending, confirmed, failed)")
	cmd.Flags().StringVar(&f.from, "from", "", "earliest day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "latest day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.search, "search", "", "match hash, sender or recipient")
	cmd.Flags().StringVar(&f.sortField, "sort", string(pipeline.SortByTimestamp), "sort by timestamp, amount or status")
	cmd.Flags().StringVar(&f.sortDir, "order", string(pipeline.Descending), "sort direction (asc, desc)")
	if paging {
		cmd.Flags().IntVar(&f.page, "page", 1, "page to show")
		cmd.Flags().IntVar(&f.perPage, "per-page", 0, fmt.Sprintf("rows per page, one of %v (default from view.items_per_page)", pipeline.PageSizes))
	}
}

// state converts the flags into a view state. defaultPerPage applies when --per-page is
// not given.
func (f viewFlags) state(defaultPerPage int) (pipeline.State, error) {
	state := pipeline.DefaultState()

	statuses := make([]model.Status, 0, len(f.statuses))
	for _, s := range f.statuses {
		status, err := model.ParseStatus(s)
		if err != nil {
			return state, common.NewUserError(fmt.Sprintf("invalid --status %q", s), err)
		}
		statuses = append(statuses, status)
	}

	from, err := pipeline.ParseDate(f.from)
	if err != nil {
		return state, common.NewUserError("invalid --from", err)
	}
	to, err := pipeline.ParseDate(f.to)
	if err != nil {
		return state, common.NewUserError("invalid --to", err)
	}

	field, err := pipeline.ParseSortField(f.sortField)
	if err != nil {
		return state, common.NewUserError("invalid --sort", err)
	}
	dir, err := pipeline.ParseSortDirection(f.sortDir)
	if err != nil {
		return state, common.NewUserError("invalid --order", err)
	}

	perPage := f.perPage
	if perPage == 0 {
		perPage = defaultPerPage
	}
	if perPage != 0 && !pipeline.ValidPageSize(perPage) {
		return state, common.NewUserError(
			fmt.Sprintf("invalid --per-page %d, expected one of %v", perPage, pipeline.PageSizes),
			common.ErrInvalidConfig)
	}

	for _, intent := range []pipeline.Intent{
		pipeline.SetStatuses{Statuses: statuses},
		pipeline.SetDateFrom{Date: from},
		pipeline.SetDateTo{Date: to},
		pipeline.SetSearch{Query: f.search},
		pipeline.SetItemsPerPage{Size: perPage},
	} {
		state = pipeline.Reduce(state, intent)
	}

	state.SortField = field
	state.SortDirection = dir
	if f.page > 1 {
		state = pipeline.Reduce(state, pipeline.SetPage{Page: f.page})
	}

	return state, nil
}
