package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/txscope/internal/cli"
	"github.com/Veraticus/txscope/internal/service"
)

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Fetch transactions and refresh the local cache",
		Long: `Fetch the full transaction collection from the API and replace the local
snapshot cache with it. The cache backs 'browse --offline', 'list --offline'
and the browser's fallback when the API is unreachable.`,
		RunE: runSync,
	}
}

func runSync(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := newAPIClient(cfg)
	if err != nil {
		return err
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Sync", "The previous snapshot was kept.")
	ctx, stop := handler.HandleInterrupts(cmd.Context())
	defer stop()

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	count, err := syncSnapshot(ctx, client, store)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Cached %d transactions", count)))
	return nil
}

// syncSnapshot replaces the cached collection with a fresh fetch from source.
func syncSnapshot(ctx context.Context, source service.TransactionSource, store service.SnapshotStore) (int, error) {
	transactions, err := fetchWithRetry(ctx, source)
	if err != nil {
		return 0, err
	}

	if err := store.ReplaceTransactions(ctx, transactions); err != nil {
		return 0, fmt.Errorf("failed to cache transactions: %w", err)
	}

	slog.Info("snapshot synced", "count", len(transactions))
	return len(transactions), nil
}
