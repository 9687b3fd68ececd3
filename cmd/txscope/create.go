package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/txscope/internal/cli"
	"github.com/Veraticus/txscope/internal/common"
	"github.com/Veraticus/txscope/internal/format"
	"github.com/Veraticus/txscope/internal/model"
	"github.com/Veraticus/txscope/internal/service"
	"github.com/Veraticus/txscope/internal/validate"
)

func createCmd() *cobra.Command {
	var req model.CreateRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Submit a new transaction",
		Long: `Submit a new transaction to the API.

Missing fields are prompted for. The request is validated and shown for
confirmation before it is sent; pass --yes to skip the confirmation. After
a successful submit the local cache is refreshed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCreate(cmd, req)
		},
	}

	cmd.Flags().StringVar(&req.FromAddress, "from", "", "sender address")
	cmd.Flags().StringVar(&req.ToAddress, "to", "", "recipient address")
	cmd.Flags().StringVar(&req.Amount, "amount", "", "amount to send")
	cmd.Flags().StringVar(&req.GasLimit, "gas-limit", "", "gas limit (optional)")
	cmd.Flags().StringVar(&req.GasPrice, "gas-price", "", "gas price (optional)")
	cmd.Flags().BoolP("yes", "y", false, "submit without confirmation")

	return cmd
}

func runCreate(cmd *cobra.Command, req model.CreateRequest) error {
	ctx := cmd.Context()
	yes, _ := cmd.Flags().GetBool("yes")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := newAPIClient(cfg)
	if err != nil {
		return err
	}

	prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	req, err = prompter.CompleteCreateRequest(ctx, validate.Normalize(req))
	if err != nil {
		return err
	}

	if err := validate.CreateRequest(req); err != nil {
		return common.NewUserError("invalid transaction", err)
	}

	if !yes {
		ok, err := prompter.Confirm(ctx, req)
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("Canceled"))
			return nil
		}
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	created, err := createAndSync(ctx, client, store, req)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Submitted transaction "+format.ShortHash(created.Hash)))
	if link := cfg.ExplorerLink(created.Hash); link != "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(link))
	}
	return nil
}

// createAndSync submits req and refreshes the cache. A failed refresh is logged; the
// transaction was still created.
func createAndSync(ctx context.Context, remote service.TransactionAPI, store service.SnapshotStore,
	req model.CreateRequest) (*model.Transaction, error) {
	created, err := remote.CreateTransaction(ctx, req)
	if err != nil {
		return nil, common.NewUserError("could not create transaction", err)
	}

	slog.Info("transaction created", "id", created.ID, "hash", created.Hash)

	if _, err := syncSnapshot(ctx, remote, store); err != nil {
		common.LogError(err, "failed to refresh cache after create", common.Fields{"hash": created.Hash})
	}

	return created, nil
}
