package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/txscope/internal/cli"
	"github.com/Veraticus/txscope/internal/format"
	"github.com/Veraticus/txscope/internal/model"
	"github.com/Veraticus/txscope/internal/pipeline"
)

func listCmd() *cobra.Command {
	var flags viewFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of transactions",
		Long: `Print a page of transactions using the same filters, sort order and
paging as the interactive browser.

Examples:
  txscope list --status pending,failed --sort amount --order asc
  txscope list --from 2024-01-01 --to 2024-01-31 --page 2 --per-page 25
  txscope list --search 0xabc --offline`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, flags)
		},
	}

	addViewFlags(cmd, &flags, true)
	cmd.Flags().Bool("offline", false, "read from the local snapshot cache instead of the API")

	return cmd
}

func runList(cmd *cobra.Command, flags viewFlags) error {
	ctx := cmd.Context()
	offline, _ := cmd.Flags().GetBool("offline")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	state, err := flags.state(cfg.View.ItemsPerPage)
	if err != nil {
		return err
	}

	source, release, err := openSource(ctx, cfg, offline)
	if err != nil {
		return err
	}
	defer release()

	transactions, err := fetchWithRetry(ctx, source)
	if err != nil {
		return err
	}

	return writeList(cmd.OutOrStdout(), transactions, state, time.Now())
}

// writeList renders the current page of transactions and a paging footer.
func writeList(w io.Writer, transactions []model.Transaction, state pipeline.State, now time.Time) error {
	view, _ := pipeline.Derive(transactions, state)

	if view.FilteredCount == 0 {
		msg := "No transactions yet."
		if state.HasFilters() && view.TotalCount > 0 {
			msg = "No transactions match the given filters."
		}
		_, err := fmt.Fprintln(w, cli.FormatInfo(msg))
		return err
	}

	headers := []string{"Hash", "From", "To", "Amount", "Status", "Time", "Age"}
	rows := make([][]string, 0, len(view.VisibleRows))
	for _, t := range view.VisibleRows {
		at, ok := t.EffectiveTime()
		rows = append(rows, []string{
			format.ShortHash(t.Hash),
			format.ShortAddress(t.FromAddress),
			format.ShortAddress(t.ToAddress),
			format.AmountFixed6(t.Amount),
			cli.StatusLabel(t.Status),
			format.Timestamp(at, ok),
			format.Age(now, at, ok),
		})
	}

	if err := cli.RenderTable(w, headers, rows); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nPage %d of %d · %d of %d transactions\n",
		view.CurrentPage, view.TotalPages, view.FilteredCount, view.TotalCount)
	return err
}
