package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/txscope/internal/cli"
	"github.com/Veraticus/txscope/internal/config"
	"github.com/Veraticus/txscope/internal/export"
	"github.com/Veraticus/txscope/internal/model"
	"github.com/Veraticus/txscope/internal/pipeline"
	"github.com/Veraticus/txscope/internal/sheets"
)

func exportCmd() *cobra.Command {
	var flags viewFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export filtered transactions to Excel",
		Long: `Export every transaction matching the filters, in the chosen sort order,
to an .xlsx workbook. Paging does not apply: all matching rows are written.

With --sheets the same table is also published to Google Sheets. Configure
credentials under sheets.* or run 'txscope auth sheets' first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, flags)
		},
	}

	addViewFlags(cmd, &flags, false)
	cmd.Flags().StringP("output", "o", "", "output file (default: <export.dir>/transactions-<date>.xlsx)")
	cmd.Flags().Bool("sheets", false, "also publish to Google Sheets")
	cmd.Flags().Bool("offline", false, "export from the local snapshot cache instead of the API")

	return cmd
}

func runExport(cmd *cobra.Command, flags viewFlags) error {
	output, _ := cmd.Flags().GetString("output")
	toSheets, _ := cmd.Flags().GetBool("sheets")
	offline, _ := cmd.Flags().GetBool("offline")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	state, err := flags.state(0)
	if err != nil {
		return err
	}

	var publisher sheets.Publisher
	if toSheets {
		sheetsConfig, err := config.LoadSheetsConfig(viper.GetViper())
		if err != nil {
			return fmt.Errorf("google sheets is not configured: %w", err)
		}
		writer, err := sheets.NewWriter(cmd.Context(), *sheetsConfig, slog.Default())
		if err != nil {
			return err
		}
		publisher = writer
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Export", "No partial workbook was kept.")
	ctx, stop := handler.HandleInterrupts(cmd.Context())
	defer stop()

	source, release, err := openSource(ctx, cfg, offline)
	if err != nil {
		return err
	}
	defer release()

	transactions, err := fetchWithRetry(ctx, source)
	if err != nil {
		return err
	}

	view, _ := pipeline.Derive(transactions, state)
	rows := view.Filtered
	if len(rows) == 0 {
		slog.Warn("nothing to export", "total", len(transactions))
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("Nothing to export"))
		return nil
	}

	if output == "" {
		output = filepath.Join(cfg.Export.Dir, export.DefaultFilename(time.Now()))
	}

	result, published, err := exportAll(ctx, cmd.ErrOrStderr(), output, rows, publisher)
	if err != nil {
		if handler.WasInterrupted() {
			return fmt.Errorf("export interrupted")
		}
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to %s", result.Rows, result.Path)))
	if published != nil {
		_, _ = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Published %d rows to %s", published.RowsWritten, published.SpreadsheetURL)))
	}
	return nil
}

// exportAll writes the workbook and, when publisher is set, publishes the same table
// concurrently. Either failure cancels the other and removes a workbook already saved.
func exportAll(ctx context.Context, progressOut io.Writer, output string, transactions []model.Transaction,
	publisher sheets.Publisher) (export.Result, *sheets.Result, error) {
	bar := cli.NewProgressBar(progressOut, len(transactions), "Writing workbook")
	writer := export.NewXLSXWriter(
		export.WithProgress(cli.ProgressFunc(bar)),
		export.WithLogger(slog.Default()),
	)

	g, gctx := errgroup.WithContext(ctx)

	var result export.Result
	g.Go(func() error {
		var err error
		result, err = writer.Export(gctx, output, transactions)
		return err
	})

	var published *sheets.Result
	if publisher != nil {
		g.Go(func() error {
			res, err := publisher.Publish(gctx, export.BuildTable(transactions))
			if err != nil {
				return fmt.Errorf("failed to publish to google sheets: %w", err)
			}
			published = &res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if result.Written {
			if rmErr := os.Remove(result.Path); rmErr != nil {
				slog.Warn("failed to remove partial export", "path", result.Path, "error", rmErr)
			}
		}
		return export.Result{}, nil, err
	}
	return result, published, nil
}
