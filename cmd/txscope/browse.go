package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/txscope/internal/tui"
	"github.com/Veraticus/txscope/internal/tui/themes"
)

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse transactions interactively",
		Long: `Open the interactive transaction browser.

Transactions are fetched from the configured API and cached locally after
every successful fetch. When the API is unreachable the browser falls back
to the cached snapshot. Use --offline to read only from the cache, or --demo
to explore generated data without any API.`,
		RunE: runBrowse,
	}

	cmd.Flags().Bool("offline", false, "read from the local snapshot cache instead of the API")
	cmd.Flags().Bool("demo", false, "browse generated demo transactions")
	cmd.Flags().Int("demo-count", 120, "number of demo transactions to generate")

	return cmd
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	offline, _ := cmd.Flags().GetBool("offline")
	demo, _ := cmd.Flags().GetBool("demo")
	demoCount, _ := cmd.Flags().GetInt("demo-count")

	if offline && demo {
		return fmt.Errorf("--offline and --demo cannot be combined")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := []tui.Option{
		tui.WithTheme(themes.GetTheme(cfg.View.Theme)),
		tui.WithExplorer(cfg.ExplorerLink),
		tui.WithExportDir(cfg.Export.Dir),
		tui.WithLogger(slog.Default()),
	}
	if cfg.View.ItemsPerPage > 0 {
		opts = append(opts, tui.WithItemsPerPage(cfg.View.ItemsPerPage))
	}

	switch {
	case demo:
		opts = append(opts,
			tui.WithAPI(tui.NewDemoAPI(demoCount, time.Now, uint64(time.Now().UnixNano()))),
			tui.WithSourceLabel("demo"))

	case offline:
		store, err := initStorage(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		opts = append(opts, tui.WithSource(store), tui.WithSourceLabel("cache"))

	default:
		client, err := newAPIClient(cfg)
		if err != nil {
			return err
		}
		store, err := initStorage(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		opts = append(opts, tui.WithAPI(client), tui.WithCache(store))
	}

	slog.Info("starting browser", "offline", offline, "demo", demo)
	return tui.Run(ctx, opts...)
}
