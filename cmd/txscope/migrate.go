package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/txscope/internal/cli"
	"github.com/Veraticus/txscope/internal/common"
	"github.com/Veraticus/txscope/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the snapshot cache schema to the latest version.

This command ensures the local database has all the required tables and
indexes.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "show the current schema version without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	status, _ := cmd.Flags().GetBool("status")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	out := cmd.OutOrStdout()

	if status {
		return writeMigrationStatus(ctx, out, cfg.Storage.Path, store)
	}

	slog.Info("running database migrations", "database", cfg.Storage.Path)

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	_, _ = fmt.Fprintln(out, cli.FormatSuccess("Database migrations completed"))
	return nil
}

// writeMigrationStatus prints the schema versions and when the snapshot was last synced.
func writeMigrationStatus(ctx context.Context, out io.Writer, path string, store *storage.SQLiteStorage) error {
	current, err := store.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	lastSync := "never"
	if current > 0 {
		last, err := store.LastSync(ctx)
		switch {
		case errors.Is(err, common.ErrNotFound):
		case err != nil:
			return err
		default:
			lastSync = last.Local().Format(time.RFC3339)
		}
	}

	_, _ = fmt.Fprintf(out, "Database:       %s\nCurrent schema: %d\nLatest schema:  %d\nLast sync:      %s\n",
		path, current, storage.ExpectedSchemaVersion, lastSync)
	return nil
}
