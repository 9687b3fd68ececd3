// Package testutil provides shared fixtures for txscope tests.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/txscope/internal/model"
	"github.com/Veraticus/txscope/internal/storage"
)

// SetupTestDB creates a migrated in-memory snapshot cache seeded with transactions.
// The database is closed when the test ends.
func SetupTestDB(t *testing.T, transactions ...model.Transaction) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(storage.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if len(transactions) > 0 {
		if err := store.ReplaceTransactions(ctx, transactions); err != nil {
			t.Fatalf("failed to seed transactions: %v", err)
		}
	}

	return store
}
