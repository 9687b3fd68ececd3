package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/txscope/internal/common"
	"github.com/Veraticus/txscope/internal/model"
)

// ReplaceTransactions swaps the cached snapshot for transactions and records the sync
// time. The replacement is atomic.
func (s *SQLiteStorage) ReplaceTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (
			position, id, hash, from_address, to_address, amount, status,
			gas_limit, gas_price, timestamp, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, txn := range transactions {
		if _, err := stmt.ExecContext(ctx,
			i,
			txn.ID,
			txn.Hash,
			txn.FromAddress,
			txn.ToAddress,
			txn.Amount,
			string(txn.Status),
			nullString(txn.GasLimit),
			nullString(txn.GasPrice),
			nullString(txn.Timestamp),
			nullString(txn.CreatedAt),
		); err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sync_state (id, last_sync, row_count) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET last_sync = excluded.last_sync, row_count = excluded.row_count
	`, time.Now().UTC(), len(transactions)); err != nil {
		return fmt.Errorf("failed to record sync: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	slog.Debug("cached transaction snapshot", "count", len(transactions))
	return nil
}

// GetTransactions returns the cached snapshot in the order it was delivered.
func (s *SQLiteStorage) GetTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hash, from_address, to_address, amount, status,
			gas_limit, gas_price, timestamp, created_at
		FROM transactions
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	transactions := []model.Transaction{}
	for rows.Next() {
		var (
			txn                                    model.Transaction
			status                                 string
			gasLimit, gasPrice, timestamp, created sql.NullString
		)
		if err := rows.Scan(
			&txn.ID, &txn.Hash, &txn.FromAddress, &txn.ToAddress, &txn.Amount, &status,
			&gasLimit, &gasPrice, &timestamp, &created,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrDatabaseCorrupted, err)
		}
		txn.Status = model.Status(status)
		txn.GasLimit = gasLimit.String
		txn.GasPrice = gasPrice.String
		txn.Timestamp = timestamp.String
		txn.CreatedAt = created.String
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	return transactions, nil
}

// FetchAllTransactions serves the cache as a transaction source.
func (s *SQLiteStorage) FetchAllTransactions(ctx context.Context) ([]model.Transaction, error) {
	return s.GetTransactions(ctx)
}

// LastSync returns when the snapshot was last replaced. It returns common.ErrNotFound
// when nothing was ever cached.
func (s *SQLiteStorage) LastSync(ctx context.Context) (time.Time, error) {
	if err := validateContext(ctx); err != nil {
		return time.Time{}, err
	}

	var last time.Time
	err := s.db.QueryRowContext(ctx, `SELECT last_sync FROM sync_state WHERE id = 1`).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, common.ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read sync state: %w", err)
	}
	return last, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
