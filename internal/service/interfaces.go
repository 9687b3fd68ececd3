// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/txscope/internal/model"
)

// TransactionSource delivers the full raw transaction collection.
type TransactionSource interface {
	FetchAllTransactions(ctx context.Context) ([]model.Transaction, error)
}

// TransactionCreator submits new transactions to the remote API.
type TransactionCreator interface {
	CreateTransaction(ctx context.Context, req model.CreateRequest) (*model.Transaction, error)
}

// TransactionAPI is the remote API as seen by the UI.
type TransactionAPI interface {
	TransactionSource
	TransactionCreator
}

// SnapshotStore caches the last successfully fetched collection.
type SnapshotStore interface {
	TransactionSource
	ReplaceTransactions(ctx context.Context, transactions []model.Transaction) error
	LastSync(ctx context.Context) (time.Time, error)
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
