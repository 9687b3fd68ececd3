package testutil

import (
	"fmt"
	"time"

	"github.com/Veraticus/txscope/internal/model"
)

// BaseTime is the timestamp of the first generated transaction.
var BaseTime = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

// Builder assembles transaction fixtures with a fluent API.
//
//	txns := testutil.NewBuilder().
//		WithGenerated(20).
//		With(testutil.Transaction("x", model.StatusFailed, "3")).
//		Build()
type Builder struct {
	transactions []model.Transaction
}

// NewBuilder creates an empty fixture builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// With appends explicit transactions.
func (b *Builder) With(transactions ...model.Transaction) *Builder {
	b.transactions = append(b.transactions, transactions...)
	return b
}

// WithGenerated appends n transactions one hour apart with rotating statuses.
func (b *Builder) WithGenerated(n int) *Builder {
	statuses := model.AllStatuses()
	offset := len(b.transactions)
	for i := 0; i < n; i++ {
		k := offset + i
		b.transactions = append(b.transactions, model.Transaction{
			ID:          fmt.Sprintf("tx-%03d", k),
			Hash:        fmt.Sprintf("0x%064x", k+1),
			FromAddress: fmt.Sprintf("0x%040x", 0xa0+k),
			ToAddress:   fmt.Sprintf("0x%040x", 0xb0+k),
			Amount:      fmt.Sprintf("%d.%02d", k%9, k%100),
			Status:      statuses[k%len(statuses)],
			GasLimit:    "21000",
			GasPrice:    "0.000000002",
			Timestamp:   BaseTime.Add(time.Duration(k) * time.Hour).Format(time.RFC3339),
		})
	}
	return b
}

// Build returns a copy of the assembled transactions.
func (b *Builder) Build() []model.Transaction {
	out := make([]model.Transaction, len(b.transactions))
	copy(out, b.transactions)
	return out
}

// Transaction returns a minimal transaction with the given id, status and amount.
func Transaction(id string, status model.Status, amount string) model.Transaction {
	return model.Transaction{
		ID:          id,
		Hash:        "0x" + id,
		FromAddress: "0xfrom" + id,
		ToAddress:   "0xto" + id,
		Amount:      amount,
		Status:      status,
		Timestamp:   BaseTime.Format(time.RFC3339),
	}
}
