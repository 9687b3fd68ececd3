package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/txscope/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	txns := NewBuilder().
		WithGenerated(4).
		With(Transaction("x", model.StatusFailed, "3")).
		Build()

	require.Len(t, txns, 5)
	assert.Equal(t, "tx-000", txns[0].ID)
	assert.Equal(t, model.StatusConfirmed, txns[1].Status)
	assert.Len(t, txns[0].Hash, 66)
	assert.Len(t, txns[0].FromAddress, 42)
	assert.Equal(t, "x", txns[4].ID)

	at, ok := txns[3].EffectiveTime()
	require.True(t, ok)
	assert.InDelta(t, 3.0, at.Sub(BaseTime).Hours(), 0.001)
}

func TestSetupTestDB(t *testing.T) {
	store := SetupTestDB(t, NewBuilder().WithGenerated(3).Build()...)

	got, err := store.GetTransactions(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
