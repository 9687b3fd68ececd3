package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_EffectiveTime(t *testing.T) {
	tests := []struct {
		name   string
		want   time.Time
		txn    Transaction
		wantOK bool
	}{
		{
			name:   "timestamp wins over createdAt",
			txn:    Transaction{Timestamp: "2024-03-01T10:00:00Z", CreatedAt: "2020-01-01T00:00:00Z"},
			want:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "falls back to createdAt",
			txn:    Transaction{CreatedAt: "2024-03-01T10:00:00.123Z"},
			want:   time.Date(2024, 3, 1, 10, 0, 0, 123000000, time.UTC),
			wantOK: true,
		},
		{
			name:   "offset is honoured",
			txn:    Transaction{Timestamp: "2024-03-01T12:00:00+02:00"},
			want:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "date only is UTC midnight",
			txn:    Transaction{Timestamp: "2024-03-01"},
			want:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "both absent",
			txn:    Transaction{},
			wantOK: false,
		},
		{
			name:   "garbage",
			txn:    Transaction{Timestamp: "yesterday"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.txn.EffectiveTime()
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseTime_LocalWithoutZone(t *testing.T) {
	got, ok := ParseTime("2024-03-01T10:30:00")
	require.True(t, ok)
	assert.Equal(t, time.Local, got.Location())
	assert.Equal(t, 10, got.Hour())
	assert.Equal(t, 30, got.Minute())
}

func TestTransaction_AmountFloat(t *testing.T) {
	assert.InDelta(t, 1.5, Transaction{Amount: "1.5"}.AmountFloat(), 1e-9)
	assert.InDelta(t, 10, Transaction{Amount: " 10 "}.AmountFloat(), 1e-9)
	assert.Zero(t, Transaction{Amount: "abc"}.AmountFloat())
	assert.Zero(t, Transaction{}.AmountFloat())
	for _, special := range []string{"NaN", "Inf", "+Inf", "-Infinity"} {
		assert.Zero(t, Transaction{Amount: special}.AmountFloat(), special)
	}
}

func TestStatus(t *testing.T) {
	st, err := ParseStatus(" Confirmed ")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, st)
	assert.Equal(t, "Confirmed", st.Title())

	_, err = ParseStatus("dropped")
	assert.Error(t, err)

	assert.False(t, Status("dropped").Valid())
	assert.Equal(t, "", Status("").Title())
	assert.Equal(t, []Status{StatusPending, StatusConfirmed, StatusFailed}, AllStatuses())
}
