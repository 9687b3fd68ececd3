package tui

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/txscope/internal/model"
	"github.com/Veraticus/txscope/internal/service"
	"github.com/Veraticus/txscope/internal/validate"
)

var _ service.TransactionAPI = (*DemoAPI)(nil)

// DemoAPI is an in-memory transaction API filled with generated data.
type DemoAPI struct {
	now          func() time.Time
	rng          *rand.Rand
	transactions []model.Transaction
	mu           sync.Mutex
}

// NewDemoAPI generates count transactions ending at now. The same seed yields the same
// collection.
func NewDemoAPI(count int, now func() time.Time, seed uint64) *DemoAPI {
	if now == nil {
		now = time.Now
	}
	d := &DemoAPI{
		now: now,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}

	wallets := make([]string, 8)
	for i := range wallets {
		wallets[i] = d.address()
	}

	start := now()
	for i := range count {
		from := wallets[d.rng.IntN(len(wallets))]
		to := d.address()
		at := start.Add(-time.Duration(i)*37*time.Minute - time.Duration(d.rng.IntN(600))*time.Second)

		txn := model.Transaction{
			ID:          uuid.NewString(),
			Hash:        d.hash(),
			FromAddress: from,
			ToAddress:   to,
			Amount:      decimal.NewFromFloat(d.rng.Float64() * 5).Round(6).String(),
			Status:      d.status(),
			GasLimit:    fmt.Sprint([]int{21000, 50000, 120000, 250000}[d.rng.IntN(4)]),
			GasPrice:    decimal.New(int64(5+d.rng.IntN(60)), -9).String(),
		}

		switch {
		case i%23 == 22:
			txn.Timestamp = "not-a-time"
		case i%9 == 8:
			txn.CreatedAt = at.UTC().Format(time.RFC3339)
		default:
			txn.Timestamp = at.UTC().Format(time.RFC3339)
		}

		d.transactions = append(d.transactions, txn)
	}

	return d
}

// FetchAllTransactions returns a copy of the collection.
func (d *DemoAPI) FetchAllTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.transactions), nil
}

// CreateTransaction validates req and prepends a pending transaction.
func (d *DemoAPI) CreateTransaction(ctx context.Context, req model.CreateRequest) (*model.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req = validate.Normalize(req)
	if err := validate.CreateRequest(req); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	txn := model.Transaction{
		ID:          uuid.NewString(),
		Hash:        d.hash(),
		FromAddress: req.FromAddress,
		ToAddress:   req.ToAddress,
		Amount:      req.Amount,
		Status:      model.StatusPending,
		GasLimit:    req.GasLimit,
		GasPrice:    req.GasPrice,
		Timestamp:   d.now().UTC().Format(time.RFC3339),
	}
	d.transactions = append([]model.Transaction{txn}, d.transactions...)
	return &txn, nil
}

func (d *DemoAPI) status() model.Status {
	switch n := d.rng.IntN(10); {
	case n < 7:
		return model.StatusConfirmed
	case n < 9:
		return model.StatusPending
	default:
		return model.StatusFailed
	}
}

func (d *DemoAPI) fill(b []byte) {
	for i := 0; i < len(b); i += 8 {
		var chunk [8]byte
		binary.LittleEndian.PutUint64(chunk[:], d.rng.Uint64())
		copy(b[i:], chunk[:])
	}
}

func (d *DemoAPI) address() string {
	b := make([]byte, common.AddressLength)
	d.fill(b)
	return common.BytesToAddress(b).Hex()
}

func (d *DemoAPI) hash() string {
	b := make([]byte, common.HashLength)
	d.fill(b)
	return common.BytesToHash(b).Hex()
}
