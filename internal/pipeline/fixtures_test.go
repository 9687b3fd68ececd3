package pipeline

import (
	"fmt"
	"time"

	"github.com/Veraticus/txscope/internal/model"
)

func txn(id string, status model.Status, amount, timestamp string) model.Transaction {
	return model.Transaction{
		ID:          id,
		Hash:        "0xhash" + id,
		FromAddress: "0xfrom" + id,
		ToAddress:   "0xto" + id,
		Amount:      amount,
		Status:      status,
		Timestamp:   timestamp,
	}
}

// generate builds n transactions with rotating statuses, one minute apart.
func generate(n int) []model.Transaction {
	statuses := model.AllStatuses()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.Transaction, n)
	for i := range out {
		out[i] = txn(
			fmt.Sprintf("%03d", i),
			statuses[i%len(statuses)],
			fmt.Sprintf("%d.%d", i%7, i%10),
			base.Add(time.Duration(i)*time.Minute).Format(time.RFC3339),
		)
	}
	return out
}

func ids(transactions []model.Transaction) []string {
	out := make([]string, len(transactions))
	for i, t := range transactions {
		out[i] = t.ID
	}
	return out
}

func localDay(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return &t
}
