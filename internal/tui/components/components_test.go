package components

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/txscope/internal/model"
	tuitest "github.com/Veraticus/txscope/internal/tui/testing"
	"github.com/Veraticus/txscope/internal/tui/themes"
	"github.com/Veraticus/txscope/internal/validate"
)

const (
	addrA = "0x52908400098527886e0f7030069857d2e4169ee7"
	addrB = "0x8617e340b3d01fa5f11f306f4090fd50e238070d"
	hash  = "0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func now() time.Time { return fixedNow }

func sample(id string, status model.Status, amount string) model.Transaction {
	return model.Transaction{
		ID:          id,
		Hash:        hash,
		FromAddress: addrA,
		ToAddress:   addrB,
		Amount:      amount,
		Status:      status,
		GasLimit:    "21000",
		GasPrice:    "0.00000002",
		Timestamp:   "2024-03-01T11:55:00Z",
	}
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func TestTransactionTable(t *testing.T) {
	table := NewTransactionTable(themes.Default, now)
	table.Resize(120, 10)
	table.SetRows([]model.Transaction{
		sample("1", model.StatusConfirmed, "1.5"),
		sample("2", model.StatusPending, "2"),
		sample("3", model.StatusFailed, "3"),
	})

	view := tuitest.StripANSI(table.View())
	assert.Contains(t, view, "0x88df0164…944b")
	assert.Contains(t, view, "1.500000")
	assert.Contains(t, view, "Confirmed")
	assert.Contains(t, view, "5m ago")

	selected, ok := table.Selected()
	require.True(t, ok)
	assert.Equal(t, "1", selected.ID)

	table, _ = table.Update(tuitest.KeyDown())
	table, _ = table.Update(tuitest.KeyPress("j"))
	assert.Equal(t, 2, table.Cursor())

	table, _ = table.Update(tuitest.KeyPress("g"))
	assert.Equal(t, 0, table.Cursor())
	table, _ = table.Update(tuitest.KeyPress("G"))
	assert.Equal(t, 2, table.Cursor())

	_, cmd := table.Update(tuitest.KeyEnter())
	msg, ok := runCmd(t, cmd).(TransactionSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, "3", msg.Transaction.ID)

	// Shrinking the page pulls the cursor back into range.
	table.SetRows([]model.Transaction{sample("9", model.StatusPending, "1")})
	selected, ok = table.Selected()
	require.True(t, ok)
	assert.Equal(t, "9", selected.ID)

	table.SetRows(nil)
	_, ok = table.Selected()
	assert.False(t, ok)
	_, cmd = table.Update(tuitest.KeyEnter())
	assert.Nil(t, cmd)
}

func TestTransactionDetail(t *testing.T) {
	explorer := func(h string) string { return "https://etherscan.io/tx/" + h }
	detail := NewTransactionDetailModel(sample("1", model.StatusConfirmed, "1.5"), themes.Default, explorer, now)

	view := tuitest.StripANSI(detail.View())
	assert.Contains(t, view, hash)
	assert.Contains(t, view, "0x52908400098527886E0F7030069857D2E4169EE7")
	assert.Contains(t, view, "1.500000")
	assert.Contains(t, view, "21,000")
	assert.Contains(t, view, "0.00042000")
	assert.Contains(t, view, "https://etherscan.io/tx/"+hash)
	assert.Contains(t, view, "5m ago")

	_, cmd := detail.Update(tuitest.KeyPress("y"))
	assert.Equal(t, CopyRequestMsg{Label: "hash", Value: hash}, runCmd(t, cmd))

	_, cmd = detail.Update(tuitest.KeyPress("o"))
	assert.Equal(t, CopyRequestMsg{Label: "explorer link", Value: "https://etherscan.io/tx/" + hash}, runCmd(t, cmd))

	_, cmd = detail.Update(tuitest.KeyEsc())
	assert.Equal(t, BackToListMsg{}, runCmd(t, cmd))
}

func TestTransactionDetail_MissingFields(t *testing.T) {
	detail := NewTransactionDetailModel(model.Transaction{ID: "x", Status: model.StatusPending}, themes.Default, nil, now)

	view := tuitest.StripANSI(detail.View())
	assert.Contains(t, view, "N/A")
	assert.NotContains(t, view, "Explorer")

	_, cmd := detail.Update(tuitest.KeyPress("o"))
	assert.Nil(t, cmd)
}

func TestCreateForm_ValidationErrors(t *testing.T) {
	form := NewCreateForm(themes.Default)
	form.SetValue(FieldFrom, "0x123")
	form.SetValue(FieldTo, addrB)
	form.SetValue(FieldAmount, "-1")

	form, cmd := form.Update(tuitest.KeyEnter())

	assert.False(t, form.Submitting())
	require.Error(t, form.FieldError(FieldFrom))
	assert.ErrorIs(t, form.FieldError(FieldFrom), validate.ErrInvalidAddress)
	assert.ErrorIs(t, form.FieldError(FieldAmount), validate.ErrInvalidAmount)
	assert.NoError(t, form.FieldError(FieldTo))
	assert.Equal(t, FieldFrom, form.Focused())
	if cmd != nil {
		_, isSubmit := cmd().(SubmitCreateMsg)
		assert.False(t, isSubmit)
	}

	view := tuitest.StripANSI(form.View())
	assert.Contains(t, view, "invalid address")
	assert.Contains(t, view, "invalid amount")
}

func TestCreateForm_Submit(t *testing.T) {
	form := NewCreateForm(themes.Default)

	for _, r := range addrA {
		form, _ = form.Update(tuitest.KeyPress(string(r)))
	}
	form, _ = form.Update(tuitest.KeyTab())
	assert.Equal(t, FieldTo, form.Focused())
	form.SetValue(FieldTo, addrB)
	form.SetValue(FieldAmount, " 0.25 ")

	form, cmd := form.Update(tuitest.KeyEnter())

	require.True(t, form.Submitting())
	msg, ok := runCmd(t, cmd).(SubmitCreateMsg)
	require.True(t, ok)
	assert.Equal(t, model.CreateRequest{FromAddress: addrA, ToAddress: addrB, Amount: "0.25"}, msg.Request)

	// Keys are ignored while the request is in flight.
	form, cmd = form.Update(tuitest.KeyPress("x"))
	assert.Nil(t, cmd)

	form.SetSubmitError(errors.New("boom"))
	assert.False(t, form.Submitting())
	assert.Contains(t, tuitest.StripANSI(form.View()), "Create failed: boom")
}

func TestCreateForm_FocusWrapsAndCancel(t *testing.T) {
	form := NewCreateForm(themes.Default)

	form, _ = form.Update(tuitest.KeyShiftTab())
	assert.Equal(t, FieldGasPrice, form.Focused())
	form, _ = form.Update(tuitest.KeyTab())
	assert.Equal(t, FieldFrom, form.Focused())

	_, cmd := form.Update(tuitest.KeyEsc())
	assert.Equal(t, CancelCreateMsg{}, runCmd(t, cmd))
}

func TestCreateForm_SameAddress(t *testing.T) {
	form := NewCreateForm(themes.Default)
	form.SetValue(FieldFrom, addrA)
	form.SetValue(FieldTo, "0x52908400098527886E0F7030069857D2E4169EE7")
	form.SetValue(FieldAmount, "1")

	form, _ = form.Update(tuitest.KeyEnter())

	assert.ErrorIs(t, form.FieldError(FieldTo), validate.ErrSameAddress)
	assert.Equal(t, FieldTo, form.Focused())
}

func TestStats(t *testing.T) {
	txns := []model.Transaction{
		sample("1", model.StatusConfirmed, "1.5"),
		sample("2", model.StatusConfirmed, "0.25"),
		sample("3", model.StatusFailed, "junk"),
		sample("4", model.StatusPending, "2"),
	}

	s := ComputeStats(10, txns)

	assert.Equal(t, 10, s.Total)
	assert.Equal(t, 4, s.Filtered)
	assert.Equal(t, 2, s.ByStatus[model.StatusConfirmed])
	assert.Equal(t, "3.750000", s.TotalAmount.StringFixed(6))
	assert.InDelta(t, 0.5, s.ConfirmedRatio(), 0.0001)
	assert.Zero(t, ComputeStats(0, nil).ConfirmedRatio())

	panel := NewStatsPanelModel(themes.Default)
	panel.Resize(120)
	panel.SetStats(s)
	view := tuitest.StripANSI(panel.View())
	assert.Contains(t, view, "4 of 10 transactions")
	assert.Contains(t, view, "2 confirmed")
	assert.Contains(t, view, "Σ 3.750000")
	assert.Contains(t, view, "50% confirmed")
}
