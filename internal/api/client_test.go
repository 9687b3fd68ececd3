package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/Veraticus/txscope/internal/common"
	"github.com/Veraticus/txscope/internal/model"
	"github.com/Veraticus/txscope/internal/service"
	"github.com/google/uuid"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://api.test/v1"

var _ service.TransactionAPI = (*Client)(nil)

func newTestClient(t *testing.T) (*Client, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	client, err := NewClient(Config{BaseURL: baseURL + "/", APIKey: "secret"},
		&http.Client{Transport: transport},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return client, transport
}

func TestClient_FetchAllTransactions(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "bare array",
			body: `[{"id":"1","hash":"0x1","status":"pending","amount":"1.5"},{"id":"2","hash":"0x2","status":"failed","amount":"0.2","gasLimit":"21000"}]`,
			want: []string{"1", "2"},
		},
		{
			name: "data envelope",
			body: `{"data":[{"id":"3","hash":"0x3","status":"confirmed","amount":"10","createdAt":"2024-01-01T00:00:00Z"}]}`,
			want: []string{"3"},
		},
		{name: "empty array", body: `[]`, want: []string{}},
		{name: "empty envelope", body: `{}`, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, transport := newTestClient(t)
			transport.RegisterResponder(http.MethodGet, baseURL+"/transactions",
				func(req *http.Request) (*http.Response, error) {
					assert.Equal(t, "secret", req.Header.Get("X-API-Key"))
					return httpmock.NewStringResponse(http.StatusOK, tt.body), nil
				})

			got, err := client.FetchAllTransactions(context.Background())
			require.NoError(t, err)

			ids := make([]string, len(got))
			for i, txn := range got {
				ids[i] = txn.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestClient_FetchKeepsOptionalFields(t *testing.T) {
	client, transport := newTestClient(t)
	transport.RegisterResponder(http.MethodGet, baseURL+"/transactions",
		httpmock.NewStringResponder(http.StatusOK,
			`[{"id":"1","hash":"0x1","fromAddress":"0xa","toAddress":"0xb","amount":"2","status":"confirmed","gasLimit":"21000","gasPrice":"0.00000002","timestamp":"2024-03-01T10:00:00Z"}]`))

	got, err := client.FetchAllTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, model.Transaction{
		ID:          "1",
		Hash:        "0x1",
		FromAddress: "0xa",
		ToAddress:   "0xb",
		Amount:      "2",
		Status:      model.StatusConfirmed,
		GasLimit:    "21000",
		GasPrice:    "0.00000002",
		Timestamp:   "2024-03-01T10:00:00Z",
	}, got[0])
}

func TestClient_FetchErrors(t *testing.T) {
	tests := []struct {
		responder httpmock.Responder
		name      string
		contains  string
	}{
		{
			name:      "server error",
			responder: httpmock.NewStringResponder(http.StatusBadGateway, "upstream down"),
			contains:  "unexpected status 502: upstream down",
		},
		{
			name:      "malformed json",
			responder: httpmock.NewStringResponder(http.StatusOK, `[{"id":`),
			contains:  "failed to decode",
		},
		{
			name:      "transport failure",
			responder: httpmock.NewErrorResponder(errors.New("connection refused")),
			contains:  "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, transport := newTestClient(t)
			transport.RegisterResponder(http.MethodGet, baseURL+"/transactions", tt.responder)

			_, err := client.FetchAllTransactions(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrUpstreamFetch)
			assert.Contains(t, err.Error(), tt.contains)
			// No internal retry.
			assert.Equal(t, 1, transport.GetTotalCallCount())
		})
	}
}

func TestClient_ErrorBodyIsTruncated(t *testing.T) {
	client, transport := newTestClient(t)
	transport.RegisterResponder(http.MethodGet, baseURL+"/transactions",
		httpmock.NewStringResponder(http.StatusInternalServerError, strings.Repeat("x", 4096)))

	_, err := client.FetchAllTransactions(context.Background())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Len(t, statusErr.Body, maxErrorBody)
}

func TestClient_CreateTransaction(t *testing.T) {
	client, transport := newTestClient(t)

	var keys []string
	transport.RegisterResponder(http.MethodPost, baseURL+"/transactions",
		func(req *http.Request) (*http.Response, error) {
			key := req.Header.Get("Idempotency-Key")
			_, err := uuid.Parse(key)
			assert.NoError(t, err)
			keys = append(keys, key)
			assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

			var body model.CreateRequest
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.Equal(t, "1.25", body.Amount)

			return httpmock.NewJsonResponse(http.StatusCreated, model.Transaction{
				ID:          "new",
				Hash:        "0xnew",
				FromAddress: body.FromAddress,
				ToAddress:   body.ToAddress,
				Amount:      body.Amount,
				Status:      model.StatusPending,
			})
		})

	req := model.CreateRequest{FromAddress: "0xa", ToAddress: "0xb", Amount: "1.25"}
	created, err := client.CreateTransaction(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)
	assert.Equal(t, model.StatusPending, created.Status)

	_, err = client.CreateTransaction(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.NotEqual(t, keys[0], keys[1])
}

func TestClient_CreateTransactionRejected(t *testing.T) {
	client, transport := newTestClient(t)
	transport.RegisterResponder(http.MethodPost, baseURL+"/transactions",
		httpmock.NewStringResponder(http.StatusUnprocessableEntity, `{"error":"insufficient funds"}`))

	_, err := client.CreateTransaction(context.Background(), model.CreateRequest{Amount: "1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUpstreamCreate)
	assert.Contains(t, err.Error(), "insufficient funds")
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{}, nil, nil)
	assert.ErrorIs(t, err, common.ErrMissingConfig)

	_, err = NewClient(Config{BaseURL: "ftp://example.com"}, nil, nil)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	client, err := NewClient(Config{BaseURL: "http://localhost:3000"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
}
