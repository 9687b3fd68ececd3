// Package api talks to the remote transaction API over HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/txscope/internal/common"
	"github.com/Veraticus/txscope/internal/model"
	"github.com/google/uuid"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// maxErrorBody limits how much of an error response ends up in the error message.
const maxErrorBody = 512

// Config configures the API client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client fetches and creates transactions. It never retries; callers decide.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	apiKey     string
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Body       string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// NewClient creates an API client. A nil httpClient gets a client with cfg.Timeout.
func NewClient(cfg Config, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: api base URL is required", common.ErrMissingConfig)
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("%w: api base URL must be http(s): %q", common.ErrInvalidConfig, cfg.BaseURL)
	}

	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// FetchAllTransactions retrieves the full collection. Errors wrap common.ErrUpstreamFetch.
func (c *Client) FetchAllTransactions(ctx context.Context) ([]model.Transaction, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/transactions", nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrUpstreamFetch, err)
	}

	transactions, err := decodeCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrUpstreamFetch, err)
	}

	c.logger.Debug("fetched transactions", "count", len(transactions))
	return transactions, nil
}

// decodeCollection accepts a bare array or an object with a data array.
func decodeCollection(raw json.RawMessage) ([]model.Transaction, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []model.Transaction{}, nil
	}

	if trimmed[0] == '[' {
		var transactions []model.Transaction
		if err := json.Unmarshal(trimmed, &transactions); err != nil {
			return nil, fmt.Errorf("failed to decode transactions: %w", err)
		}
		return transactions, nil
	}

	var envelope struct {
		Data []model.Transaction `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	if envelope.Data == nil {
		return []model.Transaction{}, nil
	}
	return envelope.Data, nil
}

// CreateTransaction submits req. Each call carries a fresh Idempotency-Key.
func (c *Client) CreateTransaction(ctx context.Context, req model.CreateRequest) (*model.Transaction, error) {
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}

	var created model.Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions", req, headers, &created); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrUpstreamCreate, err)
	}

	c.logger.Info("created transaction", "id", created.ID, "hash", created.Hash)
	return &created, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, headers map[string]string, response any) error {
	fullURL := c.baseURL + endpoint

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
		c.logger.Warn("api request failed", "method", method, "url", fullURL, "status", resp.StatusCode)
		return statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(response); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
