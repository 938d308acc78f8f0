package reward

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
	"sync"
	"time"
)

// ErrRejected is returned when the balance service answers with valid=false
var ErrRejected = errors.New("reward service rejected the request")

// Client credits points to an account on the balance-tracking service
type Client interface {
	// AddToBalance credits points and returns the new balance
	AddToBalance(ctx context.Context, address string, points int) (int, error)
	// Balance returns the current balance for the address
	Balance(ctx context.Context, address string) (int, error)
}

type balanceRequest struct {
	Address string `json:"address"`
	Points  *int   `json:"points,omitempty"`
}

type balanceResponse struct {
	Valid   bool   `json:"valid"`
	Balance int    `json:"balance"`
	Error   string `json:"error,omitempty"`
}

// HTTPClient talks to the balance service over JSON POSTs
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates a client for the service at baseURL
func NewHTTPClient(baseURL string, logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// AddToBalance posts {address, points} to /addToBalance
func (c *HTTPClient) AddToBalance(ctx context.Context, address string, points int) (int, error) {
	balance, err := c.post(ctx, "/addToBalance", balanceRequest{Address: address, Points: &points})
	if err != nil {
		c.logger.Warn("reward credit failed",
			slog.String("address", address),
			slog.Int("points", points),
			slog.String("error", err.Error()),
		)
		return 0, err
	}
	c.logger.Info("reward credited",
		slog.String("address", address),
		slog.Int("points", points),
		slog.Int("balance", balance),
	)
	return balance, nil
}

// Balance posts {address} to /balance
func (c *HTTPClient) Balance(ctx context.Context, address string) (int, error) {
	return c.post(ctx, "/balance", balanceRequest{Address: address})
}

func (c *HTTPClient) post(ctx context.Context, path string, body balanceRequest) (int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	var parsed balanceResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return 0, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}
	if resp.StatusCode >= 400 || !parsed.Valid {
		msg := parsed.Error
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return 0, fmt.Errorf("%w: %s", ErrRejected, msg)
	}
	return parsed.Balance, nil
}

var _ Client = (*HTTPClient)(nil)

// NopClient keeps balances in memory. It is used when no reward service is configured.
type NopClient struct {
	mu       sync.Mutex
	balances map[string]int
}

// NewNopClient creates an empty NopClient
func NewNopClient() *NopClient {
	return &NopClient{balances: make(map[string]int)}
}

// AddToBalance records the points locally
func (c *NopClient) AddToBalance(ctx context.Context, address string, points int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balances[address] += points
	return c.balances[address], nil
}

// Balance returns the locally recorded balance
func (c *NopClient) Balance(ctx context.Context, address string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balances[address], nil
}

var _ Client = (*NopClient)(nil)
