package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Result is the backend reply to an order submission.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		OrderNumber string `json:"orderNumber"`
	} `json:"data"`
}

// APIError is a non-2xx reply from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("order api returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("order api returned %d", e.StatusCode)
}

// Submitter sends an order to the backend.
type Submitter interface {
	SubmitOrder(ctx context.Context, order Order) (*Result, error)
}

// OrderClient posts guest orders to the storefront REST backend.
type OrderClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewOrderClient(baseURL string, logger *zap.Logger) *OrderClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

func (c *OrderClient) SubmitOrder(ctx context.Context, order Order) (*Result, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/guest-orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("guest order request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read order response: %w", err)
	}
	var result Result
	decodeErr := json.Unmarshal(raw, &result)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: result.Message}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode order response: %w", decodeErr)
	}
	return &result, nil
}
