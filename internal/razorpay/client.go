package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/blayzex/storefront-api/internal/config"
	"github.com/blayzex/storefront-api/pkg/errors"
)

const defaultBaseURL = "https://api.razorpay.com"

type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Razorpay REST client
func NewClient(cfg config.RazorpayConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:   defaultBaseURL,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Configured reports whether gateway credentials are present
func (c *Client) Configured() bool {
	return c.keyID != "" && c.keySecret != ""
}

// Order represents a gateway order as returned by the orders API
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder pre-registers a payment of the given amount (in paise) with
// the gateway and returns the minted gateway order.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	if !c.Configured() {
		return nil, &errors.ErrConfiguration{Message: "razorpay credentials are missing"}
	}

	reqBody := createOrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/orders", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Description != "" {
			c.logger.Error("Razorpay order creation failed",
				zap.Int("status", resp.StatusCode),
				zap.String("code", apiErr.Error.Code),
				zap.String("description", apiErr.Error.Description),
			)
			return nil, &errors.ErrGateway{Message: apiErr.Error.Description}
		}
		return nil, &errors.ErrGateway{Message: fmt.Sprintf("razorpay API error: status %d", resp.StatusCode)}
	}

	var order Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &order, nil
}
