package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"storefront/models"
)

// CheckoutClient communicates with the checkout service via HTTP.
type CheckoutClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCheckoutClient creates a new CheckoutClient
func NewCheckoutClient(baseURL string, timeout time.Duration) *CheckoutClient {
	return &CheckoutClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type placeOrderResponse struct {
	Message string              `json:"message"`
	Order   *models.OrderResult `json:"order"`
}

// PlaceOrder submits a finalized order and returns the receipt. Any upstream
// rejection surfaces with the checkout service's message attached.
func (c *CheckoutClient) PlaceOrder(ctx context.Context, order *models.PlaceOrderRequest) (*models.OrderResult, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checkout service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		var failure struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &failure) == nil && failure.Message != "" {
			return nil, fmt.Errorf("checkout service rejected order: %s", failure.Message)
		}
		return nil, fmt.Errorf("checkout service returned %d", resp.StatusCode)
	}

	var placed placeOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&placed); err != nil {
		return nil, fmt.Errorf("checkout service returned malformed body: %w", err)
	}
	if placed.Order == nil {
		return nil, fmt.Errorf("checkout service returned no order")
	}
	return placed.Order, nil
}
