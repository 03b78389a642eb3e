package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront/models"
)

// ShippingClient communicates with the shipping service via HTTP.
type ShippingClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewShippingClient creates a new ShippingClient
func NewShippingClient(baseURL string, timeout time.Duration) *ShippingClient {
	return &ShippingClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// QuoteRequest is the payload sent to POST /shipping/quote. Address stays nil
// for the demo default.
type QuoteRequest struct {
	Address *models.Address   `json:"address"`
	Items   []models.CartItem `json:"items"`
}

type quoteResponse struct {
	CostUsd models.Money `json:"costUsd"`
}

// GetQuote obtains a shipping cost in the canonical currency for the given
// items.
func (c *ShippingClient) GetQuote(ctx context.Context, items []models.CartItem, address *models.Address) (models.Money, error) {
	payload := QuoteRequest{Address: address, Items: items}
	body, err := json.Marshal(payload)
	if err != nil {
		return models.Money{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/shipping/quote", bytes.NewReader(body))
	if err != nil {
		return models.Money{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Money{}, fmt.Errorf("shipping service request failed: %w", err)
	}

	var quote quoteResponse
	if err := decodeJSON(resp, &quote); err != nil {
		return models.Money{}, err
	}
	return quote.CostUsd, nil
}

// ShipRequest is the payload sent to POST /shipping/ship.
type ShipRequest struct {
	Address *models.Address   `json:"address"`
	Items   []models.CartItem `json:"items"`
}

type shipResponse struct {
	TrackingID string `json:"trackingId"`
}

// Ship hands an order to the shipping service and returns the tracking id.
func (c *ShippingClient) Ship(ctx context.Context, items []models.CartItem, address *models.Address) (string, error) {
	payload := ShipRequest{Address: address, Items: items}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/shipping/ship", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("shipping service request failed: %w", err)
	}

	var shipped shipResponse
	if err := decodeJSON(resp, &shipped); err != nil {
		return "", err
	}
	return shipped.TrackingID, nil
}
