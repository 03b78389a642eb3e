package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"storefront/models"
)

// CartClient communicates with the cart service via HTTP.
type CartClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCartClient creates a new CartClient
func NewCartClient(baseURL string, timeout time.Duration) *CartClient {
	return &CartClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// cartEnvelope is the {success, message, data} wrapper the cart service puts
// around every response. It is stripped here and nowhere else.
type cartEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    *models.Cart `json:"data"`
}

// GetCart fetches the cart for a user. A 404 or 500 from the cart service is
// treated as an empty cart, not an error; only transport failures and other
// statuses propagate.
func (c *CartClient) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	u := fmt.Sprintf("%s/carts/%s", c.baseURL, url.PathEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cart service request failed: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusInternalServerError {
		drain(resp)
		return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	if resp.StatusCode != http.StatusOK {
		drain(resp)
		return nil, fmt.Errorf("cart service returned %d", resp.StatusCode)
	}

	var envelope cartEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("cart service returned malformed body: %w", err)
	}
	resp.Body.Close()

	if !envelope.Success || envelope.Data == nil {
		return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	if envelope.Data.Items == nil {
		envelope.Data.Items = []models.CartItem{}
	}
	return envelope.Data, nil
}

// AddItem adds quantity of a product to the user's cart and returns the
// updated, unwrapped cart.
func (c *CartClient) AddItem(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	u := fmt.Sprintf("%s/carts/%s/items?productId=%s&quantity=%s",
		c.baseURL, url.PathEscape(userID), url.QueryEscape(productID), strconv.Itoa(quantity))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cart service request failed: %w", err)
	}

	var envelope cartEnvelope
	if err := decodeJSON(resp, &envelope); err != nil {
		return nil, err
	}
	if !envelope.Success || envelope.Data == nil {
		return nil, fmt.Errorf("cart service rejected add item: %s", envelope.Message)
	}
	return envelope.Data, nil
}

// EmptyCart removes every item from the user's cart.
func (c *CartClient) EmptyCart(ctx context.Context, userID string) error {
	u := fmt.Sprintf("%s/carts/%s", c.baseURL, url.PathEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("cart service request failed: %w", err)
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("cart service returned %d", resp.StatusCode)
	}
	return nil
}
