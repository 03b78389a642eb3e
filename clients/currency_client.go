package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// CurrencyClient communicates with the currency conversion service via HTTP.
type CurrencyClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCurrencyClient creates a new CurrencyClient
func NewCurrencyClient(baseURL string, timeout time.Duration) *CurrencyClient {
	return &CurrencyClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type convertResponse struct {
	Result *float64 `json:"result"`
}

// Convert returns amount expressed in the target currency. A missing or
// non-finite result field is an error so the caller can fall back to
// unconverted display.
func (c *CurrencyClient) Convert(ctx context.Context, from, to string, amount float64) (float64, error) {
	u := fmt.Sprintf("%s/convert?from=%s&to=%s&amount=%s",
		c.baseURL, url.QueryEscape(from), url.QueryEscape(to),
		strconv.FormatFloat(amount, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("currency service request failed: %w", err)
	}

	var converted convertResponse
	if err := decodeJSON(resp, &converted); err != nil {
		return 0, err
	}
	if converted.Result == nil || math.IsNaN(*converted.Result) || math.IsInf(*converted.Result, 0) {
		return 0, fmt.Errorf("currency service returned non-numeric result for %s", to)
	}
	return *converted.Result, nil
}

// ListCurrencies returns the currency codes the conversion service supports.
// The service serves either a bare array or a {"currencies": [...]} envelope.
func (c *CurrencyClient) ListCurrencies(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/currencies", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("currency service request failed: %w", err)
	}

	var raw json.RawMessage
	if err := decodeJSON(resp, &raw); err != nil {
		return nil, err
	}

	var bare []string
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, nil
	}
	var wrapped struct {
		Currencies []string `json:"currencies"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("currency service returned malformed currency list: %w", err)
	}
	return wrapped.Currencies, nil
}
