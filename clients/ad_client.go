package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront/models"
)

// AdClient communicates with the ad service via HTTP. Everything it serves is
// decoration; callers treat every failure as "no ads".
type AdClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAdClient creates a new AdClient
func NewAdClient(baseURL string, timeout time.Duration) *AdClient {
	return &AdClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *AdClient) getAds(ctx context.Context, u string) ([]models.Ad, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ad service request failed: %w", err)
	}

	var ads []models.Ad
	if err := decodeJSON(resp, &ads); err != nil {
		return nil, err
	}
	return ads, nil
}

// GetRandomAds fetches count random ads.
func (c *AdClient) GetRandomAds(ctx context.Context, count int) ([]models.Ad, error) {
	u := fmt.Sprintf("%s/ads/random?count=%s", c.baseURL, strconv.Itoa(count))
	return c.getAds(ctx, u)
}

// GetAdsByContext fetches ads targeted at the given context keys, typically
// the categories of the products on screen.
func (c *AdClient) GetAdsByContext(ctx context.Context, contextKeys []string) ([]models.Ad, error) {
	u := fmt.Sprintf("%s/ads?contextKeys=%s", c.baseURL, url.QueryEscape(strings.Join(contextKeys, ",")))
	return c.getAds(ctx, u)
}
