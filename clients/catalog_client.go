package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"storefront/models"
)

// CatalogClient communicates with the product catalog service via HTTP.
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCatalogClient creates a new CatalogClient
func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// decodeProductList accepts either the {"products": [...]} envelope or a bare
// array, the two shapes the catalog serves depending on endpoint.
func decodeProductList(data []byte) ([]models.Product, error) {
	var wrapped struct {
		Products []models.Product `json:"products"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Products != nil {
		return wrapped.Products, nil
	}

	var bare []models.Product
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("catalog service returned malformed product list: %w", err)
	}
	return bare, nil
}

func (c *CatalogClient) getProducts(ctx context.Context, u string) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog service request failed: %w", err)
	}

	var raw json.RawMessage
	if err := decodeJSON(resp, &raw); err != nil {
		return nil, err
	}
	return decodeProductList(raw)
}

// GetProducts lists the whole catalog.
func (c *CatalogClient) GetProducts(ctx context.Context) ([]models.Product, error) {
	return c.getProducts(ctx, c.baseURL+"/products")
}

// GetProduct fetches a single catalog entry by id.
func (c *CatalogClient) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	u := fmt.Sprintf("%s/products/%s", c.baseURL, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog service request failed: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		drain(resp)
		return nil, fmt.Errorf("product %s not found", id)
	}

	var product models.Product
	if err := decodeJSON(resp, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductsBatch resolves a set of product ids in a single request.
// Entries missing from the response are simply absent; callers decide the
// fallback policy.
func (c *CatalogClient) GetProductsBatch(ctx context.Context, ids []string) ([]models.Product, error) {
	body, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/products/batch", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog service request failed: %w", err)
	}

	var raw json.RawMessage
	if err := decodeJSON(resp, &raw); err != nil {
		return nil, err
	}
	return decodeProductList(raw)
}

// Search returns the catalog entries matching a free-text query.
func (c *CatalogClient) Search(ctx context.Context, query string) ([]models.Product, error) {
	u := fmt.Sprintf("%s/products/search?q=%s", c.baseURL, url.QueryEscape(query))
	return c.getProducts(ctx, u)
}
