package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RecommendationClient communicates with the recommendation service via HTTP.
type RecommendationClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRecommendationClient creates a new RecommendationClient
func NewRecommendationClient(baseURL string, timeout time.Duration) *RecommendationClient {
	return &RecommendationClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type recommendRequest struct {
	UserID     string   `json:"userId"`
	ProductIDs []string `json:"productIds"`
}

type recommendResponse struct {
	ProductIDs []string `json:"productIds"`
}

// Recommend returns product ids related to the given seed products.
func (c *RecommendationClient) Recommend(ctx context.Context, userID string, productIDs []string) ([]string, error) {
	payload := recommendRequest{UserID: userID, ProductIDs: productIDs}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recommendations", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recommendation service request failed: %w", err)
	}

	var recs recommendResponse
	if err := decodeJSON(resp, &recs); err != nil {
		return nil, err
	}
	return recs.ProductIDs, nil
}
