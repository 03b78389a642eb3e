package models

// Placeholder values substituted when a product cannot be resolved, so the
// cart join stays complete and totals stay computable.
const (
	PlaceholderName    = "Unknown Product"
	PlaceholderPicture = "/static/img/products/placeholder.jpg"
)

// Product is a priced catalog entry as served by the product catalog service.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Picture     string   `json:"picture"`
	PriceUsd    Money    `json:"priceUsd"`
	Categories  []string `json:"categories,omitempty"`
}

// PlaceholderProduct builds the zero-priced stand-in for a product id the
// catalog could not resolve.
func PlaceholderProduct(id string) Product {
	return Product{
		ID:       id,
		Name:     PlaceholderName,
		Picture:  PlaceholderPicture,
		PriceUsd: Money{},
	}
}

// Ad is a single advertisement returned by the ad service.
type Ad struct {
	RedirectURL string `json:"redirectUrl"`
	Text        string `json:"text"`
}
