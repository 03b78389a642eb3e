// Package services holds the order-total aggregation pipeline and the
// policies around it: catalog joining, shipping estimation, currency
// conversion caching and checkout submission. All money math stays in
// integer Money arithmetic; floats appear only at the display boundary.
package services

import (
	"context"

	"storefront/models"
)

// CartStore is the cart service surface the pipeline consumes.
type CartStore interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	AddItem(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error)
	EmptyCart(ctx context.Context, userID string) error
}

// Catalog is the product catalog surface the resolver consumes.
type Catalog interface {
	GetProductsBatch(ctx context.Context, ids []string) ([]models.Product, error)
}

// ShippingQuoter obtains shipping costs in the canonical currency.
type ShippingQuoter interface {
	GetQuote(ctx context.Context, items []models.CartItem, address *models.Address) (models.Money, error)
}

// CurrencyConverter converts an amount between currencies.
type CurrencyConverter interface {
	Convert(ctx context.Context, from, to string, amount float64) (float64, error)
}

// Recommender suggests products related to a set of seed ids.
type Recommender interface {
	Recommend(ctx context.Context, userID string, productIDs []string) ([]string, error)
}

// CheckoutGateway places finalized orders.
type CheckoutGateway interface {
	PlaceOrder(ctx context.Context, order *models.PlaceOrderRequest) (*models.OrderResult, error)
}

// SessionSizer records the denormalized cart item count on the session.
type SessionSizer interface {
	SetCartSize(ctx context.Context, id string, size int) error
}

// OrderEventPublisher emits best-effort events about placed orders.
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, orderID, userID, currency string, items []models.CartItem) error
}
