package models

// CartItem is a raw cart line as stored by the cart service.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Cart is the canonical, unwrapped cart shape. The cart service wraps its
// responses in a {success, message, data} envelope; the cart client strips
// that envelope so nothing past the boundary ever sees it.
type Cart struct {
	UserID string     `json:"userId"`
	Items  []CartItem `json:"items"`
}

// TotalQuantity sums the quantities across all lines.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool { return c == nil || len(c.Items) == 0 }

// EnrichedCartItem is a cart line joined with its catalog entry for the
// duration of one aggregation pass. Never persisted.
type EnrichedCartItem struct {
	CartItem
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Cost    Money  `json:"cost"`
}

// OrderTotals holds the cart money summary in the canonical currency.
// Total is always Subtotal plus Shipping.
type OrderTotals struct {
	Subtotal Money `json:"subtotal"`
	Shipping Money `json:"shipping"`
	Total    Money `json:"total"`
}
