package models

// Address is a shipping destination. The demo checkout form pre-fills it;
// real address validation lives upstream.
type Address struct {
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	Country       string `json:"country"`
	ZipCode       string `json:"zipCode"`
}

// CreditCard carries the payment instrument fields the checkout service
// expects. Never logged.
type CreditCard struct {
	Number          string `json:"number"`
	CVV             string `json:"cvv"`
	ExpirationMonth int    `json:"expirationMonth"`
	ExpirationYear  int    `json:"expirationYear"`
}

// PlaceOrderRequest is the payload submitted to the checkout service.
type PlaceOrderRequest struct {
	UserID       string     `json:"userId"`
	UserCurrency string     `json:"userCurrency"`
	Address      Address    `json:"address"`
	Email        string     `json:"email"`
	CreditCard   CreditCard `json:"creditCard"`
	Items        []CartItem `json:"items"`
}

// OrderItem is a confirmed order line with the price the order was charged at.
type OrderItem struct {
	Item CartItem `json:"item"`
	Cost Money    `json:"cost"`
}

// OrderResult is the receipt returned by the checkout service for a placed
// order.
type OrderResult struct {
	OrderID            string      `json:"order_id"`
	ShippingTrackingID string      `json:"shipping_tracking_id"`
	ShippingCost       Money       `json:"shipping_cost"`
	ShippingAddress    Address     `json:"shipping_address"`
	Items              []OrderItem `json:"items"`
}

// ConversionRate converts one unit of the canonical currency into the target
// currency. Valid only for the currency it was fetched for.
type ConversionRate struct {
	TargetCurrency string  `json:"targetCurrency"`
	Rate           float64 `json:"rate"`
}
