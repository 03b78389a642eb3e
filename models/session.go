package models

import "time"

// Session is the per-shopper storefront state: a stable id minted on first
// contact, the selected display currency, and a denormalized count of cart
// items kept eventually consistent by every cart mutation.
type Session struct {
	ID        string    `json:"id"`
	Currency  string    `json:"currency"`
	CartSize  int       `json:"cartSize"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSession builds a session with the canonical currency selected.
func NewSession(id string) *Session {
	return &Session{ID: id, Currency: BaseCurrency}
}
