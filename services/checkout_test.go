package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	apperrors "storefront/common/errors"
	"storefront/models"
	"storefront/services"
)

// ---- mock checkout gateway ----

type mockGateway struct {
	calls  int
	result *models.OrderResult
	err    error
}

func (m *mockGateway) PlaceOrder(_ context.Context, _ *models.PlaceOrderRequest) (*models.OrderResult, error) {
	m.calls++
	return m.result, m.err
}

// ---- mock event publisher ----

type mockPublisher struct {
	mu     sync.Mutex
	orders []string
	err    error
}

func (m *mockPublisher) PublishOrderPlaced(_ context.Context, orderID, _, _ string, _ []models.CartItem) error {
	m.mu.Lock()
	m.orders = append(m.orders, orderID)
	m.mu.Unlock()
	return m.err
}

// ---- helpers ----

func validOrder() *models.PlaceOrderRequest {
	return &models.PlaceOrderRequest{
		Email: "someone@example.com",
		CreditCard: models.CreditCard{
			Number:          "4432801561520454",
			CVV:             "672",
			ExpirationMonth: 1,
			ExpirationYear:  2030,
		},
		Items: []models.CartItem{{ProductID: "A", Quantity: 2}},
	}
}

func newTestCheckout(gateway *mockGateway, carts *mockCartStore, publisher *mockPublisher) (*services.CheckoutService, *mockSizer) {
	sizer := &mockSizer{}
	var events services.OrderEventPublisher
	if publisher != nil {
		events = publisher
	}
	return services.NewCheckoutService(gateway, carts, sizer, events, zap.NewNop()), sizer
}

// ---- tests ----

func TestSubmit_EmptyCartRejectedWithoutNetworkCall(t *testing.T) {
	gateway := &mockGateway{}
	svc, _ := newTestCheckout(gateway, &mockCartStore{}, nil)

	order := validOrder()
	order.Items = nil
	_, err := svc.Submit(context.Background(), models.NewSession("u1"), order)

	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, 0, gateway.calls)
}

func TestSubmit_InvalidItemRejectedLocally(t *testing.T) {
	gateway := &mockGateway{}
	svc, _ := newTestCheckout(gateway, &mockCartStore{}, nil)

	order := validOrder()
	order.Items = []models.CartItem{{ProductID: "A", Quantity: 0}}
	_, err := svc.Submit(context.Background(), models.NewSession("u1"), order)

	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, 0, gateway.calls)
}

func TestSubmit_UpstreamFailureLeavesCartIntact(t *testing.T) {
	gateway := &mockGateway{err: errors.New("payment declined")}
	carts := &mockCartStore{}
	svc, _ := newTestCheckout(gateway, carts, nil)

	_, err := svc.Submit(context.Background(), models.NewSession("u1"), validOrder())

	assert.NotNil(t, err)
	assert.False(t, apperrors.IsValidation(err))
	assert.Equal(t, 0, carts.emptyCalls)
}

func TestSubmit_SuccessClearsCartAndPublishesEvent(t *testing.T) {
	gateway := &mockGateway{result: &models.OrderResult{
		OrderID:            "order-1",
		ShippingTrackingID: "track-1",
	}}
	carts := &mockCartStore{}
	publisher := &mockPublisher{}
	svc, sizer := newTestCheckout(gateway, carts, publisher)
	session := models.NewSession("u1")
	session.CartSize = 3

	result, err := svc.Submit(context.Background(), session, validOrder())

	assert.Nil(t, err)
	assert.Equal(t, "order-1", result.OrderID)
	assert.Equal(t, 1, carts.emptyCalls)
	assert.Equal(t, 0, session.CartSize)
	assert.Equal(t, []int{0}, sizer.sizes)
	assert.Equal(t, []string{"order-1"}, publisher.orders)
}

func TestSubmit_CartClearFailureStillReturnsReceipt(t *testing.T) {
	gateway := &mockGateway{result: &models.OrderResult{OrderID: "order-2"}}
	carts := &mockCartStore{emptyErr: errors.New("cart service down")}
	svc, _ := newTestCheckout(gateway, carts, nil)

	result, err := svc.Submit(context.Background(), models.NewSession("u1"), validOrder())

	// The order already committed upstream; a failed clear is logged only.
	assert.Nil(t, err)
	assert.Equal(t, "order-2", result.OrderID)
}

func TestSubmit_FillsUserAndCurrencyFromSession(t *testing.T) {
	gateway := &mockGateway{result: &models.OrderResult{OrderID: "order-3"}}
	svc, _ := newTestCheckout(gateway, &mockCartStore{}, nil)

	session := models.NewSession("u1")
	session.Currency = "EUR"
	order := validOrder()
	_, err := svc.Submit(context.Background(), session, order)

	assert.Nil(t, err)
	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, "EUR", order.UserCurrency)
}
