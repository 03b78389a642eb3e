package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	apperrors "storefront/common/errors"
	"storefront/models"
)

// CheckoutService submits finalized orders. Submission failures surface to
// the shopper with the cart intact; nothing here retries automatically.
type CheckoutService struct {
	checkout CheckoutGateway
	carts    CartStore
	sessions SessionSizer
	events   OrderEventPublisher
	logger   *zap.Logger
}

func NewCheckoutService(
	checkout CheckoutGateway,
	carts CartStore,
	sessions SessionSizer,
	events OrderEventPublisher,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		checkout: checkout,
		carts:    carts,
		sessions: sessions,
		events:   events,
		logger:   logger,
	}
}

// Submit validates and places the order. Preconditions are checked locally
// before any network call; an empty cart never leaves the process. On success
// the cart is cleared best-effort: the order has already committed upstream,
// so a failed clear is logged and the receipt still returned.
func (s *CheckoutService) Submit(ctx context.Context, session *models.Session, order *models.PlaceOrderRequest) (*models.OrderResult, error) {
	if err := validateOrder(order); err != nil {
		return nil, err
	}

	order.UserID = session.ID
	if order.UserCurrency == "" {
		order.UserCurrency = session.Currency
	}

	result, err := s.checkout.PlaceOrder(ctx, order)
	if err != nil {
		s.logger.Error("Order placement failed",
			zap.String("session_id", session.ID), zap.Error(err))
		return nil, apperrors.Upstream("Order placement failed", err)
	}

	s.logger.Info("Order placed",
		zap.String("session_id", session.ID),
		zap.String("order_id", result.OrderID),
		zap.String("tracking_id", result.ShippingTrackingID))

	if err := s.carts.EmptyCart(ctx, session.ID); err != nil {
		s.logger.Warn("Failed to clear cart after checkout",
			zap.String("session_id", session.ID),
			zap.String("order_id", result.OrderID), zap.Error(err))
	}
	session.CartSize = 0
	if err := s.sessions.SetCartSize(ctx, session.ID, 0); err != nil {
		s.logger.Warn("Failed to reset cart size after checkout",
			zap.String("session_id", session.ID), zap.Error(err))
	}

	if s.events != nil {
		if err := s.events.PublishOrderPlaced(ctx, result.OrderID, session.ID, order.UserCurrency, order.Items); err != nil {
			s.logger.Warn("Failed to publish order event",
				zap.String("order_id", result.OrderID), zap.Error(err))
		}
	}

	return result, nil
}

func validateOrder(order *models.PlaceOrderRequest) error {
	if order == nil || len(order.Items) == 0 {
		return apperrors.ErrEmptyCart
	}
	for _, item := range order.Items {
		if item.ProductID == "" || item.Quantity < 1 {
			return apperrors.ErrInvalidItem
		}
	}
	if strings.TrimSpace(order.Email) == "" {
		return apperrors.Validation("Email is required")
	}
	if order.CreditCard.Number == "" {
		return apperrors.Validation("Credit card number is required")
	}
	return nil
}
