package services

import (
	"context"

	"go.uber.org/zap"

	"storefront/models"
)

// ShippingEstimator prices a cart's line items in the canonical currency.
// Estimation is best-effort: any failure yields a zero cost so cart viewing
// is never blocked on the shipping service.
type ShippingEstimator struct {
	quoter ShippingQuoter
	logger *zap.Logger
}

func NewShippingEstimator(quoter ShippingQuoter, logger *zap.Logger) *ShippingEstimator {
	return &ShippingEstimator{
		quoter: quoter,
		logger: logger,
	}
}

// Quote returns the shipping cost for the given items. The demo ships to a
// fixed default destination, so no address is passed.
func (e *ShippingEstimator) Quote(ctx context.Context, items []models.CartItem) models.Money {
	cost, err := e.quoter.GetQuote(ctx, items, nil)
	if err != nil {
		e.logger.Warn("Shipping quote failed, falling back to zero cost", zap.Error(err))
		return models.Money{}
	}
	return cost
}
