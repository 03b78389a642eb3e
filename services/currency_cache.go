package services

import (
	"context"
	"math"
	"sync"

	"go.uber.org/zap"

	"storefront/models"
)

// RateCache resolves the display-currency conversion rate relative to the
// canonical currency and memoizes it per currency selection. At most one
// entry is live at a time, matching the single display currency the UI
// exposes; selecting a different currency replaces the entry.
type RateCache struct {
	converter CurrencyConverter
	logger    *zap.Logger

	mu       sync.Mutex
	currency string
	rate     float64
	valid    bool
}

func NewRateCache(converter CurrencyConverter, logger *zap.Logger) *RateCache {
	return &RateCache{
		converter: converter,
		logger:    logger,
	}
}

// GetRate returns the multiplier converting one canonical unit into the
// target currency. The second return is false when the rate is unavailable;
// callers must then fall back to unconverted canonical display. Unavailable
// is a soft failure and never blocks aggregation or checkout.
func (c *RateCache) GetRate(ctx context.Context, target string) (models.ConversionRate, bool) {
	if target == models.BaseCurrency {
		return models.ConversionRate{TargetCurrency: target, Rate: 1}, true
	}

	c.mu.Lock()
	if c.valid && c.currency == target {
		rate := c.rate
		c.mu.Unlock()
		return models.ConversionRate{TargetCurrency: target, Rate: rate}, true
	}
	c.mu.Unlock()

	rate, err := c.converter.Convert(ctx, models.BaseCurrency, target, 1)
	if err != nil || math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		c.logger.Warn("Conversion rate unavailable, falling back to canonical currency",
			zap.String("currency", target), zap.Error(err))
		return models.ConversionRate{}, false
	}

	c.mu.Lock()
	c.currency = target
	c.rate = rate
	c.valid = true
	c.mu.Unlock()

	return models.ConversionRate{TargetCurrency: target, Rate: rate}, true
}

// Invalidate drops the cached entry. Called when the shopper changes display
// currency so the next pass fetches a fresh rate.
func (c *RateCache) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.currency = ""
	c.mu.Unlock()
}
