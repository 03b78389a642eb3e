package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/clients"
	apperrors "storefront/common/errors"
	"storefront/models"
	"storefront/services"
)

// SessionHeader carries the shopper's session id. It is minted server-side
// on first contact and echoed back; clients hold onto it for their lifetime.
const SessionHeader = "X-Session-ID"

// SessionStore is the session persistence surface the controller consumes.
type SessionStore interface {
	GetOrCreate(ctx context.Context, id string) (*models.Session, error)
	SetCurrency(ctx context.Context, id, currency string) (*models.Session, error)
}

// StorefrontController exposes the storefront HTTP API. It is a thin I/O
// wrapper: all aggregation, consistency and money logic lives in services.
type StorefrontController struct {
	Sessions SessionStore
	Agg      *services.Aggregator
	Checkout *services.CheckoutService
	Rates    *services.RateCache
	Catalog  *clients.CatalogClient
	Currency *clients.CurrencyClient
	Ads      *clients.AdClient
	Logger   *zap.Logger
}

func NewStorefrontController(
	sessions SessionStore,
	agg *services.Aggregator,
	checkout *services.CheckoutService,
	rates *services.RateCache,
	catalog *clients.CatalogClient,
	currency *clients.CurrencyClient,
	ads *clients.AdClient,
	logger *zap.Logger,
) *StorefrontController {
	return &StorefrontController{
		Sessions: sessions,
		Agg:      agg,
		Checkout: checkout,
		Rates:    rates,
		Catalog:  catalog,
		Currency: currency,
		Ads:      ads,
		Logger:   logger,
	}
}

// session resolves the shopper's session from the request, creating one when
// the client presents no id. The id is echoed back so new clients can keep it.
func (sc *StorefrontController) session(c *gin.Context) (*models.Session, bool) {
	id := c.GetHeader(SessionHeader)
	if id == "" {
		id = c.Query("sessionId")
	}

	session, err := sc.Sessions.GetOrCreate(c.Request.Context(), id)
	if err != nil {
		sc.Logger.Error("Session lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve session"})
		return nil, false
	}
	c.Header(SessionHeader, session.ID)
	return session, true
}

func (sc *StorefrontController) fail(c *gin.Context, err error) {
	e, ok := err.(*apperrors.Error)
	if !ok {
		e = apperrors.New(apperrors.Code(err), err.Error(), err)
	}
	c.JSON(e.Code, e)
}

// display formats a canonical amount for the session's currency. The rate may
// be nil (canonical currency selected, or conversion unavailable); the amount
// then renders unconverted under the selected currency's symbol. Canonical
// values are never mutated.
func display(m models.Money, currency string, rate *models.ConversionRate) string {
	if rate == nil {
		return models.FormatMoney(m, currency, nil)
	}
	converted := m.ToDecimal() * rate.Rate
	return models.FormatMoney(m, currency, &converted)
}

// rateFor fetches the conversion rate for the session's currency, or nil when
// the canonical currency is selected or the rate is unavailable.
func (sc *StorefrontController) rateFor(c *gin.Context, session *models.Session) *models.ConversionRate {
	if session.Currency == models.BaseCurrency {
		return nil
	}
	rate, ok := sc.Rates.GetRate(c.Request.Context(), session.Currency)
	if !ok {
		return nil
	}
	return &rate
}

type cartItemResponse struct {
	models.EnrichedCartItem
	Price string `json:"price"`
}

type cartViewResponse struct {
	SessionID       string             `json:"sessionId"`
	Currency        string             `json:"currency"`
	State           services.PassState `json:"state"`
	Items           []cartItemResponse `json:"items"`
	Totals          models.OrderTotals `json:"totals"`
	Subtotal        string             `json:"subtotal"`
	Shipping        string             `json:"shipping"`
	Total           string             `json:"total"`
	TotalQuantity   int                `json:"totalQuantity"`
	Recommendations []models.Product   `json:"recommendations,omitempty"`
}

func (sc *StorefrontController) renderCartView(c *gin.Context, session *models.Session, view services.CartView) {
	rate := sc.rateFor(c, session)

	items := make([]cartItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, cartItemResponse{
			EnrichedCartItem: item,
			Price:            display(item.Cost, session.Currency, rate),
		})
	}

	c.JSON(http.StatusOK, cartViewResponse{
		SessionID:       session.ID,
		Currency:        session.Currency,
		State:           view.State,
		Items:           items,
		Totals:          view.Totals,
		Subtotal:        display(view.Totals.Subtotal, session.Currency, rate),
		Shipping:        display(view.Totals.Shipping, session.Currency, rate),
		Total:           display(view.Totals.Total, session.Currency, rate),
		TotalQuantity:   view.TotalQuantity,
		Recommendations: view.Recommendations,
	})
}

// GetCart runs an aggregation pass and returns the enriched cart view.
func (sc *StorefrontController) GetCart(c *gin.Context) {
	session, ok := sc.session(c)
	if !ok {
		return
	}

	view, err := sc.Agg.Refresh(c.Request.Context(), session)
	if err != nil {
		sc.fail(c, err)
		return
	}
	sc.renderCartView(c, session, view)
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// AddItem puts a product in the cart and returns the re-aggregated view.
func (sc *StorefrontController) AddItem(c *gin.Context) {
	session, ok := sc.session(c)
	if !ok {
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	view, err := sc.Agg.AddItem(c.Request.Context(), session, req.ProductID, req.Quantity)
	if err != nil {
		sc.fail(c, err)
		return
	}
	sc.renderCartView(c, session, view)
}

// EmptyCart removes everything from the cart and returns the empty view.
func (sc *StorefrontController) EmptyCart(c *gin.Context) {
	session, ok := sc.session(c)
	if !ok {
		return
	}

	view, err := sc.Agg.EmptyCart(c.Request.Context(), session)
	if err != nil {
		sc.fail(c, err)
		return
	}
	sc.renderCartView(c, session, view)
}

// PlaceOrder submits the checkout form. Failures leave the cart intact so the
// shopper can retry manually.
func (sc *StorefrontController) PlaceOrder(c *gin.Context) {
	session, ok := sc.session(c)
	if !ok {
		return
	}

	var req models.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	order, err := sc.Checkout.Submit(c.Request.Context(), session, &req)
	if err != nil {
		sc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order placed successfully", "order": order})
}

type productResponse struct {
	models.Product
	Price string `json:"price"`
}

func (sc *StorefrontController) renderProducts(c *gin.Context, session *models.Session, products []models.Product) {
	rate := sc.rateFor(c, session)

	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productResponse{
			Product: p,
			Price:   display(p.PriceUsd, session.Currency, rate),
		})
	}
	c.JSON(http.StatusOK, gin.H{"products": out})
}

// ListProducts returns the catalog with display pricing.
func (sc *StorefrontController) ListProducts(c *gin.Context) {
	session, ok := sc.session(c)
	if !ok {
		return
	}

	products, err := sc.Catalog.GetProducts(c.Request.Context())
	if err != nil {
		sc.fail(c, apperrors.Upstream("Failed to load catalog", err))
		return
	}
	sc.renderProducts(c, session, products)
}

// GetProduct returns one catalog entry with display pricing.
func (sc *StorefrontController) GetProduct(c *gin.Context) {
	session, ok := sc.session(c)
	if !ok {
		return
	}

	product, err := sc.Catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		sc.fail(c, apperrors.New(http.StatusNotFound, "Product not found", err))
		return
	}

	rate := sc.rateFor(c, session)
	c.JSON(http.StatusOK, productResponse{
		Product: *product,
		Price:   display(product.PriceUsd, session.Currency, rate),
	})
}

// SearchProducts returns the catalog entries matching ?q=.
func (sc *StorefrontController) SearchProducts(c *gin.Context) {
	session, ok := sc.session(c)
	if !ok {
		return
	}

	products, err := sc.Catalog.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		sc.fail(c, apperrors.Upstream("Search failed", err))
		return
	}
	sc.renderProducts(c, session, products)
}

// ListCurrencies returns the supported display currencies.
func (sc *StorefrontController) ListCurrencies(c *gin.Context) {
	currencies, err := sc.Currency.ListCurrencies(c.Request.Context())
	if err != nil {
		sc.fail(c, apperrors.Upstream("Failed to load currencies", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"currencies": currencies})
}

type setCurrencyRequest struct {
	Currency string `json:"currency" binding:"required"`
}

// SetCurrency switches the session's display currency. Conversion is
// cosmetic: stored amounts stay canonical, only formatting changes. The
// cached rate is invalidated so the next view fetches a fresh one.
func (sc *StorefrontController) SetCurrency(c *gin.Context) {
	session, ok := sc.session(c)
	if !ok {
		return
	}

	var req setCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	session, err := sc.Sessions.SetCurrency(c.Request.Context(), session.ID, req.Currency)
	if err != nil {
		sc.Logger.Error("Failed to set currency", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set currency"})
		return
	}
	sc.Rates.Invalidate()

	c.JSON(http.StatusOK, session)
}

// GetAds returns ads for the given context keys, or random ads when none are
// given. Ads are decoration: every failure degrades to an empty list.
func (sc *StorefrontController) GetAds(c *gin.Context) {
	ctx := c.Request.Context()

	var ads []models.Ad
	var err error
	if keys := c.QueryArray("contextKeys"); len(keys) > 0 {
		ads, err = sc.Ads.GetAdsByContext(ctx, keys)
	} else {
		ads, err = sc.Ads.GetRandomAds(ctx, 1)
	}
	if err != nil {
		sc.Logger.Warn("Ad fetch failed", zap.Error(err))
		ads = []models.Ad{}
	}
	c.JSON(http.StatusOK, gin.H{"ads": ads})
}
