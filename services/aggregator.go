package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	apperrors "storefront/common/errors"
	"storefront/models"
)

// PassState is the stage an aggregation pass is in.
type PassState string

const (
	StateIdle    PassState = "idle"
	StateLoading PassState = "loading"
	StateJoining PassState = "joining"
	StatePricing PassState = "pricing"
	StateReady   PassState = "ready"
	StateFailed  PassState = "failed"
)

// recommendationTimeout bounds the detached recommendation fetch; the fetch
// outlives the request that started it.
const recommendationTimeout = 5 * time.Second

// CartView is the result of one aggregation pass: the enriched cart lines,
// their canonical-currency totals and any recommendations that have arrived.
// Seq identifies the pass that produced it.
type CartView struct {
	State           PassState                 `json:"state"`
	Items           []models.EnrichedCartItem `json:"items"`
	Totals          models.OrderTotals        `json:"totals"`
	Recommendations []models.Product          `json:"recommendations,omitempty"`
	TotalQuantity   int                       `json:"totalQuantity"`
	Seq             uint64                    `json:"-"`
}

// Aggregator runs the order-total pipeline: fetch raw cart items, join them
// against the catalog, price them with shipping, and commit a consistent
// view. Every cart mutation starts a new pass; passes carry monotonically
// increasing sequence numbers and commit last-writer-wins, so a stale slow
// pass can never overwrite a newer result.
type Aggregator struct {
	carts       CartStore
	resolver    *CatalogResolver
	shipping    *ShippingEstimator
	recommender Recommender
	catalog     Catalog
	sessions    SessionSizer
	logger      *zap.Logger

	seq atomic.Uint64

	mu        sync.Mutex
	committed CartView
}

func NewAggregator(
	carts CartStore,
	resolver *CatalogResolver,
	shipping *ShippingEstimator,
	recommender Recommender,
	catalog Catalog,
	sessions SessionSizer,
	logger *zap.Logger,
) *Aggregator {
	return &Aggregator{
		carts:       carts,
		resolver:    resolver,
		shipping:    shipping,
		recommender: recommender,
		catalog:     catalog,
		sessions:    sessions,
		logger:      logger,
		committed:   CartView{State: StateIdle},
	}
}

// Current returns the last committed view.
func (a *Aggregator) Current() CartView {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.committed
}

// commit installs view as the authoritative result unless a newer pass has
// already committed.
func (a *Aggregator) commit(view CartView) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if view.Seq > a.committed.Seq {
		a.committed = view
	}
}

// mergeRecommendations attaches recs to the committed view if it still
// belongs to the pass that fetched them.
func (a *Aggregator) mergeRecommendations(seq uint64, recs []models.Product) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.committed.Seq == seq {
		a.committed.Recommendations = recs
	}
}

// snapshot returns the committed view when it still belongs to seq, otherwise
// the caller's own copy. Keeps a superseded pass from observing a newer
// pass's result as its own.
func (a *Aggregator) snapshot(seq uint64, fallback CartView) CartView {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.committed.Seq == seq {
		return a.committed
	}
	return fallback
}

// Refresh runs one aggregation pass for the session. An unreachable cart
// service fails the pass; everything downstream of the cart fetch degrades
// softly (placeholder entries, zero shipping, no recommendations) and the
// pass still reaches Ready.
func (a *Aggregator) Refresh(ctx context.Context, session *models.Session) (CartView, error) {
	seq := a.seq.Add(1)
	view := CartView{State: StateLoading, Seq: seq, Items: []models.EnrichedCartItem{}}

	// Loading: 404/500 from the cart service arrive here as an empty cart;
	// only transport-level failures reach the error branch.
	cart, err := a.carts.GetCart(ctx, session.ID)
	if err != nil {
		a.logger.Error("Cart fetch failed", zap.String("session_id", session.ID), zap.Error(err))
		view.State = StateFailed
		a.commit(view)
		return view, apperrors.Upstream("Failed to load cart", err)
	}

	a.syncCartSize(ctx, session, cart.TotalQuantity())

	if cart.IsEmpty() {
		view.State = StateReady
		a.commit(view)
		return view, nil
	}

	// Joining: a single batch lookup; unresolved ids become zero-priced
	// placeholders, so this stage cannot fail the pass.
	view.State = StateJoining
	ids := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	entries := a.resolver.Resolve(ctx, ids)

	for _, item := range cart.Items {
		if item.Quantity < 1 {
			a.logger.Warn("Dropping cart line with non-positive quantity",
				zap.String("product_id", item.ProductID), zap.Int("quantity", item.Quantity))
			continue
		}
		entry := entries[item.ProductID]
		view.Items = append(view.Items, models.EnrichedCartItem{
			CartItem: item,
			Name:     entry.Name,
			Picture:  entry.Picture,
			Cost:     entry.PriceUsd,
		})
	}
	view.TotalQuantity = cart.TotalQuantity()

	// Recommendations run detached; their completion never gates the totals
	// becoming visible and a failure only clears the list.
	recCh := make(chan []models.Product, 1)
	go func() {
		recCtx, cancel := context.WithTimeout(context.Background(), recommendationTimeout)
		defer cancel()
		recs := a.fetchRecommendations(recCtx, session.ID, ids)
		recCh <- recs
		a.mergeRecommendations(seq, recs)
	}()

	// Pricing: all accumulation in integer Money arithmetic. The single
	// float conversion happens later, at the display boundary.
	view.State = StatePricing
	subtotal := models.Zero()
	for _, item := range view.Items {
		subtotal = models.Sum(subtotal, models.Multiply(item.Cost, uint32(item.Quantity)))
	}
	shipping := a.shipping.Quote(ctx, cart.Items)
	view.Totals = models.OrderTotals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    models.Sum(subtotal, shipping),
	}

	view.State = StateReady
	a.commit(view)

	// Pick up recommendations that beat the commit.
	select {
	case recs := <-recCh:
		a.mergeRecommendations(seq, recs)
	default:
	}
	return a.snapshot(seq, view), nil
}

// AddItem adds a product to the cart and re-aggregates. Mutation failures are
// hard errors; the shopper re-triggers the action, nothing retries.
func (a *Aggregator) AddItem(ctx context.Context, session *models.Session, productID string, quantity int) (CartView, error) {
	if productID == "" {
		return a.Current(), apperrors.Validation("Product ID is required")
	}
	if quantity < 1 {
		return a.Current(), apperrors.Validation("Quantity must be positive")
	}

	cart, err := a.carts.AddItem(ctx, session.ID, productID, quantity)
	if err != nil {
		a.logger.Error("Add item failed", zap.String("session_id", session.ID),
			zap.String("product_id", productID), zap.Error(err))
		return a.Current(), apperrors.Upstream("Failed to add item to cart", err)
	}
	a.syncCartSize(ctx, session, cart.TotalQuantity())

	return a.Refresh(ctx, session)
}

// EmptyCart clears the cart and re-aggregates.
func (a *Aggregator) EmptyCart(ctx context.Context, session *models.Session) (CartView, error) {
	if err := a.carts.EmptyCart(ctx, session.ID); err != nil {
		a.logger.Error("Empty cart failed", zap.String("session_id", session.ID), zap.Error(err))
		return a.Current(), apperrors.Upstream("Failed to empty cart", err)
	}
	a.syncCartSize(ctx, session, 0)

	return a.Refresh(ctx, session)
}

// syncCartSize keeps the session's denormalized item count eventually
// consistent. Best-effort: the count is a header badge, not a ledger.
func (a *Aggregator) syncCartSize(ctx context.Context, session *models.Session, size int) {
	session.CartSize = size
	if err := a.sessions.SetCartSize(ctx, session.ID, size); err != nil {
		a.logger.Warn("Failed to persist cart size",
			zap.String("session_id", session.ID), zap.Error(err))
	}
}

// fetchRecommendations resolves recommendation seeds to full catalog entries.
// Soft all the way down: any failure yields an empty list.
func (a *Aggregator) fetchRecommendations(ctx context.Context, userID string, seedIDs []string) []models.Product {
	ids, err := a.recommender.Recommend(ctx, userID, seedIDs)
	if err != nil {
		a.logger.Warn("Recommendation fetch failed", zap.Error(err))
		return nil
	}
	if len(ids) == 0 {
		return nil
	}
	products, err := a.catalog.GetProductsBatch(ctx, ids)
	if err != nil {
		a.logger.Warn("Recommendation detail lookup failed", zap.Error(err))
		return nil
	}
	return products
}
