package services

import (
	"context"

	"go.uber.org/zap"

	"storefront/models"
)

// CatalogResolver batch-resolves product ids to priced catalog entries. Ids
// the catalog cannot resolve come back as zero-priced placeholders so the
// cart join is always complete: a vanished product never fails a pass.
type CatalogResolver struct {
	catalog Catalog
	logger  *zap.Logger
}

func NewCatalogResolver(catalog Catalog, logger *zap.Logger) *CatalogResolver {
	return &CatalogResolver{
		catalog: catalog,
		logger:  logger,
	}
}

// Resolve maps every requested id to a catalog entry, issuing a single batch
// lookup for the distinct ids. An empty input returns an empty map without a
// network call.
func (r *CatalogResolver) Resolve(ctx context.Context, ids []string) map[string]models.Product {
	entries := make(map[string]models.Product, len(ids))
	if len(ids) == 0 {
		return entries
	}

	distinct := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	products, err := r.catalog.GetProductsBatch(ctx, distinct)
	if err != nil {
		r.logger.Warn("Catalog batch lookup failed, substituting placeholders",
			zap.Int("ids", len(distinct)), zap.Error(err))
		products = nil
	}

	for _, p := range products {
		entries[p.ID] = p
	}
	for _, id := range distinct {
		if _, ok := entries[id]; !ok {
			r.logger.Warn("Product missing from catalog, substituting placeholder",
				zap.String("product_id", id))
			entries[id] = models.PlaceholderProduct(id)
		}
	}
	return entries
}
