package repositories

import (
	"context"

	"github.com/lynxshop/backend/internal/domain/entities"
)

// CatalogRepository reads the denormalized product catalog used to build the
// scoring engine's snapshot.
type CatalogRepository interface {
	// FetchCatalog returns every product joined with its category name,
	// active synonyms and average synonym popularity. Semantic
	// classification fields are left empty; the catalog cache fills them.
	FetchCatalog(ctx context.Context) ([]entities.CatalogProduct, error)

	// ListCategoryNames returns the admin-managed category names, used at
	// startup to validate the semantic mapping table.
	ListCategoryNames(ctx context.Context) ([]string, error)
}

// ProductRepository reads bare product rows. Only the offline synonym
// generator needs it; the online path always goes through the catalog cache.
type ProductRepository interface {
	// ListProducts returns every product with its category name.
	ListProducts(ctx context.Context) ([]entities.Product, error)
}
