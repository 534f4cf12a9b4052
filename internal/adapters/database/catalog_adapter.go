package database

import (
	"context"
	"strings"

	"github.com/lynxshop/backend/internal/domain/entities"
	"github.com/lynxshop/backend/internal/domain/repositories"
	"github.com/lynxshop/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/lynxshop/backend/pkg/errors"
)

// synonymDelimiter separates aggregated synonym strings in the catalog join.
// Synonym validation only admits letters and spaces, so the pipe can never
// appear inside a synonym.
const synonymDelimiter = "|"

// CatalogAdapter implements the CatalogRepository interface
type CatalogAdapter struct {
	client *postgres.Client
}

// NewCatalogAdapter creates a new catalog adapter
func NewCatalogAdapter(client *postgres.Client) repositories.CatalogRepository {
	return &CatalogAdapter{
		client: client,
	}
}

// NewProductAdapter exposes the same adapter as a bare product reader for
// the offline synonym generator.
func NewProductAdapter(client *postgres.Client) repositories.ProductRepository {
	return &CatalogAdapter{
		client: client,
	}
}

// FetchCatalog runs the single denormalizing join: products with their
// category name, active synonyms concatenated into one delimited string, and
// average active-synonym popularity.
func (a *CatalogAdapter) FetchCatalog(ctx context.Context) ([]entities.CatalogProduct, error) {
	query := `
		SELECT
			p.id, p.name, p.price, p.stock, p.category_id,
			c.name AS category_name,
			COALESCE(p.image_filename, '') AS image_filename,
			COALESCE(string_agg(ps.synonym, '|') FILTER (WHERE ps.active), '') AS synonyms,
			COALESCE(avg(ps.popularity) FILTER (WHERE ps.active), 0) AS avg_popularity
		FROM products p
		JOIN categories c ON c.id = p.category_id
		LEFT JOIN product_synonyms ps ON ps.product_id = p.id
		GROUP BY p.id, p.name, p.price, p.stock, p.category_id, c.name, p.image_filename
		ORDER BY p.id
	`

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to fetch catalog", err)
	}
	defer rows.Close()

	var products []entities.CatalogProduct
	for rows.Next() {
		var cp entities.CatalogProduct
		var synonyms string
		err := rows.Scan(
			&cp.ID,
			&cp.Name,
			&cp.Price,
			&cp.Stock,
			&cp.CategoryID,
			&cp.CategoryName,
			&cp.ImageFilename,
			&synonyms,
			&cp.AvgSynonymPopularity,
		)
		if err != nil {
			return nil, apperrors.NewUpstreamError("failed to scan catalog row", err)
		}
		if synonyms != "" {
			cp.Synonyms = strings.Split(synonyms, synonymDelimiter)
		}
		products = append(products, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("failed to iterate catalog rows", err)
	}

	return products, nil
}

// ListCategoryNames returns the admin-managed category names.
func (a *CatalogAdapter) ListCategoryNames(ctx context.Context) ([]string, error) {
	rows, err := a.client.DB().QueryContext(ctx, `SELECT name FROM categories ORDER BY id`)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to list categories", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, apperrors.NewUpstreamError("failed to scan category name", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("failed to iterate category rows", err)
	}
	return names, nil
}

// ListProducts returns the bare product rows, used by the offline generator.
func (a *CatalogAdapter) ListProducts(ctx context.Context) ([]entities.Product, error) {
	query := `
		SELECT p.id, p.name, p.price, p.stock, p.category_id, c.name AS category_name,
			COALESCE(p.image_filename, '')
		FROM products p
		JOIN categories c ON c.id = p.category_id
		ORDER BY p.id
	`
	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to list products", err)
	}
	defer rows.Close()

	var products []entities.Product
	for rows.Next() {
		var p entities.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CategoryID, &p.CategoryName, &p.ImageFilename); err != nil {
			return nil, apperrors.NewUpstreamError("failed to scan product row", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("failed to iterate product rows", err)
	}
	return products, nil
}
