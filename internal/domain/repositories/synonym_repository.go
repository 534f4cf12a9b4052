package repositories

import (
	"context"

	"github.com/lynxshop/backend/internal/domain/entities"
)

// SynonymFilter narrows a synonym listing.
type SynonymFilter struct {
	ProductID       int
	IncludeInactive bool
}

// SynonymRepository persists per-product synonym records.
type SynonymRepository interface {
	// Create inserts a synonym record and fills in its generated ID.
	Create(ctx context.Context, synonym *entities.Synonym) error

	// ListByProduct returns the synonyms of a product. Inactive records
	// are included only when the filter asks for them.
	ListByProduct(ctx context.Context, filter SynonymFilter) ([]entities.Synonym, error)

	// Deactivate soft-deletes a synonym by flipping its active flag.
	// The row itself is preserved.
	Deactivate(ctx context.Context, id int) error
}
