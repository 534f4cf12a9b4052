package repositories

import (
	"context"

	"github.com/lynxshop/backend/internal/domain/entities"
)

// SearchMetricsRepository records search interactions and aggregates them for
// the offline synonym candidate generator. The online scoring path never
// reads from it.
type SearchMetricsRepository interface {
	// LogEvent appends one search event.
	LogEvent(ctx context.Context, event *entities.SearchEvent) error

	// RecordClick increments the click count for a (term, product) pair.
	RecordClick(ctx context.Context, term string, productID int) error

	// FrequentUnmatchedTerms returns terms searched often that match no
	// active synonym and no product name.
	FrequentUnmatchedTerms(ctx context.Context, limit int) ([]entities.CandidateTerm, error)
}
