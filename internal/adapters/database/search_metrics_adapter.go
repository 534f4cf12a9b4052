package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lynxshop/backend/internal/domain/entities"
	"github.com/lynxshop/backend/internal/domain/repositories"
	"github.com/lynxshop/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/lynxshop/backend/pkg/errors"
)

// SearchMetricsAdapter implements the write-only metrics log and the
// aggregation queries consumed by the offline candidate generator.
type SearchMetricsAdapter struct {
	db *sqlx.DB
}

// NewSearchMetricsAdapter creates a new search metrics adapter.
func NewSearchMetricsAdapter(client *postgres.Client) repositories.SearchMetricsRepository {
	return &SearchMetricsAdapter{
		db: sqlx.NewDb(client.DB(), "postgres"),
	}
}

// LogEvent appends one search event.
func (a *SearchMetricsAdapter) LogEvent(ctx context.Context, event *entities.SearchEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO search_metrics
		(id, term, normalized_term, product_id, clicks, result_count, latency_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := a.db.ExecContext(ctx, query,
		event.ID,
		event.Term,
		event.NormalizedTerm,
		event.ProductID,
		event.Clicks,
		event.ResultCount,
		event.LatencyMs,
		event.CreatedAt,
	)
	if err != nil {
		return apperrors.NewUpstreamError("failed to log search event", err)
	}

	return nil
}

// RecordClick appends a click event for a (term, product) pair.
func (a *SearchMetricsAdapter) RecordClick(ctx context.Context, term string, productID int) error {
	event := &entities.SearchEvent{
		Term:           term,
		NormalizedTerm: term,
		ProductID:      &productID,
		Clicks:         1,
	}
	return a.LogEvent(ctx, event)
}

// FrequentUnmatchedTerms returns terms searched often that match no active
// synonym and no product name.
func (a *SearchMetricsAdapter) FrequentUnmatchedTerms(ctx context.Context, limit int) ([]entities.CandidateTerm, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT
			sm.normalized_term AS term,
			COUNT(*) AS search_count,
			COALESCE(SUM(sm.clicks), 0) AS click_count
		FROM search_metrics sm
		WHERE sm.normalized_term <> ''
		  AND NOT EXISTS (
			SELECT 1 FROM product_synonyms ps
			WHERE ps.active AND lower(ps.synonym) = sm.normalized_term
		  )
		  AND NOT EXISTS (
			SELECT 1 FROM products p
			WHERE lower(p.name) LIKE '%' || sm.normalized_term || '%'
		  )
		GROUP BY sm.normalized_term
		ORDER BY search_count DESC, click_count DESC
		LIMIT $1
	`

	var terms []entities.CandidateTerm
	if err := a.db.SelectContext(ctx, &terms, query, limit); err != nil {
		return nil, apperrors.NewUpstreamError("failed to aggregate unmatched terms", err)
	}

	return terms, nil
}
