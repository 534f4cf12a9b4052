package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/lynxshop/backend/internal/domain/entities"
	"github.com/lynxshop/backend/internal/domain/repositories"
	"github.com/lynxshop/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/lynxshop/backend/pkg/errors"
)

// SynonymAdapter implements synonym persistence in Postgres.
type SynonymAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSynonymAdapter creates a new synonym adapter.
func NewSynonymAdapter(client *postgres.Client) repositories.SynonymRepository {
	return &SynonymAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a synonym record.
func (a *SynonymAdapter) Create(ctx context.Context, synonym *entities.Synonym) error {
	now := time.Now()
	synonym.CreatedAt = now
	synonym.UpdatedAt = now
	synonym.Active = true

	record := goqu.Record{
		"product_id":      synonym.ProductID,
		"synonym":         synonym.Text,
		"source":          string(synonym.Source),
		"popularity":      synonym.Popularity,
		"precision_score": synonym.Precision,
		"active":          synonym.Active,
		"created_at":      synonym.CreatedAt,
		"updated_at":      synonym.UpdatedAt,
	}

	query, args, err := a.db.Insert("product_synonyms").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build synonym insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&synonym.ID); err != nil {
		return apperrors.NewUpstreamError("failed to create synonym", err)
	}

	return nil
}

// ListByProduct returns the synonyms of a product.
func (a *SynonymAdapter) ListByProduct(ctx context.Context, filter repositories.SynonymFilter) ([]entities.Synonym, error) {
	ds := a.db.From("product_synonyms").
		Select("id", "product_id", "synonym", "source", "popularity", "precision_score", "active", "created_at", "updated_at").
		Where(goqu.C("product_id").Eq(filter.ProductID)).
		Order(goqu.C("popularity").Desc(), goqu.C("id").Asc())

	if !filter.IncludeInactive {
		ds = ds.Where(goqu.C("active").IsTrue())
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build synonym list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to list synonyms", err)
	}
	defer rows.Close()

	var synonyms []entities.Synonym
	for rows.Next() {
		var s entities.Synonym
		var source string
		err := rows.Scan(
			&s.ID,
			&s.ProductID,
			&s.Text,
			&source,
			&s.Popularity,
			&s.Precision,
			&s.Active,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewUpstreamError("failed to scan synonym row", err)
		}
		s.Source = entities.SynonymSource(source)
		synonyms = append(synonyms, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("failed to iterate synonym rows", err)
	}

	return synonyms, nil
}

// Deactivate soft-deletes a synonym. The row is kept so popularity and
// precision history survive.
func (a *SynonymAdapter) Deactivate(ctx context.Context, id int) error {
	query, args, err := a.db.Update("product_synonyms").
		Set(goqu.Record{"active": false, "updated_at": time.Now()}).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build synonym deactivate query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewUpstreamError("failed to deactivate synonym", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return apperrors.NewNotFoundError("synonym not found")
	}

	return nil
}
