//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lynxshop/backend/internal/adapters/database"
	"github.com/lynxshop/backend/internal/domain/entities"
	"github.com/lynxshop/backend/internal/domain/repositories"
	apperrors "github.com/lynxshop/backend/pkg/errors"
)

func TestSynonymAdapterIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	client := newTestPostgresClient(t)
	defer client.Close()

	runAllMigrations(t, client)
	cleanupSearchTables(t, client)
	seedCatalog(t, client)

	adapter := database.NewSynonymAdapter(client)
	ctx := context.Background()

	synonym := &entities.Synonym{
		ProductID: 2,
		Text:      "chesco",
		Source:    entities.SynonymSourceAdmin,
		Precision: 0.8,
		Active:    true,
	}
	require.NoError(t, adapter.Create(ctx, synonym))
	assert.NotZero(t, synonym.ID)

	// Active-only listing.
	active, err := adapter.ListByProduct(ctx, repositories.SynonymFilter{ProductID: 2})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "chesco", active[0].Text)

	// Soft delete keeps the row, visible only with the inactive filter.
	require.NoError(t, adapter.Deactivate(ctx, synonym.ID))

	active, err = adapter.ListByProduct(ctx, repositories.SynonymFilter{ProductID: 2})
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := adapter.ListByProduct(ctx, repositories.SynonymFilter{ProductID: 2, IncludeInactive: true})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Active)

	// Deactivating a missing row reports not found.
	err = adapter.Deactivate(ctx, 99999)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}
