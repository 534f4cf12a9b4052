//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lynxshop/backend/internal/adapters/database"
	"github.com/lynxshop/backend/internal/domain/entities"
)

func TestCatalogAdapterIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	client := newTestPostgresClient(t)
	defer client.Close()

	runAllMigrations(t, client)
	cleanupSearchTables(t, client)
	seedCatalog(t, client)

	ctx := context.Background()
	synonymAdapter := database.NewSynonymAdapter(client)

	// One active and one inactive synonym; the join must surface only the
	// active one.
	activeSyn := &entities.Synonym{ProductID: 2, Text: "h2o", Source: entities.SynonymSourceAdmin, Precision: 0.8, Active: true}
	require.NoError(t, synonymAdapter.Create(ctx, activeSyn))
	inactiveSyn := &entities.Synonym{ProductID: 2, Text: "aguita", Source: entities.SynonymSourceAdmin, Precision: 0.8, Active: true}
	require.NoError(t, synonymAdapter.Create(ctx, inactiveSyn))
	require.NoError(t, synonymAdapter.Deactivate(ctx, inactiveSyn.ID))

	adapter := database.NewCatalogAdapter(client)

	catalog, err := adapter.FetchCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, catalog, 3)

	// Ordered by product ID.
	assert.Equal(t, "Manzana Roja", catalog[0].Name)
	assert.Equal(t, "Frutas", catalog[0].CategoryName)
	assert.Empty(t, catalog[0].Synonyms)

	agua := catalog[1]
	assert.Equal(t, "Agua Natural 600ml", agua.Name)
	assert.Equal(t, []string{"h2o"}, agua.Synonyms)

	names, err := adapter.ListCategoryNames(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Frutas", "Bebidas", "Snacks"}, names)

	products, err := database.NewProductAdapter(client).ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Doritos Nacho", products[2].Name)
	assert.Equal(t, "Snacks", products[2].CategoryName)
}
