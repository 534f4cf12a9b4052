package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lynxshop/backend/internal/domain/entities"
)

type fakeProductRepo struct {
	products []entities.Product
}

func (r *fakeProductRepo) ListProducts(ctx context.Context) ([]entities.Product, error) {
	return r.products, nil
}

func TestGenerate_InsertsRelatedDictionarySynonyms(t *testing.T) {
	products := &fakeProductRepo{products: []entities.Product{
		{ID: 2, Name: "Refresco de Cola", CategoryName: "Bebidas"},
	}}
	synonyms := &fakeSynonymRepo{}
	svc := NewSynonymGeneratorService(products, synonyms, newTestClassifier(t))

	summary, err := svc.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ProductsScanned)
	assert.Equal(t, 1, summary.ProductsMatched)
	require.NotEmpty(t, synonyms.created)

	var texts []string
	for _, created := range synonyms.created {
		assert.Equal(t, 2, created.ProductID)
		assert.Equal(t, entities.SynonymSourceAutoLearning, created.Source)
		assert.True(t, created.Active)
		texts = append(texts, created.Text)
	}
	// "refrescos" extends the "refresco" name token; exact name tokens
	// like "cola" are skipped because they add nothing.
	assert.Contains(t, texts, "refrescos")
	assert.NotContains(t, texts, "cola")
	assert.Equal(t, len(texts), summary.SynonymsInserted)
}

func TestGenerate_SkipsExistingSynonyms(t *testing.T) {
	products := &fakeProductRepo{products: []entities.Product{
		{ID: 2, Name: "Refresco de Cola", CategoryName: "Bebidas"},
	}}
	synonyms := &fakeSynonymRepo{
		existing: []entities.Synonym{
			{ID: 9, ProductID: 2, Text: "Refrescos", Active: false},
		},
	}
	svc := NewSynonymGeneratorService(products, synonyms, newTestClassifier(t))

	summary, err := svc.Generate(context.Background())
	require.NoError(t, err)

	// The dictionary candidate already exists (inactive counts too), so it
	// is skipped rather than duplicated.
	for _, created := range synonyms.created {
		assert.NotEqual(t, "refrescos", created.Text)
	}
	assert.GreaterOrEqual(t, summary.SynonymsSkipped, 1)
}

func TestGenerate_UnclassifiableProductIsIgnored(t *testing.T) {
	products := &fakeProductRepo{products: []entities.Product{
		{ID: 7, Name: "Tornillo Industrial", CategoryName: "Ferreteria"},
	}}
	synonyms := &fakeSynonymRepo{}
	svc := NewSynonymGeneratorService(products, synonyms, newTestClassifier(t))

	summary, err := svc.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ProductsScanned)
	assert.Equal(t, 0, summary.ProductsMatched)
	assert.Empty(t, synonyms.created)
}
