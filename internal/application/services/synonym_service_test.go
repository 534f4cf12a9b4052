package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lynxshop/backend/internal/domain/entities"
	apperrors "github.com/lynxshop/backend/pkg/errors"
)

func assertErrorType(t *testing.T, err error, want apperrors.ErrorType) {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, want, appErr.Type)
}

func TestCreateSynonym_Defaults(t *testing.T) {
	repo := &fakeSynonymRepo{}
	catalog := &staticCatalog{}
	svc := NewSynonymService(repo, catalog)

	synonym, err := svc.CreateSynonym(context.Background(), 7, "  chesco  ", "")
	require.NoError(t, err)

	assert.Equal(t, 1, synonym.ID)
	assert.Equal(t, 7, synonym.ProductID)
	assert.Equal(t, "chesco", synonym.Text)
	assert.Equal(t, entities.SynonymSourceAdmin, synonym.Source)
	assert.Equal(t, 0.8, synonym.Precision)
	assert.True(t, synonym.Active)
	assert.Equal(t, 1, catalog.invalidations, "a created synonym must invalidate the catalog snapshot")
}

func TestCreateSynonym_AcceptsAccentedText(t *testing.T) {
	svc := NewSynonymService(&fakeSynonymRepo{}, nil)

	synonym, err := svc.CreateSynonym(context.Background(), 1, "limón ácido", entities.SynonymSourceUserFeedback)
	require.NoError(t, err)
	assert.Equal(t, "limón ácido", synonym.Text)
	assert.Equal(t, entities.SynonymSourceUserFeedback, synonym.Source)
}

func TestCreateSynonym_Validation(t *testing.T) {
	svc := NewSynonymService(&fakeSynonymRepo{}, nil)
	ctx := context.Background()

	_, err := svc.CreateSynonym(ctx, 0, "chesco", "")
	assertErrorType(t, err, apperrors.ErrorTypeValidation)

	_, err = svc.CreateSynonym(ctx, 1, "   ", "")
	assertErrorType(t, err, apperrors.ErrorTypeValidation)

	_, err = svc.CreateSynonym(ctx, 1, "a", "")
	assertErrorType(t, err, apperrors.ErrorTypeValidation)

	_, err = svc.CreateSynonym(ctx, 1, "coca123", "")
	assertErrorType(t, err, apperrors.ErrorTypeValidation)

	_, err = svc.CreateSynonym(ctx, 1, "chesco", "bulk_import")
	assertErrorType(t, err, apperrors.ErrorTypeValidation)
}

func TestCreateSynonym_DuplicateIsConflict(t *testing.T) {
	repo := &fakeSynonymRepo{
		existing: []entities.Synonym{
			{ID: 3, ProductID: 1, Text: "Limón", Active: true},
		},
	}
	svc := NewSynonymService(repo, nil)

	// Duplicate check folds case and accents.
	_, err := svc.CreateSynonym(context.Background(), 1, "limon", "")
	assertErrorType(t, err, apperrors.ErrorTypeConflict)
	assert.Empty(t, repo.created)
}

func TestListSynonyms_FilterPassthrough(t *testing.T) {
	repo := &fakeSynonymRepo{}
	svc := NewSynonymService(repo, nil)

	_, err := svc.ListSynonyms(context.Background(), 4, true)
	require.NoError(t, err)

	require.Len(t, repo.listFilters, 1)
	assert.Equal(t, 4, repo.listFilters[0].ProductID)
	assert.True(t, repo.listFilters[0].IncludeInactive)

	_, err = svc.ListSynonyms(context.Background(), -1, false)
	assertErrorType(t, err, apperrors.ErrorTypeValidation)
}

func TestDeleteSynonym(t *testing.T) {
	repo := &fakeSynonymRepo{}
	catalog := &staticCatalog{}
	svc := NewSynonymService(repo, catalog)

	require.NoError(t, svc.DeleteSynonym(context.Background(), 9))
	assert.Equal(t, []int{9}, repo.deactivated)
	assert.Equal(t, 1, catalog.invalidations)

	err := svc.DeleteSynonym(context.Background(), 0)
	assertErrorType(t, err, apperrors.ErrorTypeValidation)
}
