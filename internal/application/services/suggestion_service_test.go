package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lynxshop/backend/internal/domain/entities"
)

func TestForInterpretation_CategoryAndPrice(t *testing.T) {
	svc := NewSuggestionService(nil)

	interp := &QueryInterpretation{
		NormalizedQuery:  "fruta barata",
		DetectedCategory: &entities.DetectedCategory{Tag: "frutas", Emoji: "🍎", Confidence: 1.0},
		PriceIntent:      &entities.PriceIntent{MaxPrice: 15, Emoji: "💰"},
	}

	suggestions := svc.ForInterpretation(interp)

	assert.Len(t, suggestions, 4)
	assert.Contains(t, suggestions, "🍎 ver todos los productos de frutas")
	assert.Contains(t, suggestions, "💰 productos hasta $15")
	assert.Contains(t, suggestions, "🍎 frutas por menos de $15")
}

func TestForInterpretation_CategoryOnly(t *testing.T) {
	svc := NewSuggestionService(nil)

	interp := &QueryInterpretation{
		NormalizedQuery:  "manzana",
		DetectedCategory: &entities.DetectedCategory{Tag: "frutas", Emoji: "🍎"},
	}

	assert.Len(t, svc.ForInterpretation(interp), 2)
}

func TestForInterpretation_NothingDetected(t *testing.T) {
	svc := NewSuggestionService(nil)

	assert.Empty(t, svc.ForInterpretation(&QueryInterpretation{NormalizedQuery: "zzz"}))
}

func TestCandidateSynonyms(t *testing.T) {
	repo := &fakeMetricsRepo{
		candidates: []entities.CandidateTerm{
			{Term: "chicharrones", SearchCount: 42, ClickCount: 0},
		},
	}
	svc := NewSuggestionService(repo)

	candidates, err := svc.CandidateSynonyms(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "chicharrones", candidates[0].Term)
}
