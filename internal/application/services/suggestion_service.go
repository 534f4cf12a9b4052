package services

import (
	"context"
	"fmt"

	"github.com/lynxshop/backend/internal/domain/entities"
	"github.com/lynxshop/backend/internal/domain/repositories"
)

// SuggestionService produces template-generated refinement hints for the
// analysis endpoint and surfaces candidate synonym terms collected by the
// metrics pipeline for the admin tooling.
type SuggestionService struct {
	metricsRepo repositories.SearchMetricsRepository
}

// NewSuggestionService creates a suggestion service. metricsRepo may be nil
// when the metrics store is unavailable; candidate listing then fails fast.
func NewSuggestionService(metricsRepo repositories.SearchMetricsRepository) *SuggestionService {
	return &SuggestionService{metricsRepo: metricsRepo}
}

// ForInterpretation builds short refinement suggestions from the detected
// category and price intent. Purely string templates, never ranked.
func (s *SuggestionService) ForInterpretation(interp *QueryInterpretation) []string {
	suggestions := make([]string, 0, 4)

	if cat := interp.DetectedCategory; cat != nil {
		suggestions = append(suggestions,
			fmt.Sprintf("%s ver todos los productos de %s", cat.Emoji, cat.Tag),
			fmt.Sprintf("%s %s baratos", cat.Emoji, cat.Tag),
		)
	}

	if price := interp.PriceIntent; price != nil {
		suggestions = append(suggestions,
			fmt.Sprintf("%s productos hasta $%.0f", price.Emoji, price.MaxPrice),
		)
		if cat := interp.DetectedCategory; cat != nil {
			suggestions = append(suggestions,
				fmt.Sprintf("%s %s por menos de $%.0f", cat.Emoji, cat.Tag, price.MaxPrice),
			)
		}
	}

	return suggestions
}

// CandidateSynonyms returns frequently searched terms that matched no
// product or synonym, for admins to review as new synonym candidates.
func (s *SuggestionService) CandidateSynonyms(ctx context.Context, limit int) ([]entities.CandidateTerm, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.metricsRepo.FrequentUnmatchedTerms(ctx, limit)
}
