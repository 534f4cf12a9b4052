package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/lynxshop/backend/internal/domain/entities"
	"github.com/lynxshop/backend/internal/domain/repositories"
	"github.com/lynxshop/backend/pkg/utils"
)

// GenerationSummary reports what one offline generation run did.
type GenerationSummary struct {
	ProductsScanned  int
	ProductsMatched  int
	SynonymsInserted int
	SynonymsSkipped  int
}

// SynonymGeneratorService walks the product table and derives auto-learning
// synonyms from the semantic category dictionary. Runs offline from
// cmd/synonymgen, never in the request path.
type SynonymGeneratorService struct {
	products   repositories.ProductRepository
	synonyms   repositories.SynonymRepository
	classifier *CategoryClassifier
}

// NewSynonymGeneratorService creates a synonym generator.
func NewSynonymGeneratorService(
	products repositories.ProductRepository,
	synonyms repositories.SynonymRepository,
	classifier *CategoryClassifier,
) *SynonymGeneratorService {
	return &SynonymGeneratorService{
		products:   products,
		synonyms:   synonyms,
		classifier: classifier,
	}
}

// Generate classifies every product name and inserts the category dictionary
// synonyms that relate to the name's tokens, skipping synonyms the product
// already has in any state.
func (s *SynonymGeneratorService) Generate(ctx context.Context) (*GenerationSummary, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	definitionsByTag := make(map[string]CategoryDefinition)
	for _, def := range s.classifier.Definitions() {
		definitionsByTag[def.Tag] = def
	}

	summary := &GenerationSummary{}
	for _, product := range products {
		summary.ProductsScanned++

		detected := s.classifier.Classify(product.Name)
		if detected == nil {
			continue
		}
		def, ok := definitionsByTag[detected.Tag]
		if !ok {
			continue
		}
		summary.ProductsMatched++

		candidates := s.relatedSynonyms(product.Name, def)
		if len(candidates) == 0 {
			continue
		}

		existing, err := s.synonyms.ListByProduct(ctx, repositories.SynonymFilter{
			ProductID:       product.ID,
			IncludeInactive: true,
		})
		if err != nil {
			return nil, err
		}
		known := make(map[string]bool, len(existing))
		for _, syn := range existing {
			known[utils.Normalize(syn.Text)] = true
		}

		for _, candidate := range candidates {
			if known[utils.Normalize(candidate)] {
				summary.SynonymsSkipped++
				continue
			}
			synonym := &entities.Synonym{
				ProductID: product.ID,
				Text:      candidate,
				Source:    entities.SynonymSourceAutoLearning,
				Precision: 0.5,
				Active:    true,
			}
			if err := s.synonyms.Create(ctx, synonym); err != nil {
				return nil, err
			}
			summary.SynonymsInserted++
			log.Debug().
				Int("product_id", product.ID).
				Str("synonym", candidate).
				Msg("auto-learning synonym inserted")
		}
	}

	return summary, nil
}

// relatedSynonyms returns the dictionary synonyms and products of the
// category that share a substring with the product name's tokens.
func (s *SynonymGeneratorService) relatedSynonyms(productName string, def CategoryDefinition) []string {
	tokens := utils.TokenizeQuery(productName)

	var related []string
	seen := make(map[string]bool)
	for _, entry := range append(append([]string{}, def.Synonyms...), def.Products...) {
		normalizedEntry := utils.Normalize(entry)
		if normalizedEntry == "" || seen[normalizedEntry] {
			continue
		}
		for _, token := range tokens {
			if token == normalizedEntry {
				// The synonym would just repeat the name token.
				break
			}
			if strings.Contains(normalizedEntry, token) || strings.Contains(token, normalizedEntry) {
				related = append(related, entry)
				seen[normalizedEntry] = true
				break
			}
		}
	}
	return related
}
