package services

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lynxshop/backend/internal/domain/entities"
	"github.com/lynxshop/backend/internal/domain/providers"
	"github.com/lynxshop/backend/internal/domain/repositories"
	"github.com/lynxshop/backend/internal/infrastructure/observability"
	apperrors "github.com/lynxshop/backend/pkg/errors"
	"github.com/lynxshop/backend/pkg/utils"
)

// Scoring weights per spec'd match criterion.
const (
	scoreExactName     = 50.0
	scoreTokenInName   = 30.0
	scoreSynonym       = 25.0
	scoreCategoryBase  = 20.0
	scorePriceFitBonus = 15.0
	priceOverPenalty   = 0.3
)

const interpretationTTLSeconds = 86400 // 24 hours

// QueryInterpretation is what the analyzers extracted from a raw query.
type QueryInterpretation struct {
	OriginalQuery    string                     `json:"original_query"`
	NormalizedQuery  string                     `json:"normalized_query"`
	DetectedCategory *entities.DetectedCategory `json:"detected_category,omitempty"`
	PriceIntent      *entities.PriceIntent      `json:"price_intent,omitempty"`
}

// SearchService runs the full scoring pipeline: normalize, classify, extract
// price intent, score the cached catalog, rank, truncate, annotate.
type SearchService struct {
	catalog        CatalogCache
	classifier     *CategoryClassifier
	prices         *PriceIntentExtractor
	contradictions *ContradictionDetector
	metricsRepo    repositories.SearchMetricsRepository
	cache          providers.CacheProvider
	metrics        *observability.Metrics
	maxResults     int
}

// NewSearchService creates a search service. metricsRepo, cache and metrics
// may be nil; the service degrades to uncached, unrecorded operation.
func NewSearchService(
	catalog CatalogCache,
	classifier *CategoryClassifier,
	prices *PriceIntentExtractor,
	contradictions *ContradictionDetector,
	metricsRepo repositories.SearchMetricsRepository,
	cache providers.CacheProvider,
	metrics *observability.Metrics,
	maxResults int,
) *SearchService {
	if maxResults <= 0 {
		maxResults = 10
	}
	return &SearchService{
		catalog:        catalog,
		classifier:     classifier,
		prices:         prices,
		contradictions: contradictions,
		metricsRepo:    metricsRepo,
		cache:          cache,
		metrics:        metrics,
		maxResults:     maxResults,
	}
}

// Interpret normalizes a query and runs the classifier and price extractor.
// Interpretations are memoized in the cache provider when one is present.
func (s *SearchService) Interpret(ctx context.Context, rawQuery string) *QueryInterpretation {
	normalized := utils.Normalize(rawQuery)

	cacheKey := "query_interp:" + normalized
	if s.cache != nil && normalized != "" {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cached QueryInterpretation
			if json.Unmarshal(data, &cached) == nil {
				cached.OriginalQuery = rawQuery
				return &cached
			}
		}
	}

	interp := &QueryInterpretation{
		OriginalQuery:    rawQuery,
		NormalizedQuery:  normalized,
		DetectedCategory: s.classifier.Classify(rawQuery),
		PriceIntent:      s.prices.Extract(rawQuery),
	}

	if s.cache != nil && normalized != "" {
		if data, err := json.Marshal(interp); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, interpretationTTLSeconds)
		}
	}

	return interp
}

// Search scores every cached product against the query and returns the
// ranked, truncated list. Blank-query validation happens at the API boundary;
// the service assumes a non-blank query.
func (s *SearchService) Search(ctx context.Context, rawQuery string, limit int, includeAnalysis bool) (*entities.SearchResult, error) {
	start := time.Now()

	interp := s.Interpret(ctx, rawQuery)

	products, err := s.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}

	tokens := strings.Fields(interp.NormalizedQuery)
	matchedTokens := make(map[string]bool)

	var scored []entities.RankedProduct
	for _, product := range products {
		ranked, ok := s.scoreProduct(product, interp, tokens, matchedTokens)
		if ok {
			scored = append(scored, ranked)
		}
	}

	// Score descending; equal scores resolve by ascending product ID so
	// the ranking is stable across cache rebuilds.
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].ID < scored[j].ID
	})

	if limit <= 0 || limit > s.maxResults {
		limit = s.maxResults
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}

	elapsed := time.Since(start).Milliseconds()

	result := &entities.SearchResult{
		Results: scored,
		TookMs:  elapsed,
	}
	if includeAnalysis {
		result.Analysis = &entities.SearchAnalysis{
			NormalizedQuery:  interp.NormalizedQuery,
			DetectedCategory: interp.DetectedCategory,
			PriceFilter:      interp.PriceIntent,
			Contradictions:   s.contradictions.Detect(rawQuery, interp.DetectedCategory, scored),
			ElapsedMs:        elapsed,
		}
	}

	s.recordSearch(ctx, interp, tokens, matchedTokens, len(scored), elapsed)

	return result, nil
}

// scoreProduct applies the weighted criteria to one catalog product. The
// second return value is false when the product scored zero.
func (s *SearchService) scoreProduct(
	product entities.CatalogProduct,
	interp *QueryInterpretation,
	tokens []string,
	matchedTokens map[string]bool,
) (entities.RankedProduct, bool) {
	normalizedName := utils.Normalize(product.Name)

	score := 0.0
	var matches []string

	if interp.NormalizedQuery != "" && interp.NormalizedQuery == normalizedName {
		score += scoreExactName
		matches = append(matches, "nombre_exacto")
		for _, t := range tokens {
			matchedTokens[t] = true
		}
	}

	for _, token := range tokens {
		if strings.Contains(normalizedName, token) {
			score += scoreTokenInName
			matches = append(matches, token)
			matchedTokens[token] = true
		}
	}

	for _, synonym := range product.Synonyms {
		normalizedSynonym := utils.Normalize(synonym)
		if normalizedSynonym == "" {
			continue
		}
		for _, token := range tokens {
			if token == normalizedSynonym || strings.Contains(normalizedSynonym, token) {
				score += scoreSynonym
				matches = append(matches, synonym)
				matchedTokens[token] = true
			}
		}
	}

	if interp.DetectedCategory != nil && product.SemanticTag != "" &&
		interp.DetectedCategory.Tag == product.SemanticTag {
		score += scoreCategoryBase * interp.DetectedCategory.Confidence
		matches = append(matches, "categoria_"+product.SemanticTag)
	}

	priceOK := true
	if interp.PriceIntent != nil {
		if product.Price > interp.PriceIntent.MaxPrice {
			// Soft penalty: over-budget products stay eligible.
			score *= priceOverPenalty
			priceOK = false
		} else if score > 0 {
			score += scorePriceFitBonus
			matches = append(matches, "precio_ok")
		}
	}

	if score <= 0 {
		return entities.RankedProduct{}, false
	}

	return entities.RankedProduct{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Category: product.CategoryName,
		Emoji:    product.SemanticEmoji,
		Image:    product.ImageFilename,
		Stock:    product.Stock,
		Score:    int(math.Round(score)),
		Matches:  matches,
		PriceOK:  priceOK,
	}, true
}

// RecordClick stores a click on a search result so the offline candidate
// generator can weigh terms by engagement.
func (s *SearchService) RecordClick(ctx context.Context, term string, productID int) error {
	if strings.TrimSpace(term) == "" {
		return apperrors.NewValidationError("search term is required")
	}
	if productID <= 0 {
		return apperrors.NewValidationError("product id must be positive")
	}
	if s.metricsRepo == nil {
		return apperrors.NewInternalError("search metrics store is not configured", nil)
	}
	return s.metricsRepo.RecordClick(ctx, utils.Normalize(term), productID)
}

// recordSearch logs the event and bumps counters. Best effort: analytics
// must never fail a search.
func (s *SearchService) recordSearch(
	ctx context.Context,
	interp *QueryInterpretation,
	tokens []string,
	matchedTokens map[string]bool,
	resultCount int,
	elapsed int64,
) {
	if s.metrics != nil {
		s.metrics.SearchCount.Add(ctx, 1)
		s.metrics.SearchDuration.Record(ctx, float64(elapsed))
		for _, token := range tokens {
			if !matchedTokens[token] {
				s.metrics.UnmatchedTerms.Add(ctx, 1,
					metric.WithAttributes(attribute.String("search.term", token)))
			}
		}
	}

	if s.metricsRepo == nil {
		return
	}
	event := &entities.SearchEvent{
		Term:           interp.OriginalQuery,
		NormalizedTerm: interp.NormalizedQuery,
		ResultCount:    resultCount,
		LatencyMs:      int(elapsed),
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.metricsRepo.LogEvent(bgCtx, event); err != nil {
			log.Warn().Err(err).Msg("failed to log search event")
		}
	}()
}
