package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lynxshop/backend/internal/domain/entities"
	"github.com/lynxshop/backend/internal/domain/repositories"
)

const (
	categoriesConfigPath   = "../../../config/semantic_categories.json"
	priceBandsConfigPath   = "../../../config/price_bands.json"
	contradictionRulesPath = "../../../config/contradiction_rules.json"
)

var errCacheMiss = errors.New("cache miss")

func newTestClassifier(t *testing.T) *CategoryClassifier {
	t.Helper()
	classifier, err := NewCategoryClassifier(categoriesConfigPath)
	require.NoError(t, err)
	return classifier
}

func newTestPriceExtractor(t *testing.T) *PriceIntentExtractor {
	t.Helper()
	extractor, err := NewPriceIntentExtractor(priceBandsConfigPath)
	require.NoError(t, err)
	return extractor
}

func newTestContradictionDetector(t *testing.T) *ContradictionDetector {
	t.Helper()
	detector, err := NewContradictionDetector(contradictionRulesPath)
	require.NoError(t, err)
	return detector
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fakeCatalogRepo struct {
	mu       sync.Mutex
	products []entities.CatalogProduct
	err      error
	fetches  int
	delay    time.Duration
}

func (r *fakeCatalogRepo) FetchCatalog(ctx context.Context) ([]entities.CatalogProduct, error) {
	r.mu.Lock()
	r.fetches++
	products, err, delay := r.products, r.err, r.delay
	r.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return nil, err
	}
	out := make([]entities.CatalogProduct, len(products))
	copy(out, products)
	return out, nil
}

func (r *fakeCatalogRepo) ListCategoryNames(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (r *fakeCatalogRepo) fetchCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fetches
}

func (r *fakeCatalogRepo) fail(err error) {
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
}

// staticCatalog serves a fixed product slice, bypassing TTL logic.
type staticCatalog struct {
	products      []entities.CatalogProduct
	err           error
	invalidations int
}

func (c *staticCatalog) Get(ctx context.Context) ([]entities.CatalogProduct, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.products, nil
}

func (c *staticCatalog) ForceRefresh(ctx context.Context) error { return c.err }

func (c *staticCatalog) Invalidate() { c.invalidations++ }

type fakeSynonymRepo struct {
	existing    []entities.Synonym
	created     []*entities.Synonym
	deactivated []int
	listFilters []repositories.SynonymFilter
}

func (r *fakeSynonymRepo) Create(ctx context.Context, synonym *entities.Synonym) error {
	synonym.ID = len(r.created) + 1
	r.created = append(r.created, synonym)
	return nil
}

func (r *fakeSynonymRepo) ListByProduct(ctx context.Context, filter repositories.SynonymFilter) ([]entities.Synonym, error) {
	r.listFilters = append(r.listFilters, filter)
	return r.existing, nil
}

func (r *fakeSynonymRepo) Deactivate(ctx context.Context, id int) error {
	r.deactivated = append(r.deactivated, id)
	return nil
}

type fakeMetricsRepo struct {
	mu         sync.Mutex
	events     []*entities.SearchEvent
	clicks     []string
	candidates []entities.CandidateTerm
}

func (r *fakeMetricsRepo) LogEvent(ctx context.Context, event *entities.SearchEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *fakeMetricsRepo) RecordClick(ctx context.Context, term string, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clicks = append(r.clicks, term)
	return nil
}

func (r *fakeMetricsRepo) FrequentUnmatchedTerms(ctx context.Context, limit int) ([]entities.CandidateTerm, error) {
	return r.candidates, nil
}

// memoryCache is an in-process providers.CacheProvider for memoization tests.
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if value, ok := c.data[key]; ok {
		return value, nil
	}
	return nil, errCacheMiss
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok, nil
}
