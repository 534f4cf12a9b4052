package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/lynxshop/backend/internal/domain/entities"
	"github.com/lynxshop/backend/internal/domain/repositories"
	"github.com/lynxshop/backend/internal/infrastructure/observability"
)

// fallbackEmoji is used for products the classifier cannot place.
const fallbackEmoji = "📦"

// Clock abstracts wall-clock time so the cache TTL can be tested
// deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// CatalogCache serves the denormalized product snapshot the scoring engine
// works against.
type CatalogCache interface {
	// Get returns the current snapshot, refreshing it when stale.
	Get(ctx context.Context) ([]entities.CatalogProduct, error)

	// ForceRefresh rebuilds the snapshot regardless of its age.
	ForceRefresh(ctx context.Context) error

	// Invalidate marks the snapshot stale so the next Get refreshes it.
	Invalidate()
}

// CatalogCacheService holds a snapshot plus its refresh timestamp and
// replaces it wholesale on expiry. Concurrent cache-miss callers share one
// refresh through singleflight; a failed refresh serves the previous
// snapshot when one exists.
type CatalogCacheService struct {
	repo       repositories.CatalogRepository
	classifier *CategoryClassifier
	clock      Clock
	ttl        time.Duration
	metrics    *observability.Metrics

	group singleflight.Group

	mu          sync.RWMutex
	snapshot    []entities.CatalogProduct
	refreshedAt time.Time
}

// NewCatalogCacheService creates a catalog cache. metrics may be nil.
func NewCatalogCacheService(
	repo repositories.CatalogRepository,
	classifier *CategoryClassifier,
	clock Clock,
	ttl time.Duration,
	metrics *observability.Metrics,
) *CatalogCacheService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &CatalogCacheService{
		repo:       repo,
		classifier: classifier,
		clock:      clock,
		ttl:        ttl,
		metrics:    metrics,
	}
}

// Get returns the snapshot, refreshing when the TTL has elapsed.
func (s *CatalogCacheService) Get(ctx context.Context) ([]entities.CatalogProduct, error) {
	s.mu.RLock()
	snapshot := s.snapshot
	refreshedAt := s.refreshedAt
	s.mu.RUnlock()

	if snapshot != nil && s.clock.Now().Sub(refreshedAt) < s.ttl {
		if s.metrics != nil {
			s.metrics.CatalogHitCount.Add(ctx, 1)
		}
		return snapshot, nil
	}

	return s.refresh(ctx)
}

// ForceRefresh rebuilds the snapshot immediately.
func (s *CatalogCacheService) ForceRefresh(ctx context.Context) error {
	s.Invalidate()
	_, err := s.refresh(ctx)
	return err
}

// Invalidate zeroes the refresh timestamp; the next Get rebuilds.
func (s *CatalogCacheService) Invalidate() {
	s.mu.Lock()
	s.refreshedAt = time.Time{}
	s.mu.Unlock()
}

// refresh rebuilds the snapshot, deduplicating concurrent callers. When the
// fetch fails and a previous snapshot exists, the stale snapshot is served
// instead of the error.
func (s *CatalogCacheService) refresh(ctx context.Context) ([]entities.CatalogProduct, error) {
	result, err, _ := s.group.Do("catalog", func() (interface{}, error) {
		// Re-check freshness: a caller queued behind a completed refresh
		// should not trigger another one.
		s.mu.RLock()
		snapshot := s.snapshot
		refreshedAt := s.refreshedAt
		s.mu.RUnlock()
		if snapshot != nil && s.clock.Now().Sub(refreshedAt) < s.ttl {
			return snapshot, nil
		}

		if s.metrics != nil {
			s.metrics.CatalogMissCount.Add(ctx, 1)
		}

		products, err := s.repo.FetchCatalog(ctx)
		if err != nil {
			if snapshot != nil {
				if s.metrics != nil {
					s.metrics.CatalogStaleCount.Add(ctx, 1)
				}
				log.Warn().Err(err).Msg("catalog refresh failed, serving stale snapshot")
				return snapshot, nil
			}
			return nil, err
		}

		for i := range products {
			s.classify(&products[i])
		}

		s.mu.Lock()
		s.snapshot = products
		s.refreshedAt = s.clock.Now()
		s.mu.Unlock()

		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]entities.CatalogProduct), nil
}

// classify pre-computes the product's semantic category from its own name.
func (s *CatalogCacheService) classify(cp *entities.CatalogProduct) {
	detected := s.classifier.Classify(cp.Name)
	if detected == nil {
		cp.SemanticEmoji = fallbackEmoji
		return
	}
	cp.SemanticTag = detected.Tag
	cp.SemanticEmoji = detected.Emoji
	cp.SemanticConfidence = detected.Confidence
}
