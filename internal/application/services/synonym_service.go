package services

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/lynxshop/backend/internal/domain/entities"
	"github.com/lynxshop/backend/internal/domain/repositories"
	"github.com/lynxshop/backend/pkg/errors"
	"github.com/lynxshop/backend/pkg/utils"
)

const (
	minSynonymLength = 2
	defaultPrecision = 0.8
)

// Synonym text admits letters (including accented Spanish and ñ/ü) and
// internal spaces only. Digits and punctuation are rejected.
var synonymTextPattern = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑüÜ ]+$`)

// SynonymService implements the admin-facing synonym lifecycle: create with
// validation and duplicate detection, list, and soft delete. Every mutation
// invalidates the catalog snapshot so the scorer sees the change on its next
// refresh.
type SynonymService struct {
	repo    repositories.SynonymRepository
	catalog CatalogCache
}

// NewSynonymService creates a synonym service. catalog may be nil in tests.
func NewSynonymService(repo repositories.SynonymRepository, catalog CatalogCache) *SynonymService {
	return &SynonymService{repo: repo, catalog: catalog}
}

// CreateSynonym validates and stores a new synonym for a product. The text
// is trimmed but stored as given; matching normalizes at query time.
func (s *SynonymService) CreateSynonym(ctx context.Context, productID int, text string, source entities.SynonymSource) (*entities.Synonym, error) {
	if productID <= 0 {
		return nil, errors.NewValidationError("product id must be positive")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.NewValidationError("synonym text is required")
	}
	if utf8.RuneCountInString(text) < minSynonymLength {
		return nil, errors.NewValidationError("synonym text must be at least 2 characters")
	}
	if !synonymTextPattern.MatchString(text) {
		return nil, errors.NewValidationError("synonym text may only contain letters and spaces")
	}

	if source == "" {
		source = entities.SynonymSourceAdmin
	}
	if !source.Valid() {
		return nil, errors.NewValidationError("unknown synonym source: " + string(source))
	}

	existing, err := s.repo.ListByProduct(ctx, repositories.SynonymFilter{ProductID: productID})
	if err != nil {
		return nil, err
	}
	normalized := utils.Normalize(text)
	for _, current := range existing {
		if utils.Normalize(current.Text) == normalized {
			return nil, errors.NewConflictError("synonym already exists for this product")
		}
	}

	synonym := &entities.Synonym{
		ProductID: productID,
		Text:      text,
		Source:    source,
		Precision: defaultPrecision,
		Active:    true,
	}
	if err := s.repo.Create(ctx, synonym); err != nil {
		return nil, err
	}

	s.invalidateCatalog()
	return synonym, nil
}

// ListSynonyms returns a product's synonyms, active only by default.
func (s *SynonymService) ListSynonyms(ctx context.Context, productID int, includeInactive bool) ([]entities.Synonym, error) {
	if productID <= 0 {
		return nil, errors.NewValidationError("product id must be positive")
	}
	return s.repo.ListByProduct(ctx, repositories.SynonymFilter{
		ProductID:       productID,
		IncludeInactive: includeInactive,
	})
}

// DeleteSynonym soft-deletes a synonym. The record stays in place so its
// popularity and precision history survive.
func (s *SynonymService) DeleteSynonym(ctx context.Context, synonymID int) error {
	if synonymID <= 0 {
		return errors.NewValidationError("synonym id must be positive")
	}
	if err := s.repo.Deactivate(ctx, synonymID); err != nil {
		return err
	}
	s.invalidateCatalog()
	return nil
}

func (s *SynonymService) invalidateCatalog() {
	if s.catalog != nil {
		s.catalog.Invalidate()
	}
}
