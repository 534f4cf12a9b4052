package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/lynxshop/backend/internal/domain/entities"
	"github.com/lynxshop/backend/pkg/utils"
)

// Tier weights for the four dictionaries of a category definition.
const (
	weightKeyword        = 10
	weightCharacteristic = 8
	weightProduct        = 6
	weightSynonym        = 4
)

// CategoryDefinition is one entry of the semantic category dictionary. The
// dictionary is the single canonical definition per category, shared by the
// online classifier and the offline synonym generator.
type CategoryDefinition struct {
	Tag             string   `json:"tag"`
	Emoji           string   `json:"emoji"`
	Keywords        []string `json:"keywords"`
	Characteristics []string `json:"characteristics"`
	Products        []string `json:"products"`
	Synonyms        []string `json:"synonyms"`
	AdminCategories []string `json:"adminCategories"`
}

// CategoryClassifier scores free-text queries against the semantic category
// dictionary. Definitions keep their file order: ties resolve to whichever
// category is defined first.
type CategoryClassifier struct {
	definitions []CategoryDefinition
	adminToTag  map[string]string
}

// NewCategoryClassifier loads the semantic category dictionary from a JSON
// file and validates it.
func NewCategoryClassifier(path string) (*CategoryClassifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read semantic categories: %w", err)
	}

	var definitions []CategoryDefinition
	if err := json.Unmarshal(data, &definitions); err != nil {
		return nil, fmt.Errorf("failed to parse semantic categories: %w", err)
	}
	if len(definitions) == 0 {
		return nil, fmt.Errorf("semantic category dictionary is empty")
	}

	adminToTag := make(map[string]string)
	for i, def := range definitions {
		if def.Tag == "" || def.Emoji == "" {
			return nil, fmt.Errorf("semantic category %d is missing tag or emoji", i)
		}
		if len(def.Keywords) == 0 {
			return nil, fmt.Errorf("semantic category %q has no keywords", def.Tag)
		}
		if len(def.AdminCategories) == 0 {
			return nil, fmt.Errorf("semantic category %q has no admin category mapping", def.Tag)
		}
		for _, admin := range def.AdminCategories {
			adminToTag[utils.Normalize(admin)] = def.Tag
		}
	}

	return &CategoryClassifier{
		definitions: definitions,
		adminToTag:  adminToTag,
	}, nil
}

// Classify scores the query against every category definition and returns the
// best match, or nil when every category scores zero.
func (c *CategoryClassifier) Classify(rawQuery string) *entities.DetectedCategory {
	tokens := utils.TokenizeQuery(rawQuery)
	if len(tokens) == 0 {
		return nil
	}

	bestIdx := -1
	bestScore := 0
	for i, def := range c.definitions {
		score := 0
		for _, token := range tokens {
			score += tierScore(token, def.Keywords, weightKeyword)
			score += tierScore(token, def.Characteristics, weightCharacteristic)
			score += tierScore(token, def.Products, weightProduct)
			score += tierScore(token, def.Synonyms, weightSynonym)
		}
		// Strictly greater: ties keep the earlier definition.
		if score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}

	if bestIdx < 0 {
		return nil
	}

	confidence := float64(bestScore) / 10.0
	if confidence > 1.0 {
		confidence = 1.0
	}

	def := c.definitions[bestIdx]
	return &entities.DetectedCategory{
		Tag:        def.Tag,
		Emoji:      def.Emoji,
		Score:      bestScore,
		Confidence: confidence,
	}
}

// tierScore accumulates weight for every dictionary entry that matches the
// token by substring containment in either direction. A token may score
// against multiple entries of the same tier.
func tierScore(token string, entries []string, weight int) int {
	score := 0
	for _, entry := range entries {
		if strings.Contains(entry, token) || strings.Contains(token, entry) {
			score += weight
		}
	}
	return score
}

// AdminCategoryTag maps an admin-managed category name to its semantic tag,
// returning false when the name has no mapping.
func (c *CategoryClassifier) AdminCategoryTag(name string) (string, bool) {
	tag, ok := c.adminToTag[utils.Normalize(name)]
	return tag, ok
}

// Definitions returns the loaded category definitions in file order.
func (c *CategoryClassifier) Definitions() []CategoryDefinition {
	return c.definitions
}

// ValidateAdminCategories warns once per admin category that has no semantic
// mapping. Products in unmapped categories never receive a category bonus.
func (c *CategoryClassifier) ValidateAdminCategories(names []string) {
	for _, name := range names {
		if _, ok := c.AdminCategoryTag(name); !ok {
			log.Warn().Str("category", name).
				Msg("admin category has no semantic mapping, products in it will not get category boosts")
		}
	}
}
