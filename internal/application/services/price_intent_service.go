package services

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/lynxshop/backend/internal/domain/entities"
	"github.com/lynxshop/backend/pkg/utils"
)

// PriceBand is one named price ceiling with its trigger phrases. Bands are
// checked in file order and the first phrase match wins, so broader phrases
// must come after more specific ones.
type PriceBand struct {
	Name     string   `json:"name"`
	Emoji    string   `json:"emoji"`
	MaxPrice float64  `json:"maxPrice"`
	Phrases  []string `json:"phrases"`
}

// customCeilingPattern captures "menos de 12", "hasta 20", "maximo 30" etc.
// over the normalized query, so accents are already folded.
var customCeilingPattern = regexp.MustCompile(`(?:menos de|menor a|hasta|maximo|max)\s+(\d+)`)

// PriceIntentExtractor detects price-sensitivity language in queries.
type PriceIntentExtractor struct {
	bands []PriceBand
}

// NewPriceIntentExtractor loads the price band table from a JSON file.
func NewPriceIntentExtractor(path string) (*PriceIntentExtractor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read price bands: %w", err)
	}

	var bands []PriceBand
	if err := json.Unmarshal(data, &bands); err != nil {
		return nil, fmt.Errorf("failed to parse price bands: %w", err)
	}
	if len(bands) == 0 {
		return nil, fmt.Errorf("price band table is empty")
	}
	for _, band := range bands {
		if band.Name == "" || band.MaxPrice <= 0 || len(band.Phrases) == 0 {
			return nil, fmt.Errorf("price band %q is incomplete", band.Name)
		}
	}

	return &PriceIntentExtractor{bands: bands}, nil
}

// Extract returns the price ceiling implied by the query, or nil when the
// query carries no price language. Band phrases win over the numeric
// fallback.
func (e *PriceIntentExtractor) Extract(rawQuery string) *entities.PriceIntent {
	normalized := utils.Normalize(rawQuery)
	if normalized == "" {
		return nil
	}

	for _, band := range e.bands {
		var matched []string
		for _, phrase := range band.Phrases {
			if strings.Contains(normalized, phrase) {
				matched = append(matched, phrase)
			}
		}
		if len(matched) > 0 {
			return &entities.PriceIntent{
				MaxPrice:       band.MaxPrice,
				Emoji:          band.Emoji,
				MatchedPhrases: matched,
			}
		}
	}

	if m := customCeilingPattern.FindStringSubmatch(normalized); m != nil {
		ceiling, err := strconv.Atoi(m[1])
		if err == nil && ceiling > 0 {
			return &entities.PriceIntent{
				MaxPrice:       float64(ceiling),
				Emoji:          "🎯",
				MatchedPhrases: []string{m[0]},
			}
		}
	}

	return nil
}
