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

// ContradictionRule is one declarative heuristic: when the query contains a
// trigger and the results look like a mismatch, emit an advisory hint.
// Adding a case means adding a rule here, not touching scoring logic.
type ContradictionRule struct {
	// QueryContains fires the rule when any of these substrings appears
	// in the normalized query.
	QueryContains []string `json:"queryContains"`

	// DetectedCategoryNot, when set, requires the detected semantic
	// category to differ from this tag for the rule to fire.
	DetectedCategoryNot string `json:"detectedCategoryNot,omitempty"`

	// FlagCategories flags results whose semantic tag or category name
	// contains any of these substrings.
	FlagCategories []string `json:"flagCategories,omitempty"`

	// FlagNameContains flags results whose name contains any of these
	// substrings (matched case-insensitively on the raw name, so accents
	// are significant).
	FlagNameContains []string `json:"flagNameContains,omitempty"`

	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ContradictionDetector annotates search results with likely intent
// mismatches. Advisory only: it never removes results and never fails the
// search.
type ContradictionDetector struct {
	rules []ContradictionRule
}

// NewContradictionDetector loads the rule list from a JSON file.
func NewContradictionDetector(path string) (*ContradictionDetector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read contradiction rules: %w", err)
	}

	var rules []ContradictionRule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse contradiction rules: %w", err)
	}
	for i, rule := range rules {
		if len(rule.QueryContains) == 0 || rule.Message == "" {
			return nil, fmt.Errorf("contradiction rule %d is incomplete", i)
		}
	}

	return &ContradictionDetector{rules: rules}, nil
}

// Detect evaluates every rule against the query and ranked results. A panic
// inside a rule is swallowed: contradiction detection must never abort the
// primary result.
func (d *ContradictionDetector) Detect(
	rawQuery string,
	detected *entities.DetectedCategory,
	results []entities.RankedProduct,
) (contradictions []entities.Contradiction) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("contradiction detection panicked, dropping annotations")
			contradictions = nil
		}
	}()

	normalized := utils.Normalize(rawQuery)
	if normalized == "" || len(results) == 0 {
		return nil
	}

	for _, rule := range d.rules {
		if !d.ruleTriggered(rule, normalized, detected) {
			continue
		}
		if d.anyResultFlagged(rule, results) {
			contradictions = append(contradictions, entities.Contradiction{
				Message:    rule.Message,
				Suggestion: rule.Suggestion,
			})
		}
	}

	return contradictions
}

func (d *ContradictionDetector) ruleTriggered(rule ContradictionRule, normalizedQuery string, detected *entities.DetectedCategory) bool {
	triggered := false
	for _, trigger := range rule.QueryContains {
		if strings.Contains(normalizedQuery, trigger) {
			triggered = true
			break
		}
	}
	if !triggered {
		return false
	}

	if rule.DetectedCategoryNot != "" {
		if detected != nil && detected.Tag == rule.DetectedCategoryNot {
			return false
		}
	}

	return true
}

func (d *ContradictionDetector) anyResultFlagged(rule ContradictionRule, results []entities.RankedProduct) bool {
	for _, result := range results {
		category := utils.Normalize(result.Category)
		for _, flag := range rule.FlagCategories {
			if strings.Contains(category, flag) {
				return true
			}
		}
		name := strings.ToLower(result.Name)
		for _, flag := range rule.FlagNameContains {
			if strings.Contains(name, strings.ToLower(flag)) {
				return true
			}
		}
	}
	return false
}
