package entities

import (
	"time"
)

// SearchEvent is one search interaction, recorded for analytics. The online
// scoring path only writes these; they are consumed by the offline synonym
// candidate generator.
type SearchEvent struct {
	ID              string    `json:"id" db:"id"`
	Term            string    `json:"term" db:"term"`
	NormalizedTerm  string    `json:"normalized_term" db:"normalized_term"`
	ProductID       *int      `json:"product_id,omitempty" db:"product_id"`
	Clicks          int       `json:"clicks" db:"clicks"`
	ResultCount     int       `json:"result_count" db:"result_count"`
	LatencyMs       int       `json:"latency_ms" db:"latency_ms"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// CandidateTerm is a frequently searched term that matches no active synonym
// and no product name, surfaced to administrators as a synonym candidate.
type CandidateTerm struct {
	Term        string `json:"term" db:"term"`
	SearchCount int    `json:"search_count" db:"search_count"`
	ClickCount  int    `json:"click_count" db:"click_count"`
}
