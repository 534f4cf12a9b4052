package entities

// RankedProduct is one entry of the ranked list returned by a search.
type RankedProduct struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Category string   `json:"category"`
	Emoji    string   `json:"emoji"`
	Image    string   `json:"image,omitempty"`
	Stock    int      `json:"stock"`
	Score    int      `json:"score"`
	Matches  []string `json:"matches"`
	PriceOK  bool     `json:"price_ok"`
}

// DetectedCategory describes the semantic category inferred from a query.
type DetectedCategory struct {
	Tag        string  `json:"tag"`
	Emoji      string  `json:"emoji"`
	Score      int     `json:"score"`
	Confidence float64 `json:"confidence"`
}

// PriceIntent is a maximum-price ceiling inferred from price language in a
// query.
type PriceIntent struct {
	MaxPrice       float64  `json:"max_price"`
	Emoji          string   `json:"emoji"`
	MatchedPhrases []string `json:"matched_phrases"`
}

// Contradiction flags a likely mismatch between the query's apparent intent
// and the returned results. Advisory only: flagged results are not removed.
type Contradiction struct {
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// SearchAnalysis is the optional interpretation block attached to a search
// response.
type SearchAnalysis struct {
	NormalizedQuery  string            `json:"normalized_query"`
	DetectedCategory *DetectedCategory `json:"detected_category,omitempty"`
	PriceFilter      *PriceIntent      `json:"price_filter,omitempty"`
	Contradictions   []Contradiction   `json:"contradictions,omitempty"`
	ElapsedMs        int64             `json:"elapsed_ms"`
}

// SearchResult is the full outcome of one search.
type SearchResult struct {
	Results  []RankedProduct `json:"results"`
	Analysis *SearchAnalysis `json:"analysis,omitempty"`
	TookMs   int64           `json:"took_ms"`
}
