package entities

// Product is the read-only projection of a catalog product. The storefront's
// admin CRUD owns the source rows; the search core only ever reads them.
type Product struct {
	ID            int     `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	Price         float64 `json:"price" db:"price"`
	Stock         int     `json:"stock" db:"stock"`
	CategoryID    int     `json:"category_id" db:"category_id"`
	CategoryName  string  `json:"category" db:"category_name"`
	ImageFilename string  `json:"image,omitempty" db:"image_filename"`
}

// CatalogProduct is one row of the denormalized catalog snapshot the scoring
// engine works against: the product, its active synonyms, and a semantic
// classification pre-computed from the product's own name.
type CatalogProduct struct {
	Product

	// Synonyms holds the active synonym strings for this product.
	Synonyms []string `json:"synonyms"`

	// AvgSynonymPopularity is the mean popularity across the product's
	// active synonyms, zero when it has none.
	AvgSynonymPopularity float64 `json:"avg_synonym_popularity"`

	// SemanticTag is the semantic category detected from the product name,
	// empty when classification found nothing.
	SemanticTag string `json:"semantic_tag"`

	// SemanticEmoji is the glyph of the semantic category, or the generic
	// box glyph when unclassified.
	SemanticEmoji string `json:"semantic_emoji"`

	// SemanticConfidence is the classifier confidence for SemanticTag.
	SemanticConfidence float64 `json:"semantic_confidence"`
}
