package entities

import (
	"time"
)

// SynonymSource identifies where a synonym record came from.
type SynonymSource string

const (
	// SynonymSourceAdmin marks synonyms entered through the admin UI.
	SynonymSourceAdmin SynonymSource = "admin"

	// SynonymSourceUserFeedback marks synonyms derived from user feedback.
	SynonymSourceUserFeedback SynonymSource = "user_feedback"

	// SynonymSourceAutoLearning marks synonyms produced by the offline
	// batch generator.
	SynonymSourceAutoLearning SynonymSource = "auto_learning"
)

// Valid reports whether s is one of the known sources.
func (s SynonymSource) Valid() bool {
	switch s {
	case SynonymSourceAdmin, SynonymSourceUserFeedback, SynonymSourceAutoLearning:
		return true
	}
	return false
}

// Synonym is an alternate search term mapped to a product. Deactivation is a
// soft delete: the row is kept so popularity and precision history survive.
type Synonym struct {
	ID         int           `json:"id" db:"id"`
	ProductID  int           `json:"product_id" db:"product_id"`
	Text       string        `json:"synonym" db:"synonym"`
	Source     SynonymSource `json:"source" db:"source"`
	Popularity int           `json:"popularity" db:"popularity"`
	Precision  float64       `json:"precision" db:"precision_score"`
	Active     bool          `json:"active" db:"active"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" db:"updated_at"`
}
