package domain

import (
	"context"
	"time"
)

// ProductSearcher queries an external nutrition database for one search term
type ProductSearcher interface {
	SearchProducts(ctx context.Context, term string) ([]OFFProduct, error)
}

// SpellCorrector returns a best-guess correctly spelled version of a term.
// It never fails; a term it cannot improve comes back unchanged.
type SpellCorrector interface {
	Correct(term string) string
}

// SynonymExpander returns related terms from a lexical knowledge base.
// Unknown terms yield an empty slice.
type SynonymExpander interface {
	Synonyms(term string) []string
}

// CorrectionCache memoizes spelling corrections
type CorrectionCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
