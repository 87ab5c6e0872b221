package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/noon/backend/internal/domain"
	"github.com/sirupsen/logrus"
)

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	MaxConcurrency int
	TermTimeout    time.Duration
	// MaxSynonyms caps the synonyms dispatched per search; 0 means no cap
	MaxSynonyms int
}

// SearchService turns a free-text food query into nutrition records.
// Flow: trim -> correct spelling -> expand synonyms -> query each term -> aggregate
type SearchService struct {
	corrector   domain.SpellCorrector
	expander    domain.SynonymExpander
	dispatcher  *Dispatcher
	maxSynonyms int
	logger      logrus.FieldLogger
}

// NewSearchService creates a new search service with dependencies
func NewSearchService(
	corrector domain.SpellCorrector,
	expander domain.SynonymExpander,
	searcher domain.ProductSearcher,
	config SearchServiceConfig,
	logger logrus.FieldLogger,
) *SearchService {
	dispatcher := NewDispatcher(searcher, DispatcherConfig{
		MaxConcurrency: config.MaxConcurrency,
		TermTimeout:    config.TermTimeout,
	}, logger)

	return &SearchService{
		corrector:   corrector,
		expander:    expander,
		dispatcher:  dispatcher,
		maxSynonyms: config.MaxSynonyms,
		logger:      logger.WithField("component", "search"),
	}
}

// Search never fails: blank input yields an empty result without touching
// any collaborator, and provider failures only drop the affected terms.
// If ctx is cancelled mid-search, the records of terms that completed before
// the cancellation are returned.
func (s *SearchService) Search(ctx context.Context, raw string) []domain.FoodItem {
	query := strings.TrimSpace(raw)
	if query == "" {
		return []domain.FoodItem{}
	}

	start := time.Now()

	corrected := strings.TrimSpace(s.corrector.Correct(query))
	if corrected == "" {
		corrected = query
	}

	synonyms := s.expander.Synonyms(corrected)
	terms := OrderTerms(BuildTermSet(corrected, synonyms), corrected, s.maxSynonyms)

	results := s.dispatcher.Dispatch(ctx, terms)
	items := Aggregate(results)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	s.logger.WithFields(logrus.Fields{
		"query":        raw,
		"corrected":    corrected,
		"terms":        len(terms),
		"failed_terms": failed,
		"items":        len(items),
		"took":         time.Since(start),
	}).Info("food search completed")

	return items
}
