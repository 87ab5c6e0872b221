package speller

import (
	"context"
	"time"

	"github.com/noon/backend/internal/domain"
)

const cacheKeyPrefix = "speller:"

// CachedCorrector memoizes the output of another corrector
type CachedCorrector struct {
	next  domain.SpellCorrector
	cache domain.CorrectionCache
	ttl   time.Duration
}

// NewCachedCorrector wraps next with cache. Entries live for ttl.
func NewCachedCorrector(next domain.SpellCorrector, cache domain.CorrectionCache, ttl time.Duration) *CachedCorrector {
	return &CachedCorrector{next: next, cache: cache, ttl: ttl}
}

// Correct implements domain.SpellCorrector. Cache failures fall through to
// the wrapped corrector.
func (c *CachedCorrector) Correct(term string) string {
	ctx := context.Background()
	key := cacheKeyPrefix + term

	if corrected, err := c.cache.Get(ctx, key); err == nil {
		return corrected
	}

	corrected := c.next.Correct(term)
	_ = c.cache.Set(ctx, key, corrected, c.ttl)
	return corrected
}
