package usecase

import (
	"context"
	"time"

	"github.com/noon/backend/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMaxConcurrency = 4
	DefaultTermTimeout    = 30 * time.Second
)

// DispatcherConfig holds fan-out settings for provider queries
type DispatcherConfig struct {
	MaxConcurrency int
	TermTimeout    time.Duration
}

// TermResult is the outcome of one provider query
type TermResult struct {
	Term     string
	Products []domain.OFFProduct
	Err      error
}

// Dispatcher issues one provider query per term on a bounded pool
type Dispatcher struct {
	searcher       domain.ProductSearcher
	maxConcurrency int
	termTimeout    time.Duration
	logger         logrus.FieldLogger
}

// NewDispatcher creates a dispatcher; zero config values use the defaults
func NewDispatcher(searcher domain.ProductSearcher, cfg DispatcherConfig, logger logrus.FieldLogger) *Dispatcher {
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = DefaultMaxConcurrency
	}
	if cfg.TermTimeout <= 0 {
		cfg.TermTimeout = DefaultTermTimeout
	}

	return &Dispatcher{
		searcher:       searcher,
		maxConcurrency: cfg.MaxConcurrency,
		termTimeout:    cfg.TermTimeout,
		logger:         logger.WithField("component", "dispatcher"),
	}
}

// Dispatch queries every term concurrently and returns one TermResult per
// term, in the order of terms. A failing term is logged and carries Err; it
// never stops the others. When ctx is cancelled, terms not yet started are
// skipped with ctx.Err() and results already received are kept.
func (d *Dispatcher) Dispatch(ctx context.Context, terms []string) []TermResult {
	results := make([]TermResult, len(terms))

	// Tasks never return an error, so the group's first-error
	// cancellation never fires and every term runs to completion.
	var g errgroup.Group
	g.SetLimit(d.maxConcurrency)

	for i, term := range terms {
		results[i].Term = term
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		g.Go(func() error {
			results[i] = d.query(ctx, term)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (d *Dispatcher) query(ctx context.Context, term string) TermResult {
	log := d.logger.WithField("term", term)

	if err := ctx.Err(); err != nil {
		log.WithError(err).Debug("search cancelled before query started")
		return TermResult{Term: term, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, d.termTimeout)
	defer cancel()

	products, err := d.searcher.SearchProducts(ctx, term)
	if err != nil {
		log.WithError(err).Warn("provider query failed, term contributes no records")
		return TermResult{Term: term, Err: err}
	}

	log.WithField("products", len(products)).Debug("provider query succeeded")
	return TermResult{Term: term, Products: products}
}
