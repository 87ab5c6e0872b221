package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/noon/backend/internal/domain"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDispatcher_Defaults(t *testing.T) {
	logger, _ := test.NewNullLogger()

	d := NewDispatcher(NewMockProductSearcher(), DispatcherConfig{}, logger)

	assert.Equal(t, DefaultMaxConcurrency, d.maxConcurrency)
	assert.Equal(t, DefaultTermTimeout, d.termTimeout)
}

func TestDispatch_ResultsFollowTermOrder(t *testing.T) {
	logger, _ := test.NewNullLogger()
	searcher := NewMockProductSearcher()
	searcher.responses["a"] = []domain.OFFProduct{product("A", 1)}
	searcher.errs["b"] = domain.ErrProviderFailure
	searcher.responses["c"] = []domain.OFFProduct{product("C1", 3), product("C2", 3)}

	d := NewDispatcher(searcher, DispatcherConfig{MaxConcurrency: 3}, logger)
	results := d.Dispatch(context.Background(), []string{"a", "b", "c"})

	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].Term)
	assert.NoError(t, results[0].Err)
	assert.Len(t, results[0].Products, 1)
	assert.Equal(t, "b", results[1].Term)
	assert.ErrorIs(t, results[1].Err, domain.ErrProviderFailure)
	assert.Empty(t, results[1].Products)
	assert.Equal(t, "c", results[2].Term)
	assert.Len(t, results[2].Products, 2)
}

func TestDispatch_Empty(t *testing.T) {
	logger, _ := test.NewNullLogger()
	d := NewDispatcher(NewMockProductSearcher(), DispatcherConfig{}, logger)

	assert.Empty(t, d.Dispatch(context.Background(), nil))
}

// gatedSearcher records how many queries run at once
type gatedSearcher struct {
	inFlight int32
	maxSeen  int32
	release  chan struct{}
}

func (g *gatedSearcher) SearchProducts(ctx context.Context, term string) ([]domain.OFFProduct, error) {
	n := atomic.AddInt32(&g.inFlight, 1)
	defer atomic.AddInt32(&g.inFlight, -1)
	for {
		seen := atomic.LoadInt32(&g.maxSeen)
		if n <= seen || atomic.CompareAndSwapInt32(&g.maxSeen, seen, n) {
			break
		}
	}

	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return nil, nil
}

func TestDispatch_BoundedConcurrency(t *testing.T) {
	logger, _ := test.NewNullLogger()
	searcher := &gatedSearcher{release: make(chan struct{})}
	d := NewDispatcher(searcher, DispatcherConfig{MaxConcurrency: 2}, logger)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		d.Dispatch(context.Background(), []string{"a", "b", "c", "d", "e"})
	}()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&searcher.inFlight) == 2
	}, time.Second, 5*time.Millisecond)
	close(searcher.release)
	wg.Wait()

	assert.Equal(t, int32(2), atomic.LoadInt32(&searcher.maxSeen))
}

func TestDispatch_PerTermTimeout(t *testing.T) {
	logger, _ := test.NewNullLogger()
	searcher := NewMockProductSearcher()
	searcher.blocking["slow"] = true
	searcher.responses["fast"] = []domain.OFFProduct{product("Fast", 1)}

	d := NewDispatcher(searcher, DispatcherConfig{TermTimeout: 20 * time.Millisecond}, logger)
	results := d.Dispatch(context.Background(), []string{"slow", "fast"})

	assert.True(t, errors.Is(results[0].Err, context.DeadlineExceeded))
	assert.NoError(t, results[1].Err)
	assert.Len(t, results[1].Products, 1)
}

func TestDispatch_CancelledContextSkipsAllTerms(t *testing.T) {
	logger, _ := test.NewNullLogger()
	searcher := NewMockProductSearcher()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDispatcher(searcher, DispatcherConfig{}, logger)
	results := d.Dispatch(ctx, []string{"a", "b"})

	require.Len(t, results, 2)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
	assert.Empty(t, searcher.Calls())
}
