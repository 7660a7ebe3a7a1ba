package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/match-relevance/internal/domain/match"
	"github.com/riskibarqy/match-relevance/internal/domain/relevance"
	"github.com/riskibarqy/match-relevance/internal/platform/logging"
)

const defaultAggregatorWorkers = 4

// AggregatorService fetches canonical matches for a content-type-specific
// date window, walking providers in priority order with per-pass failure
// tracking. It never fabricates data: the worst case is an empty slice.
type AggregatorService struct {
	registry   *ProviderRegistry
	fallback   FixtureProvider
	logger     *logging.Logger
	now        func() time.Time
	maxWorkers int
}

type AggregatorOption func(*AggregatorService)

func WithAggregatorClock(now func() time.Time) AggregatorOption {
	return func(s *AggregatorService) {
		if now != nil {
			s.now = now
		}
	}
}

func WithAggregatorWorkers(workers int) AggregatorOption {
	return func(s *AggregatorService) {
		if workers > 0 {
			s.maxWorkers = workers
		}
	}
}

// NewAggregatorService builds the aggregator. fallback is the designated
// low-rate-limit free provider used only when every registered provider
// failed for every day; it may be nil.
func NewAggregatorService(registry *ProviderRegistry, fallback FixtureProvider, logger *logging.Logger, opts ...AggregatorOption) *AggregatorService {
	if logger == nil {
		logger = logging.Default()
	}

	s := &AggregatorService{
		registry:   registry,
		fallback:   fallback,
		logger:     logger,
		now:        time.Now,
		maxWorkers: defaultAggregatorWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// aggregationPass scopes failure marks to one FetchCanonicalMatches call.
// A provider that errors is skipped for the rest of this pass only. It also
// remembers whether any provider answered at all, successfully or not, so
// the caller can tell an empty schedule from total provider failure.
type aggregationPass struct {
	mu        sync.Mutex
	failed    map[string]struct{}
	succeeded bool
}

func newAggregationPass() *aggregationPass {
	return &aggregationPass{failed: make(map[string]struct{})}
}

func (p *aggregationPass) markFailed(name string) {
	p.mu.Lock()
	p.failed[name] = struct{}{}
	p.mu.Unlock()
}

func (p *aggregationPass) hasFailed(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.failed[name]
	return ok
}

func (p *aggregationPass) markSucceeded() {
	p.mu.Lock()
	p.succeeded = true
	p.mu.Unlock()
}

func (p *aggregationPass) anySucceeded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.succeeded
}

// FetchCanonicalMatches returns deduplicated canonical matches for the
// content type's window around now. Days are fetched concurrently; within
// one day providers are tried strictly by priority and the first adapter
// returning at least one match owns that day, so ID schemes never mix
// inside a day.
func (s *AggregatorService) FetchCanonicalMatches(ctx context.Context, contentType relevance.ContentType) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregatorService.FetchCanonicalMatches")
	defer span.End()

	window := relevance.WindowFor(contentType, s.now().UTC())
	days := window.Days()
	if len(days) == 0 {
		return []match.Match{}, nil
	}

	pass := newAggregationPass()
	results := make(chan []match.Match, len(days))

	workerCount := s.maxWorkers
	if workerCount > len(days) {
		workerCount = len(days)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create aggregation worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, day := range days {
		day := day
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			results <- s.fetchDay(ctx, pass, day)
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit day fetch to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	merged := make([]match.Match, 0, 64)
	for dayMatches := range results {
		merged = append(merged, dayMatches...)
	}

	// The curated fallback is reserved for total provider failure. Empty
	// days from healthy providers are a real empty schedule.
	if len(merged) == 0 && !pass.anySucceeded() && s.fallback != nil {
		merged = s.fetchFallback(ctx, window)
	}

	return dedupeMatches(merged), nil
}

// fetchDay tries providers in priority order for one day. The first
// non-empty response wins; an error marks the provider failed for the
// remainder of this pass and moves on.
func (s *AggregatorService) fetchDay(ctx context.Context, pass *aggregationPass, day time.Time) []match.Match {
	for _, rp := range s.registry.Providers() {
		name := rp.Credential.Name
		if pass.hasFailed(name) {
			continue
		}
		if !s.registry.Usable(ctx, name) {
			continue
		}

		matches, err := rp.Fetcher.FetchFixtures(ctx, day, day)
		if err != nil {
			s.logger.WarnContext(ctx, "provider fetch failed, falling through",
				"provider", name,
				"day", day.Format("2006-01-02"),
				"error", err,
			)
			pass.markFailed(name)
			s.registry.RecordOutcome(ctx, name, false)
			continue
		}

		pass.markSucceeded()
		s.registry.RecordOutcome(ctx, name, true)
		if len(matches) == 0 {
			continue
		}

		return matches
	}

	return nil
}

func (s *AggregatorService) fetchFallback(ctx context.Context, window relevance.Window) []match.Match {
	matches, err := s.fallback.FetchFixtures(ctx, window.From, window.To)
	if err != nil {
		// Total failure surfaces as an empty result, never as invented data.
		s.logger.WarnContext(ctx, "fallback provider failed, returning empty result",
			"provider", s.fallback.Name(),
			"error", err,
		)
		return nil
	}

	return matches
}

func dedupeMatches(matches []match.Match) []match.Match {
	seen := make(map[string]struct{}, len(matches))
	out := make([]match.Match, 0, len(matches))

	for _, m := range matches {
		key := m.DedupKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].ID < out[j].ID
	})

	return out
}
