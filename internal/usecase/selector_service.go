package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/match-relevance/internal/domain/channel"
	"github.com/riskibarqy/match-relevance/internal/domain/match"
	"github.com/riskibarqy/match-relevance/internal/domain/relevance"
	"github.com/riskibarqy/match-relevance/internal/platform/logging"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultMaxResults     = 5
	defaultDetailFanout   = 4
	defaultDetailMatchCap = 10
	teamFormLimit         = 5
)

// TeamStats is recent and upcoming form for one side of a fixture.
type TeamStats struct {
	Team     match.Team
	Recent   []match.Match
	Upcoming []match.Match
}

// EnrichedMatch is a top match plus detail data. Any field may be nil when
// its detail branch failed; a partial record is still a valid record.
type EnrichedMatch struct {
	Match         match.Match
	Score         relevance.Score
	HeadToHead    []match.Match
	HomeTeamStats *TeamStats
	AwayTeamStats *TeamStats
}

// CompleteAnalysis bundles the best match with its full detail record.
type CompleteAnalysis struct {
	BestMatch *relevance.ScoredMatch
	Details   *EnrichedMatch
}

// SystemHealth is the registry view exposed to the health probe.
type SystemHealth struct {
	WorkingProviders int
	TotalProviders   int
	LastCheckedAt    time.Time
}

// MatchSelector composes the aggregator and the scorer: fetch candidates,
// score them, filter by the content type's thresholds, rank, enrich.
type MatchSelector struct {
	aggregator *AggregatorService
	registry   *ProviderRegistry
	channels   channel.Repository
	details    TeamDetailProvider
	headToHead HeadToHeadProvider
	thresholds relevance.Thresholds
	logger     *logging.Logger
	now        func() time.Time
	fanout     int
}

type SelectorOption func(*MatchSelector)

func WithSelectorClock(now func() time.Time) SelectorOption {
	return func(s *MatchSelector) {
		if now != nil {
			s.now = now
		}
	}
}

func WithSelectorThresholds(t relevance.Thresholds) SelectorOption {
	return func(s *MatchSelector) {
		s.thresholds = t
	}
}

func WithDetailFanout(n int) SelectorOption {
	return func(s *MatchSelector) {
		if n > 0 {
			s.fanout = n
		}
	}
}

func NewMatchSelector(
	aggregator *AggregatorService,
	registry *ProviderRegistry,
	channels channel.Repository,
	details TeamDetailProvider,
	headToHead HeadToHeadProvider,
	logger *logging.Logger,
	opts ...SelectorOption,
) *MatchSelector {
	if logger == nil {
		logger = logging.Default()
	}

	s := &MatchSelector{
		aggregator: aggregator,
		registry:   registry,
		channels:   channels,
		details:    details,
		headToHead: headToHead,
		thresholds: relevance.DefaultThresholds(),
		logger:     logger,
		now:        time.Now,
		fanout:     defaultDetailFanout,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// GetBestMatches scores and ranks every candidate for the request and
// returns up to MaxResults survivors, best first.
func (s *MatchSelector) GetBestMatches(ctx context.Context, req relevance.Request) ([]relevance.ScoredMatch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchSelector.GetBestMatches")
	defer span.End()

	if _, err := relevance.ParseContentType(string(req.ContentType)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := req.ReferenceTime
	if now.IsZero() {
		now = s.now()
	}
	now = now.UTC()

	candidates, err := s.aggregator.FetchCanonicalMatches(ctx, req.ContentType)
	if err != nil {
		return nil, fmt.Errorf("fetch canonical matches: %w", err)
	}

	scored := make([]relevance.ScoredMatch, 0, len(candidates))
	for _, m := range candidates {
		sm := relevance.ScoreMatch(m, req, now)
		if !s.passesThresholds(req.ContentType, sm, now) {
			continue
		}
		scored = append(scored, sm)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score.Total != scored[j].Score.Total {
			return scored[i].Score.Total > scored[j].Score.Total
		}
		if !scored[i].Match.KickoffAt.Equal(scored[j].Match.KickoffAt) {
			return scored[i].Match.KickoffAt.Before(scored[j].Match.KickoffAt)
		}
		return scored[i].Match.ID < scored[j].Match.ID
	})

	limit := req.MaxResults
	if limit <= 0 {
		limit = defaultMaxResults
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}

	return scored, nil
}

// passesThresholds is the selector-side filtering policy; the scorer
// itself stays pure and unfiltered.
func (s *MatchSelector) passesThresholds(contentType relevance.ContentType, sm relevance.ScoredMatch, now time.Time) bool {
	if sm.Score.Timing < s.thresholds.MinTimingFor(contentType) {
		return false
	}
	if !s.thresholds.WithinLookback(contentType, sm.Match.KickoffAt, now) {
		return false
	}
	if sm.Suitability[contentType] < s.thresholds.SuitabilityFloor {
		return false
	}

	return true
}

// GetBestMatchForContentType returns the single best candidate or nil when
// nothing qualifies. An empty day is a normal answer, never a placeholder.
func (s *MatchSelector) GetBestMatchForContentType(ctx context.Context, contentType relevance.ContentType, channelID string) (*match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchSelector.GetBestMatchForContentType")
	defer span.End()

	scored, err := s.GetBestMatches(ctx, relevance.Request{
		ContentType:     contentType,
		MaxResults:      1,
		ChannelTimezone: s.resolveTimezone(ctx, channelID),
	})
	if err != nil {
		return nil, err
	}
	if len(scored) == 0 {
		return nil, nil
	}

	best := scored[0].Match
	return &best, nil
}

// GetTopMatchesWithDetails enriches the top-N matches with head-to-head
// and per-team form. Every match and every team branch runs as its own
// concurrent operation; a failed branch leaves its field nil and the rest
// of the record stands.
func (s *MatchSelector) GetTopMatchesWithDetails(ctx context.Context, contentType relevance.ContentType, channelID string, n int) ([]EnrichedMatch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchSelector.GetTopMatchesWithDetails")
	defer span.End()

	if n <= 0 {
		n = defaultMaxResults
	}
	if n > defaultDetailMatchCap {
		n = defaultDetailMatchCap
	}

	scored, err := s.GetBestMatches(ctx, relevance.Request{
		ContentType:     contentType,
		MaxResults:      n,
		ChannelTimezone: s.resolveTimezone(ctx, channelID),
	})
	if err != nil {
		return nil, err
	}
	if len(scored) == 0 {
		return []EnrichedMatch{}, nil
	}

	enriched := make([]EnrichedMatch, len(scored))
	p := pool.New().WithMaxGoroutines(s.fanout)
	for i, sm := range scored {
		i, sm := i, sm
		p.Go(func() {
			enriched[i] = s.enrichMatch(ctx, sm)
		})
	}
	p.Wait()

	return enriched, nil
}

// enrichMatch fans out the three detail branches for one match and joins
// them. Cancellation is cooperative: branches finished before the
// deadline still contribute to the partial record.
func (s *MatchSelector) enrichMatch(ctx context.Context, sm relevance.ScoredMatch) EnrichedMatch {
	out := EnrichedMatch{Match: sm.Match, Score: sm.Score}

	var wg conc.WaitGroup

	if s.headToHead != nil {
		wg.Go(func() {
			h2h, err := s.headToHead.FetchHeadToHead(ctx, sm.Match.HomeTeam, sm.Match.AwayTeam)
			if err != nil {
				s.logger.WarnContext(ctx, "head-to-head fetch failed, returning partial record",
					"match_id", sm.Match.ID, "error", err)
				return
			}
			out.HeadToHead = h2h
		})
	}

	if s.details != nil {
		wg.Go(func() {
			out.HomeTeamStats = s.fetchTeamStats(ctx, sm.Match.HomeTeam)
		})
		wg.Go(func() {
			out.AwayTeamStats = s.fetchTeamStats(ctx, sm.Match.AwayTeam)
		})
	}

	wg.Wait()
	return out
}

func (s *MatchSelector) fetchTeamStats(ctx context.Context, team match.Team) *TeamStats {
	stats := &TeamStats{Team: team}

	recent, err := s.details.FetchRecentMatches(ctx, team, teamFormLimit)
	if err != nil {
		s.logger.WarnContext(ctx, "recent matches fetch failed",
			"team", team.Name, "error", err)
	} else {
		stats.Recent = recent
	}

	upcoming, err := s.details.FetchUpcomingMatches(ctx, team, teamFormLimit)
	if err != nil {
		s.logger.WarnContext(ctx, "upcoming matches fetch failed",
			"team", team.Name, "error", err)
	} else {
		stats.Upcoming = upcoming
	}

	if stats.Recent == nil && stats.Upcoming == nil {
		return nil
	}

	return stats
}

// GetCompleteAnalysis returns the best match with its full detail record,
// or an all-none result when nothing qualifies.
func (s *MatchSelector) GetCompleteAnalysis(ctx context.Context, contentType relevance.ContentType, channelID string) (CompleteAnalysis, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchSelector.GetCompleteAnalysis")
	defer span.End()

	scored, err := s.GetBestMatches(ctx, relevance.Request{
		ContentType:     contentType,
		MaxResults:      1,
		ChannelTimezone: s.resolveTimezone(ctx, channelID),
	})
	if err != nil {
		return CompleteAnalysis{}, err
	}
	if len(scored) == 0 {
		return CompleteAnalysis{}, nil
	}

	best := scored[0]
	details := s.enrichMatch(ctx, best)

	return CompleteAnalysis{
		BestMatch: &best,
		Details:   &details,
	}, nil
}

// GetSystemHealth summarizes the registry for the health probe.
func (s *MatchSelector) GetSystemHealth(ctx context.Context) SystemHealth {
	_, span := startUsecaseSpan(ctx, "usecase.MatchSelector.GetSystemHealth")
	defer span.End()

	snapshot := s.registry.Snapshot()

	out := SystemHealth{TotalProviders: len(snapshot)}
	for _, h := range snapshot {
		if h.IsWorking && !h.QuotaExhausted {
			out.WorkingProviders++
		}
		if h.LastCheckedAt.After(out.LastCheckedAt) {
			out.LastCheckedAt = h.LastCheckedAt
		}
	}

	return out
}

// resolveTimezone looks up the channel's configured timezone. Unknown
// channels and lookup failures fall back to UTC downstream.
func (s *MatchSelector) resolveTimezone(ctx context.Context, channelID string) string {
	if s.channels == nil || channelID == "" {
		return ""
	}

	tz, err := s.channels.GetTimezone(ctx, channelID)
	if err != nil {
		s.logger.WarnContext(ctx, "channel timezone lookup failed, using UTC",
			"channel_id", channelID, "error", err)
		return ""
	}

	return tz
}
