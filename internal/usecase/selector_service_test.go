package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/match-relevance/internal/domain/match"
	"github.com/riskibarqy/match-relevance/internal/domain/relevance"
	"github.com/riskibarqy/match-relevance/internal/platform/logging"
)

func newTestSelector(t *testing.T, fixtures []match.Match, details TeamDetailProvider, headToHead HeadToHeadProvider, opts ...SelectorOption) *MatchSelector {
	t.Helper()

	source := &stubFixtureProvider{name: "alpha", fn: func(context.Context, time.Time, time.Time) ([]match.Match, error) {
		return fixtures, nil
	}}
	registry := NewProviderRegistry(
		[]RegisteredProvider{{Credential: activeCredential("alpha", 1), Fetcher: source}},
		nil,
		logging.NewNop(),
		WithRegistryClock(func() time.Time { return aggregatorNow }),
	)
	aggregator := NewAggregatorService(registry, nil, logging.NewNop(),
		WithAggregatorClock(func() time.Time { return aggregatorNow }))

	channels := &stubChannelRepository{timezones: map[string]string{"ch-jakarta": "Asia/Jakarta"}}

	opts = append([]SelectorOption{
		WithSelectorClock(func() time.Time { return aggregatorNow }),
	}, opts...)

	return NewMatchSelector(aggregator, registry, channels, details, headToHead, logging.NewNop(), opts...)
}

func TestGetBestMatches_RanksElClasicoFirst(t *testing.T) {
	t.Parallel()

	clasico := fixtureMatch("clasico", realMadrid, barcelona, aggregatorNow.AddDate(0, 0, 2), match.StatusScheduled, "alpha")
	midTable := fixtureMatch("mid", getafe, match.Team{ID: "94", Name: "Villarreal"}, aggregatorNow.AddDate(0, 0, 2), match.StatusScheduled, "alpha")

	selector := newTestSelector(t, []match.Match{midTable, clasico}, nil, nil)

	got, err := selector.GetBestMatches(context.Background(), relevance.Request{
		ContentType: relevance.ContentBettingTip,
		MaxResults:  5,
	})
	if err != nil {
		t.Fatalf("best matches: unexpected error %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("result count: got=%d want=%d", len(got), 2)
	}
	if got[0].Match.ID != "clasico" {
		t.Fatalf("top match: got=%s want=clasico", got[0].Match.ID)
	}
	if got[0].Score.Rivalry == 0 {
		t.Fatalf("derby rivalry score: got=0 want>0")
	}
	if got[0].Suitability[relevance.ContentBettingTip] < 30 {
		t.Fatalf("clasico betting suitability: got=%d want>=30", got[0].Suitability[relevance.ContentBettingTip])
	}
}

func TestGetBestMatches_ExcludesStaleFinishedMatchForBettingTips(t *testing.T) {
	t.Parallel()

	stale := fixtureMatch("stale", realMadrid, barcelona, aggregatorNow.AddDate(0, 0, -10), match.StatusFinished, "alpha")
	upcoming := fixtureMatch("upcoming", realMadrid, getafe, aggregatorNow.AddDate(0, 0, 1), match.StatusScheduled, "alpha")

	selector := newTestSelector(t, []match.Match{stale, upcoming}, nil, nil)

	got, err := selector.GetBestMatches(context.Background(), relevance.Request{
		ContentType: relevance.ContentBettingTip,
		MaxResults:  5,
	})
	if err != nil {
		t.Fatalf("best matches: unexpected error %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("result count: got=%d want=%d", len(got), 1)
	}
	if got[0].Match.ID != "upcoming" {
		t.Fatalf("surviving match: got=%s want=upcoming", got[0].Match.ID)
	}
}

func TestGetBestMatches_RejectsUnknownContentType(t *testing.T) {
	t.Parallel()

	selector := newTestSelector(t, nil, nil, nil)

	_, err := selector.GetBestMatches(context.Background(), relevance.Request{ContentType: "horoscope"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown content type error: got=%v want=ErrInvalidInput", err)
	}
}

func TestGetBestMatches_HonorsMaxResults(t *testing.T) {
	t.Parallel()

	fixtures := make([]match.Match, 0, 4)
	for i, away := range []match.Team{barcelona, getafe, {ID: "94", Name: "Villarreal"}, {ID: "77", Name: "Athletic Club"}} {
		fixtures = append(fixtures, fixtureMatch(
			"m-"+away.ID,
			realMadrid,
			away,
			aggregatorNow.AddDate(0, 0, i+1),
			match.StatusScheduled,
			"alpha",
		))
	}

	selector := newTestSelector(t, fixtures, nil, nil)

	got, err := selector.GetBestMatches(context.Background(), relevance.Request{
		ContentType: relevance.ContentBettingTip,
		MaxResults:  2,
	})
	if err != nil {
		t.Fatalf("best matches: unexpected error %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("result count: got=%d want=%d", len(got), 2)
	}
	if got[0].Score.Total < got[1].Score.Total {
		t.Fatalf("ordering: got totals [%d %d], want descending", got[0].Score.Total, got[1].Score.Total)
	}
}

func TestGetBestMatchForContentType_NilWhenNothingQualifies(t *testing.T) {
	t.Parallel()

	selector := newTestSelector(t, nil, nil, nil)

	got, err := selector.GetBestMatchForContentType(context.Background(), relevance.ContentBettingTip, "")
	if err != nil {
		t.Fatalf("best match: unexpected error %v", err)
	}
	if got != nil {
		t.Fatalf("empty candidate set: got=%+v want=nil", got)
	}
}

func TestGetBestMatchForContentType_ReturnsTopCandidate(t *testing.T) {
	t.Parallel()

	clasico := fixtureMatch("clasico", realMadrid, barcelona, aggregatorNow.AddDate(0, 0, 2), match.StatusScheduled, "alpha")
	selector := newTestSelector(t, []match.Match{clasico}, nil, nil)

	got, err := selector.GetBestMatchForContentType(context.Background(), relevance.ContentBettingTip, "ch-jakarta")
	if err != nil {
		t.Fatalf("best match: unexpected error %v", err)
	}
	if got == nil || got.ID != "clasico" {
		t.Fatalf("best match: got=%+v want clasico", got)
	}
}

func TestGetTopMatchesWithDetails_PartialEnrichmentOnBranchFailure(t *testing.T) {
	t.Parallel()

	clasico := fixtureMatch("clasico", realMadrid, barcelona, aggregatorNow.AddDate(0, 0, 2), match.StatusScheduled, "alpha")

	recent := []match.Match{fixtureMatch("form-1", realMadrid, getafe, aggregatorNow.AddDate(0, 0, -3), match.StatusFinished, "alpha")}
	details := &stubDetailProvider{
		recent:      recent,
		upcomingErr: errors.New("upstream timeout"),
	}
	headToHead := &stubHeadToHeadProvider{err: errors.New("not available")}

	selector := newTestSelector(t, []match.Match{clasico}, details, headToHead)

	got, err := selector.GetTopMatchesWithDetails(context.Background(), relevance.ContentBettingTip, "", 3)
	if err != nil {
		t.Fatalf("top matches: unexpected error %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("enriched count: got=%d want=%d", len(got), 1)
	}

	enriched := got[0]
	if enriched.Match.ID != "clasico" {
		t.Fatalf("enriched match: got=%s want=clasico", enriched.Match.ID)
	}
	if enriched.HeadToHead != nil {
		t.Fatalf("failed head-to-head branch: got=%d meetings want=nil", len(enriched.HeadToHead))
	}
	if enriched.HomeTeamStats == nil {
		t.Fatalf("home team stats: got=nil want partial stats")
	}
	if len(enriched.HomeTeamStats.Recent) != 1 {
		t.Fatalf("recent form count: got=%d want=%d", len(enriched.HomeTeamStats.Recent), 1)
	}
	if enriched.HomeTeamStats.Upcoming != nil {
		t.Fatalf("failed upcoming branch: got=%d matches want=nil", len(enriched.HomeTeamStats.Upcoming))
	}
}

func TestGetTopMatchesWithDetails_AllBranchesSucceed(t *testing.T) {
	t.Parallel()

	clasico := fixtureMatch("clasico", realMadrid, barcelona, aggregatorNow.AddDate(0, 0, 2), match.StatusScheduled, "alpha")
	meetings := []match.Match{fixtureMatch("h2h-1", realMadrid, barcelona, aggregatorNow.AddDate(0, 0, -120), match.StatusFinished, "alpha")}

	details := &stubDetailProvider{
		recent:   []match.Match{fixtureMatch("form-1", realMadrid, getafe, aggregatorNow.AddDate(0, 0, -3), match.StatusFinished, "alpha")},
		upcoming: []match.Match{fixtureMatch("next-1", realMadrid, getafe, aggregatorNow.AddDate(0, 0, 9), match.StatusScheduled, "alpha")},
	}

	selector := newTestSelector(t, []match.Match{clasico}, details, &stubHeadToHeadProvider{meetings: meetings})

	got, err := selector.GetTopMatchesWithDetails(context.Background(), relevance.ContentBettingTip, "", 3)
	if err != nil {
		t.Fatalf("top matches: unexpected error %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("enriched count: got=%d want=%d", len(got), 1)
	}
	if len(got[0].HeadToHead) != 1 {
		t.Fatalf("head-to-head count: got=%d want=%d", len(got[0].HeadToHead), 1)
	}
	if got[0].AwayTeamStats == nil || len(got[0].AwayTeamStats.Upcoming) != 1 {
		t.Fatalf("away team stats: got=%+v want one upcoming match", got[0].AwayTeamStats)
	}
}

func TestGetCompleteAnalysis_EmptyWhenNothingQualifies(t *testing.T) {
	t.Parallel()

	selector := newTestSelector(t, nil, &stubDetailProvider{}, &stubHeadToHeadProvider{})

	got, err := selector.GetCompleteAnalysis(context.Background(), relevance.ContentAnalysis, "")
	if err != nil {
		t.Fatalf("complete analysis: unexpected error %v", err)
	}
	if got.BestMatch != nil || got.Details != nil {
		t.Fatalf("empty analysis: got=%+v want zero value", got)
	}
}

func TestGetCompleteAnalysis_BundlesBestMatchWithDetails(t *testing.T) {
	t.Parallel()

	clasico := fixtureMatch("clasico", realMadrid, barcelona, aggregatorNow.AddDate(0, 0, 2), match.StatusScheduled, "alpha")
	details := &stubDetailProvider{
		recent: []match.Match{fixtureMatch("form-1", realMadrid, getafe, aggregatorNow.AddDate(0, 0, -3), match.StatusFinished, "alpha")},
	}

	selector := newTestSelector(t, []match.Match{clasico}, details, &stubHeadToHeadProvider{})

	got, err := selector.GetCompleteAnalysis(context.Background(), relevance.ContentAnalysis, "")
	if err != nil {
		t.Fatalf("complete analysis: unexpected error %v", err)
	}
	if got.BestMatch == nil || got.BestMatch.Match.ID != "clasico" {
		t.Fatalf("best match: got=%+v want clasico", got.BestMatch)
	}
	if got.Details == nil || got.Details.HomeTeamStats == nil {
		t.Fatalf("details: got=%+v want enriched record", got.Details)
	}
}

func TestGetSystemHealth_CountsWorkingProviders(t *testing.T) {
	t.Parallel()

	registry := NewProviderRegistry(
		[]RegisteredProvider{
			{Credential: activeCredential("alpha", 1), Fetcher: &stubFixtureProvider{name: "alpha"}},
			{Credential: activeCredential("bravo", 2), Fetcher: &stubFixtureProvider{name: "bravo"}},
		},
		nil,
		logging.NewNop(),
	)
	registry.RecordOutcome(context.Background(), "bravo", false)

	aggregator := NewAggregatorService(registry, nil, logging.NewNop())
	selector := NewMatchSelector(aggregator, registry, nil, nil, nil, logging.NewNop())

	health := selector.GetSystemHealth(context.Background())
	if health.TotalProviders != 2 {
		t.Fatalf("total providers: got=%d want=%d", health.TotalProviders, 2)
	}
	if health.WorkingProviders != 1 {
		t.Fatalf("working providers: got=%d want=%d", health.WorkingProviders, 1)
	}
}
