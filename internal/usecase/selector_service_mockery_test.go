package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/match-relevance/internal/domain/match"
	"github.com/riskibarqy/match-relevance/internal/domain/relevance"
	channelmock "github.com/riskibarqy/match-relevance/internal/mocks/domain/channel"
	providermock "github.com/riskibarqy/match-relevance/internal/mocks/domain/provider"
	"github.com/riskibarqy/match-relevance/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestMatchSelector_ResolvesChannelTimezoneUsingMockery(t *testing.T) {
	t.Parallel()

	upcoming := aggregatorNow.Add(48 * time.Hour)
	alpha := &stubFixtureProvider{name: "alpha", fn: func(_ context.Context, _, _ time.Time) ([]match.Match, error) {
		return []match.Match{fixtureMatch("clasico", realMadrid, barcelona, upcoming, match.StatusScheduled, "alpha")}, nil
	}}
	aggregator := newTestAggregator(t, []RegisteredProvider{
		{Credential: activeCredential("alpha", 1), Fetcher: alpha},
	}, nil)

	channels := channelmock.NewRepository(t)
	channels.
		On("GetTimezone", mock.Anything, "ch-777").
		Return("Asia/Jakarta", nil).
		Once()

	selector := NewMatchSelector(aggregator, nil, channels, nil, nil, logging.NewNop(),
		WithSelectorClock(func() time.Time { return aggregatorNow }))

	best, err := selector.GetBestMatchForContentType(context.Background(), relevance.ContentNews, "ch-777")
	if err != nil {
		t.Fatalf("get best match: %v", err)
	}
	if best == nil || best.ID != "clasico" {
		t.Fatalf("unexpected best match: %+v", best)
	}
}

func TestProviderRegistry_QuotaExhaustedUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	quota := providermock.NewQuotaTracker(t)
	quota.
		On("IsQuotaExhausted", mock.Anything, "alpha").
		Return(true, nil).
		Once()
	quota.
		On("RecordCall", mock.Anything, "alpha", 1).
		Return(nil).
		Once()

	registry := NewProviderRegistry([]RegisteredProvider{
		{Credential: activeCredential("alpha", 1), Fetcher: &stubFixtureProvider{name: "alpha"}},
	}, quota, logging.NewNop())

	if registry.Usable(ctx, "alpha") {
		t.Fatalf("expected provider to be unusable when quota is exhausted")
	}

	registry.RecordOutcome(ctx, "alpha", true)
}
