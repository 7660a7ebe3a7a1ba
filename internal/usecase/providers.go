package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/match-relevance/internal/domain/match"
)

// FixtureProvider is the one contract every upstream adapter implements.
// From and to are inclusive UTC dates; implementations own URL building,
// auth, payload decoding and normalization into canonical matches. Zero
// results is a valid response, not an error.
type FixtureProvider interface {
	Name() string
	FetchFixtures(ctx context.Context, from, to time.Time) ([]match.Match, error)
}

// TeamDetailProvider fetches per-team form data for detail enrichment.
// Implementations should use the canonical team ID when it is
// provider-native and fall back to a name search otherwise.
type TeamDetailProvider interface {
	FetchRecentMatches(ctx context.Context, team match.Team, limit int) ([]match.Match, error)
	FetchUpcomingMatches(ctx context.Context, team match.Team, limit int) ([]match.Match, error)
}

// HeadToHeadProvider fetches prior meetings between two teams.
type HeadToHeadProvider interface {
	FetchHeadToHead(ctx context.Context, home, away match.Team) ([]match.Match, error)
}
