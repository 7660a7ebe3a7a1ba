package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/match-relevance/internal/domain/match"
	"github.com/riskibarqy/match-relevance/internal/domain/provider"
)

type stubFixtureProvider struct {
	name string
	fn   func(ctx context.Context, from, to time.Time) ([]match.Match, error)

	mu    sync.Mutex
	calls int
}

func (s *stubFixtureProvider) Name() string { return s.name }

func (s *stubFixtureProvider) FetchFixtures(ctx context.Context, from, to time.Time) ([]match.Match, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.fn(ctx, from, to)
}

func (s *stubFixtureProvider) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubQuotaTracker struct {
	exhausted map[string]bool
	checkErr  error

	mu       sync.Mutex
	recorded map[string]int
}

func (s *stubQuotaTracker) IsQuotaExhausted(_ context.Context, name string) (bool, error) {
	if s.checkErr != nil {
		return false, s.checkErr
	}
	return s.exhausted[name], nil
}

func (s *stubQuotaTracker) RecordCall(_ context.Context, name string, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recorded == nil {
		s.recorded = make(map[string]int)
	}
	s.recorded[name] += n
	return nil
}

type stubDetailProvider struct {
	recent      []match.Match
	recentErr   error
	upcoming    []match.Match
	upcomingErr error
}

func (s *stubDetailProvider) FetchRecentMatches(_ context.Context, _ match.Team, _ int) ([]match.Match, error) {
	return s.recent, s.recentErr
}

func (s *stubDetailProvider) FetchUpcomingMatches(_ context.Context, _ match.Team, _ int) ([]match.Match, error) {
	return s.upcoming, s.upcomingErr
}

type stubHeadToHeadProvider struct {
	meetings []match.Match
	err      error
}

func (s *stubHeadToHeadProvider) FetchHeadToHead(_ context.Context, _, _ match.Team) ([]match.Match, error) {
	return s.meetings, s.err
}

type stubChannelRepository struct {
	timezones map[string]string
	err       error
}

func (s *stubChannelRepository) GetTimezone(_ context.Context, channelID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.timezones[channelID], nil
}

func activeCredential(name string, priority int) provider.Credential {
	return provider.Credential{
		Name:     name,
		APIKey:   "test-key",
		BaseURL:  "https://" + name + ".test",
		Priority: priority,
		IsActive: true,
	}
}

func fixtureMatch(id string, home, away match.Team, kickoff time.Time, status string, providerName string) match.Match {
	return match.Match{
		ID:          id,
		HomeTeam:    home,
		AwayTeam:    away,
		Competition: match.Competition{ID: "140", Name: "La Liga"},
		KickoffAt:   kickoff.UTC(),
		Status:      status,
		Season:      "2023/2024",
		Provider:    providerName,
	}
}
