package httpapi

import (
	"context"
	"time"

	"github.com/riskibarqy/match-relevance/internal/domain/match"
	"github.com/riskibarqy/match-relevance/internal/domain/provider"
	"github.com/riskibarqy/match-relevance/internal/domain/relevance"
	"github.com/riskibarqy/match-relevance/internal/usecase"
)

const timeLayout = time.RFC3339

type teamDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type matchDTO struct {
	ID          string  `json:"id"`
	HomeTeam    teamDTO `json:"homeTeam"`
	AwayTeam    teamDTO `json:"awayTeam"`
	Competition string  `json:"competition"`
	KickoffAt   string  `json:"kickoffAt"`
	Status      string  `json:"status"`
	HomeScore   *int    `json:"homeScore,omitempty"`
	AwayScore   *int    `json:"awayScore,omitempty"`
	Season      string  `json:"season,omitempty"`
	Provider    string  `json:"provider,omitempty"`
}

type scoreDTO struct {
	Competition int `json:"competition"`
	Teams       int `json:"teams"`
	Timing      int `json:"timing"`
	Stage       int `json:"stage"`
	Rivalry     int `json:"rivalry"`
	Total       int `json:"total"`
}

type scoredMatchDTO struct {
	Match       matchDTO       `json:"match"`
	Score       scoreDTO       `json:"score"`
	Reasons     []string       `json:"reasons,omitempty"`
	Suitability map[string]int `json:"suitability,omitempty"`
}

type teamStatsDTO struct {
	Team     teamDTO    `json:"team"`
	Recent   []matchDTO `json:"recent,omitempty"`
	Upcoming []matchDTO `json:"upcoming,omitempty"`
}

type enrichedMatchDTO struct {
	Match         matchDTO      `json:"match"`
	Score         scoreDTO      `json:"score"`
	HeadToHead    []matchDTO    `json:"headToHead,omitempty"`
	HomeTeamStats *teamStatsDTO `json:"homeTeamStats,omitempty"`
	AwayTeamStats *teamStatsDTO `json:"awayTeamStats,omitempty"`
}

type completeAnalysisDTO struct {
	BestMatch *scoredMatchDTO   `json:"bestMatch,omitempty"`
	Details   *enrichedMatchDTO `json:"details,omitempty"`
}

type systemHealthDTO struct {
	WorkingProviders int    `json:"workingProviders"`
	TotalProviders   int    `json:"totalProviders"`
	CheckedAt        string `json:"checkedAt"`
}

type providerHealthDTO struct {
	Name           string `json:"name"`
	IsWorking      bool   `json:"isWorking"`
	QuotaExhausted bool   `json:"quotaExhausted"`
	LastCheckedAt  string `json:"lastCheckedAt,omitempty"`
}

func matchToDTO(ctx context.Context, m match.Match) matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchToDTO")
	defer span.End()

	dto := matchDTO{
		ID:          m.ID,
		HomeTeam:    teamDTO{ID: m.HomeTeam.ID, Name: m.HomeTeam.Name},
		AwayTeam:    teamDTO{ID: m.AwayTeam.ID, Name: m.AwayTeam.Name},
		Competition: m.Competition.Name,
		KickoffAt:   m.KickoffAt.UTC().Format(timeLayout),
		Status:      m.Status,
		Season:      m.Season,
		Provider:    m.Provider,
	}
	if m.Score != nil {
		home := m.Score.Home
		away := m.Score.Away
		dto.HomeScore = &home
		dto.AwayScore = &away
	}

	return dto
}

func matchesToDTO(ctx context.Context, matches []match.Match) []matchDTO {
	if len(matches) == 0 {
		return nil
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(ctx, m))
	}

	return items
}

func scoredMatchToDTO(ctx context.Context, sm relevance.ScoredMatch) scoredMatchDTO {
	ctx, span := startSpan(ctx, "httpapi.scoredMatchToDTO")
	defer span.End()

	suitability := make(map[string]int, len(sm.Suitability))
	for contentType, value := range sm.Suitability {
		suitability[string(contentType)] = value
	}

	return scoredMatchDTO{
		Match: matchToDTO(ctx, sm.Match),
		Score: scoreDTO{
			Competition: sm.Score.Competition,
			Teams:       sm.Score.Teams,
			Timing:      sm.Score.Timing,
			Stage:       sm.Score.Stage,
			Rivalry:     sm.Score.Rivalry,
			Total:       sm.Score.Total,
		},
		Reasons:     sm.Reasons,
		Suitability: suitability,
	}
}

func teamStatsToDTO(ctx context.Context, stats *usecase.TeamStats) *teamStatsDTO {
	if stats == nil {
		return nil
	}

	return &teamStatsDTO{
		Team:     teamDTO{ID: stats.Team.ID, Name: stats.Team.Name},
		Recent:   matchesToDTO(ctx, stats.Recent),
		Upcoming: matchesToDTO(ctx, stats.Upcoming),
	}
}

func enrichedMatchToDTO(ctx context.Context, em usecase.EnrichedMatch) enrichedMatchDTO {
	ctx, span := startSpan(ctx, "httpapi.enrichedMatchToDTO")
	defer span.End()

	return enrichedMatchDTO{
		Match: matchToDTO(ctx, em.Match),
		Score: scoreDTO{
			Competition: em.Score.Competition,
			Teams:       em.Score.Teams,
			Timing:      em.Score.Timing,
			Stage:       em.Score.Stage,
			Rivalry:     em.Score.Rivalry,
			Total:       em.Score.Total,
		},
		HeadToHead:    matchesToDTO(ctx, em.HeadToHead),
		HomeTeamStats: teamStatsToDTO(ctx, em.HomeTeamStats),
		AwayTeamStats: teamStatsToDTO(ctx, em.AwayTeamStats),
	}
}

func completeAnalysisToDTO(ctx context.Context, analysis usecase.CompleteAnalysis) completeAnalysisDTO {
	ctx, span := startSpan(ctx, "httpapi.completeAnalysisToDTO")
	defer span.End()

	dto := completeAnalysisDTO{}
	if analysis.BestMatch != nil {
		best := scoredMatchToDTO(ctx, *analysis.BestMatch)
		dto.BestMatch = &best
	}
	if analysis.Details != nil {
		details := enrichedMatchToDTO(ctx, *analysis.Details)
		dto.Details = &details
	}

	return dto
}

func providerHealthToDTO(ctx context.Context, entry provider.Health) providerHealthDTO {
	dto := providerHealthDTO{
		Name:           entry.Name,
		IsWorking:      entry.IsWorking,
		QuotaExhausted: entry.QuotaExhausted,
	}
	if !entry.LastCheckedAt.IsZero() {
		dto.LastCheckedAt = entry.LastCheckedAt.UTC().Format(timeLayout)
	}

	return dto
}
