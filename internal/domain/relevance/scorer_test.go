package relevance

import (
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/match-relevance/internal/domain/match"
)

var scorerNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func clasicoFixture(status string, kickoff time.Time) match.Match {
	return match.Match{
		ID:          "af-1001",
		HomeTeam:    match.Team{ID: "real-madrid", Name: "Real Madrid"},
		AwayTeam:    match.Team{ID: "barcelona", Name: "Barcelona"},
		Competition: match.Competition{ID: "la-liga", Name: "La Liga"},
		KickoffAt:   kickoff,
		Status:      status,
		Season:      "2023/2024",
	}
}

func TestScoreMatch_ClasicoBettingTip(t *testing.T) {
	t.Parallel()

	m := clasicoFixture(match.StatusScheduled, time.Date(2024, 3, 11, 20, 0, 0, 0, time.UTC))
	req := Request{ContentType: ContentBettingTip}

	scored := ScoreMatch(m, req, scorerNow)

	if scored.Score.Competition != 8 {
		t.Fatalf("unexpected competition tier: got=%d want=8", scored.Score.Competition)
	}
	if scored.Score.Timing <= 0 {
		t.Fatalf("expected positive timing for next-day kickoff, got %d", scored.Score.Timing)
	}
	if scored.Score.Rivalry <= 0 {
		t.Fatalf("expected rivalry bonus for El Clasico, got %d", scored.Score.Rivalry)
	}
	if scored.Score.Total != scored.Score.Competition+scored.Score.Teams+scored.Score.Timing+scored.Score.Stage+scored.Score.Rivalry {
		t.Fatal("total must be the plain sum of the terms")
	}
	if scored.Suitability[ContentBettingTip] < 30 {
		t.Fatalf("expected clasico to clear the suitability floor, got %d", scored.Suitability[ContentBettingTip])
	}
}

func TestScoreMatch_BettingTipZeroForPastMatch(t *testing.T) {
	t.Parallel()

	m := clasicoFixture(match.StatusFinished, scorerNow.AddDate(0, 0, -10))
	scored := ScoreMatch(m, Request{ContentType: ContentBettingTip}, scorerNow)

	if scored.Score.Timing != 0 {
		t.Fatalf("past match must score zero betting-tip timing, got %d", scored.Score.Timing)
	}
}

func TestScoreMatch_FinishedBettingTipSuitabilityLower(t *testing.T) {
	t.Parallel()

	kickoffFuture := time.Date(2024, 3, 11, 20, 0, 0, 0, time.UTC)

	scheduled := ScoreMatch(clasicoFixture(match.StatusScheduled, kickoffFuture), Request{ContentType: ContentBettingTip}, scorerNow)
	finished := ScoreMatch(clasicoFixture(match.StatusFinished, kickoffFuture), Request{ContentType: ContentBettingTip}, scorerNow)

	if finished.Suitability[ContentBettingTip] >= scheduled.Suitability[ContentBettingTip] {
		t.Fatalf("finished match suitability must be strictly lower: finished=%d scheduled=%d",
			finished.Suitability[ContentBettingTip], scheduled.Suitability[ContentBettingTip])
	}
}

func TestScoreMatch_LiveUpdateSuitability(t *testing.T) {
	t.Parallel()

	live := ScoreMatch(clasicoFixture(match.StatusInPlay, scorerNow.Add(-30*time.Minute)), Request{ContentType: ContentLiveUpdate}, scorerNow)
	if live.Suitability[ContentLiveUpdate] != 100 {
		t.Fatalf("live match suitability must be 100, got %d", live.Suitability[ContentLiveUpdate])
	}
	if live.Score.Timing != 10 {
		t.Fatalf("live match timing must be maximal, got %d", live.Score.Timing)
	}

	scheduled := ScoreMatch(clasicoFixture(match.StatusScheduled, scorerNow.AddDate(0, 0, 5)), Request{ContentType: ContentLiveUpdate}, scorerNow)
	if scheduled.Suitability[ContentLiveUpdate] >= 100 {
		t.Fatal("non-live match must carry a live-update penalty")
	}
}

func TestScoreMatch_ChannelTimezoneChangesCalendarDay(t *testing.T) {
	t.Parallel()

	// 23:30 UTC on the 10th is already the 11th in Jakarta.
	now := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)
	kickoff := time.Date(2024, 3, 11, 16, 0, 0, 0, time.UTC)
	m := clasicoFixture(match.StatusScheduled, kickoff)

	utcScore := ScoreMatch(m, Request{ContentType: ContentBettingTip}, now)
	jakartaScore := ScoreMatch(m, Request{ContentType: ContentBettingTip, ChannelTimezone: "Asia/Jakarta"}, now)

	if utcScore.Score.Timing != 9 {
		t.Fatalf("UTC sees a next-day kickoff: got timing %d want 9", utcScore.Score.Timing)
	}
	if jakartaScore.Score.Timing != 10 {
		t.Fatalf("Jakarta sees a same-day kickoff: got timing %d want 10", jakartaScore.Score.Timing)
	}
}

func TestScoreMatch_InvalidTimezoneDegradesToUTC(t *testing.T) {
	t.Parallel()

	m := clasicoFixture(match.StatusScheduled, time.Date(2024, 3, 11, 20, 0, 0, 0, time.UTC))
	req := Request{ContentType: ContentBettingTip, ChannelTimezone: "Mars/Olympus"}

	scored := ScoreMatch(m, req, scorerNow)

	if scored.Score.Timing != 9 {
		t.Fatalf("expected UTC fallback timing 9, got %d", scored.Score.Timing)
	}

	found := false
	for _, reason := range scored.Reasons {
		if strings.Contains(reason, "unknown") {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected degraded-timezone reason, got %v", scored.Reasons)
	}
}

func TestScoreMatch_FavoriteTeamBoost(t *testing.T) {
	t.Parallel()

	m := clasicoFixture(match.StatusScheduled, time.Date(2024, 3, 11, 20, 0, 0, 0, time.UTC))
	prefs := &Preferences{FavoriteTeams: []string{"Real Madrid"}, BoostScore: 5}

	plain := ScoreMatch(m, Request{ContentType: ContentNews}, scorerNow)
	boosted := ScoreMatch(m, Request{ContentType: ContentNews, Preferences: prefs}, scorerNow)

	if boosted.Score.Teams != plain.Score.Teams+5 {
		t.Fatalf("expected +5 boost: plain=%d boosted=%d", plain.Score.Teams, boosted.Score.Teams)
	}
}

func TestTimingCurves_DailyAndWeeklySummary(t *testing.T) {
	t.Parallel()

	yesterday := clasicoFixture(match.StatusFinished, scorerNow.AddDate(0, 0, -1))
	future := clasicoFixture(match.StatusScheduled, scorerNow.AddDate(0, 0, 2))
	lastWeekEdge := clasicoFixture(match.StatusFinished, scorerNow.AddDate(0, 0, -7))
	tooOld := clasicoFixture(match.StatusFinished, scorerNow.AddDate(0, 0, -8))

	if got := ScoreMatch(yesterday, Request{ContentType: ContentDailySummary}, scorerNow).Score.Timing; got != 10 {
		t.Fatalf("yesterday daily-summary timing: got=%d want=10", got)
	}
	if got := ScoreMatch(future, Request{ContentType: ContentDailySummary}, scorerNow).Score.Timing; got != 0 {
		t.Fatalf("future daily-summary timing must be zero, got %d", got)
	}
	if got := ScoreMatch(lastWeekEdge, Request{ContentType: ContentWeeklySummary}, scorerNow).Score.Timing; got <= 0 {
		t.Fatalf("7-day-old match must still count for weekly summary, got %d", got)
	}
	if got := ScoreMatch(tooOld, Request{ContentType: ContentWeeklySummary}, scorerNow).Score.Timing; got != 0 {
		t.Fatalf("8-day-old match must score zero weekly-summary timing, got %d", got)
	}
	if got := ScoreMatch(future, Request{ContentType: ContentWeeklySummary}, scorerNow).Score.Timing; got != 0 {
		t.Fatalf("future weekly-summary timing must be zero, got %d", got)
	}
}

func TestTimingCurves_PollRewardsBothDirections(t *testing.T) {
	t.Parallel()

	recent := clasicoFixture(match.StatusFinished, scorerNow.Add(-20*time.Hour))
	imminent := clasicoFixture(match.StatusScheduled, scorerNow.Add(26*time.Hour))
	distant := clasicoFixture(match.StatusScheduled, scorerNow.AddDate(0, 0, 12))

	if got := ScoreMatch(recent, Request{ContentType: ContentPoll}, scorerNow).Score.Timing; got <= 0 {
		t.Fatalf("reaction poll timing must be positive for a fresh result, got %d", got)
	}
	if got := ScoreMatch(imminent, Request{ContentType: ContentPoll}, scorerNow).Score.Timing; got <= 0 {
		t.Fatalf("prediction poll timing must be positive for an imminent kickoff, got %d", got)
	}
	if got := ScoreMatch(distant, Request{ContentType: ContentPoll}, scorerNow).Score.Timing; got != 0 {
		t.Fatalf("distant fixture poll timing must be zero, got %d", got)
	}
}
