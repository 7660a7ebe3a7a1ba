package apifootball

import (
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/match-relevance/internal/domain/match"
)

func mapEvents(events []eventItem) []match.Match {
	out := make([]match.Match, 0, len(events))
	for _, item := range events {
		mapped, ok := mapEvent(item)
		if !ok {
			continue
		}
		out = append(out, mapped)
	}
	return out
}

// mapEvent normalizes one provider event. Rows without a parseable
// kickoff or without both team names are dropped rather than guessed at.
func mapEvent(item eventItem) (match.Match, bool) {
	kickoff, ok := parseKickoff(item.MatchDate, item.MatchTime)
	if !ok {
		return match.Match{}, false
	}

	homeName := strings.TrimSpace(item.HomeTeamName)
	awayName := strings.TrimSpace(item.AwayTeamName)
	if homeName == "" || awayName == "" {
		return match.Match{}, false
	}

	mapped := match.Match{
		ID:       strings.TrimSpace(item.MatchID),
		HomeTeam: mapTeam(item.HomeTeamID, homeName),
		AwayTeam: mapTeam(item.AwayTeamID, awayName),
		Competition: match.Competition{
			ID:   strings.TrimSpace(item.LeagueID),
			Name: strings.TrimSpace(item.LeagueName),
		},
		KickoffAt: kickoff,
		Status:    mapStatus(item.MatchStatus, item.MatchLive),
		Season:    strings.TrimSpace(item.LeagueSeason),
		Provider:  providerName,
	}
	if mapped.ID == "" {
		mapped.ID = match.SlugID(homeName + " " + awayName + " " + kickoff.Format(dateLayout))
	}
	if score, ok := mapScore(item.HomeTeamScore, item.AwayTeamScore); ok {
		mapped.Score = score
	}

	return mapped, true
}

func mapTeam(id, name string) match.Team {
	id = strings.TrimSpace(id)
	if id == "" {
		id = match.SlugID(name)
	}
	return match.Team{ID: id, Name: name}
}

// parseKickoff joins the provider's split date and time fields. Times are
// UTC on this feed.
func parseKickoff(date, clock string) (time.Time, bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, false
	}

	clock = strings.TrimSpace(clock)
	if clock == "" {
		clock = "00:00"
	}

	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
		parsed, err := time.Parse(layout, date+" "+clock)
		if err == nil {
			return parsed.UTC(), true
		}
	}

	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, false
	}
	return parsed.UTC(), true
}

// mapStatus folds the provider's mixed status field into canonical
// statuses. A bare minute number means the match is in play.
func mapStatus(status, live string) string {
	status = strings.TrimSpace(status)

	switch strings.ToLower(status) {
	case "", "not started", "postponed", "cancelled", "canceled", "suspended":
		return match.StatusScheduled
	case "finished", "ft", "after et", "after pen", "aet", "pen":
		return match.StatusFinished
	case "half time", "ht":
		return match.StatusLive
	}

	if _, err := strconv.Atoi(strings.TrimSuffix(status, "'")); err == nil {
		return match.StatusLive
	}
	if strings.TrimSpace(live) == "1" {
		return match.StatusLive
	}

	// Unrecognized provider text never leaks into the canonical enum.
	return match.StatusScheduled
}

func mapScore(home, away string) (*match.Score, bool) {
	homeGoals, homeOK := parseGoals(home)
	awayGoals, awayOK := parseGoals(away)
	if !homeOK || !awayOK {
		return nil, false
	}
	return &match.Score{Home: homeGoals, Away: awayGoals}, true
}

func parseGoals(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}
