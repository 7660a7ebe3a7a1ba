package sportsdb

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

func mapEvent(item eventItem) (match.Match, bool) {
	kickoff, ok := parseKickoff(item.StrTimestamp, item.DateEvent, item.StrTime)
	if !ok {
		return match.Match{}, false
	}

	homeName := strings.TrimSpace(item.StrHomeTeam)
	awayName := strings.TrimSpace(item.StrAwayTeam)
	if homeName == "" || awayName == "" {
		return match.Match{}, false
	}

	mapped := match.Match{
		ID:       strings.TrimSpace(item.IDEvent),
		HomeTeam: mapTeam(item.IDHomeTeam, homeName),
		AwayTeam: mapTeam(item.IDAwayTeam, awayName),
		Competition: match.Competition{
			ID:   strings.TrimSpace(item.IDLeague),
			Name: strings.TrimSpace(item.StrLeague),
		},
		KickoffAt: kickoff,
		Status:    mapStatus(item.StrStatus, item.IntHomeScore, item.IntAwayScore),
		Season:    strings.TrimSpace(item.StrSeason),
		Provider:  providerName,
	}
	if mapped.ID == "" {
		mapped.ID = match.SlugID(homeName + " " + awayName + " " + kickoff.Format(dateLayout))
	}
	if score, ok := mapScore(item.IntHomeScore, item.IntAwayScore); ok {
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

// parseKickoff prefers the combined timestamp and reconstructs from the
// split date and time fields when it is absent. All values are UTC.
func parseKickoff(timestamp, date, clock string) (time.Time, bool) {
	timestamp = strings.TrimSpace(timestamp)
	if timestamp != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
			parsed, err := time.Parse(layout, timestamp)
			if err == nil {
				return parsed.UTC(), true
			}
		}
	}

	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, false
	}

	clock = strings.TrimSpace(clock)
	if clock == "" {
		clock = "00:00:00"
	}

	parsed, err := time.Parse("2006-01-02 15:04:05", date+" "+clock)
	if err != nil {
		parsed, err = time.Parse(dateLayout, date)
		if err != nil {
			return time.Time{}, false
		}
	}
	return parsed.UTC(), true
}

// mapStatus resolves the free feed's loose status text. A populated score
// with no live marker means the match already finished.
func mapStatus(status, homeScore, awayScore string) string {
	value := strings.ToLower(strings.TrimSpace(status))

	switch {
	case value == "match finished" || value == "finished" || value == "ft" || value == "aet":
		return match.StatusFinished
	case value == "not started" || value == "ns" || value == "":
		if strings.TrimSpace(homeScore) != "" && strings.TrimSpace(awayScore) != "" {
			return match.StatusFinished
		}
		return match.StatusScheduled
	case value == "postponed" || value == "cancelled" || value == "canceled":
		return match.StatusScheduled
	case value == "1h" || value == "2h" || value == "ht" || value == "et" || strings.Contains(value, "half"):
		return match.StatusLive
	}

	if _, err := strconv.Atoi(strings.TrimSuffix(value, "'")); err == nil {
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
