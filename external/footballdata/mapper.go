package footballdata

import (
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/match-relevance/internal/domain/match"
)

func mapMatches(items []matchItem) []match.Match {
	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		mapped, ok := mapMatch(item)
		if !ok {
			continue
		}
		out = append(out, mapped)
	}
	return out
}

func mapMatch(item matchItem) (match.Match, bool) {
	kickoff, err := time.Parse(time.RFC3339, strings.TrimSpace(item.UTCDate))
	if err != nil {
		return match.Match{}, false
	}

	home := mapTeam(item.HomeTeam)
	away := mapTeam(item.AwayTeam)
	if home.Name == "" || away.Name == "" {
		return match.Match{}, false
	}

	mapped := match.Match{
		ID:       strconv.FormatInt(item.ID, 10),
		HomeTeam: home,
		AwayTeam: away,
		Competition: match.Competition{
			ID:   strconv.FormatInt(item.Competition.ID, 10),
			Name: strings.TrimSpace(item.Competition.Name),
		},
		KickoffAt: kickoff.UTC(),
		Status:    mapStatus(item.Status),
		Season:    mapSeason(item.Season),
		Provider:  providerName,
	}
	if item.ID <= 0 {
		mapped.ID = match.SlugID(home.Name + " " + away.Name + " " + kickoff.UTC().Format(dateLayout))
	}
	if item.Score.FullTime.Home != nil && item.Score.FullTime.Away != nil {
		mapped.Score = &match.Score{
			Home: *item.Score.FullTime.Home,
			Away: *item.Score.FullTime.Away,
		}
	}

	return mapped, true
}

func mapTeam(item teamItem) match.Team {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		name = strings.TrimSpace(item.ShortName)
	}

	id := ""
	if item.ID > 0 {
		id = strconv.FormatInt(item.ID, 10)
	} else if name != "" {
		id = match.SlugID(name)
	}

	return match.Team{ID: id, Name: name}
}

// mapStatus folds the provider's scheduling states into canonical ones.
// TIMED means scheduled with a confirmed kickoff; PAUSED is half time.
func mapStatus(status string) string {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "SCHEDULED", "TIMED", "POSTPONED", "SUSPENDED", "CANCELLED", "AWARDED":
		return match.StatusScheduled
	case "IN_PLAY", "PAUSED", "LIVE":
		return match.StatusLive
	case "FINISHED":
		return match.StatusFinished
	default:
		// Unrecognized provider text never leaks into the canonical enum.
		return match.StatusScheduled
	}
}

// mapSeason renders the season as "2023/2024" from its bounding dates,
// matching how the other feeds label seasons.
func mapSeason(item seasonItem) string {
	start, startErr := time.Parse(dateLayout, strings.TrimSpace(item.StartDate))
	end, endErr := time.Parse(dateLayout, strings.TrimSpace(item.EndDate))
	if startErr != nil || endErr != nil {
		return ""
	}
	if start.Year() == end.Year() {
		return strconv.Itoa(start.Year())
	}
	return strconv.Itoa(start.Year()) + "/" + strconv.Itoa(end.Year())
}
