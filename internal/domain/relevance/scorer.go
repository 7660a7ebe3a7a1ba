package relevance

import (
	"fmt"
	"time"

	"github.com/riskibarqy/match-relevance/internal/domain/match"
	"github.com/riskibarqy/match-relevance/internal/platform/timezone"
)

// stageBaseScore is a reserved extension point. Tournament-stage weighting
// (final vs group stage) can move this without changing the Score contract.
const stageBaseScore = 0

const maxSuitability = 100

// ScoreMatch computes the full relevance breakdown for one canonical match.
// It is pure given (match, request, now): no clocks, no I/O, no hidden
// state. Timing is evaluated in the channel's local timezone when the
// request carries one; an unknown identifier degrades to UTC and is
// surfaced as a reason.
func ScoreMatch(m match.Match, req Request, now time.Time) ScoredMatch {
	loc, degraded := timezone.ResolveOrUTC(req.ChannelTimezone)

	reasons := make([]string, 0, 6)
	if degraded {
		reasons = append(reasons, fmt.Sprintf("timezone %q unknown, timing computed in UTC", req.ChannelTimezone))
	}

	competition := CompetitionTier(m.Competition.Name)
	reasons = append(reasons, fmt.Sprintf("competition %q tier %d", m.Competition.Name, competition))

	teams := TeamPopularity(m.HomeTeam.Name) + TeamPopularity(m.AwayTeam.Name)
	if boost := favoriteBoost(m, req.Preferences); boost > 0 {
		teams += boost
		reasons = append(reasons, fmt.Sprintf("favorite team boost +%d", boost))
	}

	timing := timingScore(m, req.ContentType, now, loc)
	reasons = append(reasons, fmt.Sprintf("timing %d for %s", timing, req.ContentType))

	rivalryBonus, rivalryLabel := RivalryBonus(m.HomeTeam.Name, m.AwayTeam.Name)
	if rivalryBonus > 0 {
		reasons = append(reasons, fmt.Sprintf("derby: %s", rivalryLabel))
	}

	score := Score{
		Competition: competition,
		Teams:       teams,
		Timing:      timing,
		Stage:       stageBaseScore,
		Rivalry:     rivalryBonus,
	}
	score.Total = score.Competition + score.Teams + score.Timing + score.Stage + score.Rivalry

	return ScoredMatch{
		Match:       m,
		Score:       score,
		Reasons:     reasons,
		Suitability: suitabilityFor(m, score.Total),
	}
}

func favoriteBoost(m match.Match, prefs *Preferences) int {
	if prefs == nil || prefs.BoostScore <= 0 {
		return 0
	}

	for _, favorite := range prefs.FavoriteTeams {
		slug := slugName(favorite)
		if slug == "" {
			continue
		}
		if slug == slugName(m.HomeTeam.Name) || slug == slugName(m.AwayTeam.Name) {
			return prefs.BoostScore
		}
	}

	return 0
}

// timingScore is piecewise per content type. Day distances are calendar
// days in the channel's timezone, so "tomorrow" means the audience's
// tomorrow, not the server's.
func timingScore(m match.Match, contentType ContentType, now time.Time, loc *time.Location) int {
	daysUntil := localCalendarDays(now, m.KickoffAt, loc)
	hoursUntil := m.KickoffAt.Sub(now).Hours()

	switch contentType {
	case ContentLiveUpdate:
		return liveUpdateTiming(m, daysUntil, hoursUntil)
	case ContentBettingTip:
		return bettingTipTiming(m, daysUntil, hoursUntil)
	case ContentNews:
		return newsTiming(daysUntil)
	case ContentAnalysis:
		return analysisTiming(daysUntil)
	case ContentDailySummary:
		return dailySummaryTiming(m, daysUntil, hoursUntil)
	case ContentWeeklySummary:
		return weeklySummaryTiming(daysUntil)
	case ContentPoll:
		return pollTiming(m, daysUntil)
	default:
		return 0
	}
}

func liveUpdateTiming(m match.Match, daysUntil int, hoursUntil float64) int {
	if match.IsLiveStatus(m.Status) {
		return 10
	}

	distance := hoursUntil
	if distance < 0 {
		distance = -distance
	}

	score := 0
	switch {
	case distance <= 2:
		score = 6
	case distance <= 6:
		score = 4
	case distance <= 24:
		score = 2
	}
	if daysUntil == 0 {
		score += 2
	}

	return score
}

func bettingTipTiming(m match.Match, daysUntil int, hoursUntil float64) int {
	if match.IsFinishedStatus(m.Status) || hoursUntil <= 0 {
		return 0
	}

	switch {
	case daysUntil <= 0:
		return 10
	case daysUntil == 1:
		return 9
	case daysUntil <= 3:
		return 7
	case daysUntil <= 7:
		return 5
	case daysUntil <= 14:
		return 3
	default:
		return 0
	}
}

func newsTiming(daysUntil int) int {
	if daysUntil < 0 {
		// Recent result value decays over roughly a week.
		switch daysSince := -daysUntil; {
		case daysSince == 1:
			return 7
		case daysSince <= 3:
			return 5
		case daysSince <= 7:
			return 3
		default:
			return 0
		}
	}

	// Preview value for near-future fixtures.
	switch {
	case daysUntil <= 1:
		return 6
	case daysUntil <= 3:
		return 4
	case daysUntil <= 7:
		return 2
	default:
		return 0
	}
}

func analysisTiming(daysUntil int) int {
	if daysUntil < 0 {
		switch daysSince := -daysUntil; {
		case daysSince <= 1:
			return 7
		case daysSince <= 5:
			return 5
		default:
			return 0
		}
	}

	switch {
	case daysUntil <= 3:
		return 8
	case daysUntil <= 7:
		return 6
	case daysUntil <= 14:
		return 4
	default:
		return 0
	}
}

func dailySummaryTiming(m match.Match, daysUntil int, hoursUntil float64) int {
	if hoursUntil > 0 {
		return 0
	}

	switch -daysUntil {
	case 1:
		return 10
	case 0:
		if match.IsFinishedStatus(m.Status) {
			return 6
		}
		return 0
	case 2:
		return 4
	default:
		return 0
	}
}

func weeklySummaryTiming(daysUntil int) int {
	if daysUntil >= 0 {
		return 0
	}

	daysSince := -daysUntil
	if daysSince > 7 {
		return 0
	}

	// 1 day ago scores 10, decaying toward the edge of the week.
	score := 11 - daysSince
	if score > 10 {
		score = 10
	}
	return score
}

func pollTiming(m match.Match, daysUntil int) int {
	if daysUntil < 0 {
		// Reaction polls want a fresh result.
		switch daysSince := -daysUntil; {
		case daysSince <= 1:
			return 8
		case daysSince == 2:
			return 4
		default:
			return 0
		}
	}

	if match.IsLiveStatus(m.Status) {
		return 5
	}

	// Prediction polls favor imminent kickoffs.
	switch {
	case daysUntil <= 1:
		return 9
	case daysUntil <= 3:
		return 6
	case daysUntil <= 7:
		return 3
	default:
		return 0
	}
}

// suitabilityFor scales the total into a 0-100 estimate per content type.
// Two special cases: a finished match is a poor betting tip no matter how
// big it was, and live updates only make sense for matches actually live.
func suitabilityFor(m match.Match, total int) map[ContentType]int {
	base := clampSuitability(total * 2)

	out := make(map[ContentType]int, len(AllContentTypes))
	for _, ct := range AllContentTypes {
		switch ct {
		case ContentBettingTip:
			if match.IsFinishedStatus(m.Status) {
				out[ct] = clampSuitability(base / 4)
			} else {
				out[ct] = base
			}
		case ContentLiveUpdate:
			if match.IsLiveStatus(m.Status) {
				out[ct] = maxSuitability
			} else {
				out[ct] = clampSuitability(base - 30)
			}
		default:
			out[ct] = base
		}
	}

	return out
}

func clampSuitability(v int) int {
	if v < 0 {
		return 0
	}
	if v > maxSuitability {
		return maxSuitability
	}
	return v
}

// localCalendarDays returns the whole calendar-day distance from now to
// the instant, both evaluated in loc. Zero means the same local day,
// negative means the instant's local day already passed.
func localCalendarDays(now, instant time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}

	nowLocal := now.In(loc)
	instantLocal := instant.In(loc)

	nowDay := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, time.UTC)
	instantDay := time.Date(instantLocal.Year(), instantLocal.Month(), instantLocal.Day(), 0, 0, 0, 0, time.UTC)

	return int(instantDay.Sub(nowDay) / (24 * time.Hour))
}
