package relevance

import (
	"strings"

	"github.com/riskibarqy/match-relevance/internal/domain/match"
)

const (
	defaultCompetitionTier = 2
	defaultTeamPopularity  = 1
)

// competitionTiers maps competition names to importance. Lookup is exact
// first, then case-insensitive substring. Product-tuned, not load-bearing.
var competitionTiers = map[string]int{
	"FIFA World Cup":                10,
	"FIFA Club World Cup":           10,
	"UEFA Champions League":         9,
	"UEFA European Championship":    9,
	"Copa America":                  9,
	"Premier League":                9,
	"La Liga":                       8,
	"Primera Division":              8,
	"Serie A":                       8,
	"Bundesliga":                    8,
	"UEFA Europa League":            8,
	"Ligue 1":                       7,
	"Copa Libertadores":             7,
	"UEFA Europa Conference League": 7,
	"Eredivisie":                    6,
	"Primeira Liga":                 6,
	"Championship":                  6,
	"Copa del Rey":                  5,
	"FA Cup":                        5,
	"Coppa Italia":                  5,
	"DFB-Pokal":                     5,
	"Major League Soccer":           4,
	"Liga MX":                       4,
	"Saudi Pro League":              4,
	"BRI Liga 1":                    3,
	"A-League":                      3,
}

// teamPopularity maps slug-normalized team names to audience draw.
var teamPopularity = map[string]int{
	"real-madrid":         10,
	"barcelona":           10,
	"manchester-united":   9,
	"liverpool":           9,
	"manchester-city":     9,
	"bayern-munich":       9,
	"paris-saint-germain": 8,
	"juventus":            8,
	"arsenal":             8,
	"chelsea":             8,
	"atletico-madrid":     7,
	"ac-milan":            7,
	"inter-milan":         7,
	"inter":               7,
	"napoli":              7,
	"borussia-dortmund":   7,
	"tottenham-hotspur":   7,
	"bayer-leverkusen":    6,
	"ajax":                6,
	"benfica":             6,
	"porto":               6,
	"as-roma":             6,
	"newcastle-united":    6,
	"sevilla":             5,
	"lazio":               5,
	"marseille":           5,
	"celtic":              5,
	"rangers":             5,
	"boca-juniors":        6,
	"river-plate":         6,
	"galatasaray":         5,
	"fenerbahce":          5,
	"al-nassr":            5,
	"al-hilal":            4,
	"persija-jakarta":     3,
	"persib-bandung":      3,
}

// rivalry is one named derby pairing. Aliases are slug fragments; a team
// matches a side when its slug contains any alias of that side.
type rivalry struct {
	Label string
	SideA []string
	SideB []string
	Bonus int
}

var rivalries = []rivalry{
	{Label: "El Clasico", SideA: []string{"real-madrid"}, SideB: []string{"barcelona"}, Bonus: 10},
	{Label: "Manchester Derby", SideA: []string{"manchester-united"}, SideB: []string{"manchester-city"}, Bonus: 8},
	{Label: "North West Derby", SideA: []string{"manchester-united"}, SideB: []string{"liverpool"}, Bonus: 8},
	{Label: "North London Derby", SideA: []string{"arsenal"}, SideB: []string{"tottenham"}, Bonus: 7},
	{Label: "Derby della Madonnina", SideA: []string{"ac-milan", "milan"}, SideB: []string{"inter"}, Bonus: 7},
	{Label: "Derby della Capitale", SideA: []string{"roma"}, SideB: []string{"lazio"}, Bonus: 6},
	{Label: "Madrid Derby", SideA: []string{"real-madrid"}, SideB: []string{"atletico-madrid"}, Bonus: 7},
	{Label: "Der Klassiker", SideA: []string{"bayern"}, SideB: []string{"dortmund"}, Bonus: 7},
	{Label: "Old Firm", SideA: []string{"celtic"}, SideB: []string{"rangers"}, Bonus: 7},
	{Label: "Superclasico", SideA: []string{"boca-juniors"}, SideB: []string{"river-plate"}, Bonus: 8},
	{Label: "De Klassieker", SideA: []string{"ajax"}, SideB: []string{"feyenoord"}, Bonus: 6},
	{Label: "Intercontinental Derby", SideA: []string{"galatasaray"}, SideB: []string{"fenerbahce"}, Bonus: 7},
}

// CompetitionTier resolves the importance tier for a competition name.
func CompetitionTier(name string) int {
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultCompetitionTier
	}

	if tier, ok := competitionTiers[name]; ok {
		return tier
	}

	// Ambiguous names can substring-match several table entries; the
	// highest tier among the matches wins so the result is stable.
	lower := strings.ToLower(name)
	best := 0
	for known, tier := range competitionTiers {
		knownLower := strings.ToLower(known)
		if (strings.Contains(lower, knownLower) || strings.Contains(knownLower, lower)) && tier > best {
			best = tier
		}
	}
	if best > 0 {
		return best
	}

	return defaultCompetitionTier
}

// TeamPopularity resolves the audience-draw score for a team name.
func TeamPopularity(name string) int {
	slug := slugName(name)
	if slug == "" {
		return defaultTeamPopularity
	}

	if pop, ok := teamPopularity[slug]; ok {
		return pop
	}
	best := 0
	for known, pop := range teamPopularity {
		if (strings.Contains(slug, known) || strings.Contains(known, slug)) && pop > best {
			best = pop
		}
	}
	if best > 0 {
		return best
	}

	return defaultTeamPopularity
}

// RivalryBonus returns the derby bonus and label when the two teams
// fuzzy-match a configured pairing, in either home/away order.
func RivalryBonus(homeName, awayName string) (int, string) {
	home := slugName(homeName)
	away := slugName(awayName)
	if home == "" || away == "" {
		return 0, ""
	}

	for _, r := range rivalries {
		if (matchesSide(home, r.SideA) && matchesSide(away, r.SideB)) ||
			(matchesSide(home, r.SideB) && matchesSide(away, r.SideA)) {
			return r.Bonus, r.Label
		}
	}

	return 0, ""
}

func matchesSide(slug string, aliases []string) bool {
	for _, alias := range aliases {
		if strings.Contains(slug, alias) {
			return true
		}
	}
	return false
}

func slugName(name string) string {
	return match.SlugID(name)
}
