package sportsdb

// The free feed nests results under different keys per endpoint but the
// event shape is shared. Scores arrive as strings and may be empty.
type eventsEnvelope struct {
	Events []eventItem `json:"events"`
}

type resultsEnvelope struct {
	Results []eventItem `json:"results"`
}

type eventItem struct {
	IDEvent      string `json:"idEvent"`
	IDLeague     string `json:"idLeague"`
	StrLeague    string `json:"strLeague"`
	StrSport     string `json:"strSport"`
	StrSeason    string `json:"strSeason"`
	DateEvent    string `json:"dateEvent"`
	StrTime      string `json:"strTime"`
	StrStatus    string `json:"strStatus"`
	IDHomeTeam   string `json:"idHomeTeam"`
	StrHomeTeam  string `json:"strHomeTeam"`
	IntHomeScore string `json:"intHomeScore"`
	IDAwayTeam   string `json:"idAwayTeam"`
	StrAwayTeam  string `json:"strAwayTeam"`
	IntAwayScore string `json:"intAwayScore"`
	StrTimestamp string `json:"strTimestamp"`
	StrPostponed string `json:"strPostponed"`
	StrHomeBadge string `json:"strHomeTeamBadge"`
	StrAwayBadge string `json:"strAwayTeamBadge"`
}

type teamsEnvelope struct {
	Teams []teamItem `json:"teams"`
}

type teamItem struct {
	IDTeam  string `json:"idTeam"`
	StrTeam string `json:"strTeam"`
}
