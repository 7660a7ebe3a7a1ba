package apifootball

// The provider returns every field as a string, including IDs, scores and
// the live minute. Decoding keeps that shape; normalization happens in the
// mapper.
type eventItem struct {
	MatchID       string `json:"match_id"`
	CountryName   string `json:"country_name"`
	LeagueID      string `json:"league_id"`
	LeagueName    string `json:"league_name"`
	LeagueSeason  string `json:"league_season"`
	MatchDate     string `json:"match_date"`
	MatchTime     string `json:"match_time"`
	MatchStatus   string `json:"match_status"`
	MatchLive     string `json:"match_live"`
	HomeTeamID    string `json:"match_hometeam_id"`
	HomeTeamName  string `json:"match_hometeam_name"`
	HomeTeamScore string `json:"match_hometeam_score"`
	AwayTeamID    string `json:"match_awayteam_id"`
	AwayTeamName  string `json:"match_awayteam_name"`
	AwayTeamScore string `json:"match_awayteam_score"`
	MatchRound    string `json:"match_round"`
	MatchStadium  string `json:"match_stadium"`
}

// get_H2H responses nest three event lists; only the direct meetings list
// matters here.
type headToHeadEnvelope struct {
	FirstVsSecond []eventItem `json:"firstTeam_VS_secondTeam"`
	FirstLast     []eventItem `json:"firstTeam_lastResults"`
	SecondLast    []eventItem `json:"secondTeam_lastResults"`
}
