package footballdata

type matchesEnvelope struct {
	Matches []matchItem `json:"matches"`
}

type matchItem struct {
	ID          int64           `json:"id"`
	UTCDate     string          `json:"utcDate"`
	Status      string          `json:"status"`
	Matchday    int             `json:"matchday"`
	HomeTeam    teamItem        `json:"homeTeam"`
	AwayTeam    teamItem        `json:"awayTeam"`
	Competition competitionItem `json:"competition"`
	Season      seasonItem      `json:"season"`
	Score       scoreItem       `json:"score"`
}

type teamItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
}

type competitionItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type seasonItem struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type scoreItem struct {
	Winner   string        `json:"winner"`
	FullTime scorePairItem `json:"fullTime"`
	HalfTime scorePairItem `json:"halfTime"`
}

type scorePairItem struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}
