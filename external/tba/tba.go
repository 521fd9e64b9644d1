package tba

// Wire types for The Blue Alliance API v3. Only the fields the adapter
// reads are mapped; the provider sends considerably more.

type matchAlliance struct {
	Score    int      `json:"score"`
	TeamKeys []string `json:"team_keys"`
}

type matchAlliances struct {
	Red  matchAlliance `json:"red"`
	Blue matchAlliance `json:"blue"`
}

type matchSimple struct {
	Key             string         `json:"key"`
	CompLevel       string         `json:"comp_level"`
	SetNumber       int            `json:"set_number"`
	MatchNumber     int            `json:"match_number"`
	Alliances       matchAlliances `json:"alliances"`
	WinningAlliance string         `json:"winning_alliance"`
}

type rankingRow struct {
	TeamKey    string    `json:"team_key"`
	Rank       int       `json:"rank"`
	SortOrders []float64 `json:"sort_orders"`
}

type rankingsEnvelope struct {
	Rankings []rankingRow `json:"rankings"`
}

type allianceStatus struct {
	Level  string `json:"level"`
	Status string `json:"status"`
}

type allianceRow struct {
	Name   string         `json:"name"`
	Picks  []string       `json:"picks"`
	Status allianceStatus `json:"status"`
}

type teamRow struct {
	Key        string `json:"key"`
	TeamNumber int    `json:"team_number"`
	Nickname   string `json:"nickname"`
	Name       string `json:"name"`
	City       string `json:"city"`
	StateProv  string `json:"state_prov"`
	Country    string `json:"country"`
	RookieYear int    `json:"rookie_year"`
	Website    string `json:"website"`
}
