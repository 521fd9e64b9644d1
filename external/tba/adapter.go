package tba

import (
	"strings"

	"github.com/champsline/bracket-league/internal/domain/scoring"
	"github.com/champsline/bracket-league/internal/domain/team"
)

// unplayedScore is the provider's sentinel for a match with no result yet.
const unplayedScore = -1

var playoffLevels = map[string]scoring.Level{
	"qf": scoring.LevelQuarterFinal,
	"sf": scoring.LevelSemiFinal,
	"f":  scoring.LevelFinal,
}

// toPlayoffMatches keeps completed playoff matches and drops qualification
// rounds and anything still unplayed on either side.
func toPlayoffMatches(matches []matchSimple) []scoring.PlayoffMatch {
	out := make([]scoring.PlayoffMatch, 0, len(matches))
	for _, m := range matches {
		level, ok := playoffLevels[strings.ToLower(m.CompLevel)]
		if !ok {
			continue
		}
		if m.Alliances.Red.Score == unplayedScore || m.Alliances.Blue.Score == unplayedScore {
			continue
		}
		out = append(out, scoring.PlayoffMatch{
			CompLevel: level,
			Red: scoring.MatchSide{
				TeamKeys: m.Alliances.Red.TeamKeys,
				Score:    float64(m.Alliances.Red.Score),
			},
			Blue: scoring.MatchSide{
				TeamKeys: m.Alliances.Blue.TeamKeys,
				Score:    float64(m.Alliances.Blue.Score),
			},
		})
	}
	return out
}

// toRankings maps provider ranking rows to canonical rankings. The second
// sort order carries the average match score under the 2022 season's ranking
// convention; rows without it contribute a zero average.
func toRankings(rows []rankingRow) []scoring.Ranking {
	out := make([]scoring.Ranking, 0, len(rows))
	for _, row := range rows {
		var avg float64
		if len(row.SortOrders) > 1 {
			avg = row.SortOrders[1]
		}
		out = append(out, scoring.Ranking{
			TeamKey:       row.TeamKey,
			Rank:          row.Rank,
			AvgMatchScore: avg,
		})
	}
	return out
}

// toAllianceResults maps provider alliances to canonical results. Rows with
// an unknown playoff level are dropped; an alliance that finished the final
// round with status "won" is the division winner.
func toAllianceResults(rows []allianceRow) []scoring.AllianceResult {
	out := make([]scoring.AllianceResult, 0, len(rows))
	for _, row := range rows {
		level, ok := playoffLevels[strings.ToLower(row.Status.Level)]
		if !ok {
			continue
		}
		if level == scoring.LevelFinal && strings.EqualFold(row.Status.Status, "won") {
			level = scoring.LevelWinner
		}
		out = append(out, scoring.AllianceResult{
			PickKeys: row.Picks,
			Level:    level,
		})
	}
	return out
}

// toTeams keeps directory rows with complete location data; the provider
// lists historic teams with null fields that are useless as reference data.
func toTeams(rows []teamRow) []team.Team {
	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		if row.Key == "" || row.City == "" || row.StateProv == "" || row.Country == "" || row.RookieYear == 0 {
			continue
		}
		name := row.Nickname
		if name == "" {
			name = row.Name
		}
		out = append(out, team.Team{
			Key:        row.Key,
			Number:     row.TeamNumber,
			Name:       name,
			City:       row.City,
			StateProv:  row.StateProv,
			Country:    row.Country,
			RookieYear: row.RookieYear,
			Website:    row.Website,
		})
	}
	return out
}
