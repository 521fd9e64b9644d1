package memory

import "github.com/champsline/bracket-league/internal/domain/division"

// SeedDivisions returns the six 2022 championship divisions in alphabetical
// order of their event keys.
func SeedDivisions() []division.Division {
	return []division.Division{
		{Key: "2022carv", Name: "Carver"},
		{Key: "2022gal", Name: "Galileo"},
		{Key: "2022hop", Name: "Hopper"},
		{Key: "2022new", Name: "Newton"},
		{Key: "2022roe", Name: "Roebling"},
		{Key: "2022tur", Name: "Turing"},
	}
}

// SeedMatchups returns the Einstein round-robin schedule. The order matters:
// prediction picks and result rows are matched positionally.
func SeedMatchups() []division.Matchup {
	pairs := [][2]string{
		{"2022carv", "2022tur"},
		{"2022gal", "2022roe"},
		{"2022hop", "2022new"},
		{"2022carv", "2022roe"},
		{"2022tur", "2022new"},
		{"2022gal", "2022hop"},
		{"2022carv", "2022new"},
		{"2022roe", "2022hop"},
		{"2022tur", "2022gal"},
		{"2022hop", "2022carv"},
		{"2022new", "2022gal"},
		{"2022roe", "2022tur"},
		{"2022gal", "2022carv"},
		{"2022hop", "2022tur"},
		{"2022new", "2022roe"},
	}

	out := make([]division.Matchup, 0, len(pairs))
	for i, pair := range pairs {
		out = append(out, division.Matchup{
			Order: i + 1,
			Red:   pair[0],
			Blue:  pair[1],
		})
	}
	return out
}
