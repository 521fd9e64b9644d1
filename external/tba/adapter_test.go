package tba

import (
	"testing"

	"github.com/champsline/bracket-league/internal/domain/scoring"
)

func TestToPlayoffMatches(t *testing.T) {
	t.Parallel()

	matches := []matchSimple{
		{CompLevel: "qm", Alliances: matchAlliances{
			Red:  matchAlliance{Score: 50, TeamKeys: []string{"frc1"}},
			Blue: matchAlliance{Score: 40, TeamKeys: []string{"frc2"}},
		}},
		{CompLevel: "qf", Alliances: matchAlliances{
			Red:  matchAlliance{Score: 90, TeamKeys: []string{"frc1", "frc2", "frc3"}},
			Blue: matchAlliance{Score: 60, TeamKeys: []string{"frc4", "frc5", "frc6"}},
		}},
		{CompLevel: "sf", Alliances: matchAlliances{
			Red:  matchAlliance{Score: -1, TeamKeys: []string{"frc1"}},
			Blue: matchAlliance{Score: 70, TeamKeys: []string{"frc4"}},
		}},
		{CompLevel: "f", Alliances: matchAlliances{
			Red:  matchAlliance{Score: 88, TeamKeys: []string{"frc1"}},
			Blue: matchAlliance{Score: -1, TeamKeys: []string{"frc4"}},
		}},
	}

	got := toPlayoffMatches(matches)
	if len(got) != 1 {
		t.Fatalf("matches = %d, want 1", len(got))
	}
	if got[0].CompLevel != scoring.LevelQuarterFinal {
		t.Fatalf("level = %s, want qf", got[0].CompLevel)
	}
	if got[0].Red.Score != 90 || got[0].Blue.Score != 60 {
		t.Fatalf("scores = %v/%v, want 90/60", got[0].Red.Score, got[0].Blue.Score)
	}
}

func TestToRankings(t *testing.T) {
	t.Parallel()

	rows := []rankingRow{
		{TeamKey: "frc1", Rank: 1, SortOrders: []float64{2.0, 101.6, 12}},
		{TeamKey: "frc2", Rank: 2, SortOrders: []float64{1.8}},
	}
	got := toRankings(rows)
	if len(got) != 2 {
		t.Fatalf("rankings = %d, want 2", len(got))
	}
	if got[0].AvgMatchScore != 101.6 {
		t.Fatalf("avg = %v, want 101.6", got[0].AvgMatchScore)
	}
	if got[1].AvgMatchScore != 0 {
		t.Fatalf("avg with missing sort order = %v, want 0", got[1].AvgMatchScore)
	}
}

func TestToAllianceResults(t *testing.T) {
	t.Parallel()

	rows := []allianceRow{
		{Picks: []string{"frc1", "frc2", "frc3"}, Status: allianceStatus{Level: "f", Status: "won"}},
		{Picks: []string{"frc4", "frc5"}, Status: allianceStatus{Level: "f", Status: "eliminated"}},
		{Picks: []string{"frc6", "frc7"}, Status: allianceStatus{Level: "sf", Status: "won"}},
		{Picks: []string{"frc8", "frc9"}, Status: allianceStatus{Level: "qf", Status: "eliminated"}},
		{Picks: []string{"frc10", "frc11"}, Status: allianceStatus{Level: "", Status: ""}},
	}
	got := toAllianceResults(rows)
	if len(got) != 4 {
		t.Fatalf("alliances = %d, want 4 (unknown level dropped)", len(got))
	}
	wantLevels := []scoring.Level{
		scoring.LevelWinner, scoring.LevelFinal, scoring.LevelSemiFinal, scoring.LevelQuarterFinal,
	}
	for i, want := range wantLevels {
		if got[i].Level != want {
			t.Fatalf("alliance %d level = %s, want %s", i+1, got[i].Level, want)
		}
	}
}

func TestToTeamsSkipsIncompleteRows(t *testing.T) {
	t.Parallel()

	rows := []teamRow{
		{Key: "frc254", TeamNumber: 254, Nickname: "The Cheesy Poofs", City: "San Jose", StateProv: "California", Country: "USA", RookieYear: 1999},
		{Key: ""},
		{Key: "frc9999", TeamNumber: 9999, Nickname: "No Location", RookieYear: 2022},
		{Key: "frc1", TeamNumber: 1, Name: "The Juggernauts", City: "Pontiac", StateProv: "Michigan", Country: "USA", RookieYear: 1997},
	}
	got := toTeams(rows)
	if len(got) != 2 {
		t.Fatalf("teams = %d, want 2", len(got))
	}
	if got[0].Key != "frc254" || got[0].Number != 254 {
		t.Fatalf("team = %+v", got[0])
	}
	if got[1].Name != "The Juggernauts" {
		t.Fatalf("expected name fallback, got %+v", got[1])
	}
}

func TestEmptyProviderDataYieldsEmptyCollections(t *testing.T) {
	t.Parallel()

	if got := toPlayoffMatches(nil); len(got) != 0 {
		t.Fatalf("matches = %v, want empty", got)
	}
	if got := toRankings(nil); len(got) != 0 {
		t.Fatalf("rankings = %v, want empty", got)
	}
	if got := toAllianceResults(nil); len(got) != 0 {
		t.Fatalf("alliances = %v, want empty", got)
	}
}
