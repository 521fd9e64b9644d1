package scoring

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/champsline/bracket-league/internal/domain/prediction"
)

// fixtureAlliances seats frc1..frc16 across eight alliances, with alliance 1
// winning the division, alliance 2 losing the final, and alliances 3 and 4
// falling in the semifinals.
func fixtureAlliances() []AllianceResult {
	levels := []Level{
		LevelWinner, LevelFinal, LevelSemiFinal, LevelSemiFinal,
		LevelQuarterFinal, LevelQuarterFinal, LevelQuarterFinal, LevelQuarterFinal,
	}
	alliances := make([]AllianceResult, 8)
	for i := range alliances {
		alliances[i] = AllianceResult{
			PickKeys: []string{fmt.Sprintf("frc%d", 2*i+1), fmt.Sprintf("frc%d", 2*i+2)},
			Level:    levels[i],
		}
	}
	return alliances
}

func fixtureResults() DivisionResults {
	return DivisionResults{
		DivisionKey: "2022carv",
		Rankings: []Ranking{
			{TeamKey: "frc3", Rank: 2, AvgMatchScore: 97.2},
			{TeamKey: "frc1", Rank: 1, AvgMatchScore: 101.6},
		},
		PlayoffMatches: []PlayoffMatch{
			{CompLevel: LevelQuarterFinal,
				Red:  MatchSide{TeamKeys: []string{"frc1", "frc2"}, Score: 90},
				Blue: MatchSide{TeamKeys: []string{"frc15", "frc16"}, Score: 60}},
			{CompLevel: LevelSemiFinal,
				Red:  MatchSide{TeamKeys: []string{"frc5", "frc6"}, Score: 70},
				Blue: MatchSide{TeamKeys: []string{"frc1", "frc2"}, Score: 85}},
			{CompLevel: LevelFinal,
				Red:  MatchSide{TeamKeys: []string{"frc1", "frc2"}, Score: 89},
				Blue: MatchSide{TeamKeys: []string{"frc3", "frc4"}, Score: 80}},
			{CompLevel: LevelSemiFinal,
				Red:  MatchSide{TeamKeys: []string{"frc3", "frc4"}, Score: 75},
				Blue: MatchSide{TeamKeys: []string{"frc7", "frc8"}, Score: 74}},
		},
		Alliances: fixtureAlliances(),
	}
}

// perfectPrediction mirrors fixtureResults exactly. The winning alliance's
// playoff matches average (90+85+89)/3 = 88.
func perfectPrediction(t *testing.T) prediction.DivisionPrediction {
	t.Helper()

	p := prediction.DivisionPrediction{
		UserID:               "user-1",
		DivisionKey:          "2022carv",
		AvgQualMatchScore:    102,
		AvgPlayoffMatchScore: 88,
	}
	for i := range p.Alliances {
		p.Alliances[i] = prediction.Alliance{
			Captain:   fmt.Sprintf("frc%d", 2*i+1),
			FirstPick: fmt.Sprintf("frc%d", 2*i+2),
		}
	}
	b, err := prediction.BracketFromSlots([prediction.BracketSlots]int{1, 2, 3, 4, 1, 2, 1})
	if err != nil {
		t.Fatalf("bracket from slots: %v", err)
	}
	p.Bracket = b
	return p
}

func TestScoreDivisionPerfectPrediction(t *testing.T) {
	t.Parallel()

	got := ScoreDivision(perfectPrediction(t), fixtureResults())
	want := DivisionScore{
		UserID:        "user-1",
		DivisionKey:   "2022carv",
		QualScore:     20,
		PlayoffScore:  20,
		AllianceScore: 160,
		BracketScore:  160,
		Sum:           360,
	}
	if got != want {
		t.Fatalf("score = %+v, want %+v", got, want)
	}
}

func TestEstimatePointsDecay(t *testing.T) {
	t.Parallel()

	// 101.6 rounds to 102 before comparing.
	cases := []struct {
		predicted float64
		want      int
	}{
		{102, 20},
		{101.6, 20},
		{92, 10},
		{112, 10},
		{82, 0},
		{0, 0},
		{500, 0},
	}
	for _, tc := range cases {
		if got := estimatePoints(20, 1, tc.predicted, 101.6); got != tc.want {
			t.Fatalf("estimatePoints(pred=%v) = %d, want %d", tc.predicted, got, tc.want)
		}
	}
}

func TestQualificationPointsNoTopRank(t *testing.T) {
	t.Parallel()

	if got := qualificationPoints(100, nil); got != 0 {
		t.Fatalf("points = %d, want 0", got)
	}
	if got := qualificationPoints(100, []Ranking{{TeamKey: "frc3", Rank: 2, AvgMatchScore: 90}}); got != 0 {
		t.Fatalf("points = %d, want 0", got)
	}
}

func TestPlayoffPointsNoWinnerYet(t *testing.T) {
	t.Parallel()

	results := fixtureResults()
	for i := range results.Alliances {
		if results.Alliances[i].Level == LevelWinner {
			results.Alliances[i].Level = LevelFinal
		}
	}
	if got := playoffPoints(88, results); got != 0 {
		t.Fatalf("points = %d, want 0", got)
	}
}

func TestAlliancePoints(t *testing.T) {
	t.Parallel()

	actual := fixtureAlliances()

	t.Run("exact seat earns proximity plus bonus", func(t *testing.T) {
		t.Parallel()

		p := prediction.DivisionPrediction{}
		p.Alliances[0] = prediction.Alliance{Captain: "frc1", FirstPick: "frc2"}
		if got := alliancePoints(p, actual); got != 20 {
			t.Fatalf("points = %d, want 20", got)
		}
	})

	t.Run("swapped seats on the right alliance", func(t *testing.T) {
		t.Parallel()

		// frc2 predicted at seat 1 but seated at seat 2: proximity 6,
		// same-alliance bonus 2. Likewise frc1 at seat 2.
		p := prediction.DivisionPrediction{}
		p.Alliances[0] = prediction.Alliance{Captain: "frc2", FirstPick: "frc1"}
		if got := alliancePoints(p, actual); got != 16 {
			t.Fatalf("points = %d, want 16", got)
		}
	})

	t.Run("distant seat decays to zero proximity", func(t *testing.T) {
		t.Parallel()

		// frc16 is seated at 16; predicting it at seat 1 leaves no
		// proximity points and no bonus.
		p := prediction.DivisionPrediction{}
		p.Alliances[0] = prediction.Alliance{Captain: "frc16", FirstPick: "frc15"}
		if got := alliancePoints(p, actual); got != 0 {
			t.Fatalf("points = %d, want 0", got)
		}
	})

	t.Run("unseated teams earn nothing", func(t *testing.T) {
		t.Parallel()

		p := prediction.DivisionPrediction{}
		p.Alliances[0] = prediction.Alliance{Captain: "frc9991", FirstPick: "frc9992"}
		if got := alliancePoints(p, actual); got != 0 {
			t.Fatalf("points = %d, want 0", got)
		}
	})
}

func TestBracketPoints(t *testing.T) {
	t.Parallel()

	actual := fixtureAlliances()

	t.Run("correct winner alliance earns the full ladder", func(t *testing.T) {
		t.Parallel()

		predicted := []AllianceResult{
			{PickKeys: []string{"frc1", "frc2"}, Level: LevelWinner},
		}
		// 10 + 10 + 20 per team for two teams.
		if got := bracketPoints(predicted, actual); got != 80 {
			t.Fatalf("points = %d, want 80", got)
		}
	})

	t.Run("semifinalist predicted as winner still earns advancement", func(t *testing.T) {
		t.Parallel()

		predicted := []AllianceResult{
			{PickKeys: []string{"frc5", "frc6"}, Level: LevelWinner},
		}
		// Alliance 3 only reached the semifinals: 10 per team.
		if got := bracketPoints(predicted, actual); got != 20 {
			t.Fatalf("points = %d, want 20", got)
		}
	})

	t.Run("winner predicted to exit early earns only the overlap", func(t *testing.T) {
		t.Parallel()

		predicted := []AllianceResult{
			{PickKeys: []string{"frc1", "frc2"}, Level: LevelSemiFinal},
		}
		if got := bracketPoints(predicted, actual); got != 20 {
			t.Fatalf("points = %d, want 20", got)
		}
	})

	t.Run("backup pick of the winning alliance counts", func(t *testing.T) {
		t.Parallel()

		withBackup := fixtureAlliances()
		withBackup[0].PickKeys = append(withBackup[0].PickKeys, "frc99")
		predicted := []AllianceResult{
			{PickKeys: []string{"frc99"}, Level: LevelWinner},
		}
		if got := bracketPoints(predicted, withBackup); got != 40 {
			t.Fatalf("points = %d, want 40", got)
		}
	})

	t.Run("quarterfinal exit earns nothing", func(t *testing.T) {
		t.Parallel()

		predicted := []AllianceResult{
			{PickKeys: []string{"frc15", "frc16"}, Level: LevelQuarterFinal},
		}
		if got := bracketPoints(predicted, actual); got != 0 {
			t.Fatalf("points = %d, want 0", got)
		}
	})
}

func TestScoreDivisionIsPure(t *testing.T) {
	t.Parallel()

	p := perfectPrediction(t)
	results := fixtureResults()
	first := ScoreDivision(p, results)
	for i := 0; i < 5; i++ {
		if got := ScoreDivision(p, results); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d diverged: %+v != %+v", i, got, first)
		}
	}
}

func TestScoreDivisionEmptyResults(t *testing.T) {
	t.Parallel()

	got := ScoreDivision(perfectPrediction(t), DivisionResults{DivisionKey: "2022carv"})
	if got.Sum != 0 {
		t.Fatalf("sum = %d, want 0", got.Sum)
	}
}
