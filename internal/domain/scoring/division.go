package scoring

import (
	"math"

	"github.com/champsline/bracket-league/internal/domain/prediction"
)

const (
	estimateFullPoints = 20

	seatProximityMax   = 7
	seatExactBonus     = 3
	seatAllianceBonus  = 2
	bracketAdvancePts  = 10
	bracketFinalistPts = 10
	bracketWinnerPts   = 20
)

// estimatePoints scores a numeric estimate against the observed average.
// The award decays by step per point of error and never goes negative.
// Submitted estimates are whole numbers, so rounding the predicted side is
// an identity; only the actual average carries a fractional part.
func estimatePoints(full, step int, predicted, actual float64) int {
	diff := int(math.Round(actual)) - int(math.Round(predicted))
	if diff < 0 {
		diff = -diff
	}
	pts := full - step*diff
	if pts < 0 {
		return 0
	}
	return pts
}

// ScoreDivision scores one user's division prediction against the division's
// actual results. It is a pure function: identical inputs always produce an
// identical breakdown.
func ScoreDivision(p prediction.DivisionPrediction, results DivisionResults) DivisionScore {
	score := DivisionScore{
		UserID:      p.UserID,
		DivisionKey: p.DivisionKey,
	}

	score.QualScore = qualificationPoints(p.AvgQualMatchScore, results.Rankings)
	score.PlayoffScore = playoffPoints(p.AvgPlayoffMatchScore, results)
	score.AllianceScore = alliancePoints(p, results.Alliances)
	score.BracketScore = bracketPoints(NormalizeDivisionPrediction(p), results.Alliances)
	score.Sum = score.QualScore + score.PlayoffScore + score.AllianceScore + score.BracketScore
	return score
}

// qualificationPoints compares the estimate against the average match score
// of the division's top-ranked team.
func qualificationPoints(predicted float64, rankings []Ranking) int {
	for _, r := range rankings {
		if r.Rank == 1 {
			return estimatePoints(estimateFullPoints, 1, predicted, r.AvgMatchScore)
		}
	}
	return 0
}

// playoffPoints compares the estimate against the winning alliance's average
// score across the playoff matches it played.
func playoffPoints(predicted float64, results DivisionResults) int {
	winner := winningAlliance(results.Alliances)
	if winner == nil {
		return 0
	}

	var total float64
	var played int
	for _, match := range results.PlayoffMatches {
		switch {
		case match.Red.Contains(winner.PickKeys):
			total += match.Red.Score
			played++
		case match.Blue.Contains(winner.PickKeys):
			total += match.Blue.Score
			played++
		}
	}
	if played == 0 {
		return 0
	}
	return estimatePoints(estimateFullPoints, 1, predicted, total/float64(played))
}

func winningAlliance(alliances []AllianceResult) *AllianceResult {
	for i := range alliances {
		if alliances[i].Level == LevelWinner {
			return &alliances[i]
		}
	}
	return nil
}

// alliancePoints scores the predicted alliance seating. Seats are numbered
// 1..16: alliance N's captain sits at 2N-1 and its first pick at 2N. Each
// correctly identified team earns proximity points plus a bonus for the
// exact seat or at least the right alliance.
func alliancePoints(p prediction.DivisionPrediction, actual []AllianceResult) int {
	actualSeat := make(map[string]int, prediction.SeatCount)
	for i, alliance := range actual {
		for j, key := range alliance.SeatedKeys() {
			actualSeat[key] = 2*(i+1) - 1 + j
		}
	}

	var pts int
	for i, alliance := range p.Alliances {
		for j, key := range []string{alliance.Captain, alliance.FirstPick} {
			predictedSeat := 2*(i+1) - 1 + j
			seat, ok := actualSeat[key]
			if !ok {
				continue
			}
			diff := seat - predictedSeat
			if diff < 0 {
				diff = -diff
			}
			if base := seatProximityMax - diff; base > 0 {
				pts += base
			}
			switch {
			case seat == predictedSeat:
				pts += seatExactBonus
			case (seat-1)/2 == (predictedSeat-1)/2:
				pts += seatAllianceBonus
			}
		}
	}
	return pts
}

// bracketPoints intersects the predicted and actual advancement of each
// team. A team earns 10 for reaching the semifinals as predicted, a further
// 10 for reaching the final, and a further 20 for winning the division.
func bracketPoints(predicted, actual []AllianceResult) int {
	predictedLevel := allianceLevels(predicted)
	actualLevel := allianceLevels(actual)

	var pts int
	for key, pl := range predictedLevel {
		al, ok := actualLevel[key]
		if !ok {
			continue
		}
		if pl.AtLeast(LevelSemiFinal) && al.AtLeast(LevelSemiFinal) {
			pts += bracketAdvancePts
		}
		if pl.AtLeast(LevelFinal) && al.AtLeast(LevelFinal) {
			pts += bracketFinalistPts
		}
		if pl == LevelWinner && al == LevelWinner {
			pts += bracketWinnerPts
		}
	}
	return pts
}

// allianceLevels flattens every pick of every alliance, backup picks
// included, into a team-to-level map.
func allianceLevels(alliances []AllianceResult) map[string]Level {
	levels := make(map[string]Level, prediction.SeatCount)
	for _, alliance := range alliances {
		for _, key := range alliance.PickKeys {
			if key == "" {
				continue
			}
			levels[key] = alliance.Level
		}
	}
	return levels
}
