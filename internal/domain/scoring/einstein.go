package scoring

import "github.com/champsline/bracket-league/internal/domain/prediction"

const (
	hangarFullPoints = 40
	hangarDecayStep  = 6
	finalsFullPoints = 40
	finalsDecayStep  = 2

	roundRobinMatchupPts = 15
	seedExactPts         = 50
	seedFinalistPts      = 30
	championPts          = 100
)

// ScoreEinstein scores one user's championship prediction against the
// round-robin and finals results. Like ScoreDivision it is pure.
func ScoreEinstein(p prediction.EinsteinPrediction, results EinsteinResults) EinsteinScore {
	score := EinsteinScore{UserID: p.UserID}

	score.HangarScore = estimatePoints(hangarFullPoints, hangarDecayStep,
		p.AvgAllianceHangarPoints, results.AvgAllianceHangarPoints)
	score.FinalsScore = estimatePoints(finalsFullPoints, finalsDecayStep,
		p.AvgFinalsMatchScore, results.AvgFinalsMatchScore)

	for i, winner := range results.RoundRobinWinners {
		if i >= len(p.Picks) {
			break
		}
		if winner != "" && p.Picks[i] == winner {
			score.RoundRobinScore += roundRobinMatchupPts
		}
	}

	score.FirstSeedScore = seedPoints(p.FirstSeed, results.FirstSeed, results.SecondSeed)
	score.SecondSeedScore = seedPoints(p.SecondSeed, results.SecondSeed, results.FirstSeed)

	if results.Winner != "" && p.Winner == results.Winner {
		score.WinnerScore = championPts
	}

	score.Sum = score.HangarScore + score.FinalsScore + score.RoundRobinScore +
		score.FirstSeedScore + score.SecondSeedScore + score.WinnerScore
	return score
}

// seedPoints awards full credit for naming the right division in the right
// finals seat and partial credit when the division made the finals in the
// other seat.
func seedPoints(predicted, exact, other string) int {
	switch {
	case predicted == "":
		return 0
	case predicted == exact:
		return seedExactPts
	case predicted == other:
		return seedFinalistPts
	default:
		return 0
	}
}
