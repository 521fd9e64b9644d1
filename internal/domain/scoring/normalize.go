package scoring

import (
	"github.com/champsline/bracket-league/internal/domain/prediction"
)

// NormalizeDivisionPrediction converts a submitted division prediction into
// the same shape the competition data adapter produces for actual results,
// so the scoring algorithm compares like with like.
//
// Every predicted alliance starts at the quarterfinal level. Bracket slots
// are then applied in order: quarterfinal winners advance to semifinals,
// semifinal winners to the final, and the final winner is marked the
// division winner. Later promotions overwrite earlier ones, so the final
// winner ends at the winner level even though it passed through each round.
func NormalizeDivisionPrediction(p prediction.DivisionPrediction) []AllianceResult {
	results := make([]AllianceResult, prediction.AllianceCount)
	for i, alliance := range p.Alliances {
		results[i] = AllianceResult{
			PickKeys: []string{alliance.Captain, alliance.FirstPick},
			Level:    LevelQuarterFinal,
		}
	}

	slots := p.Bracket.Slots()
	for slot, winner := range slots {
		if winner < 1 || winner > prediction.AllianceCount {
			continue
		}
		var level Level
		switch {
		case slot < 4:
			level = LevelSemiFinal
		case slot < 6:
			level = LevelFinal
		default:
			level = LevelWinner
		}
		results[winner-1].Level = level
	}

	return results
}
