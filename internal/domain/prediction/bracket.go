package prediction

import "fmt"

// Fixed single-elimination topology for an 8-alliance division bracket.
// Quarterfinals pair 1v8, 2v7, 3v6, 4v5; the first semifinal is fed by
// quarterfinals 1 and 4, the second by quarterfinals 2 and 3.
var quarterFinalPairs = [4][2]int{{1, 8}, {2, 7}, {3, 6}, {4, 5}}
var semiFinalFeeders = [2][2]int{{0, 3}, {1, 2}}

// BracketSlots is the number of winner picks in a full bracket: four
// quarterfinals, two semifinals, one final.
const BracketSlots = 7

var (
	ErrBracketSlotOutOfRange   = fmt.Errorf("bracket slot out of range")
	ErrAllianceNotInMatchup    = fmt.Errorf("alliance is not part of this matchup")
	ErrPrerequisiteResultUnset = fmt.Errorf("earlier-round result is not set")
)

// Bracket holds a user's winner picks keyed by round. Later rounds are only
// meaningful once their feeder results exist; changing an earlier pick
// invalidates everything causally downstream.
type Bracket struct {
	quarterFinals [4]int
	semiFinals    [2]int
	final         int
}

// SetQuarterFinalWinner records the winner of quarterfinal match (0-3).
// Changing a pick clears the dependent semifinal and the final.
func (b *Bracket) SetQuarterFinalWinner(match, alliance int) error {
	if match < 0 || match >= len(b.quarterFinals) {
		return fmt.Errorf("%w: quarterfinal %d", ErrBracketSlotOutOfRange, match)
	}
	pair := quarterFinalPairs[match]
	if alliance != pair[0] && alliance != pair[1] {
		return fmt.Errorf("%w: alliance %d in quarterfinal %dv%d", ErrAllianceNotInMatchup, alliance, pair[0], pair[1])
	}
	if b.quarterFinals[match] == alliance {
		return nil
	}

	b.quarterFinals[match] = alliance
	for sf, feeders := range semiFinalFeeders {
		if feeders[0] == match || feeders[1] == match {
			b.semiFinals[sf] = 0
		}
	}
	b.final = 0
	return nil
}

// SetSemiFinalWinner records the winner of semifinal match (0-1). Both feeder
// quarterfinal results must exist, and the pick must be one of their winners.
func (b *Bracket) SetSemiFinalWinner(match, alliance int) error {
	if match < 0 || match >= len(b.semiFinals) {
		return fmt.Errorf("%w: semifinal %d", ErrBracketSlotOutOfRange, match)
	}
	first, second, err := b.semiFinalParticipants(match)
	if err != nil {
		return err
	}
	if alliance != first && alliance != second {
		return fmt.Errorf("%w: alliance %d in semifinal %dv%d", ErrAllianceNotInMatchup, alliance, first, second)
	}
	if b.semiFinals[match] == alliance {
		return nil
	}

	b.semiFinals[match] = alliance
	b.final = 0
	return nil
}

// SetFinalWinner records the bracket winner. Both semifinal results must
// exist, and the pick must be one of their winners.
func (b *Bracket) SetFinalWinner(alliance int) error {
	if b.semiFinals[0] == 0 || b.semiFinals[1] == 0 {
		return fmt.Errorf("%w: final requires both semifinal results", ErrPrerequisiteResultUnset)
	}
	if alliance != b.semiFinals[0] && alliance != b.semiFinals[1] {
		return fmt.Errorf("%w: alliance %d in final %dv%d", ErrAllianceNotInMatchup, alliance, b.semiFinals[0], b.semiFinals[1])
	}

	b.final = alliance
	return nil
}

func (b *Bracket) semiFinalParticipants(match int) (int, int, error) {
	feeders := semiFinalFeeders[match]
	first := b.quarterFinals[feeders[0]]
	second := b.quarterFinals[feeders[1]]
	if first == 0 || second == 0 {
		return 0, 0, fmt.Errorf("%w: semifinal %d requires quarterfinals %d and %d", ErrPrerequisiteResultUnset, match, feeders[0]+1, feeders[1]+1)
	}
	return first, second, nil
}

func (b Bracket) QuarterFinalWinner(match int) int {
	if match < 0 || match >= len(b.quarterFinals) {
		return 0
	}
	return b.quarterFinals[match]
}

func (b Bracket) SemiFinalWinner(match int) int {
	if match < 0 || match >= len(b.semiFinals) {
		return 0
	}
	return b.semiFinals[match]
}

func (b Bracket) FinalWinner() int {
	return b.final
}

func (b Bracket) Complete() bool {
	for _, w := range b.quarterFinals {
		if w == 0 {
			return false
		}
	}
	return b.semiFinals[0] != 0 && b.semiFinals[1] != 0 && b.final != 0
}

// Slots flattens the bracket into the stored wire order: four quarterfinal
// winners, two semifinal winners, the final winner. Unset slots are 0.
func (b Bracket) Slots() [BracketSlots]int {
	return [BracketSlots]int{
		b.quarterFinals[0], b.quarterFinals[1], b.quarterFinals[2], b.quarterFinals[3],
		b.semiFinals[0], b.semiFinals[1],
		b.final,
	}
}

// BracketFromSlots rebuilds a bracket from its flattened form, re-applying
// every pick through the round setters so topology invariants hold. Zero
// slots are skipped.
func BracketFromSlots(slots [BracketSlots]int) (Bracket, error) {
	var b Bracket
	for match := 0; match < 4; match++ {
		if slots[match] == 0 {
			continue
		}
		if err := b.SetQuarterFinalWinner(match, slots[match]); err != nil {
			return Bracket{}, err
		}
	}
	for match := 0; match < 2; match++ {
		if slots[4+match] == 0 {
			continue
		}
		if err := b.SetSemiFinalWinner(match, slots[4+match]); err != nil {
			return Bracket{}, err
		}
	}
	if slots[6] != 0 {
		if err := b.SetFinalWinner(slots[6]); err != nil {
			return Bracket{}, err
		}
	}
	return b, nil
}
