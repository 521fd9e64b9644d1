package prediction

import (
	"errors"
	"fmt"
)

var (
	ErrEstimateOutOfRange  = errors.New("estimate out of range")
	ErrIncompleteAlliances = errors.New("all eight alliances must be filled")
	ErrDuplicateTeamKey    = errors.New("duplicate team key across alliances")
	ErrUnknownTeamKey      = errors.New("unknown team key")
	ErrIncompleteBracket   = errors.New("all seven bracket slots must be filled")
	ErrIncompletePicks     = errors.New("all fifteen round-robin picks must be filled")
	ErrUnknownDivisionKey  = errors.New("unknown division key")
	ErrWinnerNotFinalist   = errors.New("winner must be the first or second seed")
)

// MaxEstimate bounds the numeric estimates a user may submit.
const MaxEstimate = 500

// ValidateDivisionPrediction checks that a division prediction is complete
// and structurally valid: estimates in range, sixteen distinct seats filled
// with team keys from the division, and a full bracket. Scoring assumes this
// has passed and does not re-validate.
func ValidateDivisionPrediction(p DivisionPrediction, validTeamKeys map[string]struct{}) error {
	if p.AvgQualMatchScore < 0 || p.AvgQualMatchScore > MaxEstimate {
		return fmt.Errorf("%w: qualification estimate %v", ErrEstimateOutOfRange, p.AvgQualMatchScore)
	}
	if p.AvgPlayoffMatchScore < 0 || p.AvgPlayoffMatchScore > MaxEstimate {
		return fmt.Errorf("%w: playoff estimate %v", ErrEstimateOutOfRange, p.AvgPlayoffMatchScore)
	}

	seen := make(map[string]struct{}, SeatCount)
	for i, alliance := range p.Alliances {
		if !alliance.Filled() {
			return fmt.Errorf("%w: alliance %d", ErrIncompleteAlliances, i+1)
		}
		for _, key := range []string{alliance.Captain, alliance.FirstPick} {
			if validTeamKeys != nil {
				if _, ok := validTeamKeys[key]; !ok {
					return fmt.Errorf("%w: %s", ErrUnknownTeamKey, key)
				}
			}
			if _, dup := seen[key]; dup {
				return fmt.Errorf("%w: %s", ErrDuplicateTeamKey, key)
			}
			seen[key] = struct{}{}
		}
	}

	if !p.Bracket.Complete() {
		return ErrIncompleteBracket
	}

	return nil
}

// ValidateEinsteinPrediction checks that a championship prediction is
// complete: estimates in range, fifteen picks referencing known divisions,
// and a winner drawn from the two predicted finalists.
func ValidateEinsteinPrediction(p EinsteinPrediction, validDivisionKeys map[string]struct{}) error {
	if p.AvgAllianceHangarPoints < 0 || p.AvgAllianceHangarPoints > MaxEstimate {
		return fmt.Errorf("%w: hangar estimate %v", ErrEstimateOutOfRange, p.AvgAllianceHangarPoints)
	}
	if p.AvgFinalsMatchScore < 0 || p.AvgFinalsMatchScore > MaxEstimate {
		return fmt.Errorf("%w: finals estimate %v", ErrEstimateOutOfRange, p.AvgFinalsMatchScore)
	}

	for i, pick := range p.Picks {
		if pick == "" {
			return fmt.Errorf("%w: matchup %d", ErrIncompletePicks, i+1)
		}
		if err := checkDivisionKey(pick, validDivisionKeys); err != nil {
			return err
		}
	}

	for _, key := range []string{p.FirstSeed, p.SecondSeed, p.Winner} {
		if key == "" {
			return fmt.Errorf("%w: finals picks must be set", ErrUnknownDivisionKey)
		}
		if err := checkDivisionKey(key, validDivisionKeys); err != nil {
			return err
		}
	}

	if p.Winner != p.FirstSeed && p.Winner != p.SecondSeed {
		return fmt.Errorf("%w: %s", ErrWinnerNotFinalist, p.Winner)
	}

	return nil
}

func checkDivisionKey(key string, valid map[string]struct{}) error {
	if valid == nil {
		return nil
	}
	if _, ok := valid[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDivisionKey, key)
	}
	return nil
}
