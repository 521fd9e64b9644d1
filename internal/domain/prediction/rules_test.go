package prediction

import (
	"errors"
	"fmt"
	"testing"
)

func validDivisionPrediction(t *testing.T) (DivisionPrediction, map[string]struct{}) {
	t.Helper()

	valid := make(map[string]struct{}, SeatCount)
	p := DivisionPrediction{
		UserID:               "user-1",
		DivisionKey:          "2022carv",
		AvgQualMatchScore:    61.5,
		AvgPlayoffMatchScore: 88,
		Bracket:              completeBracket(t),
	}
	for i := range p.Alliances {
		captain := fmt.Sprintf("frc%d", 100+2*i)
		pick := fmt.Sprintf("frc%d", 101+2*i)
		p.Alliances[i] = Alliance{Captain: captain, FirstPick: pick}
		valid[captain] = struct{}{}
		valid[pick] = struct{}{}
	}
	return p, valid
}

func TestValidateDivisionPrediction(t *testing.T) {
	t.Parallel()

	t.Run("accepts a complete prediction", func(t *testing.T) {
		t.Parallel()

		p, valid := validDivisionPrediction(t)
		if err := ValidateDivisionPrediction(p, valid); err != nil {
			t.Fatalf("validate: %v", err)
		}
	})

	t.Run("rejects out-of-range estimates", func(t *testing.T) {
		t.Parallel()

		p, valid := validDivisionPrediction(t)
		p.AvgQualMatchScore = MaxEstimate + 1
		if err := ValidateDivisionPrediction(p, valid); !errors.Is(err, ErrEstimateOutOfRange) {
			t.Fatalf("err = %v, want ErrEstimateOutOfRange", err)
		}

		p, valid = validDivisionPrediction(t)
		p.AvgPlayoffMatchScore = -1
		if err := ValidateDivisionPrediction(p, valid); !errors.Is(err, ErrEstimateOutOfRange) {
			t.Fatalf("err = %v, want ErrEstimateOutOfRange", err)
		}
	})

	t.Run("rejects an empty seat", func(t *testing.T) {
		t.Parallel()

		p, valid := validDivisionPrediction(t)
		p.Alliances[3].FirstPick = ""
		if err := ValidateDivisionPrediction(p, valid); !errors.Is(err, ErrIncompleteAlliances) {
			t.Fatalf("err = %v, want ErrIncompleteAlliances", err)
		}
	})

	t.Run("rejects a team seated twice", func(t *testing.T) {
		t.Parallel()

		p, valid := validDivisionPrediction(t)
		p.Alliances[7].FirstPick = p.Alliances[0].Captain
		if err := ValidateDivisionPrediction(p, valid); !errors.Is(err, ErrDuplicateTeamKey) {
			t.Fatalf("err = %v, want ErrDuplicateTeamKey", err)
		}
	})

	t.Run("rejects a team from another division", func(t *testing.T) {
		t.Parallel()

		p, valid := validDivisionPrediction(t)
		p.Alliances[0].Captain = "frc9999"
		if err := ValidateDivisionPrediction(p, valid); !errors.Is(err, ErrUnknownTeamKey) {
			t.Fatalf("err = %v, want ErrUnknownTeamKey", err)
		}
	})

	t.Run("rejects an incomplete bracket", func(t *testing.T) {
		t.Parallel()

		p, valid := validDivisionPrediction(t)
		p.Bracket = Bracket{}
		if err := ValidateDivisionPrediction(p, valid); !errors.Is(err, ErrIncompleteBracket) {
			t.Fatalf("err = %v, want ErrIncompleteBracket", err)
		}
	})
}

func validEinsteinPrediction() (EinsteinPrediction, map[string]struct{}) {
	divisions := []string{"2022carv", "2022gal", "2022hop", "2022new", "2022roe", "2022tur"}
	valid := make(map[string]struct{}, len(divisions))
	for _, key := range divisions {
		valid[key] = struct{}{}
	}

	p := EinsteinPrediction{
		UserID:                  "user-1",
		AvgAllianceHangarPoints: 24,
		AvgFinalsMatchScore:     95,
		FirstSeed:               "2022carv",
		SecondSeed:              "2022tur",
		Winner:                  "2022tur",
	}
	for i := range p.Picks {
		p.Picks[i] = divisions[i%len(divisions)]
	}
	return p, valid
}

func TestValidateEinsteinPrediction(t *testing.T) {
	t.Parallel()

	t.Run("accepts a complete prediction", func(t *testing.T) {
		t.Parallel()

		p, valid := validEinsteinPrediction()
		if err := ValidateEinsteinPrediction(p, valid); err != nil {
			t.Fatalf("validate: %v", err)
		}
	})

	t.Run("rejects a missing pick", func(t *testing.T) {
		t.Parallel()

		p, valid := validEinsteinPrediction()
		p.Picks[14] = ""
		if err := ValidateEinsteinPrediction(p, valid); !errors.Is(err, ErrIncompletePicks) {
			t.Fatalf("err = %v, want ErrIncompletePicks", err)
		}
	})

	t.Run("rejects an unknown division", func(t *testing.T) {
		t.Parallel()

		p, valid := validEinsteinPrediction()
		p.Picks[0] = "2022xxx"
		if err := ValidateEinsteinPrediction(p, valid); !errors.Is(err, ErrUnknownDivisionKey) {
			t.Fatalf("err = %v, want ErrUnknownDivisionKey", err)
		}
	})

	t.Run("rejects a winner outside the finals", func(t *testing.T) {
		t.Parallel()

		p, valid := validEinsteinPrediction()
		p.Winner = "2022gal"
		if err := ValidateEinsteinPrediction(p, valid); !errors.Is(err, ErrWinnerNotFinalist) {
			t.Fatalf("err = %v, want ErrWinnerNotFinalist", err)
		}
	})

	t.Run("rejects out-of-range estimates", func(t *testing.T) {
		t.Parallel()

		p, valid := validEinsteinPrediction()
		p.AvgFinalsMatchScore = MaxEstimate + 0.5
		if err := ValidateEinsteinPrediction(p, valid); !errors.Is(err, ErrEstimateOutOfRange) {
			t.Fatalf("err = %v, want ErrEstimateOutOfRange", err)
		}
	})
}
