package prediction

// AllianceCount is the number of playoff alliances in a division bracket.
const AllianceCount = 8

// SeatCount is the number of picked seats across all alliances (captain and
// first pick per alliance).
const SeatCount = AllianceCount * 2

// RoundRobinPickCount is the number of championship round-robin matchups a
// prediction covers.
const RoundRobinPickCount = 15

// Alliance is one predicted playoff alliance: the captain and its first pick.
type Alliance struct {
	Captain   string
	FirstPick string
}

func (a Alliance) Filled() bool {
	return a.Captain != "" && a.FirstPick != ""
}

// DivisionPrediction is one user's prediction for one division: two numeric
// estimates, the eight alliances in seed order, and the bracket picks.
type DivisionPrediction struct {
	UserID      string
	DivisionKey string

	// AvgQualMatchScore estimates the rank-1 team's average qualification
	// match score; AvgPlayoffMatchScore estimates the winning alliance's
	// average playoff match score.
	AvgQualMatchScore    float64
	AvgPlayoffMatchScore float64

	Alliances [AllianceCount]Alliance
	Bracket   Bracket
}

// EinsteinPrediction is one user's championship-round prediction: two numeric
// estimates, a winning division per round-robin matchup, and the finals picks.
type EinsteinPrediction struct {
	UserID string

	AvgAllianceHangarPoints float64
	AvgFinalsMatchScore     float64

	// Picks holds the predicted winning division key for each round-robin
	// matchup, in schedule order.
	Picks [RoundRobinPickCount]string

	FirstSeed  string
	SecondSeed string
	Winner     string
}
