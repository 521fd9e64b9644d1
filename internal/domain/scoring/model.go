package scoring

import "time"

// Level is how far an alliance advanced in a division playoff bracket.
type Level string

const (
	LevelQuarterFinal Level = "qf"
	LevelSemiFinal    Level = "sf"
	LevelFinal        Level = "f"
	LevelWinner       Level = "w"
)

var levelRank = map[Level]int{
	LevelQuarterFinal: 0,
	LevelSemiFinal:    1,
	LevelFinal:        2,
	LevelWinner:       3,
}

// Rank orders levels by progression; unknown levels rank below quarterfinals.
func (l Level) Rank() int {
	if r, ok := levelRank[l]; ok {
		return r
	}
	return -1
}

// AtLeast reports whether the alliance advanced to other or further.
func (l Level) AtLeast(other Level) bool {
	return l.Rank() >= other.Rank()
}

// MatchSide is one alliance's side of a playoff match.
type MatchSide struct {
	TeamKeys []string
	Score    float64
}

// PlayoffMatch is a completed playoff match in a division.
type PlayoffMatch struct {
	CompLevel Level
	Red       MatchSide
	Blue      MatchSide
}

// Contains reports whether any of the given teams played on this side.
func (s MatchSide) Contains(teamKeys []string) bool {
	for _, key := range teamKeys {
		for _, played := range s.TeamKeys {
			if key == played {
				return true
			}
		}
	}
	return false
}

// Ranking is a team's qualification standing within a division.
type Ranking struct {
	TeamKey       string
	Rank          int
	AvgMatchScore float64
}

// AllianceResult is how one seeded alliance actually fared. PickKeys is the
// captain followed by picks in selection order.
type AllianceResult struct {
	PickKeys []string
	Level    Level
}

// SeatedKeys returns the captain and first pick, the two seats predictions
// cover.
func (a AllianceResult) SeatedKeys() []string {
	if len(a.PickKeys) > 2 {
		return a.PickKeys[:2]
	}
	return a.PickKeys
}

// DivisionResults is the canonical outcome of one division, as produced by
// the competition data adapter.
type DivisionResults struct {
	DivisionKey    string
	Rankings       []Ranking
	PlayoffMatches []PlayoffMatch
	Alliances      []AllianceResult
}

// EinsteinResults is the canonical outcome of the championship round robin
// and finals.
type EinsteinResults struct {
	AvgAllianceHangarPoints float64
	AvgFinalsMatchScore     float64
	RoundRobinWinners       []string
	FirstSeed               string
	SecondSeed              string
	Winner                  string
}

// DivisionScore is the scored breakdown of one user's division prediction.
type DivisionScore struct {
	UserID        string
	DivisionKey   string
	QualScore     int
	PlayoffScore  int
	AllianceScore int
	BracketScore  int
	Sum           int
}

// EinsteinScore is the scored breakdown of one user's championship
// prediction.
type EinsteinScore struct {
	UserID          string
	HangarScore     int
	FinalsScore     int
	RoundRobinScore int
	FirstSeedScore  int
	SecondSeedScore int
	WinnerScore     int
	Sum             int
}

// GlobalScore is a user's overall contest standing.
type GlobalScore struct {
	UserID        string
	DivisionTotal int
	EinsteinTotal int
	Sum           int
}

// DivisionScoreRecord is a persisted division score row.
type DivisionScoreRecord struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	DivisionKey   string    `db:"division_key"`
	QualScore     int       `db:"qual_score"`
	PlayoffScore  int       `db:"playoff_score"`
	AllianceScore int       `db:"alliance_score"`
	BracketScore  int       `db:"bracket_score"`
	Sum           int       `db:"sum"`
	ScoredAt      time.Time `db:"scored_at"`
}

// EinsteinScoreRecord is a persisted championship score row.
type EinsteinScoreRecord struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	HangarScore     int       `db:"hangar_score"`
	FinalsScore     int       `db:"finals_score"`
	RoundRobinScore int       `db:"round_robin_score"`
	FirstSeedScore  int       `db:"first_seed_score"`
	SecondSeedScore int       `db:"second_seed_score"`
	WinnerScore     int       `db:"winner_score"`
	Sum             int       `db:"sum"`
	ScoredAt        time.Time `db:"scored_at"`
}

// GlobalScoreRecord is a persisted overall standing row.
type GlobalScoreRecord struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	DivisionTotal int       `db:"division_total"`
	EinsteinTotal int       `db:"einstein_total"`
	Sum           int       `db:"sum"`
	ScoredAt      time.Time `db:"scored_at"`
}
