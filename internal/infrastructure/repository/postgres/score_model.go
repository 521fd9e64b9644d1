package postgres

import "time"

type divisionScoreInsertModel struct {
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

type einsteinScoreInsertModel struct {
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

type globalScoreInsertModel struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	DivisionTotal int       `db:"division_total"`
	EinsteinTotal int       `db:"einstein_total"`
	Sum           int       `db:"sum"`
	ScoredAt      time.Time `db:"scored_at"`
}
