package postgres

import (
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/champsline/bracket-league/internal/domain/prediction"
)

// divisionPredictionTableModel flattens a division prediction for storage:
// the sixteen alliance seats in order (captain then first pick per
// alliance), and the seven bracket slots in round order with zero for an
// unset slot.
type divisionPredictionTableModel struct {
	UserID               string         `db:"user_id"`
	DivisionKey          string         `db:"division_key"`
	AvgQualMatchScore    float64        `db:"avg_qual_match_score"`
	AvgPlayoffMatchScore float64        `db:"avg_playoff_match_score"`
	AllianceSeats        pq.StringArray `db:"alliance_seats"`
	BracketSlots         pq.Int64Array  `db:"bracket_slots"`
	CreatedAt            time.Time      `db:"created_at"`
	UpdatedAt            time.Time      `db:"updated_at"`
}

type divisionPredictionInsertModel struct {
	UserID               string         `db:"user_id"`
	DivisionKey          string         `db:"division_key"`
	AvgQualMatchScore    float64        `db:"avg_qual_match_score"`
	AvgPlayoffMatchScore float64        `db:"avg_playoff_match_score"`
	AllianceSeats        pq.StringArray `db:"alliance_seats"`
	BracketSlots         pq.Int64Array  `db:"bracket_slots"`
}

type einsteinPredictionTableModel struct {
	UserID                  string         `db:"user_id"`
	AvgAllianceHangarPoints float64        `db:"avg_alliance_hangar_points"`
	AvgFinalsMatchScore     float64        `db:"avg_finals_match_score"`
	Picks                   pq.StringArray `db:"picks"`
	FirstSeed               string         `db:"first_seed"`
	SecondSeed              string         `db:"second_seed"`
	Winner                  string         `db:"winner"`
	CreatedAt               time.Time      `db:"created_at"`
	UpdatedAt               time.Time      `db:"updated_at"`
}

type einsteinPredictionInsertModel struct {
	UserID                  string         `db:"user_id"`
	AvgAllianceHangarPoints float64        `db:"avg_alliance_hangar_points"`
	AvgFinalsMatchScore     float64        `db:"avg_finals_match_score"`
	Picks                   pq.StringArray `db:"picks"`
	FirstSeed               string         `db:"first_seed"`
	SecondSeed              string         `db:"second_seed"`
	Winner                  string         `db:"winner"`
}

func allianceSeats(alliances [prediction.AllianceCount]prediction.Alliance) pq.StringArray {
	seats := make(pq.StringArray, 0, prediction.SeatCount)
	for _, alliance := range alliances {
		seats = append(seats, alliance.Captain, alliance.FirstPick)
	}
	return seats
}

func bracketSlots(b prediction.Bracket) pq.Int64Array {
	slots := b.Slots()
	out := make(pq.Int64Array, len(slots))
	for i, slot := range slots {
		out[i] = int64(slot)
	}
	return out
}

func mapDivisionPredictionRow(row divisionPredictionTableModel) (prediction.DivisionPrediction, error) {
	p := prediction.DivisionPrediction{
		UserID:               row.UserID,
		DivisionKey:          row.DivisionKey,
		AvgQualMatchScore:    row.AvgQualMatchScore,
		AvgPlayoffMatchScore: row.AvgPlayoffMatchScore,
	}

	if len(row.AllianceSeats) != prediction.SeatCount {
		return prediction.DivisionPrediction{}, fmt.Errorf("stored alliance seats: got %d, want %d", len(row.AllianceSeats), prediction.SeatCount)
	}
	for i := 0; i < prediction.AllianceCount; i++ {
		p.Alliances[i] = prediction.Alliance{
			Captain:   row.AllianceSeats[2*i],
			FirstPick: row.AllianceSeats[2*i+1],
		}
	}

	if len(row.BracketSlots) != prediction.BracketSlots {
		return prediction.DivisionPrediction{}, fmt.Errorf("stored bracket slots: got %d, want %d", len(row.BracketSlots), prediction.BracketSlots)
	}
	var slots [prediction.BracketSlots]int
	for i, slot := range row.BracketSlots {
		slots[i] = int(slot)
	}
	bracket, err := prediction.BracketFromSlots(slots)
	if err != nil {
		return prediction.DivisionPrediction{}, fmt.Errorf("stored bracket slots: %w", err)
	}
	p.Bracket = bracket

	return p, nil
}

func mapEinsteinPredictionRow(row einsteinPredictionTableModel) (prediction.EinsteinPrediction, error) {
	p := prediction.EinsteinPrediction{
		UserID:                  row.UserID,
		AvgAllianceHangarPoints: row.AvgAllianceHangarPoints,
		AvgFinalsMatchScore:     row.AvgFinalsMatchScore,
		FirstSeed:               row.FirstSeed,
		SecondSeed:              row.SecondSeed,
		Winner:                  row.Winner,
	}

	if len(row.Picks) != prediction.RoundRobinPickCount {
		return prediction.EinsteinPrediction{}, fmt.Errorf("stored picks: got %d, want %d", len(row.Picks), prediction.RoundRobinPickCount)
	}
	copy(p.Picks[:], row.Picks)

	return p, nil
}
