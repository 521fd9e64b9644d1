package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/champsline/bracket-league/internal/domain/prediction"
	qb "github.com/champsline/bracket-league/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) GetDivision(ctx context.Context, userID, divisionKey string) (prediction.DivisionPrediction, bool, error) {
	query, args, err := qb.Select("*").From("division_predictions").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("division_key", divisionKey),
		).
		ToSQL()
	if err != nil {
		return prediction.DivisionPrediction{}, false, fmt.Errorf("build get division prediction query: %w", err)
	}

	var row divisionPredictionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return prediction.DivisionPrediction{}, false, nil
		}
		return prediction.DivisionPrediction{}, false, fmt.Errorf("get division prediction: %w", err)
	}

	p, err := mapDivisionPredictionRow(row)
	if err != nil {
		return prediction.DivisionPrediction{}, false, fmt.Errorf("map division prediction user=%s division=%s: %w", userID, divisionKey, err)
	}

	return p, true, nil
}

func (r *PredictionRepository) UpsertDivision(ctx context.Context, p prediction.DivisionPrediction) error {
	model := divisionPredictionInsertModel{
		UserID:               p.UserID,
		DivisionKey:          p.DivisionKey,
		AvgQualMatchScore:    p.AvgQualMatchScore,
		AvgPlayoffMatchScore: p.AvgPlayoffMatchScore,
		AllianceSeats:        allianceSeats(p.Alliances),
		BracketSlots:         bracketSlots(p.Bracket),
	}

	query, args, err := qb.InsertModel("division_predictions", model, `ON CONFLICT (user_id, division_key) DO UPDATE SET
		avg_qual_match_score = EXCLUDED.avg_qual_match_score,
		avg_playoff_match_score = EXCLUDED.avg_playoff_match_score,
		alliance_seats = EXCLUDED.alliance_seats,
		bracket_slots = EXCLUDED.bracket_slots,
		updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert division prediction query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert division prediction: %w", err)
	}

	return nil
}

func (r *PredictionRepository) ListDivision(ctx context.Context, divisionKey string) ([]prediction.DivisionPrediction, error) {
	query, args, err := qb.Select("*").From("division_predictions").
		Where(qb.Eq("division_key", divisionKey)).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list division predictions query: %w", err)
	}

	var rows []divisionPredictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list division predictions: %w", err)
	}

	out := make([]prediction.DivisionPrediction, 0, len(rows))
	for _, row := range rows {
		p, err := mapDivisionPredictionRow(row)
		if err != nil {
			return nil, fmt.Errorf("map division prediction user=%s division=%s: %w", row.UserID, row.DivisionKey, err)
		}
		out = append(out, p)
	}

	return out, nil
}

func (r *PredictionRepository) GetEinstein(ctx context.Context, userID string) (prediction.EinsteinPrediction, bool, error) {
	query, args, err := qb.Select("*").From("einstein_predictions").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return prediction.EinsteinPrediction{}, false, fmt.Errorf("build get einstein prediction query: %w", err)
	}

	var row einsteinPredictionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return prediction.EinsteinPrediction{}, false, nil
		}
		return prediction.EinsteinPrediction{}, false, fmt.Errorf("get einstein prediction: %w", err)
	}

	p, err := mapEinsteinPredictionRow(row)
	if err != nil {
		return prediction.EinsteinPrediction{}, false, fmt.Errorf("map einstein prediction user=%s: %w", userID, err)
	}

	return p, true, nil
}

func (r *PredictionRepository) UpsertEinstein(ctx context.Context, p prediction.EinsteinPrediction) error {
	model := einsteinPredictionInsertModel{
		UserID:                  p.UserID,
		AvgAllianceHangarPoints: p.AvgAllianceHangarPoints,
		AvgFinalsMatchScore:     p.AvgFinalsMatchScore,
		Picks:                   p.Picks[:],
		FirstSeed:               p.FirstSeed,
		SecondSeed:              p.SecondSeed,
		Winner:                  p.Winner,
	}

	query, args, err := qb.InsertModel("einstein_predictions", model, `ON CONFLICT (user_id) DO UPDATE SET
		avg_alliance_hangar_points = EXCLUDED.avg_alliance_hangar_points,
		avg_finals_match_score = EXCLUDED.avg_finals_match_score,
		picks = EXCLUDED.picks,
		first_seed = EXCLUDED.first_seed,
		second_seed = EXCLUDED.second_seed,
		winner = EXCLUDED.winner,
		updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert einstein prediction query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert einstein prediction: %w", err)
	}

	return nil
}

func (r *PredictionRepository) ListEinstein(ctx context.Context) ([]prediction.EinsteinPrediction, error) {
	query, args, err := qb.Select("*").From("einstein_predictions").
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list einstein predictions query: %w", err)
	}

	var rows []einsteinPredictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list einstein predictions: %w", err)
	}

	out := make([]prediction.EinsteinPrediction, 0, len(rows))
	for _, row := range rows {
		p, err := mapEinsteinPredictionRow(row)
		if err != nil {
			return nil, fmt.Errorf("map einstein prediction user=%s: %w", row.UserID, err)
		}
		out = append(out, p)
	}

	return out, nil
}
