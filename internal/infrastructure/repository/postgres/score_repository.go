package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/champsline/bracket-league/internal/domain/scoring"
	qb "github.com/champsline/bracket-league/internal/platform/querybuilder"
)

type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// ReplaceDivisionScores swaps a division's score rows atomically so readers
// never see a half-written scoring run.
func (r *ScoreRepository) ReplaceDivisionScores(ctx context.Context, divisionKey string, records []scoring.DivisionScoreRecord) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		deleteQuery, deleteArgs, err := qb.DeleteFrom("division_prediction_scores").
			Where(qb.Eq("division_key", divisionKey)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete division scores query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return fmt.Errorf("delete division scores: %w", err)
		}

		for _, record := range records {
			model := divisionScoreInsertModel{
				ID:            record.ID,
				UserID:        record.UserID,
				DivisionKey:   record.DivisionKey,
				QualScore:     record.QualScore,
				PlayoffScore:  record.PlayoffScore,
				AllianceScore: record.AllianceScore,
				BracketScore:  record.BracketScore,
				Sum:           record.Sum,
				ScoredAt:      record.ScoredAt,
			}
			query, args, err := qb.InsertModel("division_prediction_scores", model, "")
			if err != nil {
				return fmt.Errorf("build insert division score query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert division score: %w", err)
			}
		}
		return nil
	})
}

func (r *ScoreRepository) ListDivisionScores(ctx context.Context, divisionKey string) ([]scoring.DivisionScoreRecord, error) {
	query, args, err := qb.Select("*").From("division_prediction_scores").
		Where(qb.Eq("division_key", divisionKey)).
		OrderBy("sum DESC", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list division scores query: %w", err)
	}

	var rows []scoring.DivisionScoreRecord
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list division scores: %w", err)
	}
	return rows, nil
}

func (r *ScoreRepository) ListDivisionScoresByUser(ctx context.Context, userID string) ([]scoring.DivisionScoreRecord, error) {
	query, args, err := qb.Select("*").From("division_prediction_scores").
		Where(qb.Eq("user_id", userID)).
		OrderBy("division_key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list division scores by user query: %w", err)
	}

	var rows []scoring.DivisionScoreRecord
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list division scores by user: %w", err)
	}
	return rows, nil
}

func (r *ScoreRepository) ReplaceEinsteinScores(ctx context.Context, records []scoring.EinsteinScoreRecord) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM einstein_prediction_scores"); err != nil {
			return fmt.Errorf("delete einstein scores: %w", err)
		}

		for _, record := range records {
			model := einsteinScoreInsertModel{
				ID:              record.ID,
				UserID:          record.UserID,
				HangarScore:     record.HangarScore,
				FinalsScore:     record.FinalsScore,
				RoundRobinScore: record.RoundRobinScore,
				FirstSeedScore:  record.FirstSeedScore,
				SecondSeedScore: record.SecondSeedScore,
				WinnerScore:     record.WinnerScore,
				Sum:             record.Sum,
				ScoredAt:        record.ScoredAt,
			}
			query, args, err := qb.InsertModel("einstein_prediction_scores", model, "")
			if err != nil {
				return fmt.Errorf("build insert einstein score query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert einstein score: %w", err)
			}
		}
		return nil
	})
}

func (r *ScoreRepository) ListEinsteinScores(ctx context.Context) ([]scoring.EinsteinScoreRecord, error) {
	query, args, err := qb.Select("*").From("einstein_prediction_scores").
		OrderBy("sum DESC", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list einstein scores query: %w", err)
	}

	var rows []scoring.EinsteinScoreRecord
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list einstein scores: %w", err)
	}
	return rows, nil
}

func (r *ScoreRepository) ReplaceGlobalScores(ctx context.Context, records []scoring.GlobalScoreRecord) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM global_scores"); err != nil {
			return fmt.Errorf("delete global scores: %w", err)
		}

		for _, record := range records {
			model := globalScoreInsertModel{
				ID:            record.ID,
				UserID:        record.UserID,
				DivisionTotal: record.DivisionTotal,
				EinsteinTotal: record.EinsteinTotal,
				Sum:           record.Sum,
				ScoredAt:      record.ScoredAt,
			}
			query, args, err := qb.InsertModel("global_scores", model, "")
			if err != nil {
				return fmt.Errorf("build insert global score query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert global score: %w", err)
			}
		}
		return nil
	})
}

func (r *ScoreRepository) ListGlobalScores(ctx context.Context, limit int) ([]scoring.GlobalScoreRecord, error) {
	builder := qb.Select("*").From("global_scores").
		OrderBy("sum DESC", "user_id")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list global scores query: %w", err)
	}

	var rows []scoring.GlobalScoreRecord
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list global scores: %w", err)
	}
	return rows, nil
}

func (r *ScoreRepository) GetGlobalScore(ctx context.Context, userID string) (scoring.GlobalScoreRecord, bool, error) {
	query, args, err := qb.Select("*").From("global_scores").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return scoring.GlobalScoreRecord{}, false, fmt.Errorf("build get global score query: %w", err)
	}

	var row scoring.GlobalScoreRecord
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.GlobalScoreRecord{}, false, nil
		}
		return scoring.GlobalScoreRecord{}, false, fmt.Errorf("get global score: %w", err)
	}
	return row, true, nil
}

func (r *ScoreRepository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
