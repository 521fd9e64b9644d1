package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/champsline/bracket-league/internal/domain/division"
	qb "github.com/champsline/bracket-league/internal/platform/querybuilder"
)

type DivisionRepository struct {
	db *sqlx.DB
}

func NewDivisionRepository(db *sqlx.DB) *DivisionRepository {
	return &DivisionRepository{db: db}
}

func (r *DivisionRepository) List(ctx context.Context) ([]division.Division, error) {
	query, args, err := qb.Select("*").From("divisions").
		OrderBy("key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select divisions query: %w", err)
	}

	var rows []divisionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select divisions: %w", err)
	}

	out := make([]division.Division, 0, len(rows))
	for _, row := range rows {
		out = append(out, division.Division{Key: row.Key, Name: row.Name})
	}

	return out, nil
}

func (r *DivisionRepository) GetByKey(ctx context.Context, key string) (division.Division, bool, error) {
	query, args, err := qb.Select("*").From("divisions").
		Where(qb.Eq("key", key)).
		ToSQL()
	if err != nil {
		return division.Division{}, false, fmt.Errorf("build get division query: %w", err)
	}

	var row divisionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return division.Division{}, false, nil
		}
		return division.Division{}, false, fmt.Errorf("get division by key: %w", err)
	}

	return division.Division{Key: row.Key, Name: row.Name}, true, nil
}

func (r *DivisionRepository) ListMatchups(ctx context.Context) ([]division.Matchup, error) {
	query, args, err := qb.Select("*").From("division_matchups").
		OrderBy("matchup_order").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matchups query: %w", err)
	}

	var rows []matchupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matchups: %w", err)
	}

	out := make([]division.Matchup, 0, len(rows))
	for _, row := range rows {
		out = append(out, division.Matchup{
			Order: row.MatchupOrder,
			Red:   row.RedKey,
			Blue:  row.BlueKey,
		})
	}

	return out, nil
}
