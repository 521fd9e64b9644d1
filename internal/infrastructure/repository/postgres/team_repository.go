package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/champsline/bracket-league/internal/domain/team"
	qb "github.com/champsline/bracket-league/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByDivision(ctx context.Context, divisionKey string) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("division_key", divisionKey)).
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by division: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapTeamRow(row))
	}

	return out, nil
}

func (r *TeamRepository) ListKeysByDivision(ctx context.Context, divisionKey string) ([]string, error) {
	query, args, err := qb.Select("key").From("teams").
		Where(qb.Eq("division_key", divisionKey)).
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team keys query: %w", err)
	}

	var keys []string
	if err := r.db.SelectContext(ctx, &keys, query, args...); err != nil {
		return nil, fmt.Errorf("select team keys by division: %w", err)
	}

	return keys, nil
}

func (r *TeamRepository) GetByKey(ctx context.Context, key string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("key", key)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by key: %w", err)
	}

	return mapTeamRow(row), true, nil
}

// Upsert stores competition reference data fetched from the provider.
func (r *TeamRepository) Upsert(ctx context.Context, t team.Team) error {
	model := teamInsertModel{
		Key:         t.Key,
		Number:      t.Number,
		Name:        t.Name,
		City:        t.City,
		StateProv:   t.StateProv,
		Country:     t.Country,
		RookieYear:  t.RookieYear,
		Website:     t.Website,
		DivisionKey: t.DivisionKey,
	}

	query, args, err := qb.InsertModel("teams", model, `ON CONFLICT (key) DO UPDATE SET
		number = EXCLUDED.number,
		name = EXCLUDED.name,
		city = EXCLUDED.city,
		state_prov = EXCLUDED.state_prov,
		country = EXCLUDED.country,
		rookie_year = EXCLUDED.rookie_year,
		website = EXCLUDED.website,
		division_key = EXCLUDED.division_key,
		updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team: %w", err)
	}

	return nil
}

func (r *TeamRepository) AssignDivision(ctx context.Context, divisionKey string, teamKeys []string) (int, error) {
	if len(teamKeys) == 0 {
		return 0, nil
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE teams SET division_key = $1, updated_at = NOW() WHERE key = ANY($2)`,
		divisionKey, pq.Array(teamKeys),
	)
	if err != nil {
		return 0, fmt.Errorf("assign division %s: %w", divisionKey, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("assign division %s rows affected: %w", divisionKey, err)
	}

	return int(affected), nil
}

func mapTeamRow(row teamTableModel) team.Team {
	return team.Team{
		Key:         row.Key,
		Number:      row.Number,
		Name:        row.Name,
		City:        row.City,
		StateProv:   row.StateProv,
		Country:     row.Country,
		RookieYear:  row.RookieYear,
		Website:     row.Website,
		DivisionKey: row.DivisionKey,
	}
}
