package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/champsline/bracket-league/internal/domain/scoring"
)

type ScoreRepository struct {
	mu       sync.RWMutex
	division map[string][]scoring.DivisionScoreRecord
	einstein []scoring.EinsteinScoreRecord
	global   []scoring.GlobalScoreRecord
}

func NewScoreRepository() *ScoreRepository {
	return &ScoreRepository{
		division: make(map[string][]scoring.DivisionScoreRecord),
	}
}

func (r *ScoreRepository) ReplaceDivisionScores(_ context.Context, divisionKey string, records []scoring.DivisionScoreRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]scoring.DivisionScoreRecord, len(records))
	copy(rows, records)
	r.division[divisionKey] = rows

	return nil
}

func (r *ScoreRepository) ListDivisionScores(_ context.Context, divisionKey string) ([]scoring.DivisionScoreRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.division[divisionKey]
	out := make([]scoring.DivisionScoreRecord, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sum > out[j].Sum })

	return out, nil
}

func (r *ScoreRepository) ListDivisionScoresByUser(_ context.Context, userID string) ([]scoring.DivisionScoreRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.DivisionScoreRecord, 0, 8)
	for _, rows := range r.division {
		for _, row := range rows {
			if row.UserID == userID {
				out = append(out, row)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DivisionKey < out[j].DivisionKey })

	return out, nil
}

func (r *ScoreRepository) ReplaceEinsteinScores(_ context.Context, records []scoring.EinsteinScoreRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]scoring.EinsteinScoreRecord, len(records))
	copy(rows, records)
	r.einstein = rows

	return nil
}

func (r *ScoreRepository) ListEinsteinScores(_ context.Context) ([]scoring.EinsteinScoreRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.EinsteinScoreRecord, len(r.einstein))
	copy(out, r.einstein)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sum > out[j].Sum })

	return out, nil
}

func (r *ScoreRepository) ReplaceGlobalScores(_ context.Context, records []scoring.GlobalScoreRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]scoring.GlobalScoreRecord, len(records))
	copy(rows, records)
	r.global = rows

	return nil
}

func (r *ScoreRepository) ListGlobalScores(_ context.Context, limit int) ([]scoring.GlobalScoreRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.GlobalScoreRecord, len(r.global))
	copy(out, r.global)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Sum != out[j].Sum {
			return out[i].Sum > out[j].Sum
		}
		return out[i].UserID < out[j].UserID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *ScoreRepository) GetGlobalScore(_ context.Context, userID string) (scoring.GlobalScoreRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.global {
		if row.UserID == userID {
			return row, true, nil
		}
	}

	return scoring.GlobalScoreRecord{}, false, nil
}
