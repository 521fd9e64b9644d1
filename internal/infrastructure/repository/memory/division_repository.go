package memory

import (
	"context"
	"sync"

	"github.com/champsline/bracket-league/internal/domain/division"
)

type DivisionRepository struct {
	mu       sync.RWMutex
	items    map[string]division.Division
	orders   []string
	matchups []division.Matchup
}

func NewDivisionRepository(divisions []division.Division, matchups []division.Matchup) *DivisionRepository {
	items := make(map[string]division.Division, len(divisions))
	orders := make([]string, 0, len(divisions))

	for _, d := range divisions {
		items[d.Key] = d
		orders = append(orders, d.Key)
	}

	return &DivisionRepository{
		items:    items,
		orders:   orders,
		matchups: matchups,
	}
}

func (r *DivisionRepository) List(_ context.Context) ([]division.Division, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]division.Division, 0, len(r.orders))
	for _, key := range r.orders {
		out = append(out, r.items[key])
	}

	return out, nil
}

func (r *DivisionRepository) GetByKey(_ context.Context, key string) (division.Division, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.items[key]
	if !ok {
		return division.Division{}, false, nil
	}

	return d, true, nil
}

func (r *DivisionRepository) ListMatchups(_ context.Context) ([]division.Matchup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]division.Matchup, len(r.matchups))
	copy(out, r.matchups)

	return out, nil
}
