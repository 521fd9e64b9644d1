package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/champsline/bracket-league/internal/domain/team"
)

type TeamRepository struct {
	mu         sync.RWMutex
	items      map[string]team.Team
	byDivision map[string][]string
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	items := make(map[string]team.Team, len(teams))
	byDivision := make(map[string][]string)

	for _, t := range teams {
		items[t.Key] = t
		byDivision[t.DivisionKey] = append(byDivision[t.DivisionKey], t.Key)
	}

	return &TeamRepository{
		items:      items,
		byDivision: byDivision,
	}
}

func (r *TeamRepository) ListByDivision(_ context.Context, divisionKey string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := r.byDivision[divisionKey]
	out := make([]team.Team, 0, len(keys))
	for _, key := range keys {
		out = append(out, r.items[key])
	}

	return out, nil
}

func (r *TeamRepository) ListKeysByDivision(_ context.Context, divisionKey string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := r.byDivision[divisionKey]
	out := make([]string, len(keys))
	copy(out, keys)

	return out, nil
}

func (r *TeamRepository) GetByKey(_ context.Context, key string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[key]
	if !ok {
		return team.Team{}, false, nil
	}

	return t, true, nil
}

func (r *TeamRepository) Upsert(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.items[t.Key]; ok && t.DivisionKey == "" {
		t.DivisionKey = existing.DivisionKey
	}
	r.items[t.Key] = t
	r.reindexLocked()

	return nil
}

func (r *TeamRepository) AssignDivision(_ context.Context, divisionKey string, teamKeys []string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	assigned := 0
	for _, key := range teamKeys {
		t, ok := r.items[key]
		if !ok {
			continue
		}
		t.DivisionKey = divisionKey
		r.items[key] = t
		assigned++
	}
	r.reindexLocked()

	return assigned, nil
}

func (r *TeamRepository) reindexLocked() {
	byDivision := make(map[string][]string, len(r.byDivision))
	for key, t := range r.items {
		byDivision[t.DivisionKey] = append(byDivision[t.DivisionKey], key)
	}
	for _, keys := range byDivision {
		sort.Slice(keys, func(i, j int) bool {
			return r.items[keys[i]].Number < r.items[keys[j]].Number
		})
	}
	r.byDivision = byDivision
}
