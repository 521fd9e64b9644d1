package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/champsline/bracket-league/internal/domain/prediction"
)

type PredictionRepository struct {
	mu       sync.RWMutex
	division map[string]map[string]prediction.DivisionPrediction
	einstein map[string]prediction.EinsteinPrediction
}

func NewPredictionRepository() *PredictionRepository {
	return &PredictionRepository{
		division: make(map[string]map[string]prediction.DivisionPrediction),
		einstein: make(map[string]prediction.EinsteinPrediction),
	}
}

func (r *PredictionRepository) GetDivision(_ context.Context, userID, divisionKey string) (prediction.DivisionPrediction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.division[divisionKey][userID]
	if !ok {
		return prediction.DivisionPrediction{}, false, nil
	}

	return p, true, nil
}

func (r *PredictionRepository) UpsertDivision(_ context.Context, p prediction.DivisionPrediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byUser, ok := r.division[p.DivisionKey]
	if !ok {
		byUser = make(map[string]prediction.DivisionPrediction)
		r.division[p.DivisionKey] = byUser
	}
	byUser[p.UserID] = p

	return nil
}

func (r *PredictionRepository) ListDivision(_ context.Context, divisionKey string) ([]prediction.DivisionPrediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byUser := r.division[divisionKey]
	out := make([]prediction.DivisionPrediction, 0, len(byUser))
	for _, p := range byUser {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })

	return out, nil
}

func (r *PredictionRepository) GetEinstein(_ context.Context, userID string) (prediction.EinsteinPrediction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.einstein[userID]
	if !ok {
		return prediction.EinsteinPrediction{}, false, nil
	}

	return p, true, nil
}

func (r *PredictionRepository) UpsertEinstein(_ context.Context, p prediction.EinsteinPrediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.einstein[p.UserID] = p

	return nil
}

func (r *PredictionRepository) ListEinstein(_ context.Context) ([]prediction.EinsteinPrediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.EinsteinPrediction, 0, len(r.einstein))
	for _, p := range r.einstein {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })

	return out, nil
}
