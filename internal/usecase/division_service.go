package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/champsline/bracket-league/internal/domain/division"
	"github.com/champsline/bracket-league/internal/domain/team"
)

// DivisionService serves the championship reference data: divisions, their
// team lists, and the round-robin schedule.
type DivisionService struct {
	divisionRepo division.Repository
	teamRepo     team.Repository
}

func NewDivisionService(divisionRepo division.Repository, teamRepo team.Repository) *DivisionService {
	return &DivisionService{divisionRepo: divisionRepo, teamRepo: teamRepo}
}

func (s *DivisionService) List(ctx context.Context) ([]division.Division, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DivisionService.List")
	defer span.End()

	items, err := s.divisionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list divisions: %w", err)
	}
	return items, nil
}

func (s *DivisionService) Get(ctx context.Context, key string) (division.Division, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DivisionService.Get")
	defer span.End()

	key = strings.TrimSpace(key)
	if key == "" {
		return division.Division{}, fmt.Errorf("%w: division key is required", ErrInvalidInput)
	}

	item, exists, err := s.divisionRepo.GetByKey(ctx, key)
	if err != nil {
		return division.Division{}, fmt.Errorf("get division %s: %w", key, err)
	}
	if !exists {
		return division.Division{}, fmt.Errorf("%w: division %s", ErrNotFound, key)
	}
	return item, nil
}

func (s *DivisionService) Teams(ctx context.Context, divisionKey string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DivisionService.Teams")
	defer span.End()

	divisionKey = strings.TrimSpace(divisionKey)
	if divisionKey == "" {
		return nil, fmt.Errorf("%w: division key is required", ErrInvalidInput)
	}

	_, exists, err := s.divisionRepo.GetByKey(ctx, divisionKey)
	if err != nil {
		return nil, fmt.Errorf("get division %s: %w", divisionKey, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: division %s", ErrNotFound, divisionKey)
	}

	teams, err := s.teamRepo.ListByDivision(ctx, divisionKey)
	if err != nil {
		return nil, fmt.Errorf("list teams for %s: %w", divisionKey, err)
	}
	return teams, nil
}

func (s *DivisionService) Matchups(ctx context.Context) ([]division.Matchup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DivisionService.Matchups")
	defer span.End()

	items, err := s.divisionRepo.ListMatchups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matchups: %w", err)
	}
	return items, nil
}
