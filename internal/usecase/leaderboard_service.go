package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/champsline/bracket-league/internal/domain/scoring"
)

const defaultLeaderboardLimit = 100

// LeaderboardService serves scored standings for display.
type LeaderboardService struct {
	scoreRepo scoring.Repository
}

func NewLeaderboardService(scoreRepo scoring.Repository) *LeaderboardService {
	return &LeaderboardService{scoreRepo: scoreRepo}
}

func (s *LeaderboardService) Global(ctx context.Context, limit int) ([]scoring.GlobalScoreRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Global")
	defer span.End()

	if limit < 1 {
		limit = defaultLeaderboardLimit
	}
	rows, err := s.scoreRepo.ListGlobalScores(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list global scores: %w", err)
	}
	return rows, nil
}

func (s *LeaderboardService) Division(ctx context.Context, divisionKey string) ([]scoring.DivisionScoreRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Division")
	defer span.End()

	divisionKey = strings.TrimSpace(divisionKey)
	if divisionKey == "" {
		return nil, fmt.Errorf("%w: division key is required", ErrInvalidInput)
	}
	rows, err := s.scoreRepo.ListDivisionScores(ctx, divisionKey)
	if err != nil {
		return nil, fmt.Errorf("list division scores: %w", err)
	}
	return rows, nil
}

func (s *LeaderboardService) Einstein(ctx context.Context) ([]scoring.EinsteinScoreRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Einstein")
	defer span.End()

	rows, err := s.scoreRepo.ListEinsteinScores(ctx)
	if err != nil {
		return nil, fmt.Errorf("list einstein scores: %w", err)
	}
	return rows, nil
}

// UserScores is a user's full scored breakdown across the contest.
type UserScores struct {
	Divisions []scoring.DivisionScoreRecord
	Global    *scoring.GlobalScoreRecord
}

func (s *LeaderboardService) ForUser(ctx context.Context, userID string) (UserScores, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.ForUser")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return UserScores{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	divisions, err := s.scoreRepo.ListDivisionScoresByUser(ctx, userID)
	if err != nil {
		return UserScores{}, fmt.Errorf("list division scores by user: %w", err)
	}

	out := UserScores{Divisions: divisions}
	global, exists, err := s.scoreRepo.GetGlobalScore(ctx, userID)
	if err != nil {
		return UserScores{}, fmt.Errorf("get global score: %w", err)
	}
	if exists {
		out.Global = &global
	}
	return out, nil
}
