package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/champsline/bracket-league/internal/domain/division"
	"github.com/champsline/bracket-league/internal/domain/prediction"
	"github.com/champsline/bracket-league/internal/domain/team"
)

// PredictionService accepts and serves contest entries. Submissions are
// rejected once the lock time passes; reads keep working so users can review
// their picks during the event.
type PredictionService struct {
	predictionRepo prediction.Repository
	teamRepo       team.Repository
	divisionRepo   division.Repository
	lockAt         time.Time
	now            func() time.Time
}

func NewPredictionService(
	predictionRepo prediction.Repository,
	teamRepo team.Repository,
	divisionRepo division.Repository,
	lockAt time.Time,
) *PredictionService {
	return &PredictionService{
		predictionRepo: predictionRepo,
		teamRepo:       teamRepo,
		divisionRepo:   divisionRepo,
		lockAt:         lockAt,
		now:            time.Now,
	}
}

func (s *PredictionService) SubmitDivisionPrediction(ctx context.Context, p prediction.DivisionPrediction) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.SubmitDivisionPrediction")
	defer span.End()

	if err := s.checkSubmittable(p.UserID); err != nil {
		return err
	}
	p.DivisionKey = strings.TrimSpace(p.DivisionKey)
	if p.DivisionKey == "" {
		return fmt.Errorf("%w: division key is required", ErrInvalidInput)
	}

	_, exists, err := s.divisionRepo.GetByKey(ctx, p.DivisionKey)
	if err != nil {
		return fmt.Errorf("get division: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: division=%s", ErrNotFound, p.DivisionKey)
	}

	keys, err := s.teamRepo.ListKeysByDivision(ctx, p.DivisionKey)
	if err != nil {
		return fmt.Errorf("list division team keys: %w", err)
	}
	validKeys := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		validKeys[key] = struct{}{}
	}

	if err := prediction.ValidateDivisionPrediction(p, validKeys); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.predictionRepo.UpsertDivision(ctx, p); err != nil {
		return fmt.Errorf("upsert division prediction: %w", err)
	}
	return nil
}

func (s *PredictionService) GetDivisionPrediction(ctx context.Context, userID, divisionKey string) (prediction.DivisionPrediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.GetDivisionPrediction")
	defer span.End()

	userID = strings.TrimSpace(userID)
	divisionKey = strings.TrimSpace(divisionKey)
	if userID == "" {
		return prediction.DivisionPrediction{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if divisionKey == "" {
		return prediction.DivisionPrediction{}, fmt.Errorf("%w: division key is required", ErrInvalidInput)
	}

	p, exists, err := s.predictionRepo.GetDivision(ctx, userID, divisionKey)
	if err != nil {
		return prediction.DivisionPrediction{}, fmt.Errorf("get division prediction: %w", err)
	}
	if !exists {
		return prediction.DivisionPrediction{}, fmt.Errorf("%w: division prediction user=%s division=%s", ErrNotFound, userID, divisionKey)
	}
	return p, nil
}

func (s *PredictionService) SubmitEinsteinPrediction(ctx context.Context, p prediction.EinsteinPrediction) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.SubmitEinsteinPrediction")
	defer span.End()

	if err := s.checkSubmittable(p.UserID); err != nil {
		return err
	}

	divisions, err := s.divisionRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list divisions: %w", err)
	}
	validKeys := make(map[string]struct{}, len(divisions))
	for _, d := range divisions {
		validKeys[d.Key] = struct{}{}
	}

	if err := prediction.ValidateEinsteinPrediction(p, validKeys); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.predictionRepo.UpsertEinstein(ctx, p); err != nil {
		return fmt.Errorf("upsert einstein prediction: %w", err)
	}
	return nil
}

func (s *PredictionService) GetEinsteinPrediction(ctx context.Context, userID string) (prediction.EinsteinPrediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.GetEinsteinPrediction")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return prediction.EinsteinPrediction{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	p, exists, err := s.predictionRepo.GetEinstein(ctx, userID)
	if err != nil {
		return prediction.EinsteinPrediction{}, fmt.Errorf("get einstein prediction: %w", err)
	}
	if !exists {
		return prediction.EinsteinPrediction{}, fmt.Errorf("%w: einstein prediction user=%s", ErrNotFound, userID)
	}
	return p, nil
}

// Locked reports whether the submission window has closed.
func (s *PredictionService) Locked() bool {
	return !s.lockAt.IsZero() && s.now().After(s.lockAt)
}

func (s *PredictionService) checkSubmittable(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if s.Locked() {
		return fmt.Errorf("%w: lock_at=%s", ErrPredictionsLocked, s.lockAt.UTC().Format(time.RFC3339))
	}
	return nil
}
