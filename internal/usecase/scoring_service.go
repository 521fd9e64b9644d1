package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	ants "github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/champsline/bracket-league/internal/domain/division"
	"github.com/champsline/bracket-league/internal/domain/prediction"
	"github.com/champsline/bracket-league/internal/domain/scoring"
	"github.com/champsline/bracket-league/internal/platform/cache"
	"github.com/champsline/bracket-league/internal/platform/id"
	"github.com/champsline/bracket-league/internal/platform/logging"
)

const defaultScoringWorkers = 8

// DivisionDataFetcher provides canonical competition results for one
// division event.
type DivisionDataFetcher interface {
	EventRankings(ctx context.Context, eventKey string) ([]scoring.Ranking, error)
	EventPlayoffMatches(ctx context.Context, eventKey string) ([]scoring.PlayoffMatch, error)
	EventAlliances(ctx context.Context, eventKey string) ([]scoring.AllianceResult, error)
}

// ScoringService runs the contest scoring pipeline: fetch division results,
// score every submitted prediction, and fold the outcomes into global
// standings. Runs are idempotent; each replaces the prior rows for its
// scope.
type ScoringService struct {
	fetcher        DivisionDataFetcher
	predictionRepo prediction.Repository
	scoreRepo      scoring.Repository
	divisionRepo   division.Repository
	ids            id.Generator
	resultsCache   *cache.Store
	workers        int
	now            func() time.Time
	logger         *logging.Logger
}

func NewScoringService(
	fetcher DivisionDataFetcher,
	predictionRepo prediction.Repository,
	scoreRepo scoring.Repository,
	divisionRepo division.Repository,
	ids id.Generator,
	resultsCache *cache.Store,
	workers int,
	logger *logging.Logger,
) *ScoringService {
	if workers < 1 {
		workers = defaultScoringWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		fetcher:        fetcher,
		predictionRepo: predictionRepo,
		scoreRepo:      scoreRepo,
		divisionRepo:   divisionRepo,
		ids:            ids,
		resultsCache:   resultsCache,
		workers:        workers,
		now:            time.Now,
		logger:         logger,
	}
}

// FetchDivisionResults loads a division's canonical results, fanning the
// three provider reads out concurrently. Results are cached so repeated
// scoring runs inside the cache window do not hit the provider again.
func (s *ScoringService) FetchDivisionResults(ctx context.Context, divisionKey string) (scoring.DivisionResults, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.FetchDivisionResults")
	defer span.End()

	divisionKey = strings.TrimSpace(divisionKey)
	if divisionKey == "" {
		return scoring.DivisionResults{}, fmt.Errorf("%w: division key is required", ErrInvalidInput)
	}

	load := func(ctx context.Context) (any, error) {
		results := scoring.DivisionResults{DivisionKey: divisionKey}

		p := pool.New().WithContext(ctx).WithCancelOnError()
		p.Go(func(ctx context.Context) error {
			rankings, err := s.fetcher.EventRankings(ctx, divisionKey)
			if err != nil {
				return err
			}
			results.Rankings = rankings
			return nil
		})
		p.Go(func(ctx context.Context) error {
			matches, err := s.fetcher.EventPlayoffMatches(ctx, divisionKey)
			if err != nil {
				return err
			}
			results.PlayoffMatches = matches
			return nil
		})
		p.Go(func(ctx context.Context) error {
			alliances, err := s.fetcher.EventAlliances(ctx, divisionKey)
			if err != nil {
				return err
			}
			results.Alliances = alliances
			return nil
		})
		if err := p.Wait(); err != nil {
			return nil, fmt.Errorf("fetch division results division=%s: %w", divisionKey, err)
		}
		return results, nil
	}

	var out any
	var err error
	if s.resultsCache != nil {
		out, err = s.resultsCache.GetOrLoad(ctx, "division-results:"+divisionKey, load)
	} else {
		out, err = load(ctx)
	}
	if err != nil {
		return scoring.DivisionResults{}, err
	}

	results, ok := out.(scoring.DivisionResults)
	if !ok {
		return scoring.DivisionResults{}, fmt.Errorf("unexpected cached results type %T", out)
	}
	return results, nil
}

// ScoreDivision scores every prediction submitted for one division and
// replaces that division's stored score rows. It returns the number of
// predictions scored.
func (s *ScoringService) ScoreDivision(ctx context.Context, divisionKey string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreDivision")
	defer span.End()

	divisionKey = strings.TrimSpace(divisionKey)
	if divisionKey == "" {
		return 0, fmt.Errorf("%w: division key is required", ErrInvalidInput)
	}
	_, exists, err := s.divisionRepo.GetByKey(ctx, divisionKey)
	if err != nil {
		return 0, fmt.Errorf("get division: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: division=%s", ErrNotFound, divisionKey)
	}

	results, err := s.FetchDivisionResults(ctx, divisionKey)
	if err != nil {
		return 0, err
	}

	predictions, err := s.predictionRepo.ListDivision(ctx, divisionKey)
	if err != nil {
		return 0, fmt.Errorf("list division predictions: %w", err)
	}

	scores := make([]scoring.DivisionScore, len(predictions))
	workerPool, err := ants.NewPool(s.workers)
	if err != nil {
		return 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for i, p := range predictions {
		i, p := i, p
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()
			scores[i] = scoring.ScoreDivision(p, results)
		}); err != nil {
			workers.Done()
			return 0, fmt.Errorf("submit scoring task: %w", err)
		}
	}
	workers.Wait()

	scoredAt := s.now().UTC()
	records := make([]scoring.DivisionScoreRecord, 0, len(scores))
	for _, sc := range scores {
		recordID, err := s.ids.NewID()
		if err != nil {
			return 0, fmt.Errorf("generate score id: %w", err)
		}
		records = append(records, scoring.DivisionScoreRecord{
			ID:            recordID,
			UserID:        sc.UserID,
			DivisionKey:   sc.DivisionKey,
			QualScore:     sc.QualScore,
			PlayoffScore:  sc.PlayoffScore,
			AllianceScore: sc.AllianceScore,
			BracketScore:  sc.BracketScore,
			Sum:           sc.Sum,
			ScoredAt:      scoredAt,
		})
	}

	if err := s.scoreRepo.ReplaceDivisionScores(ctx, divisionKey, records); err != nil {
		return 0, fmt.Errorf("replace division scores: %w", err)
	}

	s.logger.InfoContext(ctx, "division scored",
		"division_key", divisionKey,
		"predictions", len(records),
	)
	return len(records), nil
}

// ScoreAllDivisions scores every division in turn and returns the total
// number of predictions scored.
func (s *ScoringService) ScoreAllDivisions(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreAllDivisions")
	defer span.End()

	divisions, err := s.divisionRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list divisions: %w", err)
	}

	total := 0
	for _, d := range divisions {
		count, err := s.ScoreDivision(ctx, d.Key)
		if err != nil {
			return total, fmt.Errorf("score division %s: %w", d.Key, err)
		}
		total += count
	}
	return total, nil
}

// ScoreEinstein scores every championship prediction against the supplied
// results and replaces the stored rows.
func (s *ScoringService) ScoreEinstein(ctx context.Context, results scoring.EinsteinResults) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreEinstein")
	defer span.End()

	predictions, err := s.predictionRepo.ListEinstein(ctx)
	if err != nil {
		return 0, fmt.Errorf("list einstein predictions: %w", err)
	}

	scoredAt := s.now().UTC()
	records := make([]scoring.EinsteinScoreRecord, 0, len(predictions))
	for _, p := range predictions {
		sc := scoring.ScoreEinstein(p, results)
		recordID, err := s.ids.NewID()
		if err != nil {
			return 0, fmt.Errorf("generate score id: %w", err)
		}
		records = append(records, scoring.EinsteinScoreRecord{
			ID:              recordID,
			UserID:          sc.UserID,
			HangarScore:     sc.HangarScore,
			FinalsScore:     sc.FinalsScore,
			RoundRobinScore: sc.RoundRobinScore,
			FirstSeedScore:  sc.FirstSeedScore,
			SecondSeedScore: sc.SecondSeedScore,
			WinnerScore:     sc.WinnerScore,
			Sum:             sc.Sum,
			ScoredAt:        scoredAt,
		})
	}

	if err := s.scoreRepo.ReplaceEinsteinScores(ctx, records); err != nil {
		return 0, fmt.Errorf("replace einstein scores: %w", err)
	}

	s.logger.InfoContext(ctx, "einstein scored", "predictions", len(records))
	return len(records), nil
}

// RecomputeGlobalScores rebuilds the overall standings from the stored
// division and championship score rows. Division and einstein scoring must
// run first; a user missing one kind simply contributes zero for it.
func (s *ScoringService) RecomputeGlobalScores(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecomputeGlobalScores")
	defer span.End()

	divisions, err := s.divisionRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list divisions: %w", err)
	}

	divisionScores := make([]scoring.DivisionScore, 0, 64)
	for _, d := range divisions {
		rows, err := s.scoreRepo.ListDivisionScores(ctx, d.Key)
		if err != nil {
			return 0, fmt.Errorf("list division scores division=%s: %w", d.Key, err)
		}
		for _, row := range rows {
			divisionScores = append(divisionScores, scoring.DivisionScore{
				UserID:      row.UserID,
				DivisionKey: row.DivisionKey,
				Sum:         row.Sum,
			})
		}
	}

	einsteinRows, err := s.scoreRepo.ListEinsteinScores(ctx)
	if err != nil {
		return 0, fmt.Errorf("list einstein scores: %w", err)
	}
	einsteinScores := make([]scoring.EinsteinScore, 0, len(einsteinRows))
	for _, row := range einsteinRows {
		einsteinScores = append(einsteinScores, scoring.EinsteinScore{
			UserID: row.UserID,
			Sum:    row.Sum,
		})
	}

	globals := scoring.AggregateGlobal(divisionScores, einsteinScores)
	scoredAt := s.now().UTC()
	records := make([]scoring.GlobalScoreRecord, 0, len(globals))
	for _, g := range globals {
		recordID, err := s.ids.NewID()
		if err != nil {
			return 0, fmt.Errorf("generate score id: %w", err)
		}
		records = append(records, scoring.GlobalScoreRecord{
			ID:            recordID,
			UserID:        g.UserID,
			DivisionTotal: g.DivisionTotal,
			EinsteinTotal: g.EinsteinTotal,
			Sum:           g.Sum,
			ScoredAt:      scoredAt,
		})
	}

	if err := s.scoreRepo.ReplaceGlobalScores(ctx, records); err != nil {
		return 0, fmt.Errorf("replace global scores: %w", err)
	}

	s.logger.InfoContext(ctx, "global standings recomputed", "users", len(records))
	return len(records), nil
}
