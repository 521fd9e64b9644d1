package usecase

import (
	"context"
	"fmt"

	"github.com/champsline/bracket-league/internal/domain/division"
	"github.com/champsline/bracket-league/internal/domain/team"
	"github.com/champsline/bracket-league/internal/platform/logging"
)

// maxTeamDirectoryPages bounds the paged directory walk; the provider lists
// well under 50 pages of 500 teams.
const maxTeamDirectoryPages = 50

// TeamDataFetcher provides the competition team directory and per-event
// attendance lists.
type TeamDataFetcher interface {
	Teams(ctx context.Context, page int) ([]team.Team, error)
	EventTeamKeys(ctx context.Context, eventKey string) ([]string, error)
}

// RosterService refreshes team reference data from the competition provider:
// the full team directory, and which division event each team attends.
type RosterService struct {
	fetcher      TeamDataFetcher
	teamRepo     team.Repository
	divisionRepo division.Repository
	logger       *logging.Logger
}

func NewRosterService(
	fetcher TeamDataFetcher,
	teamRepo team.Repository,
	divisionRepo division.Repository,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterService{
		fetcher:      fetcher,
		teamRepo:     teamRepo,
		divisionRepo: divisionRepo,
		logger:       logger,
	}
}

// SyncTeams walks the provider's paged team directory and upserts every team,
// stopping at the first empty page. Returns the number of stored teams.
func (s *RosterService) SyncTeams(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SyncTeams")
	defer span.End()

	stored := 0
	for page := 0; page < maxTeamDirectoryPages; page++ {
		teams, err := s.fetcher.Teams(ctx, page)
		if err != nil {
			return stored, fmt.Errorf("fetch teams page %d: %w", page, err)
		}
		if len(teams) == 0 {
			break
		}

		for _, t := range teams {
			if err := s.teamRepo.Upsert(ctx, t); err != nil {
				return stored, fmt.Errorf("store team %s: %w", t.Key, err)
			}
			stored++
		}
		s.logger.InfoContext(ctx, "team directory page stored", "page", page, "teams", len(teams))
	}

	return stored, nil
}

// SyncDivisionRosters assigns stored teams to their championship division
// based on event attendance. Returns the number of assignments made.
func (s *RosterService) SyncDivisionRosters(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SyncDivisionRosters")
	defer span.End()

	divisions, err := s.divisionRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list divisions: %w", err)
	}

	assigned := 0
	for _, d := range divisions {
		keys, err := s.fetcher.EventTeamKeys(ctx, d.Key)
		if err != nil {
			return assigned, fmt.Errorf("fetch roster for %s: %w", d.Key, err)
		}

		count, err := s.teamRepo.AssignDivision(ctx, d.Key, keys)
		if err != nil {
			return assigned, fmt.Errorf("assign roster for %s: %w", d.Key, err)
		}
		assigned += count
		s.logger.InfoContext(ctx, "division roster assigned", "division", d.Key, "teams", count)
	}

	return assigned, nil
}
