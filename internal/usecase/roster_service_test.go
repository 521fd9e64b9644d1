package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/champsline/bracket-league/internal/domain/team"
	"github.com/champsline/bracket-league/internal/infrastructure/repository/memory"
	"github.com/champsline/bracket-league/internal/platform/logging"
)

type fakeTeamFetcher struct {
	pages   [][]team.Team
	rosters map[string][]string
	err     error
}

func (f *fakeTeamFetcher) Teams(_ context.Context, page int) ([]team.Team, error) {
	if f.err != nil {
		return nil, f.err
	}
	if page >= len(f.pages) {
		return nil, nil
	}
	return f.pages[page], nil
}

func (f *fakeTeamFetcher) EventTeamKeys(_ context.Context, eventKey string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rosters[eventKey], nil
}

func TestRosterService_SyncTeams(t *testing.T) {
	t.Parallel()

	fetcher := &fakeTeamFetcher{
		pages: [][]team.Team{
			{
				{Key: "frc254", Number: 254, Name: "The Cheesy Poofs"},
				{Key: "frc1678", Number: 1678, Name: "Citrus Circuits"},
			},
			{
				{Key: "frc2910", Number: 2910, Name: "Jack in the Bot"},
			},
		},
	}
	teamRepo := memory.NewTeamRepository(nil)
	service := NewRosterService(fetcher, teamRepo, memory.NewDivisionRepository(memory.SeedDivisions(), memory.SeedMatchups()), logging.NewNop())

	stored, err := service.SyncTeams(context.Background())
	if err != nil {
		t.Fatalf("sync teams: %v", err)
	}
	if stored != 3 {
		t.Fatalf("stored = %d, want 3", stored)
	}

	got, exists, err := teamRepo.GetByKey(context.Background(), "frc2910")
	if err != nil || !exists {
		t.Fatalf("expected frc2910 stored, exists=%t err=%v", exists, err)
	}
	if got.Name != "Jack in the Bot" {
		t.Fatalf("unexpected team: %+v", got)
	}
}

func TestRosterService_SyncTeams_FetchError(t *testing.T) {
	t.Parallel()

	fetchErr := errors.New("provider down")
	service := NewRosterService(
		&fakeTeamFetcher{err: fetchErr},
		memory.NewTeamRepository(nil),
		memory.NewDivisionRepository(memory.SeedDivisions(), memory.SeedMatchups()),
		logging.NewNop(),
	)

	if _, err := service.SyncTeams(context.Background()); !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestRosterService_SyncDivisionRosters(t *testing.T) {
	t.Parallel()

	teamRepo := memory.NewTeamRepository([]team.Team{
		{Key: "frc254", Number: 254, Name: "The Cheesy Poofs"},
		{Key: "frc1678", Number: 1678, Name: "Citrus Circuits"},
		{Key: "frc2910", Number: 2910, Name: "Jack in the Bot"},
	})
	fetcher := &fakeTeamFetcher{
		rosters: map[string][]string{
			"2022carv": {"frc254", "frc9999"},
			"2022gal":  {"frc1678", "frc2910"},
		},
	}
	service := NewRosterService(fetcher, teamRepo, memory.NewDivisionRepository(memory.SeedDivisions(), memory.SeedMatchups()), logging.NewNop())

	assigned, err := service.SyncDivisionRosters(context.Background())
	if err != nil {
		t.Fatalf("sync rosters: %v", err)
	}
	if assigned != 3 {
		t.Fatalf("assigned = %d, want 3 (unknown keys skipped)", assigned)
	}

	carver, err := teamRepo.ListByDivision(context.Background(), "2022carv")
	if err != nil {
		t.Fatalf("list carver: %v", err)
	}
	if len(carver) != 1 || carver[0].Key != "frc254" {
		t.Fatalf("carver roster = %+v", carver)
	}

	galileo, err := teamRepo.ListKeysByDivision(context.Background(), "2022gal")
	if err != nil {
		t.Fatalf("list galileo keys: %v", err)
	}
	if len(galileo) != 2 || galileo[0] != "frc1678" || galileo[1] != "frc2910" {
		t.Fatalf("galileo roster = %v", galileo)
	}
}
