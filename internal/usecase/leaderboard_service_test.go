package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/champsline/bracket-league/internal/domain/scoring"
	"github.com/champsline/bracket-league/internal/infrastructure/repository/memory"
)

func TestLeaderboardService_GlobalOrderingAndLimit(t *testing.T) {
	t.Parallel()

	scoreRepo := memory.NewScoreRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	records := []scoring.GlobalScoreRecord{
		{ID: "g1", UserID: "alice", DivisionTotal: 200, EinsteinTotal: 100, Sum: 300, ScoredAt: now},
		{ID: "g2", UserID: "bob", DivisionTotal: 250, EinsteinTotal: 200, Sum: 450, ScoredAt: now},
		{ID: "g3", UserID: "carol", DivisionTotal: 100, EinsteinTotal: 50, Sum: 150, ScoredAt: now},
	}
	if err := scoreRepo.ReplaceGlobalScores(ctx, records); err != nil {
		t.Fatalf("replace globals: %v", err)
	}

	service := NewLeaderboardService(scoreRepo)
	rows, err := service.Global(ctx, 2)
	if err != nil {
		t.Fatalf("global: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].UserID != "bob" || rows[1].UserID != "alice" {
		t.Fatalf("order = %s, %s; want bob, alice", rows[0].UserID, rows[1].UserID)
	}
}

func TestLeaderboardService_ForUser(t *testing.T) {
	t.Parallel()

	scoreRepo := memory.NewScoreRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := scoreRepo.ReplaceDivisionScores(ctx, "2022carv", []scoring.DivisionScoreRecord{
		{ID: "d1", UserID: "alice", DivisionKey: "2022carv", Sum: 120, ScoredAt: now},
	}); err != nil {
		t.Fatalf("replace division scores: %v", err)
	}
	if err := scoreRepo.ReplaceGlobalScores(ctx, []scoring.GlobalScoreRecord{
		{ID: "g1", UserID: "alice", DivisionTotal: 120, Sum: 120, ScoredAt: now},
	}); err != nil {
		t.Fatalf("replace globals: %v", err)
	}

	service := NewLeaderboardService(scoreRepo)
	got, err := service.ForUser(ctx, "alice")
	if err != nil {
		t.Fatalf("for user: %v", err)
	}
	if len(got.Divisions) != 1 || got.Divisions[0].DivisionKey != "2022carv" {
		t.Fatalf("divisions = %+v", got.Divisions)
	}
	if got.Global == nil || got.Global.Sum != 120 {
		t.Fatalf("global = %+v", got.Global)
	}

	missing, err := service.ForUser(ctx, "nobody")
	if err != nil {
		t.Fatalf("for unknown user: %v", err)
	}
	if missing.Global != nil || len(missing.Divisions) != 0 {
		t.Fatalf("unknown user scores = %+v", missing)
	}

	if _, err := service.ForUser(ctx, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
