package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/champsline/bracket-league/internal/domain/scoring"
	"github.com/champsline/bracket-league/internal/domain/team"
	"github.com/champsline/bracket-league/internal/infrastructure/repository/memory"
	"github.com/champsline/bracket-league/internal/platform/cache"
	"github.com/champsline/bracket-league/internal/platform/id"
	"github.com/champsline/bracket-league/internal/platform/logging"
	"github.com/champsline/bracket-league/internal/usecase"
)

const testJobToken = "job-secret"

type fixedFetcher struct {
	rankings  []scoring.Ranking
	matches   []scoring.PlayoffMatch
	alliances []scoring.AllianceResult
}

func (f fixedFetcher) EventRankings(context.Context, string) ([]scoring.Ranking, error) {
	return f.rankings, nil
}

func (f fixedFetcher) EventPlayoffMatches(context.Context, string) ([]scoring.PlayoffMatch, error) {
	return f.matches, nil
}

func (f fixedFetcher) EventAlliances(context.Context, string) ([]scoring.AllianceResult, error) {
	return f.alliances, nil
}

func (f fixedFetcher) Teams(context.Context, int) ([]team.Team, error) {
	return nil, nil
}

func (f fixedFetcher) EventTeamKeys(context.Context, string) ([]string, error) {
	return nil, nil
}

func carverFetcher() fixedFetcher {
	levels := []scoring.Level{
		scoring.LevelWinner, scoring.LevelFinal,
		scoring.LevelSemiFinal, scoring.LevelSemiFinal,
		scoring.LevelQuarterFinal, scoring.LevelQuarterFinal,
		scoring.LevelQuarterFinal, scoring.LevelQuarterFinal,
	}
	alliances := make([]scoring.AllianceResult, 0, 8)
	for i := 0; i < 8; i++ {
		alliances = append(alliances, scoring.AllianceResult{
			PickKeys: []string{
				fmt.Sprintf("frc%d", 100+2*i),
				fmt.Sprintf("frc%d", 101+2*i),
			},
			Level: levels[i],
		})
	}

	return fixedFetcher{
		rankings: []scoring.Ranking{
			{TeamKey: "frc100", Rank: 1, AvgMatchScore: 100.2},
			{TeamKey: "frc101", Rank: 2, AvgMatchScore: 95.0},
		},
		matches: []scoring.PlayoffMatch{
			{
				CompLevel: scoring.LevelFinal,
				Red:       scoring.MatchSide{TeamKeys: []string{"frc100", "frc101"}, Score: 90},
				Blue:      scoring.MatchSide{TeamKeys: []string{"frc102", "frc103"}, Score: 80},
			},
		},
		alliances: alliances,
	}
}

func seedCarverTeams() []team.Team {
	teams := make([]team.Team, 0, 16)
	for i := 0; i < 16; i++ {
		teams = append(teams, team.Team{
			Key:         fmt.Sprintf("frc%d", 100+i),
			Number:      100 + i,
			Name:        fmt.Sprintf("Team %d", 100+i),
			DivisionKey: "2022carv",
		})
	}
	return teams
}

func newTestRouter(t *testing.T, lockAt time.Time) http.Handler {
	t.Helper()

	divisionRepo := memory.NewDivisionRepository(memory.SeedDivisions(), memory.SeedMatchups())
	teamRepo := memory.NewTeamRepository(seedCarverTeams())
	predictionRepo := memory.NewPredictionRepository()
	scoreRepo := memory.NewScoreRepository()

	predictionService := usecase.NewPredictionService(predictionRepo, teamRepo, divisionRepo, lockAt)
	scoringService := usecase.NewScoringService(
		carverFetcher(), predictionRepo, scoreRepo, divisionRepo,
		id.NewRandomGenerator(), cache.NewStore(time.Minute), 4, logging.NewNop(),
	)
	leaderboardService := usecase.NewLeaderboardService(scoreRepo)
	divisionService := usecase.NewDivisionService(divisionRepo, teamRepo)
	rosterService := usecase.NewRosterService(carverFetcher(), teamRepo, divisionRepo, logging.NewNop())

	handler := NewHandler(divisionService, predictionService, scoringService, leaderboardService, rosterService, logging.NewNop())
	return NewRouter(handler, logging.NewNop(), []string{"*"}, testJobToken)
}

func perfectDivisionPredictionBody(t *testing.T) []byte {
	t.Helper()

	req := divisionPredictionRequest{
		AvgQualMatchScore:    100,
		AvgPlayoffMatchScore: 90,
		BracketSlots:         []int{1, 2, 3, 4, 1, 2, 1},
	}
	for i := 0; i < 8; i++ {
		req.Alliances = append(req.Alliances, allianceRequest{
			Captain:   fmt.Sprintf("frc%d", 100+2*i),
			FirstPick: fmt.Sprintf("frc%d", 101+2*i),
		})
	}

	body, err := sonic.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return body
}

func doJSON(t *testing.T, router http.Handler, method, path, userID string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func doInternalJob(t *testing.T, router http.Handler, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var envelope struct {
		APIVersion string `json:"apiVersion"`
		Data       T      `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v (body: %s)", err, rec.Body.String())
	}
	return envelope.Data
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t, time.Time{})

	rec := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data := decodeData[map[string]string](t, rec)
	if data["status"] != "ok" {
		t.Fatalf("unexpected health payload: %+v", data)
	}
}

func TestRouter_DivisionsAndMatchups(t *testing.T) {
	router := newTestRouter(t, time.Time{})

	rec := doJSON(t, router, http.MethodGet, "/v1/divisions", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	divisions := decodeData[[]divisionDTO](t, rec)
	if len(divisions) != 6 {
		t.Fatalf("expected 6 divisions, got %d", len(divisions))
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/divisions/2022carv/teams", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	teams := decodeData[[]teamDTO](t, rec)
	if len(teams) != 16 {
		t.Fatalf("expected 16 teams, got %d", len(teams))
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/divisions/2022xyz/teams", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/einstein/matchups", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	matchups := decodeData[[]matchupDTO](t, rec)
	if len(matchups) != 15 {
		t.Fatalf("expected 15 matchups, got %d", len(matchups))
	}
}

func TestRouter_SaveAndGetDivisionPrediction(t *testing.T) {
	router := newTestRouter(t, time.Time{})
	body := perfectDivisionPredictionBody(t)

	rec := doJSON(t, router, http.MethodPut, "/v1/predictions/divisions/2022carv", "user-1", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/predictions/divisions/2022carv", "user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	got := decodeData[divisionPredictionDTO](t, rec)
	if got.UserID != "user-1" || got.DivisionKey != "2022carv" {
		t.Fatalf("unexpected prediction identity: %+v", got)
	}
	if got.AvgQualMatchScore != 100 {
		t.Fatalf("unexpected qual estimate: %v", got.AvgQualMatchScore)
	}
	if len(got.BracketSlots) != 7 || got.BracketSlots[6] != 1 {
		t.Fatalf("unexpected bracket slots: %+v", got.BracketSlots)
	}

	t.Run("missing user header", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/v1/predictions/divisions/2022carv", "", body)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("invalid payload", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/v1/predictions/divisions/2022carv", "user-1", []byte(`{"avgQualMatchScore": "oops"}`))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("unknown division", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/v1/predictions/divisions/2022xyz", "user-1", body)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})

	t.Run("prediction not found", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/v1/predictions/divisions/2022carv", "user-2", nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})
}

func TestRouter_LockedPredictionsConflict(t *testing.T) {
	router := newTestRouter(t, time.Now().Add(-time.Hour))
	body := perfectDivisionPredictionBody(t)

	rec := doJSON(t, router, http.MethodPut, "/v1/predictions/divisions/2022carv", "user-1", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestRouter_ScoringFlow(t *testing.T) {
	router := newTestRouter(t, time.Time{})

	body := perfectDivisionPredictionBody(t)
	rec := doJSON(t, router, http.MethodPut, "/v1/predictions/divisions/2022carv", "user-1", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("save prediction: expected status 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	einsteinBody, err := sonic.Marshal(einsteinPredictionRequest{
		AvgAllianceHangarPoints: 23,
		AvgFinalsMatchScore:     96,
		Picks: []string{
			"2022carv", "2022carv", "2022carv", "2022carv", "2022carv",
			"2022carv", "2022carv", "2022carv", "2022carv", "2022carv",
			"2022carv", "2022carv", "2022carv", "2022carv", "2022carv",
		},
		FirstSeed:  "2022carv",
		SecondSeed: "2022tur",
		Winner:     "2022tur",
	})
	if err != nil {
		t.Fatalf("marshal einstein prediction: %v", err)
	}
	rec = doJSON(t, router, http.MethodPut, "/v1/predictions/einstein", "user-1", einsteinBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("save einstein prediction: expected status 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	t.Run("job without token rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/v1/internal/jobs/score-divisions/2022carv", "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
	})

	rec = doInternalJob(t, router, "/v1/internal/jobs/score-divisions/2022carv", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("score division job: expected status 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	jobResult := decodeData[scoringJobResultDTO](t, rec)
	if jobResult.Scored != 1 {
		t.Fatalf("expected 1 scored prediction, got %d", jobResult.Scored)
	}

	resultsBody, err := sonic.Marshal(einsteinResultsRequest{
		AvgAllianceHangarPoints: 23,
		AvgFinalsMatchScore:     96,
		RoundRobinWinners: []string{
			"2022carv", "2022carv", "2022carv", "2022carv", "2022carv",
			"2022carv", "2022carv", "2022carv", "2022carv", "2022carv",
			"2022carv", "2022carv", "2022carv", "2022carv", "2022carv",
		},
		FirstSeed:  "2022carv",
		SecondSeed: "2022tur",
		Winner:     "2022tur",
	})
	if err != nil {
		t.Fatalf("marshal einstein results: %v", err)
	}
	rec = doInternalJob(t, router, "/v1/internal/jobs/score-einstein", resultsBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("score einstein job: expected status 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = doInternalJob(t, router, "/v1/internal/jobs/recompute-global", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("recompute global job: expected status 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/leaderboard/divisions/2022carv", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("division leaderboard: expected status 200, got %d", rec.Code)
	}
	divisionRows := decodeData[[]divisionScoreDTO](t, rec)
	if len(divisionRows) != 1 {
		t.Fatalf("expected 1 division score row, got %d", len(divisionRows))
	}
	if divisionRows[0].Sum != 360 {
		t.Fatalf("unexpected division score sum: %d", divisionRows[0].Sum)
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/leaderboard/einstein", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("einstein leaderboard: expected status 200, got %d", rec.Code)
	}
	einsteinRows := decodeData[[]einsteinScoreDTO](t, rec)
	if len(einsteinRows) != 1 {
		t.Fatalf("expected 1 einstein score row, got %d", len(einsteinRows))
	}
	if einsteinRows[0].Sum != 505 {
		t.Fatalf("unexpected einstein score sum: %d", einsteinRows[0].Sum)
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/leaderboard?limit=10", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("global leaderboard: expected status 200, got %d", rec.Code)
	}
	globalRows := decodeData[[]globalScoreDTO](t, rec)
	if len(globalRows) != 1 {
		t.Fatalf("expected 1 global score row, got %d", len(globalRows))
	}
	if globalRows[0].Sum != 865 {
		t.Fatalf("unexpected global score sum: %d", globalRows[0].Sum)
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/scores/me", "user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("my scores: expected status 200, got %d", rec.Code)
	}
	myScores := decodeData[userScoresDTO](t, rec)
	if len(myScores.Divisions) != 1 {
		t.Fatalf("expected 1 division score, got %d", len(myScores.Divisions))
	}
	if myScores.Global == nil || myScores.Global.Sum != 865 {
		t.Fatalf("unexpected global score: %+v", myScores.Global)
	}
}

func TestRouter_GlobalLeaderboardInvalidLimit(t *testing.T) {
	router := newTestRouter(t, time.Time{})

	rec := doJSON(t, router, http.MethodGet, "/v1/leaderboard?limit=zero", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
