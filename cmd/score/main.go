package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"

	"github.com/champsline/bracket-league/internal/app"
	"github.com/champsline/bracket-league/internal/config"
	"github.com/champsline/bracket-league/internal/domain/scoring"
	"github.com/champsline/bracket-league/internal/platform/logging"
)

// One-shot scoring run: score every division from fetched results, score
// Einstein when a results file is supplied, then fold everything into the
// global standings.
func main() {
	einsteinResultsPath := flag.String("einstein-results", "", "path to a JSON file with Einstein round robin and finals results")
	skipDivisions := flag.Bool("skip-divisions", false, "skip division scoring and only run the later stages")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := app.NewRepositories(cfg, logger)
	if err != nil {
		logger.Error("build repositories", "error", err)
		os.Exit(1)
	}
	defer func() { _ = closeRepos() }()

	services := app.NewServices(cfg, repos, app.NewTBAClient(cfg, logger), logger)

	if !*skipDivisions {
		scored, err := services.Scoring.ScoreAllDivisions(ctx)
		if err != nil {
			logger.Error("score divisions", "error", err)
			os.Exit(1)
		}
		logger.Info("division scoring finished", "scored", scored)
	}

	if *einsteinResultsPath != "" {
		results, err := loadEinsteinResults(*einsteinResultsPath)
		if err != nil {
			logger.Error("load einstein results", "path", *einsteinResultsPath, "error", err)
			os.Exit(1)
		}
		scored, err := services.Scoring.ScoreEinstein(ctx, results)
		if err != nil {
			logger.Error("score einstein", "error", err)
			os.Exit(1)
		}
		logger.Info("einstein scoring finished", "scored", scored)
	}

	updated, err := services.Scoring.RecomputeGlobalScores(ctx)
	if err != nil {
		logger.Error("recompute global scores", "error", err)
		os.Exit(1)
	}
	logger.Info("global standings updated", "users", updated)
}

func loadEinsteinResults(path string) (scoring.EinsteinResults, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return scoring.EinsteinResults{}, err
	}

	var payload struct {
		AvgAllianceHangarPoints float64  `json:"avgAllianceHangarPoints"`
		AvgFinalsMatchScore     float64  `json:"avgFinalsMatchScore"`
		RoundRobinWinners       []string `json:"roundRobinWinners"`
		FirstSeed               string   `json:"firstSeed"`
		SecondSeed              string   `json:"secondSeed"`
		Winner                  string   `json:"winner"`
	}
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return scoring.EinsteinResults{}, err
	}

	return scoring.EinsteinResults{
		AvgAllianceHangarPoints: payload.AvgAllianceHangarPoints,
		AvgFinalsMatchScore:     payload.AvgFinalsMatchScore,
		RoundRobinWinners:       payload.RoundRobinWinners,
		FirstSeed:               payload.FirstSeed,
		SecondSeed:              payload.SecondSeed,
		Winner:                  payload.Winner,
	}, nil
}
