package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/champsline/bracket-league/external/tba"
	"github.com/champsline/bracket-league/internal/config"
	"github.com/champsline/bracket-league/internal/domain/division"
	"github.com/champsline/bracket-league/internal/domain/prediction"
	"github.com/champsline/bracket-league/internal/domain/scoring"
	"github.com/champsline/bracket-league/internal/domain/team"
	"github.com/champsline/bracket-league/internal/infrastructure/repository/memory"
	"github.com/champsline/bracket-league/internal/infrastructure/repository/postgres"
	"github.com/champsline/bracket-league/internal/interfaces/httpapi"
	"github.com/champsline/bracket-league/internal/platform/cache"
	idgen "github.com/champsline/bracket-league/internal/platform/id"
	"github.com/champsline/bracket-league/internal/platform/logging"
	"github.com/champsline/bracket-league/internal/platform/resilience"
	"github.com/champsline/bracket-league/internal/usecase"
)

// Repositories bundles the persistence implementations behind the services.
type Repositories struct {
	Divisions   division.Repository
	Teams       team.Repository
	Predictions prediction.Repository
	Scores      scoring.Repository
}

// Services is the assembled use-case layer.
type Services struct {
	Division    *usecase.DivisionService
	Prediction  *usecase.PredictionService
	Scoring     *usecase.ScoringService
	Leaderboard *usecase.LeaderboardService
	Roster      *usecase.RosterService
}

// OpenDB opens a traced connection pool against the configured database.
func OpenDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return db, nil
}

// NewRepositories selects the backing store. Without DB_URL the service runs
// on seeded in-memory repositories, which is enough for local development
// and for tests.
func NewRepositories(cfg config.Config, logger *logging.Logger) (Repositories, func() error, error) {
	if cfg.DBURL == "" {
		logger.Info("database disabled, using in-memory repositories")
		return Repositories{
			Divisions:   memory.NewDivisionRepository(memory.SeedDivisions(), memory.SeedMatchups()),
			Teams:       memory.NewTeamRepository(nil),
			Predictions: memory.NewPredictionRepository(),
			Scores:      memory.NewScoreRepository(),
		}, func() error { return nil }, nil
	}

	db, err := OpenDB(cfg)
	if err != nil {
		return Repositories{}, nil, err
	}

	logger.Info("database connected", "db_name", dbNameFromURL(cfg.DBURL))
	return Repositories{
		Divisions:   postgres.NewDivisionRepository(db),
		Teams:       postgres.NewTeamRepository(db),
		Predictions: postgres.NewPredictionRepository(db),
		Scores:      postgres.NewScoreRepository(db),
	}, db.Close, nil
}

func NewTBAClient(cfg config.Config, logger *logging.Logger) *tba.Client {
	return tba.NewClient(tba.ClientConfig{
		BaseURL:    cfg.TBABaseURL,
		AuthKey:    cfg.TBAAuthKey,
		Timeout:    cfg.TBATimeout,
		MaxRetries: cfg.TBAMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.TBACircuitEnabled,
			FailureThreshold: cfg.TBACircuitFailureCount,
			OpenTimeout:      cfg.TBACircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.TBACircuitHalfOpenMaxReq,
		},
	})
}

func NewServices(cfg config.Config, repos Repositories, client *tba.Client, logger *logging.Logger) Services {
	var resultsCache *cache.Store
	if cfg.CacheEnabled {
		resultsCache = cache.NewStore(cfg.CacheTTL)
	}

	return Services{
		Division:    usecase.NewDivisionService(repos.Divisions, repos.Teams),
		Prediction:  usecase.NewPredictionService(repos.Predictions, repos.Teams, repos.Divisions, cfg.PredictionsLockAt),
		Scoring:     usecase.NewScoringService(client, repos.Predictions, repos.Scores, repos.Divisions, idgen.NewRandomGenerator(), resultsCache, cfg.ScoringWorkers, logger),
		Leaderboard: usecase.NewLeaderboardService(repos.Scores),
		Roster:      usecase.NewRosterService(client, repos.Teams, repos.Divisions, logger),
	}
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	repos, closeRepos, err := NewRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	services := NewServices(cfg, repos, NewTBAClient(cfg, logger), logger)

	handler := httpapi.NewHandler(
		services.Division,
		services.Prediction,
		services.Scoring,
		services.Leaderboard,
		services.Roster,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = closeRepos()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, closeRepos, nil
}
