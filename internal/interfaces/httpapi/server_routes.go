package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/divisions", handler.ListDivisions)
	mux.HandleFunc("GET /v1/divisions/{divisionKey}/teams", handler.ListTeamsByDivision)
	mux.HandleFunc("GET /v1/einstein/matchups", handler.ListEinsteinMatchups)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetGlobalLeaderboard)
	mux.HandleFunc("GET /v1/leaderboard/divisions/{divisionKey}", handler.GetDivisionLeaderboard)
	mux.HandleFunc("GET /v1/leaderboard/einstein", handler.GetEinsteinLeaderboard)
}

func registerUserRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("PUT /v1/predictions/divisions/{divisionKey}", RequireUser(http.HandlerFunc(handler.SaveDivisionPrediction)))
	mux.Handle("GET /v1/predictions/divisions/{divisionKey}", RequireUser(http.HandlerFunc(handler.GetMyDivisionPrediction)))
	mux.Handle("PUT /v1/predictions/einstein", RequireUser(http.HandlerFunc(handler.SaveEinsteinPrediction)))
	mux.Handle("GET /v1/predictions/einstein", RequireUser(http.HandlerFunc(handler.GetMyEinsteinPrediction)))
	mux.Handle("GET /v1/scores/me", RequireUser(http.HandlerFunc(handler.GetMyScores)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/score-divisions", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunScoreAllDivisionsJob)))
	mux.Handle("POST /v1/internal/jobs/score-divisions/{divisionKey}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunScoreDivisionJob)))
	mux.Handle("POST /v1/internal/jobs/score-einstein", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunScoreEinsteinJob)))
	mux.Handle("POST /v1/internal/jobs/recompute-global", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecomputeGlobalJob)))
	mux.Handle("POST /v1/internal/jobs/sync-teams", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncTeamsJob)))
	mux.Handle("POST /v1/internal/jobs/sync-rosters", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncRostersJob)))
}
