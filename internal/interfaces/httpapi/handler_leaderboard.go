package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/champsline/bracket-league/internal/domain/scoring"
	"github.com/champsline/bracket-league/internal/usecase"
)

func (h *Handler) GetGlobalLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGlobalLeaderboard")
	defer span.End()

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	rows, err := h.leaderboardService.Global(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "global leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]globalScoreDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, globalScoreToDTO(ctx, row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetDivisionLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDivisionLeaderboard")
	defer span.End()

	divisionKey := strings.TrimSpace(r.PathValue("divisionKey"))
	rows, err := h.leaderboardService.Division(ctx, divisionKey)
	if err != nil {
		h.logger.WarnContext(ctx, "division leaderboard failed", "division_key", divisionKey, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]divisionScoreDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, divisionScoreToDTO(ctx, row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetEinsteinLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEinsteinLeaderboard")
	defer span.End()

	rows, err := h.leaderboardService.Einstein(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "einstein leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]einsteinScoreDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, einsteinScoreToDTO(ctx, row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMyScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyScores")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	scores, err := h.leaderboardService.ForUser(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "user scores failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	divisions := make([]divisionScoreDTO, 0, len(scores.Divisions))
	for _, row := range scores.Divisions {
		divisions = append(divisions, divisionScoreToDTO(ctx, row))
	}

	out := userScoresDTO{Divisions: divisions}
	if scores.Global != nil {
		global := globalScoreToDTO(ctx, *scores.Global)
		out.Global = &global
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

type divisionScoreDTO struct {
	UserID        string `json:"userId"`
	DivisionKey   string `json:"divisionKey"`
	QualScore     int    `json:"qualScore"`
	PlayoffScore  int    `json:"playoffScore"`
	AllianceScore int    `json:"allianceScore"`
	BracketScore  int    `json:"bracketScore"`
	Sum           int    `json:"sum"`
	ScoredAt      string `json:"scoredAt"`
}

type einsteinScoreDTO struct {
	UserID          string `json:"userId"`
	HangarScore     int    `json:"hangarScore"`
	FinalsScore     int    `json:"finalsScore"`
	RoundRobinScore int    `json:"roundRobinScore"`
	FirstSeedScore  int    `json:"firstSeedScore"`
	SecondSeedScore int    `json:"secondSeedScore"`
	WinnerScore     int    `json:"winnerScore"`
	Sum             int    `json:"sum"`
	ScoredAt        string `json:"scoredAt"`
}

type globalScoreDTO struct {
	UserID        string `json:"userId"`
	DivisionTotal int    `json:"divisionTotal"`
	EinsteinTotal int    `json:"einsteinTotal"`
	Sum           int    `json:"sum"`
	ScoredAt      string `json:"scoredAt"`
}

type userScoresDTO struct {
	Divisions []divisionScoreDTO `json:"divisions"`
	Global    *globalScoreDTO    `json:"global,omitempty"`
}

func divisionScoreToDTO(ctx context.Context, v scoring.DivisionScoreRecord) divisionScoreDTO {
	ctx, span := startSpan(ctx, "httpapi.divisionScoreToDTO")
	defer span.End()

	return divisionScoreDTO{
		UserID:        v.UserID,
		DivisionKey:   v.DivisionKey,
		QualScore:     v.QualScore,
		PlayoffScore:  v.PlayoffScore,
		AllianceScore: v.AllianceScore,
		BracketScore:  v.BracketScore,
		Sum:           v.Sum,
		ScoredAt:      v.ScoredAt.UTC().Format(time.RFC3339),
	}
}

func einsteinScoreToDTO(ctx context.Context, v scoring.EinsteinScoreRecord) einsteinScoreDTO {
	ctx, span := startSpan(ctx, "httpapi.einsteinScoreToDTO")
	defer span.End()

	return einsteinScoreDTO{
		UserID:          v.UserID,
		HangarScore:     v.HangarScore,
		FinalsScore:     v.FinalsScore,
		RoundRobinScore: v.RoundRobinScore,
		FirstSeedScore:  v.FirstSeedScore,
		SecondSeedScore: v.SecondSeedScore,
		WinnerScore:     v.WinnerScore,
		Sum:             v.Sum,
		ScoredAt:        v.ScoredAt.UTC().Format(time.RFC3339),
	}
}

func globalScoreToDTO(ctx context.Context, v scoring.GlobalScoreRecord) globalScoreDTO {
	ctx, span := startSpan(ctx, "httpapi.globalScoreToDTO")
	defer span.End()

	return globalScoreDTO{
		UserID:        v.UserID,
		DivisionTotal: v.DivisionTotal,
		EinsteinTotal: v.EinsteinTotal,
		Sum:           v.Sum,
		ScoredAt:      v.ScoredAt.UTC().Format(time.RFC3339),
	}
}
