package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/champsline/bracket-league/internal/domain/scoring"
	"github.com/champsline/bracket-league/internal/usecase"
)

func (h *Handler) RunScoreDivisionJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunScoreDivisionJob")
	defer span.End()

	divisionKey := strings.TrimSpace(r.PathValue("divisionKey"))
	scored, err := h.scoringService.ScoreDivision(ctx, divisionKey)
	if err != nil {
		h.logger.ErrorContext(ctx, "score division job failed", "division_key", divisionKey, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoringJobResultDTO{
		Job:         "score-division",
		DivisionKey: divisionKey,
		Scored:      scored,
	})
}

func (h *Handler) RunScoreAllDivisionsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunScoreAllDivisionsJob")
	defer span.End()

	scored, err := h.scoringService.ScoreAllDivisions(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "score all divisions job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoringJobResultDTO{
		Job:    "score-all-divisions",
		Scored: scored,
	})
}

func (h *Handler) RunScoreEinsteinJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunScoreEinsteinJob")
	defer span.End()

	var req einsteinResultsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	scored, err := h.scoringService.ScoreEinstein(ctx, scoring.EinsteinResults{
		AvgAllianceHangarPoints: req.AvgAllianceHangarPoints,
		AvgFinalsMatchScore:     req.AvgFinalsMatchScore,
		RoundRobinWinners:       req.RoundRobinWinners,
		FirstSeed:               strings.TrimSpace(req.FirstSeed),
		SecondSeed:              strings.TrimSpace(req.SecondSeed),
		Winner:                  strings.TrimSpace(req.Winner),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "score einstein job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoringJobResultDTO{
		Job:    "score-einstein",
		Scored: scored,
	})
}

func (h *Handler) RunRecomputeGlobalJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecomputeGlobalJob")
	defer span.End()

	scored, err := h.scoringService.RecomputeGlobalScores(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "recompute global job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoringJobResultDTO{
		Job:    "recompute-global",
		Scored: scored,
	})
}

// einsteinResultsRequest carries the observed championship-round outcomes.
// Partial submissions are allowed while the round robin is still in play.
type einsteinResultsRequest struct {
	AvgAllianceHangarPoints float64  `json:"avgAllianceHangarPoints" validate:"gte=0"`
	AvgFinalsMatchScore     float64  `json:"avgFinalsMatchScore" validate:"gte=0"`
	RoundRobinWinners       []string `json:"roundRobinWinners" validate:"max=15,dive,required"`
	FirstSeed               string   `json:"firstSeed"`
	SecondSeed              string   `json:"secondSeed"`
	Winner                  string   `json:"winner"`
}

type scoringJobResultDTO struct {
	Job         string `json:"job"`
	DivisionKey string `json:"divisionKey,omitempty"`
	Scored      int    `json:"scored"`
}
