package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/champsline/bracket-league/internal/domain/prediction"
	"github.com/champsline/bracket-league/internal/usecase"
)

func (h *Handler) SaveDivisionPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveDivisionPrediction")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	divisionKey := strings.TrimSpace(r.PathValue("divisionKey"))
	var req divisionPredictionRequest
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

	item, err := divisionPredictionFromRequest(ctx, principal.UserID, divisionKey, req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.predictionService.SubmitDivisionPrediction(ctx, item); err != nil {
		h.logger.WarnContext(ctx, "save division prediction failed",
			"user_id", principal.UserID, "division_key", divisionKey, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, divisionPredictionToDTO(ctx, item))
}

func (h *Handler) GetMyDivisionPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyDivisionPrediction")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	divisionKey := strings.TrimSpace(r.PathValue("divisionKey"))
	item, err := h.predictionService.GetDivisionPrediction(ctx, principal.UserID, divisionKey)
	if err != nil {
		h.logger.WarnContext(ctx, "get division prediction failed",
			"user_id", principal.UserID, "division_key", divisionKey, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, divisionPredictionToDTO(ctx, item))
}

func (h *Handler) SaveEinsteinPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveEinsteinPrediction")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req einsteinPredictionRequest
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

	item := einsteinPredictionFromRequest(ctx, principal.UserID, req)
	if err := h.predictionService.SubmitEinsteinPrediction(ctx, item); err != nil {
		h.logger.WarnContext(ctx, "save einstein prediction failed",
			"user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, einsteinPredictionToDTO(ctx, item))
}

func (h *Handler) GetMyEinsteinPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyEinsteinPrediction")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	item, err := h.predictionService.GetEinsteinPrediction(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get einstein prediction failed",
			"user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, einsteinPredictionToDTO(ctx, item))
}

type allianceRequest struct {
	Captain   string `json:"captain" validate:"required"`
	FirstPick string `json:"firstPick" validate:"required"`
}

type divisionPredictionRequest struct {
	AvgQualMatchScore    float64           `json:"avgQualMatchScore" validate:"gte=0,lte=500"`
	AvgPlayoffMatchScore float64           `json:"avgPlayoffMatchScore" validate:"gte=0,lte=500"`
	Alliances            []allianceRequest `json:"alliances" validate:"required,len=8,dive"`
	BracketSlots         []int             `json:"bracketSlots" validate:"required,len=7,dive,gte=1,lte=8"`
}

type einsteinPredictionRequest struct {
	AvgAllianceHangarPoints float64  `json:"avgAllianceHangarPoints" validate:"gte=0,lte=500"`
	AvgFinalsMatchScore     float64  `json:"avgFinalsMatchScore" validate:"gte=0,lte=500"`
	Picks                   []string `json:"picks" validate:"required,len=15,dive,required"`
	FirstSeed               string   `json:"firstSeed" validate:"required"`
	SecondSeed              string   `json:"secondSeed" validate:"required"`
	Winner                  string   `json:"winner" validate:"required"`
}

type allianceDTO struct {
	Captain   string `json:"captain"`
	FirstPick string `json:"firstPick"`
}

type divisionPredictionDTO struct {
	UserID               string        `json:"userId"`
	DivisionKey          string        `json:"divisionKey"`
	AvgQualMatchScore    float64       `json:"avgQualMatchScore"`
	AvgPlayoffMatchScore float64       `json:"avgPlayoffMatchScore"`
	Alliances            []allianceDTO `json:"alliances"`
	BracketSlots         []int         `json:"bracketSlots"`
}

type einsteinPredictionDTO struct {
	UserID                  string   `json:"userId"`
	AvgAllianceHangarPoints float64  `json:"avgAllianceHangarPoints"`
	AvgFinalsMatchScore     float64  `json:"avgFinalsMatchScore"`
	Picks                   []string `json:"picks"`
	FirstSeed               string   `json:"firstSeed"`
	SecondSeed              string   `json:"secondSeed"`
	Winner                  string   `json:"winner"`
}

func divisionPredictionFromRequest(ctx context.Context, userID, divisionKey string, req divisionPredictionRequest) (prediction.DivisionPrediction, error) {
	ctx, span := startSpan(ctx, "httpapi.divisionPredictionFromRequest")
	defer span.End()

	item := prediction.DivisionPrediction{
		UserID:               userID,
		DivisionKey:          divisionKey,
		AvgQualMatchScore:    req.AvgQualMatchScore,
		AvgPlayoffMatchScore: req.AvgPlayoffMatchScore,
	}
	for i, alliance := range req.Alliances {
		item.Alliances[i] = prediction.Alliance{
			Captain:   strings.TrimSpace(alliance.Captain),
			FirstPick: strings.TrimSpace(alliance.FirstPick),
		}
	}

	var slots [prediction.BracketSlots]int
	copy(slots[:], req.BracketSlots)
	bracket, err := prediction.BracketFromSlots(slots)
	if err != nil {
		return prediction.DivisionPrediction{}, fmt.Errorf("%w: invalid bracket: %v", usecase.ErrInvalidInput, err)
	}
	item.Bracket = bracket

	return item, nil
}

func einsteinPredictionFromRequest(ctx context.Context, userID string, req einsteinPredictionRequest) prediction.EinsteinPrediction {
	ctx, span := startSpan(ctx, "httpapi.einsteinPredictionFromRequest")
	defer span.End()

	item := prediction.EinsteinPrediction{
		UserID:                  userID,
		AvgAllianceHangarPoints: req.AvgAllianceHangarPoints,
		AvgFinalsMatchScore:     req.AvgFinalsMatchScore,
		FirstSeed:               strings.TrimSpace(req.FirstSeed),
		SecondSeed:              strings.TrimSpace(req.SecondSeed),
		Winner:                  strings.TrimSpace(req.Winner),
	}
	for i, pick := range req.Picks {
		item.Picks[i] = strings.TrimSpace(pick)
	}

	return item
}

func divisionPredictionToDTO(ctx context.Context, item prediction.DivisionPrediction) divisionPredictionDTO {
	ctx, span := startSpan(ctx, "httpapi.divisionPredictionToDTO")
	defer span.End()

	alliances := make([]allianceDTO, 0, len(item.Alliances))
	for _, alliance := range item.Alliances {
		alliances = append(alliances, allianceDTO{
			Captain:   alliance.Captain,
			FirstPick: alliance.FirstPick,
		})
	}

	slots := item.Bracket.Slots()

	return divisionPredictionDTO{
		UserID:               item.UserID,
		DivisionKey:          item.DivisionKey,
		AvgQualMatchScore:    item.AvgQualMatchScore,
		AvgPlayoffMatchScore: item.AvgPlayoffMatchScore,
		Alliances:            alliances,
		BracketSlots:         slots[:],
	}
}

func einsteinPredictionToDTO(ctx context.Context, item prediction.EinsteinPrediction) einsteinPredictionDTO {
	ctx, span := startSpan(ctx, "httpapi.einsteinPredictionToDTO")
	defer span.End()

	return einsteinPredictionDTO{
		UserID:                  item.UserID,
		AvgAllianceHangarPoints: item.AvgAllianceHangarPoints,
		AvgFinalsMatchScore:     item.AvgFinalsMatchScore,
		Picks:                   append([]string(nil), item.Picks[:]...),
		FirstSeed:               item.FirstSeed,
		SecondSeed:              item.SecondSeed,
		Winner:                  item.Winner,
	}
}
