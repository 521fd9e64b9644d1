package httpapi

import (
	"context"
	"net/http"

	"github.com/champsline/bracket-league/internal/domain/division"
	"github.com/champsline/bracket-league/internal/domain/team"
)

func (h *Handler) ListDivisions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDivisions")
	defer span.End()

	divisions, err := h.divisionService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list divisions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]divisionDTO, 0, len(divisions))
	for _, d := range divisions {
		items = append(items, divisionToDTO(ctx, d))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeamsByDivision(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamsByDivision")
	defer span.End()

	divisionKey := r.PathValue("divisionKey")
	teams, err := h.divisionService.Teams(ctx, divisionKey)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "division_key", divisionKey, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(ctx, t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListEinsteinMatchups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEinsteinMatchups")
	defer span.End()

	matchups, err := h.divisionService.Matchups(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matchups failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchupDTO, 0, len(matchups))
	for _, m := range matchups {
		items = append(items, matchupDTO{
			Order: m.Order,
			Red:   m.Red,
			Blue:  m.Blue,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type divisionDTO struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type teamDTO struct {
	Key         string `json:"key"`
	Number      int    `json:"number"`
	Name        string `json:"name"`
	City        string `json:"city"`
	StateProv   string `json:"stateProv"`
	Country     string `json:"country"`
	RookieYear  int    `json:"rookieYear"`
	Website     string `json:"website"`
	DivisionKey string `json:"divisionKey"`
}

type matchupDTO struct {
	Order int    `json:"order"`
	Red   string `json:"red"`
	Blue  string `json:"blue"`
}

func divisionToDTO(ctx context.Context, v division.Division) divisionDTO {
	ctx, span := startSpan(ctx, "httpapi.divisionToDTO")
	defer span.End()

	return divisionDTO{
		Key:  v.Key,
		Name: v.Name,
	}
}

func teamToDTO(ctx context.Context, v team.Team) teamDTO {
	ctx, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	return teamDTO{
		Key:         v.Key,
		Number:      v.Number,
		Name:        v.Name,
		City:        v.City,
		StateProv:   v.StateProv,
		Country:     v.Country,
		RookieYear:  v.RookieYear,
		Website:     v.Website,
		DivisionKey: v.DivisionKey,
	}
}
