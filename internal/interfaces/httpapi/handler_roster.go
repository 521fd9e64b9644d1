package httpapi

import (
	"net/http"
)

func (h *Handler) RunSyncTeamsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncTeamsJob")
	defer span.End()

	stored, err := h.rosterService.SyncTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "sync teams job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterJobResultDTO{
		Job:   "sync-teams",
		Teams: stored,
	})
}

func (h *Handler) RunSyncRostersJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncRostersJob")
	defer span.End()

	assigned, err := h.rosterService.SyncDivisionRosters(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "sync rosters job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterJobResultDTO{
		Job:   "sync-rosters",
		Teams: assigned,
	})
}

type rosterJobResultDTO struct {
	Job   string `json:"job"`
	Teams int    `json:"teams"`
}
