package httpapi

import (
	"net/http"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
)

func (h *Handler) FindGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FindGames")
	defer span.End()

	var req filter.GameFilter
	if err := decodeFilter(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.gameService.Find(ctx, req)
	if err != nil {
		h.logFailure(ctx, "find games failed", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, newPageResponse(page))
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	idString := r.PathValue("id_string")
	item, err := h.gameService.Get(ctx, idString)
	if err != nil {
		h.logFailure(ctx, "get game failed", err, "id_string", idString)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, item)
}

func (h *Handler) DefaultUpcomingGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DefaultUpcomingGames")
	defer span.End()

	page, err := h.upcomingGameService.Default(ctx)
	if err != nil {
		h.logFailure(ctx, "list default upcoming games failed", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, newPageResponse(page))
}

func (h *Handler) FindUpcomingGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FindUpcomingGames")
	defer span.End()

	var req filter.UpcomingGameFilter
	if err := decodeFilter(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.upcomingGameService.Find(ctx, req)
	if err != nil {
		h.logFailure(ctx, "find upcoming games failed", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, newPageResponse(page))
}
