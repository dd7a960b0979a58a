package httpapi

import (
	"net/http"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/filteroption"
	"go.opentelemetry.io/otel/attribute"
)

type filterOptionsResponse struct {
	Options []filteroption.Option `json:"options"`
	Count   int                   `json:"count"`
}

type tablesResponse struct {
	Tables any `json:"tables"`
	Count  int `json:"count"`
}

func (h *Handler) FindTrends(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FindTrends")
	defer span.End()

	var req filter.TrendFilter
	if err := decodeFilter(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.trendService.Find(ctx, req)
	if err != nil {
		h.logFailure(ctx, "find trends failed", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, newPageResponse(page))
}

func (h *Handler) FindWeeklyTrends(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FindWeeklyTrends")
	defer span.End()

	var req filter.WeeklyTrendFilter
	if err := decodeFilter(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.weeklyTrendService.Find(ctx, req)
	if err != nil {
		h.logFailure(ctx, "find weekly trends failed", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, newPageResponse(page))
}

func (h *Handler) WeeklyFilterOptions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WeeklyFilterOptions")
	defer span.End()

	options, err := h.weeklyTrendService.FilterOptions(ctx)
	if err != nil {
		h.logFailure(ctx, "list weekly filter options failed", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, filterOptionsResponse{Options: options, Count: len(options)})
}

func (h *Handler) ListGameTrendTables(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameTrendTables")
	defer span.End()

	withCounts, err := queryBool(r, "counts", false)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if withCounts {
		summaries, err := h.tableRegistry.ListWithCounts(ctx)
		if err != nil {
			h.logFailure(ctx, "list game trend tables with counts failed", err)
			writeError(ctx, w, err)
			return
		}
		writeJSON(ctx, w, http.StatusOK, tablesResponse{Tables: summaries, Count: len(summaries)})
		return
	}

	tables, err := h.tableRegistry.List(ctx)
	if err != nil {
		h.logFailure(ctx, "list game trend tables failed", err)
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, tablesResponse{Tables: tables, Count: len(tables)})
}

func (h *Handler) FindGameTrends(w http.ResponseWriter, r *http.Request) {
	table := r.PathValue("table")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FindGameTrends", attribute.String("trend.table", table))
	defer span.End()

	var req filter.GameTrendFilter
	if err := decodeFilter(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.gameTrendService.Find(ctx, table, req)
	if err != nil {
		h.logFailure(ctx, "find game trends failed", err, "table", table)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, newPageResponse(page))
}
