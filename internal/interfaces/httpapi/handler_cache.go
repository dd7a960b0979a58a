package httpapi

import (
	"net/http"

	"github.com/riskibarqy/nfl-trends-api/internal/usecase"
)

func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CacheStats")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, h.cacheService.Stats())
}

func (h *Handler) CacheProtectedEntries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CacheProtectedEntries")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, h.cacheService.ProtectedEntries())
}

func (h *Handler) ClearUpcomingGamesCache(w http.ResponseWriter, r *http.Request) {
	h.clearCache(w, r, "httpapi.Handler.ClearUpcomingGamesCache", "preserve_default", h.cacheService.ClearUpcoming)
}

func (h *Handler) ClearWeeklyTrendsCache(w http.ResponseWriter, r *http.Request) {
	h.clearCache(w, r, "httpapi.Handler.ClearWeeklyTrendsCache", "preserve_initial", h.cacheService.ClearWeekly)
}

func (h *Handler) ClearFilterOptionsCache(w http.ResponseWriter, r *http.Request) {
	h.clearCache(w, r, "httpapi.Handler.ClearFilterOptionsCache", "preserve_default", h.cacheService.ClearFilterOptions)
}

func (h *Handler) ClearAllCaches(w http.ResponseWriter, r *http.Request) {
	h.clearCache(w, r, "httpapi.Handler.ClearAllCaches", "preserve_protected", h.cacheService.ClearAll)
}

// clearCache reads the region's protect flag, which defaults to true.
func (h *Handler) clearCache(w http.ResponseWriter, r *http.Request, spanName, param string, clear func(bool) usecase.ClearResult) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	preserve, err := queryBool(r, param, true)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result := clear(preserve)
	h.logger.InfoContext(ctx, "cache cleared",
		"route", r.URL.Path,
		param, preserve,
		"removed", result.Removed,
	)
	writeJSON(ctx, w, http.StatusOK, result)
}
