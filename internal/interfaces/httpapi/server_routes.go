package httpapi

import "net/http"

const apiPrefix = "/api/v1"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerGameRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST "+apiPrefix+"/games", handler.FindGames)
	mux.HandleFunc("GET "+apiPrefix+"/games/{id_string}", handler.GetGame)
	mux.HandleFunc("GET "+apiPrefix+"/upcoming-games", handler.DefaultUpcomingGames)
	mux.HandleFunc("POST "+apiPrefix+"/upcoming-games", handler.FindUpcomingGames)
}

func registerTrendRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST "+apiPrefix+"/trends", handler.FindTrends)
	mux.HandleFunc("POST "+apiPrefix+"/weekly-trends", handler.FindWeeklyTrends)
	mux.HandleFunc("GET "+apiPrefix+"/weekly-trends/filter-options", handler.WeeklyFilterOptions)
	mux.HandleFunc("GET "+apiPrefix+"/trends/games", handler.ListGameTrendTables)
	mux.HandleFunc("POST "+apiPrefix+"/trends/games/{table}", handler.FindGameTrends)
}

func registerCacheRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET "+apiPrefix+"/cache/stats", handler.CacheStats)
	mux.HandleFunc("GET "+apiPrefix+"/cache/protected-entries", handler.CacheProtectedEntries)
	mux.HandleFunc("POST "+apiPrefix+"/cache/clear/upcoming-games", handler.ClearUpcomingGamesCache)
	mux.HandleFunc("POST "+apiPrefix+"/cache/clear/weekly-trends", handler.ClearWeeklyTrendsCache)
	mux.HandleFunc("POST "+apiPrefix+"/cache/clear/filter-options", handler.ClearFilterOptionsCache)
	mux.HandleFunc("POST "+apiPrefix+"/cache/clear/all", handler.ClearAllCaches)
}

func registerSubscriptionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST "+apiPrefix+"/email-subscriptions/subscribe", handler.Subscribe)
	mux.HandleFunc("POST "+apiPrefix+"/email-subscriptions/unsubscribe", handler.Unsubscribe)
	mux.HandleFunc("GET "+apiPrefix+"/email-subscriptions/subscriptions/count", handler.CountSubscriptions)
	mux.HandleFunc("GET "+apiPrefix+"/email-subscriptions/subscribers", handler.ListSubscribers)
}
