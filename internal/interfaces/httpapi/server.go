package httpapi

import (
	"net/http"

	"github.com/riskibarqy/nfl-trends-api/internal/platform/id"
	"github.com/riskibarqy/nfl-trends-api/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	swaggerEnabled bool,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, swaggerEnabled)
	registerGameRoutes(mux, handler)
	registerTrendRoutes(mux, handler)
	registerCacheRoutes(mux, handler)
	registerSubscriptionRoutes(mux, handler)

	return RequestTracing(
		RequestID(id.NewPrefixedGenerator("req"),
			RequestLogging(logger,
				CORS(corsAllowedOrigins,
					recoverPanic(logger, mux)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
