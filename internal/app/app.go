package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/nfl-trends-api/internal/config"
	cacherepo "github.com/riskibarqy/nfl-trends-api/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/nfl-trends-api/internal/interfaces/httpapi"
	"github.com/riskibarqy/nfl-trends-api/internal/platform/cache"
	"github.com/riskibarqy/nfl-trends-api/internal/platform/logging"
	"github.com/riskibarqy/nfl-trends-api/internal/usecase"
)

// App is the assembled service: the HTTP server plus the startup and
// teardown steps around it.
type App struct {
	Server *http.Server

	warmup *usecase.WarmupService
	store  *storage
	logger *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	regions := newCacheRegions(cfg)
	upcomingRepo := cacherepo.NewUpcomingGameRepository(store.upcoming, regions.UpcomingGames)
	weeklyRepo := cacherepo.NewWeeklyTrendRepository(store.weekly, regions.WeeklyTrends)
	optionRepo := cacherepo.NewFilterOptionRepository(store.options, regions.FilterOptions)

	registry := usecase.NewTableRegistry(store.gameTrends, cfg.RegistryWorkers)
	upcomingSvc := usecase.NewUpcomingGameService(upcomingRepo)

	handler := httpapi.NewHandler(
		usecase.NewGameService(store.games),
		upcomingSvc,
		usecase.NewTrendService(store.trends),
		usecase.NewWeeklyTrendService(weeklyRepo, optionRepo),
		usecase.NewGameTrendService(store.gameTrends, registry),
		registry,
		usecase.NewCacheService(regions),
		usecase.NewSubscriptionService(store.subscriptions, logger),
		store.breaker,
		logger,
	)

	out := &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		store:  store,
		logger: logger,
	}
	if cfg.WarmupEnabled {
		out.warmup = usecase.NewWarmupService(upcomingSvc, optionRepo, weeklyRepo, logger, cfg.WarmupTimeout)
	}

	logger.Info("app assembled",
		"storage", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"warmup_enabled", cfg.WarmupEnabled,
		"swagger_enabled", cfg.SwaggerEnabled,
	)
	return out, nil
}

func newCacheRegions(cfg config.Config) usecase.CacheRegions {
	disabled := !cfg.CacheEnabled
	return usecase.CacheRegions{
		UpcomingGames: cache.NewRegion(cache.Config{
			Name:     "upcoming_games",
			Policy:   cache.PolicyTTL,
			Capacity: cfg.CacheUpcomingCapacity,
			TTL:      cfg.CacheUpcomingTTL,
			Disabled: disabled,
		}),
		WeeklyTrends: cache.NewRegion(cache.Config{
			Name:     "weekly_trends",
			Policy:   cache.PolicyLRU,
			Capacity: cfg.CacheWeeklyCapacity,
			Disabled: disabled,
		}),
		FilterOptions: cache.NewRegion(cache.Config{
			Name:     "weekly_filter_options",
			Policy:   cache.PolicyTTL,
			Capacity: 1,
			TTL:      cfg.CacheFilterOptionsTTL,
			Disabled: disabled,
		}),
	}
}

// Warmup fills the protected cache entries. It is a no-op when warm-up is
// disabled and never fails startup.
func (a *App) Warmup(ctx context.Context) usecase.WarmupReport {
	if a.warmup == nil {
		a.logger.Info("cache warm up skipped", "reason", "WARMUP_ENABLED=false")
		return usecase.WarmupReport{}
	}
	return a.warmup.Run(ctx)
}

// Close releases the storage connections. Call it after the server has
// stopped.
func (a *App) Close() error {
	if a.store == nil || a.store.close == nil {
		return nil
	}
	return a.store.close()
}
