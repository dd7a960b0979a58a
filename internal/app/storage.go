package app

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/nfl-trends-api/internal/config"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/filteroption"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/game"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/subscription"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/trend"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/upcominggame"
	"github.com/riskibarqy/nfl-trends-api/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/nfl-trends-api/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/nfl-trends-api/internal/interfaces/httpapi"
	"github.com/riskibarqy/nfl-trends-api/internal/platform/logging"
	"github.com/riskibarqy/nfl-trends-api/internal/platform/resilience"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const startupPingTimeout = 5 * time.Second

// gameTrendStore is a per-game trend table reader that can also list the
// tables it reads from.
type gameTrendStore interface {
	trend.GameTrendRepository
	trend.Catalog
}

// storage holds the raw repositories before cache decoration.
type storage struct {
	games         game.Repository
	upcoming      upcominggame.Repository
	trends        trend.Repository
	weekly        trend.WeeklyRepository
	gameTrends    gameTrendStore
	options       filteroption.Repository
	subscriptions subscription.Repository
	breaker       httpapi.BreakerReporter
	close         func() error
}

func openStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (*storage, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Warn("using in-memory storage with demo data", "driver", cfg.StorageDriver)
		return &storage{
			games:         memory.NewGameRepository(memory.SeedGames()),
			upcoming:      memory.NewUpcomingGameRepository(memory.SeedUpcomingGames()),
			trends:        memory.NewTrendRepository(memory.SeedTrends()),
			weekly:        memory.NewWeeklyTrendRepository(memory.SeedWeeklyTrends()),
			gameTrends:    memory.NewGameTrendRepository(memory.SeedGameTrends()),
			options:       memory.NewFilterOptionRepository(memory.SeedFilterOptions()),
			subscriptions: memory.NewSubscriptionRepository(),
			close:         func() error { return nil },
		}, nil
	case config.StorageDriverPostgres, "":
		return openPostgres(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func openPostgres(ctx context.Context, cfg config.Config, logger *logging.Logger) (*storage, error) {
	dbName := dbNameFromURL(cfg.DBURL)
	sqlxDB, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbName),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	sqlxDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlxDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlxDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	// Startup continues when the database is unreachable.
	pingCtx, cancel := context.WithTimeout(ctx, startupPingTimeout)
	pingErr := sqlxDB.PingContext(pingCtx)
	cancel()
	switch {
	case pingErr != nil:
		logger.Warn("postgres unreachable at startup, serving in degraded mode",
			"dsn", redactDBURL(cfg.DBURL), "db_name", dbName, "error", pingErr)
	default:
		logger.Info("postgres connected", "dsn", redactDBURL(cfg.DBURL), "db_name", dbName, "max_open_conns", cfg.DBMaxOpenConns)
	}

	if cfg.DBBootstrapSeed && pingErr == nil {
		if err := postgres.BootstrapSeed(ctx, sqlxDB); err != nil {
			logger.Warn("postgres bootstrap seed failed", "error", err)
		} else {
			logger.Info("postgres bootstrap seed applied")
		}
	}

	db := postgres.NewDB(sqlxDB, resilience.CircuitBreakerConfig{
		Enabled:          cfg.DBCircuitEnabled,
		FailureThreshold: cfg.DBCircuitFailureCount,
		OpenTimeout:      cfg.DBCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.DBCircuitHalfOpenMaxReq,
		OnStateChange: func(name string, from, to resilience.CircuitState) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
		},
	})

	return &storage{
		games:         postgres.NewGameRepository(db),
		upcoming:      postgres.NewUpcomingGameRepository(db),
		trends:        postgres.NewTrendRepository(db),
		weekly:        postgres.NewWeeklyTrendRepository(db),
		gameTrends:    postgres.NewGameTrendRepository(db),
		options:       postgres.NewFilterOptionRepository(db),
		subscriptions: postgres.NewSubscriptionRepository(db),
		breaker:       db,
		close:         sqlxDB.Close,
	}, nil
}
