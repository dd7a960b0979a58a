package trend

import (
	"context"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
)

// Repository reads the trends collection.
type Repository interface {
	Find(ctx context.Context, q filter.Query) ([]Trend, int, error)
}

// WeeklyRepository reads the weekly trends collection.
type WeeklyRepository interface {
	Find(ctx context.Context, q filter.Query) ([]WeeklyTrend, int, error)
}

// GameTrendRepository reads one per-game trend table. table must come from
// Catalog and is never built from raw input.
type GameTrendRepository interface {
	Find(ctx context.Context, table string, q filter.Query) ([]Trend, int, error)
}

// Catalog observes the per-game trend tables an external job maintains.
type Catalog interface {
	Tables(ctx context.Context) ([]string, error)
	Exists(ctx context.Context, table string) (bool, error)
	Count(ctx context.Context, table string) (int, error)
}
