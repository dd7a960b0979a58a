package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/trend"
)

type TrendRepository struct {
	mu     sync.RWMutex
	trends []trend.Trend
}

func NewTrendRepository(items []trend.Trend) *TrendRepository {
	return &TrendRepository{trends: append([]trend.Trend(nil), items...)}
}

func (r *TrendRepository) Find(_ context.Context, q filter.Query) ([]trend.Trend, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return evaluate(r.trends, q)
}

type WeeklyTrendRepository struct {
	mu     sync.RWMutex
	trends []trend.WeeklyTrend
}

func NewWeeklyTrendRepository(items []trend.WeeklyTrend) *WeeklyTrendRepository {
	return &WeeklyTrendRepository{trends: append([]trend.WeeklyTrend(nil), items...)}
}

func (r *WeeklyTrendRepository) Find(_ context.Context, q filter.Query) ([]trend.WeeklyTrend, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return evaluate(r.trends, q)
}

// GameTrendRepository holds per-game trend tables keyed by table name and
// serves as their catalog.
type GameTrendRepository struct {
	mu     sync.RWMutex
	tables map[string][]trend.Trend
}

func NewGameTrendRepository(tables map[string][]trend.Trend) *GameTrendRepository {
	copied := make(map[string][]trend.Trend, len(tables))
	for name, rows := range tables {
		copied[name] = append([]trend.Trend(nil), rows...)
	}
	return &GameTrendRepository{tables: copied}
}

func (r *GameTrendRepository) Find(_ context.Context, table string, q filter.Query) ([]trend.Trend, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, ok := r.tables[table]
	if !ok {
		return nil, 0, fmt.Errorf("relation %q does not exist", table)
	}
	return evaluate(rows, q)
}

func (r *GameTrendRepository) Tables(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.tables))
	for name := range r.tables {
		if _, ok := filter.ValidTableName(name); ok {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out, nil
}

func (r *GameTrendRepository) Exists(_ context.Context, table string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.tables[table]
	return ok, nil
}

func (r *GameTrendRepository) Count(_ context.Context, table string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, ok := r.tables[table]
	if !ok {
		return 0, fmt.Errorf("relation %q does not exist", table)
	}
	return len(rows), nil
}
