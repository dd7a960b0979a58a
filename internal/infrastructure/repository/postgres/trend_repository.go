package postgres

import (
	"context"
	"fmt"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/trend"
	qb "github.com/riskibarqy/nfl-trends-api/internal/platform/querybuilder"
)

var (
	trendSelectColumns  = selectColumns(filter.TrendColumns)
	weeklyTrendColumns  = withColumn(filter.TrendColumns, "games_applicable")
	weeklySelectColumns = selectColumns(weeklyTrendColumns)
)

type TrendRepository struct {
	db *DB
}

func NewTrendRepository(db *DB) *TrendRepository {
	return &TrendRepository{db: db}
}

func (r *TrendRepository) Find(ctx context.Context, q filter.Query) ([]trend.Trend, int, error) {
	return findPage[trend.Trend](ctx, r.db, "trends", trendSelectColumns, filter.TrendColumns, q)
}

type WeeklyTrendRepository struct {
	db *DB
}

func NewWeeklyTrendRepository(db *DB) *WeeklyTrendRepository {
	return &WeeklyTrendRepository{db: db}
}

func (r *WeeklyTrendRepository) Find(ctx context.Context, q filter.Query) ([]trend.WeeklyTrend, int, error) {
	rows, total, err := findPage[weeklyTrendTableModel](ctx, r.db, "weekly_trends", weeklySelectColumns, weeklyTrendColumns, q)
	if err != nil {
		return nil, 0, err
	}

	out := make([]trend.WeeklyTrend, 0, len(rows))
	for _, row := range rows {
		games := []string(row.GamesApplicable)
		if games == nil {
			games = []string{}
		}
		out = append(out, trend.WeeklyTrend{Trend: row.Trend, GamesApplicable: games})
	}
	return out, total, nil
}

// GameTrendRepository reads the per-game trend tables. Table names are
// validated against the naming pattern before they reach SQL.
type GameTrendRepository struct {
	db *DB
}

func NewGameTrendRepository(db *DB) *GameTrendRepository {
	return &GameTrendRepository{db: db}
}

func (r *GameTrendRepository) Find(ctx context.Context, table string, q filter.Query) ([]trend.Trend, int, error) {
	name, ok := filter.ValidTableName(table)
	if !ok {
		return nil, 0, fmt.Errorf("invalid game trend table %q", table)
	}
	return findPage[trend.Trend](ctx, r.db, qb.QuoteIdent(name), trendSelectColumns, filter.TrendColumns, q)
}

// Tables lists per-game trend tables in the current schema.
func (r *GameTrendRepository) Tables(ctx context.Context) ([]string, error) {
	query, args, err := tablesQuery().OrderBy("table_name").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select game trend tables query: %w", err)
	}

	var names []string
	if err := r.db.SelectContext(ctx, &names, query, args...); err != nil {
		return nil, fmt.Errorf("select game trend tables: %w", err)
	}

	out := make([]string, 0, len(names))
	for _, name := range names {
		if valid, ok := filter.ValidTableName(name); ok && valid == name {
			out = append(out, name)
		}
	}
	return out, nil
}

func (r *GameTrendRepository) Exists(ctx context.Context, table string) (bool, error) {
	name, ok := filter.ValidTableName(table)
	if !ok {
		return false, nil
	}

	query, args, err := qb.Select("COUNT(*)").From("information_schema.tables").
		Where(
			qb.Expr("table_schema = current_schema()"),
			qb.Eq("table_name", name),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build game trend table exists query: %w", err)
	}

	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return false, fmt.Errorf("check game trend table %s: %w", name, err)
	}
	return n > 0, nil
}

func (r *GameTrendRepository) Count(ctx context.Context, table string) (int, error) {
	name, ok := filter.ValidTableName(table)
	if !ok {
		return 0, fmt.Errorf("invalid game trend table %q", table)
	}

	query, args, err := qb.Select("COUNT(*)").From(qb.QuoteIdent(name)).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count game trend table query: %w", err)
	}

	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("count game trend table %s: %w", name, err)
	}
	return n, nil
}

func tablesQuery() *qb.SelectBuilder {
	return qb.Select("table_name").From("information_schema.tables").
		Where(
			qb.Expr("table_schema = current_schema()"),
			qb.Eq("table_type", "BASE TABLE"),
			qb.Expr("table_name ~ ?", `^[a-z]{2,3}[a-z]{2,3}[0-9]{8}$`),
		)
}
