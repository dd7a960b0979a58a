package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
	"github.com/riskibarqy/nfl-trends-api/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/nfl-trends-api/internal/platform/querybuilder"
)

const seedConflict = "ON CONFLICT DO NOTHING"

// BootstrapSeed loads the demo data set into an empty database. It is a
// no-op once the games table has rows.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM games`); err != nil {
		return fmt.Errorf("count games for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, g := range memory.SeedGames() {
		if err := seedInsert(ctx, tx, "games", g); err != nil {
			return fmt.Errorf("seed game %s: %w", g.IDString, err)
		}
	}
	for _, g := range memory.SeedUpcomingGames() {
		if err := seedInsert(ctx, tx, "upcoming_games", g); err != nil {
			return fmt.Errorf("seed upcoming game %s: %w", g.IDString, err)
		}
	}
	for _, t := range memory.SeedTrends() {
		if err := seedInsert(ctx, tx, "trends", t); err != nil {
			return fmt.Errorf("seed trend %s: %w", t.IDString, err)
		}
	}
	for _, t := range memory.SeedWeeklyTrends() {
		row := weeklyTrendTableModel{Trend: t.Trend, GamesApplicable: pq.StringArray(t.GamesApplicable)}
		if err := seedInsert(ctx, tx, "weekly_trends", row); err != nil {
			return fmt.Errorf("seed weekly trend %s: %w", t.IDString, err)
		}
	}

	for table, rows := range memory.SeedGameTrends() {
		name, ok := filter.ValidTableName(table)
		if !ok {
			return fmt.Errorf("seed game trend table %q: invalid name", table)
		}
		ddl := "CREATE TABLE IF NOT EXISTS " + qb.QuoteIdent(name) + " (LIKE trends INCLUDING ALL)"
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create game trend table %s: %w", name, err)
		}
		for _, t := range rows {
			if err := seedInsert(ctx, tx, qb.QuoteIdent(name), t); err != nil {
				return fmt.Errorf("seed game trend %s/%s: %w", name, t.IDString, err)
			}
		}
	}

	for _, o := range memory.SeedFilterOptions() {
		values, err := sonic.MarshalString(o.Values)
		if err != nil {
			return fmt.Errorf("encode filter values %s: %w", o.FilterType, err)
		}
		row := filterValueTableModel{FilterType: o.FilterType, ValuesJSON: values, LastUpdated: o.LastUpdated}
		if err := seedInsert(ctx, tx, "filter_values", row); err != nil {
			return fmt.Errorf("seed filter values %s: %w", o.FilterType, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}

func seedInsert(ctx context.Context, tx *sqlx.Tx, table string, model any) error {
	query, args, err := qb.InsertModel(table, model, seedConflict)
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return nil
}
