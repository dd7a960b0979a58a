package postgres

import (
	"context"
	"fmt"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/upcominggame"
	qb "github.com/riskibarqy/nfl-trends-api/internal/platform/querybuilder"
)

var upcomingSelectColumns = selectColumns(filter.UpcomingGameColumns)

type UpcomingGameRepository struct {
	db *DB
}

func NewUpcomingGameRepository(db *DB) *UpcomingGameRepository {
	return &UpcomingGameRepository{db: db}
}

func (r *UpcomingGameRepository) Find(ctx context.Context, q filter.Query) ([]upcominggame.UpcomingGame, int, error) {
	return findPage[upcominggame.UpcomingGame](ctx, r.db, "upcoming_games", upcomingSelectColumns, filter.UpcomingGameColumns, q)
}

func (r *UpcomingGameRepository) ListAll(ctx context.Context) ([]upcominggame.UpcomingGame, error) {
	query, args, err := qb.Select(upcomingSelectColumns...).From("upcoming_games").
		OrderBy("date", "id_string", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select upcoming games query: %w", err)
	}

	var rows []upcominggame.UpcomingGame
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select upcoming games: %w", err)
	}

	return rows, nil
}
