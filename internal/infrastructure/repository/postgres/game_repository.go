package postgres

import (
	"context"
	"fmt"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/game"
	qb "github.com/riskibarqy/nfl-trends-api/internal/platform/querybuilder"
)

var gameSelectColumns = selectColumns(filter.GameColumns)

type GameRepository struct {
	db *DB
}

func NewGameRepository(db *DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) Find(ctx context.Context, q filter.Query) ([]game.Game, int, error) {
	return findPage[game.Game](ctx, r.db, "games", gameSelectColumns, filter.GameColumns, q)
}

func (r *GameRepository) GetByIDString(ctx context.Context, idString string) (game.Game, bool, error) {
	query, args, err := qb.Select(gameSelectColumns...).From("games").
		Where(qb.Eq("id_string", idString)).
		Limit(1).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build select game by id_string query: %w", err)
	}

	var row game.Game
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("select game by id_string: %w", err)
	}

	return row, true, nil
}
