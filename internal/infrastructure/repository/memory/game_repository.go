package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/game"
)

type GameRepository struct {
	mu         sync.RWMutex
	games      []game.Game
	byIDString map[string]int
}

func NewGameRepository(items []game.Game) *GameRepository {
	byIDString := make(map[string]int, len(items))
	for i, item := range items {
		byIDString[item.IDString] = i
	}

	return &GameRepository{
		games:      append([]game.Game(nil), items...),
		byIDString: byIDString,
	}
}

func (r *GameRepository) Find(_ context.Context, q filter.Query) ([]game.Game, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return evaluate(r.games, q)
}

func (r *GameRepository) GetByIDString(_ context.Context, idString string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byIDString[idString]
	if !ok {
		return game.Game{}, false, nil
	}
	return r.games[idx], true, nil
}
