package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/upcominggame"
)

type UpcomingGameRepository struct {
	mu    sync.RWMutex
	games []upcominggame.UpcomingGame
}

func NewUpcomingGameRepository(items []upcominggame.UpcomingGame) *UpcomingGameRepository {
	return &UpcomingGameRepository{games: append([]upcominggame.UpcomingGame(nil), items...)}
}

func (r *UpcomingGameRepository) Find(_ context.Context, q filter.Query) ([]upcominggame.UpcomingGame, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return evaluate(r.games, q)
}

func (r *UpcomingGameRepository) ListAll(_ context.Context) ([]upcominggame.UpcomingGame, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]upcominggame.UpcomingGame, 0, len(r.games))
	out = append(out, r.games...)
	return out, nil
}

// Replace swaps the schedule, as the weekly refresh job does upstream.
func (r *UpcomingGameRepository) Replace(items []upcominggame.UpcomingGame) {
	r.mu.Lock()
	r.games = append([]upcominggame.UpcomingGame(nil), items...)
	r.mu.Unlock()
}
