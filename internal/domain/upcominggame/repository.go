package upcominggame

import (
	"context"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
)

// Repository describes upcoming game persistence needs from use cases.
type Repository interface {
	Find(ctx context.Context, q filter.Query) ([]UpcomingGame, int, error)
	ListAll(ctx context.Context) ([]UpcomingGame, error)
}

// DefaultCacheKey names the cache entry holding the answer to a request with
// no criteria.
const DefaultCacheKey = "upcoming_games_empty_body"
