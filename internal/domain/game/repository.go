package game

import (
	"context"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
)

// Repository describes game persistence needs from use cases.
type Repository interface {
	// Find returns the page selected by q and the count of every matching row.
	Find(ctx context.Context, q filter.Query) ([]Game, int, error)
	GetByIDString(ctx context.Context, idString string) (Game, bool, error)
}
