package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/game"
)

type GameService struct {
	repo game.Repository
}

func NewGameService(repo game.Repository) *GameService {
	return &GameService{repo: repo}
}

func (s *GameService) Find(ctx context.Context, f filter.GameFilter) (Page[game.Game], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Find")
	defer span.End()

	if err := f.Normalize(); err != nil {
		return Page[game.Game]{}, invalidFilter(err)
	}

	q := f.Compile()
	items, total, err := s.repo.Find(ctx, q)
	if err != nil {
		return Page[game.Game]{}, failSpan(span, fmt.Errorf("find games: %w", err))
	}

	return newPage(items, total, q), nil
}

func (s *GameService) Get(ctx context.Context, idString string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Get")
	defer span.End()

	id, ok := filter.ValidGameID(idString)
	if !ok {
		return game.Game{}, fmt.Errorf("%w: game id %q must look like NYJNE20240919", ErrInvalidInput, idString)
	}

	item, exists, err := s.repo.GetByIDString(ctx, id)
	if err != nil {
		return game.Game{}, failSpan(span, fmt.Errorf("get game: %w", err))
	}
	if !exists {
		return game.Game{}, fmt.Errorf("%w: game=%s", ErrNotFound, id)
	}

	return item, nil
}
