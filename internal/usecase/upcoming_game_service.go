package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/upcominggame"
)

type UpcomingGameService struct {
	repo upcominggame.Repository
}

func NewUpcomingGameService(repo upcominggame.Repository) *UpcomingGameService {
	return &UpcomingGameService{repo: repo}
}

// Default returns the games of the current week with no criteria applied.
func (s *UpcomingGameService) Default(ctx context.Context) (Page[upcominggame.UpcomingGame], error) {
	return s.Find(ctx, filter.UpcomingGameFilter{})
}

func (s *UpcomingGameService) Find(ctx context.Context, f filter.UpcomingGameFilter) (Page[upcominggame.UpcomingGame], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UpcomingGameService.Find")
	defer span.End()

	if err := f.Normalize(); err != nil {
		return Page[upcominggame.UpcomingGame]{}, invalidFilter(err)
	}

	q := f.Compile()
	items, total, err := s.repo.Find(ctx, q)
	if err != nil {
		return Page[upcominggame.UpcomingGame]{}, fmt.Errorf("find upcoming games: %w", err)
	}

	return newPage(items, total, q), nil
}
