package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/filteroption"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/trend"
)

type TrendService struct {
	repo trend.Repository
}

func NewTrendService(repo trend.Repository) *TrendService {
	return &TrendService{repo: repo}
}

func (s *TrendService) Find(ctx context.Context, f filter.TrendFilter) (Page[trend.Trend], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TrendService.Find")
	defer span.End()

	if err := f.Normalize(); err != nil {
		return Page[trend.Trend]{}, invalidFilter(err)
	}

	q := f.Compile()
	items, total, err := s.repo.Find(ctx, q)
	if err != nil {
		return Page[trend.Trend]{}, fmt.Errorf("find trends: %w", err)
	}

	return newPage(items, total, q), nil
}

type WeeklyTrendService struct {
	repo    trend.WeeklyRepository
	options filteroption.Repository
}

func NewWeeklyTrendService(repo trend.WeeklyRepository, options filteroption.Repository) *WeeklyTrendService {
	return &WeeklyTrendService{repo: repo, options: options}
}

func (s *WeeklyTrendService) Find(ctx context.Context, f filter.WeeklyTrendFilter) (Page[trend.WeeklyTrend], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeeklyTrendService.Find")
	defer span.End()

	if err := f.Normalize(); err != nil {
		return Page[trend.WeeklyTrend]{}, invalidFilter(err)
	}

	q := f.Compile()
	items, total, err := s.repo.Find(ctx, q)
	if err != nil {
		return Page[trend.WeeklyTrend]{}, fmt.Errorf("find weekly trends: %w", err)
	}

	return newPage(items, total, q), nil
}

func (s *WeeklyTrendService) FilterOptions(ctx context.Context) ([]filteroption.Option, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeeklyTrendService.FilterOptions")
	defer span.End()

	items, err := s.options.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list filter options: %w", err)
	}
	return items, nil
}

type GameTrendService struct {
	repo     trend.GameTrendRepository
	registry *TableRegistry
}

func NewGameTrendService(repo trend.GameTrendRepository, registry *TableRegistry) *GameTrendService {
	return &GameTrendService{repo: repo, registry: registry}
}

func (s *GameTrendService) Find(ctx context.Context, table string, f filter.GameTrendFilter) (Page[trend.Trend], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameTrendService.Find")
	defer span.End()

	name, err := s.registry.Resolve(ctx, table)
	if err != nil {
		return Page[trend.Trend]{}, err
	}
	if err := f.Normalize(); err != nil {
		return Page[trend.Trend]{}, invalidFilter(err)
	}

	q := f.Compile()
	items, total, err := s.repo.Find(ctx, name, q)
	if err != nil {
		return Page[trend.Trend]{}, fmt.Errorf("find game trends in %s: %w", name, err)
	}

	return newPage(items, total, q), nil
}
