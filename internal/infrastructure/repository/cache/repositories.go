package cache

import (
	"context"
	"reflect"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/filteroption"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/trend"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/upcominggame"
	basecache "github.com/riskibarqy/nfl-trends-api/internal/platform/cache"
)

type cachedPage[T any] struct {
	items []T
	total int
}

func (p cachedPage[T]) Len() int { return len(p.items) }

type cachedOptions []filteroption.Option

func (o cachedOptions) Len() int { return len(o) }

func loadPage[T any](ctx context.Context, region *basecache.Region, key string, find func(context.Context) ([]T, int, error)) ([]T, int, error) {
	v, err := region.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, total, err := find(ctx)
		if err != nil {
			return nil, err
		}
		return cachedPage[T]{items: append([]T(nil), items...), total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}

	page, _ := v.(cachedPage[T])
	return append([]T(nil), page.items...), page.total, nil
}

type UpcomingGameRepository struct {
	next         upcominggame.Repository
	cache        *basecache.Region
	defaultQuery filter.Query
}

func NewUpcomingGameRepository(next upcominggame.Repository, cache *basecache.Region) *UpcomingGameRepository {
	var f filter.UpcomingGameFilter
	_ = f.Normalize()
	return &UpcomingGameRepository{next: next, cache: cache, defaultQuery: f.Compile()}
}

// Find serves the default query from a protected entry and every other
// query from an entry keyed by its hash.
func (r *UpcomingGameRepository) Find(ctx context.Context, q filter.Query) ([]upcominggame.UpcomingGame, int, error) {
	key := upcominggame.DefaultCacheKey
	if reflect.DeepEqual(q, r.defaultQuery) {
		r.cache.Protect(key)
	} else {
		var err error
		if key, err = basecache.Key(q); err != nil {
			return nil, 0, err
		}
	}

	return loadPage(ctx, r.cache, key, func(ctx context.Context) ([]upcominggame.UpcomingGame, int, error) {
		return r.next.Find(ctx, q)
	})
}

func (r *UpcomingGameRepository) ListAll(ctx context.Context) ([]upcominggame.UpcomingGame, error) {
	return r.next.ListAll(ctx)
}

type WeeklyTrendRepository struct {
	next  trend.WeeklyRepository
	cache *basecache.Region
}

func NewWeeklyTrendRepository(next trend.WeeklyRepository, cache *basecache.Region) *WeeklyTrendRepository {
	return &WeeklyTrendRepository{next: next, cache: cache}
}

func (r *WeeklyTrendRepository) Find(ctx context.Context, q filter.Query) ([]trend.WeeklyTrend, int, error) {
	key, err := basecache.Key(q)
	if err != nil {
		return nil, 0, err
	}
	return loadPage(ctx, r.cache, key, func(ctx context.Context) ([]trend.WeeklyTrend, int, error) {
		return r.next.Find(ctx, q)
	})
}

// FindProtected runs Find and keeps its entry through capacity eviction and
// protective clears. It returns the entry key.
func (r *WeeklyTrendRepository) FindProtected(ctx context.Context, q filter.Query) ([]trend.WeeklyTrend, int, string, error) {
	key, err := basecache.Key(q)
	if err != nil {
		return nil, 0, "", err
	}
	r.cache.Protect(key)

	items, total, err := r.Find(ctx, q)
	if err != nil {
		return nil, 0, key, err
	}
	return items, total, key, nil
}

type FilterOptionRepository struct {
	next  filteroption.Repository
	cache *basecache.Region
}

func NewFilterOptionRepository(next filteroption.Repository, cache *basecache.Region) *FilterOptionRepository {
	cache.Protect(filteroption.CacheKey)
	return &FilterOptionRepository{next: next, cache: cache}
}

func (r *FilterOptionRepository) List(ctx context.Context) ([]filteroption.Option, error) {
	v, err := r.cache.GetOrLoad(ctx, filteroption.CacheKey, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return cachedOptions(append([]filteroption.Option(nil), items...)), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.(cachedOptions)
	return append([]filteroption.Option(nil), items...), nil
}
