package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/filteroption"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/upcominggame"
	cacherepo "github.com/riskibarqy/nfl-trends-api/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/nfl-trends-api/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/nfl-trends-api/internal/platform/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameService_Find(t *testing.T) {
	svc := NewGameService(memory.NewGameRepository(memory.SeedGames()))
	ctx := context.Background()

	page, err := svc.Find(ctx, filter.GameFilter{HomeAbbreviation: filter.StringList{"nyj"}})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, filter.DefaultGameLimit, page.Limit)
	for _, g := range page.Items {
		assert.Equal(t, "NYJ", g.HomeAbbreviation)
	}

	_, err = svc.Find(ctx, filter.GameFilter{Season: filter.StringList{"2010-2012"}})
	assert.ErrorIs(t, err, ErrValidation)
	var verrs filter.ValidationErrors
	assert.True(t, errors.As(err, &verrs))

	empty, err := svc.Find(ctx, filter.GameFilter{HomeAbbreviation: filter.StringList{"ARI"}})
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.NotNil(t, empty.Items)
}

func TestGameService_Get(t *testing.T) {
	svc := NewGameService(memory.NewGameRepository(memory.SeedGames()))
	ctx := context.Background()

	g, err := svc.Get(ctx, "nyjne20240919")
	require.NoError(t, err)
	assert.Equal(t, 24, g.HomeScore)

	_, err = svc.Get(ctx, "NYJ-NE")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Get(ctx, "NYJNE19990101")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGameTrendService_Find(t *testing.T) {
	gameTrends := memory.NewGameTrendRepository(memory.SeedGameTrends())
	svc := NewGameTrendService(gameTrends, NewTableRegistry(gameTrends, 2))
	ctx := context.Background()

	page, err := svc.Find(ctx, "PHIDAL20250904", filter.GameTrendFilter{})
	require.NoError(t, err)
	assert.NotEmpty(t, page.Items)

	_, err = svc.Find(ctx, "nyjne20990101", filter.GameTrendFilter{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Find(ctx, "bad-table", filter.GameTrendFilter{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

type testCache struct {
	regions  CacheRegions
	upcoming *cacherepo.UpcomingGameRepository
	weekly   *cacherepo.WeeklyTrendRepository
	options  *cacherepo.FilterOptionRepository
}

func newTestCache() testCache {
	regions := CacheRegions{
		UpcomingGames: cache.NewRegion(cache.Config{Name: "upcoming_games", Policy: cache.PolicyTTL, Capacity: 16, TTL: time.Hour}),
		WeeklyTrends:  cache.NewRegion(cache.Config{Name: "weekly_trends", Policy: cache.PolicyLRU, Capacity: 100}),
		FilterOptions: cache.NewRegion(cache.Config{Name: "weekly_filter_options", Policy: cache.PolicyTTL, Capacity: 1, TTL: time.Hour}),
	}
	return testCache{
		regions:  regions,
		upcoming: cacherepo.NewUpcomingGameRepository(memory.NewUpcomingGameRepository(memory.SeedUpcomingGames()), regions.UpcomingGames),
		weekly:   cacherepo.NewWeeklyTrendRepository(memory.NewWeeklyTrendRepository(memory.SeedWeeklyTrends()), regions.WeeklyTrends),
		options:  cacherepo.NewFilterOptionRepository(memory.NewFilterOptionRepository(memory.SeedFilterOptions()), regions.FilterOptions),
	}
}

func TestWarmupService_FillsProtectedEntries(t *testing.T) {
	tc := newTestCache()
	warmup := NewWarmupService(NewUpcomingGameService(tc.upcoming), tc.options, tc.weekly, nil, time.Second)

	report := warmup.Run(context.Background())
	assert.Equal(t, 3, report.UpcomingGames)
	assert.NotZero(t, report.FilterOptions)
	assert.NotZero(t, report.WeeklyTrends)
	assert.Len(t, report.WeeklyKey, 64)

	cacheSvc := NewCacheService(tc.regions)
	entries := cacheSvc.ProtectedEntries()
	assert.Equal(t, ProtectedEntry{Key: upcominggame.DefaultCacheKey, Exists: true, Count: 3}, entries.UpcomingGamesDefault)
	assert.True(t, entries.FilterOptions.Exists)
	assert.Equal(t, filteroption.CacheKey, entries.FilterOptions.Key)
	assert.Equal(t, report.WeeklyKey, entries.InitialWeeklyTrends.Key)
	assert.Equal(t, report.WeeklyTrends, entries.InitialWeeklyTrends.Count)
}

func TestInitialWeeklyFilter_IsValid(t *testing.T) {
	f := InitialWeeklyFilter([]string{"PHIvsDAL", "BUFvsBAL"})
	require.NoError(t, f.Normalize())

	assert.Len(t, f.Category, len(filter.Categories))
	assert.Equal(t, filter.StringList{"BUFvsBAL", "PHIvsDAL"}, f.GamesApplicable.Games)
	assert.Equal(t, filter.MaxTrendLimit, *f.Limit)

	client := InitialWeeklyFilter(nil)
	client.GamesApplicable = &filter.GamesApplicable{Games: filter.StringList{"phivsdal", "BUFvsBAL"}, MatchAlias: "Contains_Any"}
	require.NoError(t, client.Normalize())
	assert.Equal(t, f.Compile(), client.Compile())

	noGames := InitialWeeklyFilter(nil)
	require.NoError(t, noGames.Normalize())
	assert.Nil(t, noGames.GamesApplicable)
}

func TestCacheService_ClearHonorsProtection(t *testing.T) {
	tc := newTestCache()
	ctx := context.Background()
	upcoming := NewUpcomingGameService(tc.upcoming)

	_, err := upcoming.Default(ctx)
	require.NoError(t, err)
	_, err = upcoming.Find(ctx, filter.UpcomingGameFilter{HomeAbbreviation: filter.StringList{"PHI"}})
	require.NoError(t, err)

	svc := NewCacheService(tc.regions)
	res := svc.ClearUpcoming(true)
	assert.Equal(t, 1, res.Removed)
	assert.Equal(t, "Upcoming games cache cleared (default entry preserved)", res.Message)
	assert.True(t, svc.ProtectedEntries().UpcomingGamesDefault.Exists)

	res = svc.ClearAll(false)
	assert.Equal(t, 1, res.Removed)
	assert.Equal(t, "All caches cleared (all entries removed)", res.Message)
	assert.False(t, svc.ProtectedEntries().UpcomingGamesDefault.Exists)

	stats := svc.Stats()
	assert.Equal(t, "TTLCache", stats.UpcomingGames.Type)
	assert.Equal(t, []string{upcominggame.DefaultCacheKey}, stats.UpcomingGames.ProtectedKeys)
	assert.Equal(t, "LRUCache", stats.WeeklyTrends.Type)
	assert.Nil(t, stats.WeeklyTrends.TTLSeconds)
}
