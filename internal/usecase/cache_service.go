package usecase

import (
	"time"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/filteroption"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/upcominggame"

	"github.com/riskibarqy/nfl-trends-api/internal/platform/cache"
)

type CacheRegions struct {
	UpcomingGames *cache.Region
	WeeklyTrends  *cache.Region
	FilterOptions *cache.Region
}

// CacheService inspects and clears the cache regions.
type CacheService struct {
	regions CacheRegions
	now     func() time.Time
}

func NewCacheService(regions CacheRegions) *CacheService {
	return &CacheService{regions: regions, now: time.Now}
}

type CacheStats struct {
	UpcomingGames cache.Stats `json:"upcoming_games_cache"`
	WeeklyTrends  cache.Stats `json:"weekly_trends_cache"`
	FilterOptions cache.Stats `json:"weekly_filter_options_cache"`
	Timestamp     time.Time   `json:"timestamp"`
}

func (s *CacheService) Stats() CacheStats {
	return CacheStats{
		UpcomingGames: s.regions.UpcomingGames.Stats(),
		WeeklyTrends:  s.regions.WeeklyTrends.Stats(),
		FilterOptions: s.regions.FilterOptions.Stats(),
		Timestamp:     s.now().UTC(),
	}
}

type ClearResult struct {
	Message string `json:"message"`
	Removed int    `json:"removed"`
}

func (s *CacheService) ClearUpcoming(preserveDefault bool) ClearResult {
	removed := s.regions.UpcomingGames.Clear(preserveDefault)
	return ClearResult{Message: "Upcoming games cache cleared" + preservedSuffix(preserveDefault, "default entry"), Removed: removed}
}

func (s *CacheService) ClearWeekly(preserveInitial bool) ClearResult {
	removed := s.regions.WeeklyTrends.Clear(preserveInitial)
	return ClearResult{Message: "Weekly trends cache cleared" + preservedSuffix(preserveInitial, "initial query"), Removed: removed}
}

func (s *CacheService) ClearFilterOptions(preserveDefault bool) ClearResult {
	removed := s.regions.FilterOptions.Clear(preserveDefault)
	return ClearResult{Message: "Weekly filter options cache cleared" + preservedSuffix(preserveDefault, "default entry"), Removed: removed}
}

func (s *CacheService) ClearAll(preserveProtected bool) ClearResult {
	removed := s.regions.UpcomingGames.Clear(preserveProtected) +
		s.regions.WeeklyTrends.Clear(preserveProtected) +
		s.regions.FilterOptions.Clear(preserveProtected)
	return ClearResult{Message: "All caches cleared" + preservedSuffix(preserveProtected, "protected entries"), Removed: removed}
}

func preservedSuffix(preserve bool, what string) string {
	if preserve {
		return " (" + what + " preserved)"
	}
	return " (all entries removed)"
}

type ProtectedEntry struct {
	Key    string `json:"key"`
	Exists bool   `json:"exists"`
	Count  int    `json:"count"`
}

type ProtectedEntries struct {
	UpcomingGamesDefault ProtectedEntry `json:"upcoming_games_default"`
	InitialWeeklyTrends  ProtectedEntry `json:"initial_weekly_trends"`
	FilterOptions        ProtectedEntry `json:"weekly_filter_options"`
}

func (s *CacheService) ProtectedEntries() ProtectedEntries {
	out := ProtectedEntries{
		UpcomingGamesDefault: peekEntry(s.regions.UpcomingGames, upcominggame.DefaultCacheKey),
		FilterOptions:        peekEntry(s.regions.FilterOptions, filteroption.CacheKey),
	}
	if keys := s.regions.WeeklyTrends.Stats().ProtectedKeys; len(keys) > 0 {
		out.InitialWeeklyTrends = peekEntry(s.regions.WeeklyTrends, keys[0])
	}
	return out
}

func peekEntry(region *cache.Region, key string) ProtectedEntry {
	entry := ProtectedEntry{Key: key}
	v, ok := region.Peek(key)
	if !ok {
		return entry
	}
	entry.Exists = true
	if sized, ok := v.(cache.Sized); ok {
		entry.Count = sized.Len()
	}
	return entry
}
