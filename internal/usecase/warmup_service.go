package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/filteroption"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/trend"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/upcominggame"
	"github.com/riskibarqy/nfl-trends-api/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

const defaultWarmupTimeout = 30 * time.Second

// ProtectedWeeklyFinder runs a weekly trends query whose cache entry is kept
// through eviction and protective clears.
type ProtectedWeeklyFinder interface {
	FindProtected(ctx context.Context, q filter.Query) ([]trend.WeeklyTrend, int, string, error)
}

// WarmupService fills the protected cache entries before the server accepts
// traffic.
type WarmupService struct {
	upcoming *UpcomingGameService
	options  filteroption.Repository
	weekly   ProtectedWeeklyFinder
	logger   *logging.Logger
	timeout  time.Duration
}

func NewWarmupService(
	upcoming *UpcomingGameService,
	options filteroption.Repository,
	weekly ProtectedWeeklyFinder,
	logger *logging.Logger,
	timeout time.Duration,
) *WarmupService {
	if logger == nil {
		logger = logging.NewNop()
	}
	if timeout <= 0 {
		timeout = defaultWarmupTimeout
	}
	return &WarmupService{
		upcoming: upcoming,
		options:  options,
		weekly:   weekly,
		logger:   logger,
		timeout:  timeout,
	}
}

type WarmupReport struct {
	UpcomingGames int
	FilterOptions int
	WeeklyTrends  int
	WeeklyKey     string
}

// Run never fails: every step logs its error and the server starts with
// whatever was cached.
func (s *WarmupService) Run(ctx context.Context) WarmupReport {
	ctx, span := startUsecaseSpan(ctx, "usecase.WarmupService.Run")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		report   WarmupReport
		upcoming []upcominggame.UpcomingGame
	)
	wg := conc.NewWaitGroup()
	wg.Go(func() {
		page, err := s.upcoming.Default(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "warm up upcoming games failed", "error", err)
			return
		}
		upcoming = page.Items
		report.UpcomingGames = len(page.Items)
	})
	wg.Go(func() {
		options, err := s.options.List(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "warm up filter options failed", "error", err)
			return
		}
		report.FilterOptions = len(options)
	})
	if recovered := wg.WaitAndRecover(); recovered != nil {
		s.logger.ErrorContext(ctx, "warm up panicked", "error", recovered.AsError())
	}

	f := InitialWeeklyFilter(upcominggame.Tokens(upcoming))
	if err := f.Normalize(); err != nil {
		s.logger.WarnContext(ctx, "build initial weekly trends filter failed", "error", err)
		return report
	}

	items, total, key, err := s.weekly.FindProtected(ctx, f.Compile())
	report.WeeklyKey = key
	if err != nil {
		s.logger.WarnContext(ctx, "warm up initial weekly trends failed", "error", err, "cache_key", key)
		return report
	}
	report.WeeklyTrends = len(items)

	s.logger.InfoContext(ctx, "cache warm up completed",
		"upcoming_games", report.UpcomingGames,
		"filter_options", report.FilterOptions,
		"weekly_trends", report.WeeklyTrends,
		"weekly_trends_total", total,
		"cache_key", key,
	)
	return report
}

// InitialWeeklyFilter is the query the weekly trends page issues on first
// load for the games in tokens.
func InitialWeeklyFilter(tokens []string) filter.WeeklyTrendFilter {
	spreadOrLess := make(filter.IntList, 0, 13)
	for n := 2; n <= 14; n++ {
		spreadOrLess = append(spreadOrLess, n)
	}
	spreadOrMore := make(filter.IntList, 0, 8)
	for n := 1; n <= 8; n++ {
		spreadOrMore = append(spreadOrMore, n)
	}
	seasons := make(filter.StringList, 0, filter.LastSeasonYear-filter.FirstSeasonYear+1)
	for year := filter.FirstSeasonYear; year <= filter.LastSeasonYear; year++ {
		seasons = append(seasons, filter.SeasonLabel(year))
	}

	f := filter.WeeklyTrendFilter{
		TrendFilter: filter.TrendFilter{
			Category:  append(filter.StringList(nil), filter.Categories...),
			Month:     filter.StringList{"September", filter.NoneValue},
			DayOfWeek: filter.StringList{"Sunday", "Monday", "Thursday", "Friday", filter.NoneValue},
			Spread: &filter.LineCondition{
				Exact:  filter.StringList{filter.NoneValue, "1.5", "2.5", "3.0", "3.5", "5.5", "6.5", "7.5", "8.5"},
				OrLess: spreadOrLess,
				OrMore: spreadOrMore,
			},
			Total: &filter.LineCondition{
				Exact:  filter.StringList{filter.NoneValue},
				OrLess: filter.IntList{40, 45, 50, 55, 60},
				OrMore: filter.IntList{30, 35, 40, 45, 50},
			},
			Seasons: &filter.SeasonCondition{Exact: seasons},
			Limit:   ptrTo(filter.MaxTrendLimit),
			SortBy: filter.SortList{
				{Field: "win_percentage", Order: filter.OrderDesc},
				{Field: "total_games", Order: filter.OrderDesc},
			},
		},
	}
	if len(tokens) > 0 {
		f.GamesApplicable = &filter.GamesApplicable{
			Games: append(filter.StringList(nil), tokens...),
			Match: filter.MatchContainsAny,
		}
	}
	return f
}

func ptrTo[T any](v T) *T { return &v }
