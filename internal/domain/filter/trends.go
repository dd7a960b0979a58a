package filter

import (
	"fmt"
	"strings"
)

// TrendFilter selects aggregated trend rows. The same grammar serves the
// trends, weekly trends and per-game trend collections.
type TrendFilter struct {
	TrendID  StringList `json:"trend_id,omitempty"`
	Category StringList `json:"category,omitempty"`

	Month      StringList `json:"month,omitempty"`
	StartMonth *string    `json:"start_month,omitempty"`
	EndMonth   *string    `json:"end_month,omitempty"`
	DayOfWeek  StringList `json:"day_of_week,omitempty"`

	Divisional NullableBool     `json:"divisional,omitzero"`
	Spread     *LineCondition   `json:"spread,omitempty"`
	Total      *LineCondition   `json:"total,omitempty"`
	Seasons    *SeasonCondition `json:"seasons,omitempty"`

	Wins             IntList   `json:"wins,omitempty"`
	MinWins          *int      `json:"min_wins,omitempty"`
	MaxWins          *int      `json:"max_wins,omitempty"`
	Losses           IntList   `json:"losses,omitempty"`
	MinLosses        *int      `json:"min_losses,omitempty"`
	MaxLosses        *int      `json:"max_losses,omitempty"`
	Pushes           IntList   `json:"pushes,omitempty"`
	MinPushes        *int      `json:"min_pushes,omitempty"`
	MaxPushes        *int      `json:"max_pushes,omitempty"`
	TotalGames       IntList   `json:"total_games,omitempty"`
	MinTotalGames    *int      `json:"min_total_games,omitempty"`
	MaxTotalGames    *int      `json:"max_total_games,omitempty"`
	WinPercentage    FloatList `json:"win_percentage,omitempty"`
	MinWinPercentage *float64  `json:"min_win_percentage,omitempty"`
	MaxWinPercentage *float64  `json:"max_win_percentage,omitempty"`

	Limit  *int     `json:"limit,omitempty"`
	Offset *int     `json:"offset,omitempty"`
	SortBy SortList `json:"sort_by,omitempty"`
}

// DefaultTrendSort ranks the strongest trends first.
var DefaultTrendSort = SortList{
	{Field: "win_percentage", Order: OrderDesc},
	{Field: "total_games", Order: OrderDesc},
}

var TrendColumns = columnSet(OrderingWeekdaySun,
	"id", "id_string", "category", "month", "day_of_week", "divisional",
	"spread", "total", "seasons", "wins", "losses", "pushes",
	"total_games", "win_percentage", "trend_string",
)

const trendIDParts = 7

func canonicalTrendID(v string) (string, bool) {
	parts := strings.Split(v, ",")
	if len(parts) != trendIDParts {
		return "", false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ","), true
}

func (f *TrendFilter) Normalize() error {
	c := &checker{}
	f.normalize(c)
	return c.err()
}

func (f *TrendFilter) normalize(c *checker) {
	f.TrendID = c.enum("trend_id", f.TrendID, false,
		fmt.Sprintf("%d comma separated parts: category,month,day,divisional,spread,total,seasons", trendIDParts), canonicalTrendID)
	f.Category = c.enum("category", f.Category, false, "trend category", canonicalCategory)

	f.Month = c.enum("month", f.Month, true, `calendar month or "None"`, canonicalMonth)
	f.StartMonth = c.single("start_month", f.StartMonth, "calendar month", canonicalMonth)
	f.EndMonth = c.single("end_month", f.EndMonth, "calendar month", canonicalMonth)
	f.DayOfWeek = c.enum("day_of_week", f.DayOfWeek, true, `day of week or "None"`, canonicalWeekday)

	f.Spread = c.spreadLine("spread", f.Spread)
	f.Total = c.totalLine("total", f.Total)
	f.Seasons = c.seasons(f.Seasons)

	f.Wins = c.intRange("wins", f.Wins, 1, 5000)
	c.intPtr("min_wins", f.MinWins, 1, 5000)
	c.intPtr("max_wins", f.MaxWins, 1, 5000)
	c.orderedInts("wins", f.MinWins, f.MaxWins)
	f.Losses = c.intRange("losses", f.Losses, 1, 5000)
	c.intPtr("min_losses", f.MinLosses, 1, 5000)
	c.intPtr("max_losses", f.MaxLosses, 1, 5000)
	c.orderedInts("losses", f.MinLosses, f.MaxLosses)
	f.Pushes = c.intRange("pushes", f.Pushes, 1, 5000)
	c.intPtr("min_pushes", f.MinPushes, 1, 5000)
	c.intPtr("max_pushes", f.MaxPushes, 1, 5000)
	c.orderedInts("pushes", f.MinPushes, f.MaxPushes)
	f.TotalGames = c.intRange("total_games", f.TotalGames, 1, 10000)
	c.intPtr("min_total_games", f.MinTotalGames, 1, 10000)
	c.intPtr("max_total_games", f.MaxTotalGames, 1, 10000)
	c.orderedInts("total_games", f.MinTotalGames, f.MaxTotalGames)
	f.WinPercentage = c.floatRange("win_percentage", f.WinPercentage, 0, 100, false)
	c.floatPtr("min_win_percentage", f.MinWinPercentage, 0, 100, false)
	c.floatPtr("max_win_percentage", f.MaxWinPercentage, 0, 100, false)
	c.orderedFloats("win_percentage", f.MinWinPercentage, f.MaxWinPercentage)

	c.page(&f.Limit, &f.Offset, DefaultTrendLimit, MaxTrendLimit)
	f.SortBy = normalizeSort(f.SortBy)
	compileSort(c, f.SortBy, DefaultTrendSort, TrendColumns)
}

func (f TrendFilter) Compile() Query {
	b := &builder{}
	f.where(b)
	return Query{
		Where:  b.where,
		Sort:   compileSort(&checker{}, f.SortBy, DefaultTrendSort, TrendColumns),
		Limit:  deref(f.Limit),
		Offset: deref(f.Offset),
	}
}

func (f TrendFilter) where(b *builder) {
	b.strings("id_string", f.TrendID)
	b.strings("category", f.Category)

	b.strings("month", f.Month)
	b.span("month", TransformMonthNumber, monthNumberAny(f.StartMonth), monthNumberAny(f.EndMonth))
	b.strings("day_of_week", f.DayOfWeek)

	switch {
	case !f.Divisional.Set:
	case f.Divisional.None:
		b.add(isNull("divisional"))
	default:
		b.add(eq("divisional", f.Divisional.Value))
	}

	b.line("spread", f.Spread)
	b.line("total", f.Total)
	b.seasons("seasons", f.Seasons)

	b.ints("wins", f.Wins)
	b.span("wins", TransformNone, intPtrAny(f.MinWins), intPtrAny(f.MaxWins))
	b.ints("losses", f.Losses)
	b.span("losses", TransformNone, intPtrAny(f.MinLosses), intPtrAny(f.MaxLosses))
	b.ints("pushes", f.Pushes)
	b.span("pushes", TransformNone, intPtrAny(f.MinPushes), intPtrAny(f.MaxPushes))
	b.ints("total_games", f.TotalGames)
	b.span("total_games", TransformNone, intPtrAny(f.MinTotalGames), intPtrAny(f.MaxTotalGames))
	b.floats("win_percentage", f.WinPercentage)
	b.span("win_percentage", TransformNone, floatPtrAny(f.MinWinPercentage), floatPtrAny(f.MaxWinPercentage))
}

// WeeklyTrendFilter adds the games-applicable condition to the trend grammar.
type WeeklyTrendFilter struct {
	TrendFilter
	GamesApplicable *GamesApplicable `json:"games_applicable,omitempty"`
}

func (f *WeeklyTrendFilter) Normalize() error {
	c := &checker{}
	f.TrendFilter.normalize(c)
	f.GamesApplicable = c.gamesApplicable(f.GamesApplicable)
	return c.err()
}

func (f WeeklyTrendFilter) Compile() Query {
	b := &builder{}
	f.TrendFilter.where(b)
	b.gamesApplicable("games_applicable", f.GamesApplicable)
	return Query{
		Where:  b.where,
		Sort:   compileSort(&checker{}, f.SortBy, DefaultTrendSort, TrendColumns),
		Limit:  deref(f.Limit),
		Offset: deref(f.Offset),
	}
}

// GameTrendFilter selects rows of one per-game trend table, whose parameter
// columns are nullable.
type GameTrendFilter struct {
	TrendFilter
}
