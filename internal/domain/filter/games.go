package filter

// GameFilter selects completed games.
type GameFilter struct {
	GameID StringList `json:"game_id,omitempty"`

	Date      StringList `json:"date,omitempty"`
	StartDate *string    `json:"start_date,omitempty"`
	EndDate   *string    `json:"end_date,omitempty"`

	Month      StringList `json:"month,omitempty"`
	StartMonth *string    `json:"start_month,omitempty"`
	EndMonth   *string    `json:"end_month,omitempty"`

	Day      IntList `json:"day,omitempty"`
	StartDay *int    `json:"start_day,omitempty"`
	EndDay   *int    `json:"end_day,omitempty"`

	Year      IntList `json:"year,omitempty"`
	StartYear *int    `json:"start_year,omitempty"`
	EndYear   *int    `json:"end_year,omitempty"`

	Season      StringList `json:"season,omitempty"`
	StartSeason *string    `json:"start_season,omitempty"`
	EndSeason   *string    `json:"end_season,omitempty"`

	DayOfWeek StringList `json:"day_of_week,omitempty"`

	HomeTeam         StringList `json:"home_team,omitempty"`
	AwayTeam         StringList `json:"away_team,omitempty"`
	HomeAbbreviation StringList `json:"home_abbreviation,omitempty"`
	AwayAbbreviation StringList `json:"away_abbreviation,omitempty"`
	HomeDivision     StringList `json:"home_division,omitempty"`
	AwayDivision     StringList `json:"away_division,omitempty"`
	Divisional       *bool      `json:"divisional,omitempty"`

	HomeScore        IntList `json:"home_score,omitempty"`
	MinHomeScore     *int    `json:"min_home_score,omitempty"`
	MaxHomeScore     *int    `json:"max_home_score,omitempty"`
	AwayScore        IntList `json:"away_score,omitempty"`
	MinAwayScore     *int    `json:"min_away_score,omitempty"`
	MaxAwayScore     *int    `json:"max_away_score,omitempty"`
	CombinedScore    IntList `json:"combined_score,omitempty"`
	MinCombinedScore *int    `json:"min_combined_score,omitempty"`
	MaxCombinedScore *int    `json:"max_combined_score,omitempty"`

	Tie    *bool      `json:"tie,omitempty"`
	Winner StringList `json:"winner,omitempty"`
	Loser  StringList `json:"loser,omitempty"`

	Spread              FloatList `json:"spread,omitempty"`
	MinSpread           *float64  `json:"min_spread,omitempty"`
	MaxSpread           *float64  `json:"max_spread,omitempty"`
	HomeSpread          FloatList `json:"home_spread,omitempty"`
	MinHomeSpread       *float64  `json:"min_home_spread,omitempty"`
	MaxHomeSpread       *float64  `json:"max_home_spread,omitempty"`
	HomeSpreadResult    IntList   `json:"home_spread_result,omitempty"`
	MinHomeSpreadResult *int      `json:"min_home_spread_result,omitempty"`
	MaxHomeSpreadResult *int      `json:"max_home_spread_result,omitempty"`
	AwaySpread          FloatList `json:"away_spread,omitempty"`
	MinAwaySpread       *float64  `json:"min_away_spread,omitempty"`
	MaxAwaySpread       *float64  `json:"max_away_spread,omitempty"`
	AwaySpreadResult    IntList   `json:"away_spread_result,omitempty"`
	MinAwaySpreadResult *int      `json:"min_away_spread_result,omitempty"`
	MaxAwaySpreadResult *int      `json:"max_away_spread_result,omitempty"`
	SpreadPush          *bool     `json:"spread_push,omitempty"`
	PK                  *bool     `json:"pk,omitempty"`
	Total               FloatList `json:"total,omitempty"`
	MinTotal            *float64  `json:"min_total,omitempty"`
	MaxTotal            *float64  `json:"max_total,omitempty"`
	TotalPush           *bool     `json:"total_push,omitempty"`

	HomeFavorite *bool `json:"home_favorite,omitempty"`
	AwayFavorite *bool `json:"away_favorite,omitempty"`
	HomeUnderdog *bool `json:"home_underdog,omitempty"`
	AwayUnderdog *bool `json:"away_underdog,omitempty"`

	HomeWin         *bool `json:"home_win,omitempty"`
	AwayWin         *bool `json:"away_win,omitempty"`
	FavoriteWin     *bool `json:"favorite_win,omitempty"`
	UnderdogWin     *bool `json:"underdog_win,omitempty"`
	HomeFavoriteWin *bool `json:"home_favorite_win,omitempty"`
	AwayFavoriteWin *bool `json:"away_favorite_win,omitempty"`
	HomeUnderdogWin *bool `json:"home_underdog_win,omitempty"`
	AwayUnderdogWin *bool `json:"away_underdog_win,omitempty"`

	HomeCover         *bool `json:"home_cover,omitempty"`
	AwayCover         *bool `json:"away_cover,omitempty"`
	FavoriteCover     *bool `json:"favorite_cover,omitempty"`
	UnderdogCover     *bool `json:"underdog_cover,omitempty"`
	HomeFavoriteCover *bool `json:"home_favorite_cover,omitempty"`
	AwayFavoriteCover *bool `json:"away_favorite_cover,omitempty"`
	HomeUnderdogCover *bool `json:"home_underdog_cover,omitempty"`
	AwayUnderdogCover *bool `json:"away_underdog_cover,omitempty"`

	OverHit  *bool `json:"over_hit,omitempty"`
	UnderHit *bool `json:"under_hit,omitempty"`

	Limit  *int     `json:"limit,omitempty"`
	Offset *int     `json:"offset,omitempty"`
	SortBy SortList `json:"sort_by,omitempty"`
}

var defaultGameSort = SortList{{Field: "date", Order: OrderAsc}, {Field: "id_string", Order: OrderAsc}}

// GameColumns lists every sortable games column and how it orders.
var GameColumns = columnSet(OrderingWeekdayMon,
	"id", "id_string", "date", "month", "day", "year", "season", "day_of_week",
	"home_team", "home_abbreviation", "home_division",
	"away_team", "away_abbreviation", "away_division", "divisional",
	"home_score", "away_score", "combined_score", "tie", "winner", "loser",
	"spread", "home_spread", "home_spread_result", "away_spread", "away_spread_result",
	"spread_push", "pk", "total", "total_push",
	"home_favorite", "away_favorite", "home_underdog", "away_underdog",
	"home_win", "away_win", "favorite_win", "underdog_win",
	"home_favorite_win", "away_favorite_win", "home_underdog_win", "away_underdog_win",
	"home_cover", "away_cover", "favorite_cover", "underdog_cover",
	"home_favorite_cover", "away_favorite_cover", "home_underdog_cover", "away_underdog_cover",
	"over_hit", "under_hit",
)

// columnSet marks month and day_of_week with their calendar orderings.
func columnSet(weekday Ordering, columns ...string) map[string]Ordering {
	out := make(map[string]Ordering, len(columns))
	for _, c := range columns {
		switch c {
		case "month":
			out[c] = OrderingMonth
		case "day_of_week":
			out[c] = weekday
		default:
			out[c] = OrderingNatural
		}
	}
	return out
}

// Normalize validates f and rewrites it to its canonical form. On error f is
// left partially rewritten and must not be compiled.
func (f *GameFilter) Normalize() error {
	c := &checker{}

	f.GameID = c.enum("game_id", f.GameID, false, "{HOME}{AWAY}{YYYYMMDD}", canonicalGameID)

	f.Date = c.enum("date", f.Date, false, "date YYYY-MM-DD", canonicalDate)
	f.StartDate = c.single("start_date", f.StartDate, "date YYYY-MM-DD", canonicalDate)
	f.EndDate = c.single("end_date", f.EndDate, "date YYYY-MM-DD", canonicalDate)
	if f.StartDate != nil && f.EndDate != nil && *f.StartDate > *f.EndDate {
		c.fail("start_date", *f.StartDate+" > "+*f.EndDate, "lower bound must not exceed upper bound")
	}

	f.Month = c.enum("month", f.Month, false, "calendar month", canonicalMonth)
	f.StartMonth = c.single("start_month", f.StartMonth, "calendar month", canonicalMonth)
	f.EndMonth = c.single("end_month", f.EndMonth, "calendar month", canonicalMonth)

	f.Day = c.intRange("day", f.Day, 1, 31)
	c.intPtr("start_day", f.StartDay, 1, 31)
	c.intPtr("end_day", f.EndDay, 1, 31)
	c.orderedInts("day", f.StartDay, f.EndDay)

	f.Year = c.intRange("year", f.Year, FirstYear, LastYear)
	c.intPtr("start_year", f.StartYear, FirstYear, LastYear)
	c.intPtr("end_year", f.EndYear, FirstYear, LastYear)
	c.orderedInts("year", f.StartYear, f.EndYear)

	f.Season = c.enum("season", f.Season, false, "season 2006-2007..2024-2025", canonicalSeason)
	f.StartSeason = c.single("start_season", f.StartSeason, "season 2006-2007..2024-2025", canonicalSeason)
	f.EndSeason = c.single("end_season", f.EndSeason, "season 2006-2007..2024-2025", canonicalSeason)

	f.DayOfWeek = c.enum("day_of_week", f.DayOfWeek, false, "day of week", canonicalWeekday)

	f.HomeTeam = c.enum("home_team", f.HomeTeam, false, "team name", canonicalTeamName)
	f.AwayTeam = c.enum("away_team", f.AwayTeam, false, "team name", canonicalTeamName)
	f.HomeAbbreviation = c.enum("home_abbreviation", f.HomeAbbreviation, false, "team abbreviation", canonicalAbbreviation)
	f.AwayAbbreviation = c.enum("away_abbreviation", f.AwayAbbreviation, false, "team abbreviation", canonicalAbbreviation)
	f.HomeDivision = c.enum("home_division", f.HomeDivision, false, "division", canonicalDivision)
	f.AwayDivision = c.enum("away_division", f.AwayDivision, false, "division", canonicalDivision)

	f.HomeScore = c.intRange("home_score", f.HomeScore, 0, 100)
	c.intPtr("min_home_score", f.MinHomeScore, 0, 100)
	c.intPtr("max_home_score", f.MaxHomeScore, 0, 100)
	c.orderedInts("home_score", f.MinHomeScore, f.MaxHomeScore)
	f.AwayScore = c.intRange("away_score", f.AwayScore, 0, 100)
	c.intPtr("min_away_score", f.MinAwayScore, 0, 100)
	c.intPtr("max_away_score", f.MaxAwayScore, 0, 100)
	c.orderedInts("away_score", f.MinAwayScore, f.MaxAwayScore)
	f.CombinedScore = c.intRange("combined_score", f.CombinedScore, 0, 200)
	c.intPtr("min_combined_score", f.MinCombinedScore, 0, 200)
	c.intPtr("max_combined_score", f.MaxCombinedScore, 0, 200)
	c.orderedInts("combined_score", f.MinCombinedScore, f.MaxCombinedScore)

	f.Winner = c.enum("winner", f.Winner, false, "team name", canonicalTeamName)
	f.Loser = c.enum("loser", f.Loser, false, "team name", canonicalTeamName)

	f.Spread = c.floatRange("spread", f.Spread, 0, 27, true)
	c.floatPtr("min_spread", f.MinSpread, 0, 27, true)
	c.floatPtr("max_spread", f.MaxSpread, 0, 27, true)
	c.orderedFloats("spread", f.MinSpread, f.MaxSpread)
	f.HomeSpread = c.floatRange("home_spread", f.HomeSpread, -27, 27, true)
	c.floatPtr("min_home_spread", f.MinHomeSpread, -27, 27, true)
	c.floatPtr("max_home_spread", f.MaxHomeSpread, -27, 27, true)
	c.orderedFloats("home_spread", f.MinHomeSpread, f.MaxHomeSpread)
	f.AwaySpread = c.floatRange("away_spread", f.AwaySpread, -27, 27, true)
	c.floatPtr("min_away_spread", f.MinAwaySpread, -27, 27, true)
	c.floatPtr("max_away_spread", f.MaxAwaySpread, -27, 27, true)
	c.orderedFloats("away_spread", f.MinAwaySpread, f.MaxAwaySpread)
	f.HomeSpreadResult = c.intRange("home_spread_result", f.HomeSpreadResult, -100, 100)
	c.intPtr("min_home_spread_result", f.MinHomeSpreadResult, -100, 100)
	c.intPtr("max_home_spread_result", f.MaxHomeSpreadResult, -100, 100)
	c.orderedInts("home_spread_result", f.MinHomeSpreadResult, f.MaxHomeSpreadResult)
	f.AwaySpreadResult = c.intRange("away_spread_result", f.AwaySpreadResult, -100, 100)
	c.intPtr("min_away_spread_result", f.MinAwaySpreadResult, -100, 100)
	c.intPtr("max_away_spread_result", f.MaxAwaySpreadResult, -100, 100)
	c.orderedInts("away_spread_result", f.MinAwaySpreadResult, f.MaxAwaySpreadResult)
	f.Total = c.floatRange("total", f.Total, 0, 100, true)
	c.floatPtr("min_total", f.MinTotal, 0, 100, true)
	c.floatPtr("max_total", f.MaxTotal, 0, 100, true)
	c.orderedFloats("total", f.MinTotal, f.MaxTotal)

	c.page(&f.Limit, &f.Offset, DefaultGameLimit, MaxGameLimit)
	f.SortBy = normalizeSort(f.SortBy)
	compileSort(c, f.SortBy, defaultGameSort, GameColumns)

	return c.err()
}

// Compile translates a normalized filter into its query. It is a pure function
// of f.
func (f GameFilter) Compile() Query {
	b := &builder{}

	b.strings("id_string", f.GameID)

	b.strings("date", f.Date)
	b.span("date", TransformNone, stringPtrAny(f.StartDate), stringPtrAny(f.EndDate))

	b.strings("month", f.Month)
	b.span("month", TransformMonthNumber, monthNumberAny(f.StartMonth), monthNumberAny(f.EndMonth))

	b.ints("day", f.Day)
	b.span("day", TransformNone, intPtrAny(f.StartDay), intPtrAny(f.EndDay))

	b.ints("year", f.Year)
	b.span("year", TransformNone, intPtrAny(f.StartYear), intPtrAny(f.EndYear))

	b.strings("season", f.Season)
	b.span("season", TransformSeasonStart, seasonStartAny(f.StartSeason), seasonStartAny(f.EndSeason))

	b.strings("day_of_week", f.DayOfWeek)

	b.matchup("home_team", "away_team", f.HomeTeam, f.AwayTeam)
	b.matchup("home_abbreviation", "away_abbreviation", f.HomeAbbreviation, f.AwayAbbreviation)
	b.strings("home_division", f.HomeDivision)
	b.strings("away_division", f.AwayDivision)
	b.boolean("divisional", f.Divisional)

	b.ints("home_score", f.HomeScore)
	b.span("home_score", TransformNone, intPtrAny(f.MinHomeScore), intPtrAny(f.MaxHomeScore))
	b.ints("away_score", f.AwayScore)
	b.span("away_score", TransformNone, intPtrAny(f.MinAwayScore), intPtrAny(f.MaxAwayScore))
	b.ints("combined_score", f.CombinedScore)
	b.span("combined_score", TransformNone, intPtrAny(f.MinCombinedScore), intPtrAny(f.MaxCombinedScore))

	b.boolean("tie", f.Tie)
	b.strings("winner", f.Winner)
	b.strings("loser", f.Loser)

	b.floats("spread", f.Spread)
	b.span("spread", TransformNone, floatPtrAny(f.MinSpread), floatPtrAny(f.MaxSpread))
	b.floats("home_spread", f.HomeSpread)
	b.span("home_spread", TransformNone, floatPtrAny(f.MinHomeSpread), floatPtrAny(f.MaxHomeSpread))
	b.ints("home_spread_result", f.HomeSpreadResult)
	b.span("home_spread_result", TransformNone, intPtrAny(f.MinHomeSpreadResult), intPtrAny(f.MaxHomeSpreadResult))
	b.floats("away_spread", f.AwaySpread)
	b.span("away_spread", TransformNone, floatPtrAny(f.MinAwaySpread), floatPtrAny(f.MaxAwaySpread))
	b.ints("away_spread_result", f.AwaySpreadResult)
	b.span("away_spread_result", TransformNone, intPtrAny(f.MinAwaySpreadResult), intPtrAny(f.MaxAwaySpreadResult))
	b.boolean("spread_push", f.SpreadPush)
	b.boolean("pk", f.PK)
	b.floats("total", f.Total)
	b.span("total", TransformNone, floatPtrAny(f.MinTotal), floatPtrAny(f.MaxTotal))
	b.boolean("total_push", f.TotalPush)

	b.boolean("home_favorite", f.HomeFavorite)
	b.boolean("away_favorite", f.AwayFavorite)
	b.boolean("home_underdog", f.HomeUnderdog)
	b.boolean("away_underdog", f.AwayUnderdog)

	b.boolean("home_win", f.HomeWin)
	b.boolean("away_win", f.AwayWin)
	b.boolean("favorite_win", f.FavoriteWin)
	b.boolean("underdog_win", f.UnderdogWin)
	b.boolean("home_favorite_win", f.HomeFavoriteWin)
	b.boolean("away_favorite_win", f.AwayFavoriteWin)
	b.boolean("home_underdog_win", f.HomeUnderdogWin)
	b.boolean("away_underdog_win", f.AwayUnderdogWin)

	b.boolean("home_cover", f.HomeCover)
	b.boolean("away_cover", f.AwayCover)
	b.boolean("favorite_cover", f.FavoriteCover)
	b.boolean("underdog_cover", f.UnderdogCover)
	b.boolean("home_favorite_cover", f.HomeFavoriteCover)
	b.boolean("away_favorite_cover", f.AwayFavoriteCover)
	b.boolean("home_underdog_cover", f.HomeUnderdogCover)
	b.boolean("away_underdog_cover", f.AwayUnderdogCover)

	b.boolean("over_hit", f.OverHit)
	b.boolean("under_hit", f.UnderHit)

	return Query{
		Where:  b.where,
		Sort:   compileSort(&checker{}, f.SortBy, defaultGameSort, GameColumns),
		Limit:  deref(f.Limit),
		Offset: deref(f.Offset),
	}
}

// matchup applies the home/away team rule: the same single team on both sides
// means any game involving it, one team per side is an exact matchup, and
// anything else matches either orientation.
func (b *builder) matchup(homeColumn, awayColumn string, home, away StringList) {
	switch {
	case len(home) > 0 && len(away) > 0:
		switch {
		case len(home) == 1 && len(away) == 1 && home[0] == away[0]:
			b.add(or(eq(homeColumn, home[0]), eq(awayColumn, away[0])))
		case len(home) == 1 && len(away) == 1:
			b.add(and(eq(homeColumn, home[0]), eq(awayColumn, away[0])))
		default:
			b.add(or(
				and(in(homeColumn, strings2any(home)), in(awayColumn, strings2any(away))),
				and(in(homeColumn, strings2any(away)), in(awayColumn, strings2any(home))),
			))
		}
	case len(home) > 0:
		b.add(in(homeColumn, strings2any(home)))
	case len(away) > 0:
		b.add(in(awayColumn, strings2any(away)))
	}
}

func monthNumberAny(v *string) any {
	if v == nil {
		return nil
	}
	n, ok := MonthNumber(*v)
	if !ok {
		return nil
	}
	return n
}

func seasonStartAny(v *string) any {
	if v == nil {
		return nil
	}
	n, ok := seasonStart(*v)
	if !ok {
		return nil
	}
	return n
}
