package filter

import "reflect"

// UpcomingGameFilter selects scheduled games. The zero value is the default
// request served from the protected cache entry.
type UpcomingGameFilter struct {
	GameID StringList `json:"game_id,omitempty"`

	Date      StringList `json:"date,omitempty"`
	StartDate *string    `json:"start_date,omitempty"`
	EndDate   *string    `json:"end_date,omitempty"`

	Month     StringList `json:"month,omitempty"`
	DayOfWeek StringList `json:"day_of_week,omitempty"`

	HomeTeam         StringList `json:"home_team,omitempty"`
	AwayTeam         StringList `json:"away_team,omitempty"`
	HomeAbbreviation StringList `json:"home_abbreviation,omitempty"`
	AwayAbbreviation StringList `json:"away_abbreviation,omitempty"`
	HomeDivision     StringList `json:"home_division,omitempty"`
	AwayDivision     StringList `json:"away_division,omitempty"`
	Divisional       *bool      `json:"divisional,omitempty"`

	Spread        FloatList `json:"spread,omitempty"`
	MinSpread     *float64  `json:"min_spread,omitempty"`
	MaxSpread     *float64  `json:"max_spread,omitempty"`
	HomeSpread    FloatList `json:"home_spread,omitempty"`
	MinHomeSpread *float64  `json:"min_home_spread,omitempty"`
	MaxHomeSpread *float64  `json:"max_home_spread,omitempty"`
	AwaySpread    FloatList `json:"away_spread,omitempty"`
	MinAwaySpread *float64  `json:"min_away_spread,omitempty"`
	MaxAwaySpread *float64  `json:"max_away_spread,omitempty"`
	Total         FloatList `json:"total,omitempty"`
	MinTotal      *float64  `json:"min_total,omitempty"`
	MaxTotal      *float64  `json:"max_total,omitempty"`

	Limit  *int     `json:"limit,omitempty"`
	Offset *int     `json:"offset,omitempty"`
	SortBy SortList `json:"sort_by,omitempty"`
}

var defaultUpcomingSort = SortList{{Field: "date", Order: OrderAsc}, {Field: "id_string", Order: OrderAsc}}

var UpcomingGameColumns = columnSet(OrderingWeekdayMon,
	"id", "id_string", "date", "month", "day", "year", "season", "day_of_week",
	"home_team", "home_abbreviation", "home_division",
	"away_team", "away_abbreviation", "away_division", "divisional",
	"spread", "home_spread", "home_spread_odds", "away_spread", "away_spread_odds",
	"home_moneyline_odds", "away_moneyline_odds",
	"total", "over", "over_odds", "under", "under_odds",
)

// IsDefault reports whether f carries no criteria at all.
func (f UpcomingGameFilter) IsDefault() bool {
	return reflect.ValueOf(f).IsZero()
}

func (f *UpcomingGameFilter) Normalize() error {
	c := &checker{}

	f.GameID = c.enum("game_id", f.GameID, false, "{HOME}{AWAY}{YYYYMMDD}", canonicalGameID)
	f.Date = c.enum("date", f.Date, false, "date YYYY-MM-DD", canonicalDate)
	f.StartDate = c.single("start_date", f.StartDate, "date YYYY-MM-DD", canonicalDate)
	f.EndDate = c.single("end_date", f.EndDate, "date YYYY-MM-DD", canonicalDate)
	f.Month = c.enum("month", f.Month, false, "calendar month", canonicalMonth)
	f.DayOfWeek = c.enum("day_of_week", f.DayOfWeek, false, "day of week", canonicalWeekday)

	f.HomeTeam = c.enum("home_team", f.HomeTeam, false, "team name", canonicalTeamName)
	f.AwayTeam = c.enum("away_team", f.AwayTeam, false, "team name", canonicalTeamName)
	f.HomeAbbreviation = c.enum("home_abbreviation", f.HomeAbbreviation, false, "team abbreviation", canonicalAbbreviation)
	f.AwayAbbreviation = c.enum("away_abbreviation", f.AwayAbbreviation, false, "team abbreviation", canonicalAbbreviation)
	f.HomeDivision = c.enum("home_division", f.HomeDivision, false, "division", canonicalDivision)
	f.AwayDivision = c.enum("away_division", f.AwayDivision, false, "division", canonicalDivision)

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
	f.Total = c.floatRange("total", f.Total, 0, 100, true)
	c.floatPtr("min_total", f.MinTotal, 0, 100, true)
	c.floatPtr("max_total", f.MaxTotal, 0, 100, true)
	c.orderedFloats("total", f.MinTotal, f.MaxTotal)

	c.page(&f.Limit, &f.Offset, DefaultGameLimit, MaxGameLimit)
	f.SortBy = normalizeSort(f.SortBy)
	compileSort(c, f.SortBy, defaultUpcomingSort, UpcomingGameColumns)

	return c.err()
}

func (f UpcomingGameFilter) Compile() Query {
	b := &builder{}

	b.strings("id_string", f.GameID)
	b.strings("date", f.Date)
	b.span("date", TransformNone, stringPtrAny(f.StartDate), stringPtrAny(f.EndDate))
	b.strings("month", f.Month)
	b.strings("day_of_week", f.DayOfWeek)

	b.matchup("home_team", "away_team", f.HomeTeam, f.AwayTeam)
	b.matchup("home_abbreviation", "away_abbreviation", f.HomeAbbreviation, f.AwayAbbreviation)
	b.strings("home_division", f.HomeDivision)
	b.strings("away_division", f.AwayDivision)
	b.boolean("divisional", f.Divisional)

	b.floats("spread", f.Spread)
	b.span("spread", TransformNone, floatPtrAny(f.MinSpread), floatPtrAny(f.MaxSpread))
	b.floats("home_spread", f.HomeSpread)
	b.span("home_spread", TransformNone, floatPtrAny(f.MinHomeSpread), floatPtrAny(f.MaxHomeSpread))
	b.floats("away_spread", f.AwaySpread)
	b.span("away_spread", TransformNone, floatPtrAny(f.MinAwaySpread), floatPtrAny(f.MaxAwaySpread))
	b.floats("total", f.Total)
	b.span("total", TransformNone, floatPtrAny(f.MinTotal), floatPtrAny(f.MaxTotal))

	return Query{
		Where:  b.where,
		Sort:   compileSort(&checker{}, f.SortBy, defaultUpcomingSort, UpcomingGameColumns),
		Limit:  deref(f.Limit),
		Offset: deref(f.Offset),
	}
}
