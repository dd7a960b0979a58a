package memory

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/filteroption"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/game"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/trend"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/upcominggame"
)

func SeedGames() []game.Game {
	return []game.Game{
		seedGame("NYJ", "NE", "2024-09-19", 24, 3, -6.0, 38.5),
		seedGame("NE", "NYJ", "2023-12-31", 3, 17, 2.5, 30.5),
		seedGame("KC", "BAL", "2024-09-05", 27, 20, -3.0, 46.5),
		seedGame("PHI", "GB", "2024-09-06", 34, 29, -1.5, 49.0),
		seedGame("BUF", "MIA", "2023-09-17", 31, 31, -3.0, 48.0),
		seedGame("CHI", "GB", "2022-09-11", 10, 27, 10.0, 41.5),
		seedGame("DAL", "NYG", "2023-11-12", 49, 17, -17.0, 38.0),
		seedGame("SF", "SEA", "2024-10-10", 36, 24, -3.5, 49.5),
		seedGame("NYJ", "NE", "2021-01-03", 28, 14, 0, 42.0),
		seedGame("MIN", "DET", "2025-01-05", 9, 31, 3.0, 56.0),
	}
}

func seedGame(home, away, date string, homeScore, awayScore int, homeSpread, total float64) game.Game {
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(fmt.Sprintf("seed game date %q: %v", date, err))
	}
	homeTeam, _ := filter.LookupTeam(home)
	awayTeam, _ := filter.LookupTeam(away)
	idString := home + away + day.Format("20060102")

	g := game.Game{
		ID:               strings.ToLower(idString),
		IDString:         idString,
		Date:             date,
		Month:            day.Month().String(),
		Day:              day.Day(),
		Year:             day.Year(),
		Season:           seasonOf(day),
		DayOfWeek:        day.Weekday().String(),
		HomeTeam:         homeTeam.Name,
		HomeAbbreviation: homeTeam.Abbreviation,
		HomeDivision:     homeTeam.Division,
		AwayTeam:         awayTeam.Name,
		AwayAbbreviation: awayTeam.Abbreviation,
		AwayDivision:     awayTeam.Division,
		Divisional:       homeTeam.Division == awayTeam.Division,
		HomeScore:        homeScore,
		AwayScore:        awayScore,
		HomeSpread:       homeSpread,
		Total:            total,
	}
	g.DeriveOutcomes()
	return g
}

// seasonOf names the season a date belongs to; January and February games
// close the previous year's season.
func seasonOf(day time.Time) string {
	start := day.Year()
	if day.Month() < time.March {
		start--
	}
	return fmt.Sprintf("%d-%d", start, start+1)
}

func SeedUpcomingGames() []upcominggame.UpcomingGame {
	return []upcominggame.UpcomingGame{
		seedUpcoming("PHI", "DAL", "2025-09-04", -7.0, 47.5, -110, -110, -380, 300),
		seedUpcoming("BUF", "BAL", "2025-09-07", -1.5, 50.5, -105, -115, -125, 105),
		seedUpcoming("CHI", "MIN", "2025-09-08", 1.5, 43.5, -110, -110, 105, -125),
	}
}

func seedUpcoming(home, away, date string, homeSpread, total float64, homeOdds, awayOdds, homeML, awayML int) upcominggame.UpcomingGame {
	g := seedGame(home, away, date, 0, 0, homeSpread, total)
	spread := g.Spread
	awaySpread := g.AwaySpread
	over, under := total, total
	juice := -110

	return upcominggame.UpcomingGame{
		ID:                g.ID,
		IDString:          g.IDString,
		Date:              g.Date,
		Month:             g.Month,
		Day:               g.Day,
		Year:              g.Year,
		Season:            g.Season,
		DayOfWeek:         g.DayOfWeek,
		HomeTeam:          g.HomeTeam,
		HomeAbbreviation:  g.HomeAbbreviation,
		HomeDivision:      g.HomeDivision,
		AwayTeam:          g.AwayTeam,
		AwayAbbreviation:  g.AwayAbbreviation,
		AwayDivision:      g.AwayDivision,
		Divisional:        g.Divisional,
		Spread:            &spread,
		HomeSpread:        &homeSpread,
		HomeSpreadOdds:    &homeOdds,
		AwaySpread:        &awaySpread,
		AwaySpreadOdds:    &awayOdds,
		HomeMoneylineOdds: &homeML,
		AwayMoneylineOdds: &awayML,
		Total:             &total,
		Over:              &over,
		OverOdds:          &juice,
		Under:             &under,
		UnderOdds:         &juice,
	}
}

type trendParams struct {
	category   string
	month      string
	dayOfWeek  string
	divisional string
	spread     string
	total      string
	seasons    string
}

func SeedTrends() []trend.Trend {
	return []trend.Trend{
		seedTrend(1, trendParams{"home ats", "September", "Sunday", "None", "3.0", "None", "since 2015-2016"}, 41, 30, 4),
		seedTrend(2, trendParams{"home ats", "September", "None", "None", "7 or less", "None", "since 2010-2011"}, 88, 79, 6),
		seedTrend(3, trendParams{"away outright", "None", "Thursday", "false", "None", "45 or more", "since 2018-2019"}, 19, 25, 0),
		seedTrend(4, trendParams{"favorite ats", "October", "Monday", "true", "3 or more", "None", "since 2006-2007"}, 30, 41, 2),
		seedTrend(5, trendParams{"underdog outright", "None", "None", "None", "10 or more", "None", "since 2012-2013"}, 33, 170, 0),
		seedTrend(6, trendParams{"over", "December", "Sunday", "true", "None", "40 or less", "since 2019-2020"}, 22, 13, 1),
		seedTrend(7, trendParams{"under", "January", "Saturday", "None", "None", "50 or more", "since 2014-2015"}, 15, 9, 0),
		seedTrend(8, trendParams{"home favorite ats", "September", "Thursday", "None", "7.0", "None", "since 2020-2021"}, 6, 2, 1),
	}
}

func seedTrend(id int, p trendParams, wins, losses, pushes int) trend.Trend {
	totalGames, pct := trend.Record(wins, losses, pushes)
	t := trend.Trend{
		ID:            fmt.Sprintf("%d", id),
		IDString:      strings.Join([]string{p.category, p.month, p.dayOfWeek, p.divisional, p.spread, p.total, p.seasons}, ","),
		Category:      p.category,
		Month:         optional(p.month),
		DayOfWeek:     optional(p.dayOfWeek),
		Spread:        optional(p.spread),
		Total:         optional(p.total),
		Seasons:       p.seasons,
		Wins:          wins,
		Losses:        losses,
		Pushes:        pushes,
		TotalGames:    totalGames,
		WinPercentage: pct,
	}
	switch p.divisional {
	case "true":
		v := true
		t.Divisional = &v
	case "false":
		v := false
		t.Divisional = &v
	}
	t.TrendString = fmt.Sprintf("%s is %d-%d-%d (%.1f%%) %s", p.category, wins, losses, pushes, pct, p.seasons)
	return t
}

func optional(v string) *string {
	if v == filter.NoneValue {
		return nil
	}
	return &v
}

func SeedWeeklyTrends() []trend.WeeklyTrend {
	trends := SeedTrends()
	applicable := [][]string{
		{"PHIvsDAL", "BUFvsBAL"},
		{"PHIvsDAL", "BUFvsBAL", "CHIvsMIN"},
		{"PHIvsDAL"},
		{"CHIvsMIN"},
		{"BUFvsBAL"},
		{"CHIvsMIN"},
		{},
		{"PHIvsDAL"},
	}

	out := make([]trend.WeeklyTrend, 0, len(trends))
	for i, t := range trends {
		out = append(out, trend.WeeklyTrend{Trend: t, GamesApplicable: applicable[i%len(applicable)]})
	}
	return out
}

func SeedGameTrends() map[string][]trend.Trend {
	trends := SeedTrends()
	return map[string][]trend.Trend{
		"phidal20250904": {trends[0], trends[2], trends[7]},
		"bufbal20250907": {trends[0], trends[1], trends[4]},
		"chimin20250908": {trends[3], trends[5]},
	}
}

func SeedFilterOptions() []filteroption.Option {
	updated := time.Date(2025, 9, 2, 6, 0, 0, 0, time.UTC)
	return []filteroption.Option{
		{FilterType: "category", Values: toAny(filter.Categories), LastUpdated: &updated},
		{FilterType: "month", Values: toAny(append(filter.Months(), filter.NoneValue)), LastUpdated: &updated},
		{FilterType: "day_of_week", Values: []any{"Sunday", "Monday", "Thursday", "Friday", "Saturday", filter.NoneValue}, LastUpdated: &updated},
		{FilterType: "seasons", Values: toAny(filter.SeasonLabels()), LastUpdated: &updated},
		{FilterType: "games_applicable", Values: toAny(upcominggame.Tokens(SeedUpcomingGames())), LastUpdated: &updated},
	}
}

func toAny(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
