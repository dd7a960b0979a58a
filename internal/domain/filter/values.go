package filter

import (
	"fmt"
	"strings"
)

// NoneValue is the literal that selects rows whose column is NULL.
const NoneValue = "None"

const (
	FirstSeasonYear = 2006
	LastSeasonYear  = 2024
	FirstYear       = 2006
	LastYear        = 2025
)

var months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// gameWeekdays is ordered Monday first, the order games sort by.
var gameWeekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// trendWeekdays is ordered Sunday first, the order trend collections sort by.
var trendWeekdays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var divisions = []string{
	"AFC East", "AFC North", "AFC South", "AFC West",
	"NFC East", "NFC North", "NFC South", "NFC West",
}

// Categories is the closed set of betting perspectives a trend is computed for.
var Categories = []string{
	"home outright", "home ats",
	"away outright", "away ats",
	"favorite outright", "favorite ats",
	"underdog outright", "underdog ats",
	"home favorite outright", "home favorite ats",
	"away underdog outright", "away underdog ats",
	"away favorite outright", "away favorite ats",
	"home underdog outright", "home underdog ats",
	"over", "under",
}

type Team struct {
	Name         string
	Abbreviation string
	Division     string
}

var teams = []Team{
	{Name: "Arizona Cardinals", Abbreviation: "ARI", Division: "NFC West"},
	{Name: "Atlanta Falcons", Abbreviation: "ATL", Division: "NFC South"},
	{Name: "Baltimore Ravens", Abbreviation: "BAL", Division: "AFC North"},
	{Name: "Buffalo Bills", Abbreviation: "BUF", Division: "AFC East"},
	{Name: "Carolina Panthers", Abbreviation: "CAR", Division: "NFC South"},
	{Name: "Chicago Bears", Abbreviation: "CHI", Division: "NFC North"},
	{Name: "Cincinnati Bengals", Abbreviation: "CIN", Division: "AFC North"},
	{Name: "Cleveland Browns", Abbreviation: "CLE", Division: "AFC North"},
	{Name: "Dallas Cowboys", Abbreviation: "DAL", Division: "NFC East"},
	{Name: "Denver Broncos", Abbreviation: "DEN", Division: "AFC West"},
	{Name: "Detroit Lions", Abbreviation: "DET", Division: "NFC North"},
	{Name: "Green Bay Packers", Abbreviation: "GB", Division: "NFC North"},
	{Name: "Houston Texans", Abbreviation: "HOU", Division: "AFC South"},
	{Name: "Indianapolis Colts", Abbreviation: "IND", Division: "AFC South"},
	{Name: "Jacksonville Jaguars", Abbreviation: "JAX", Division: "AFC South"},
	{Name: "Kansas City Chiefs", Abbreviation: "KC", Division: "AFC West"},
	{Name: "Las Vegas Raiders", Abbreviation: "LV", Division: "AFC West"},
	{Name: "Los Angeles Chargers", Abbreviation: "LAC", Division: "AFC West"},
	{Name: "Los Angeles Rams", Abbreviation: "LAR", Division: "NFC West"},
	{Name: "Miami Dolphins", Abbreviation: "MIA", Division: "AFC East"},
	{Name: "Minnesota Vikings", Abbreviation: "MIN", Division: "NFC North"},
	{Name: "New England Patriots", Abbreviation: "NE", Division: "AFC East"},
	{Name: "New Orleans Saints", Abbreviation: "NO", Division: "NFC South"},
	{Name: "New York Giants", Abbreviation: "NYG", Division: "NFC East"},
	{Name: "New York Jets", Abbreviation: "NYJ", Division: "AFC East"},
	{Name: "Philadelphia Eagles", Abbreviation: "PHI", Division: "NFC East"},
	{Name: "Pittsburgh Steelers", Abbreviation: "PIT", Division: "AFC North"},
	{Name: "San Francisco 49ers", Abbreviation: "SF", Division: "NFC West"},
	{Name: "Seattle Seahawks", Abbreviation: "SEA", Division: "NFC West"},
	{Name: "Tampa Bay Buccaneers", Abbreviation: "TB", Division: "NFC South"},
	{Name: "Tennessee Titans", Abbreviation: "TEN", Division: "AFC South"},
	{Name: "Washington Commanders", Abbreviation: "WAS", Division: "NFC East"},
	// Franchises that played under another name or city within the covered seasons.
	{Name: "Oakland Raiders", Abbreviation: "OAK", Division: "AFC West"},
	{Name: "San Diego Chargers", Abbreviation: "SD", Division: "AFC West"},
	{Name: "St. Louis Rams", Abbreviation: "STL", Division: "NFC West"},
	{Name: "Washington Redskins", Abbreviation: "WAS", Division: "NFC East"},
	{Name: "Washington Football Team", Abbreviation: "WAS", Division: "NFC East"},
}

var (
	monthByFold     = foldIndex(months)
	gameDayByFold   = foldIndex(gameWeekdays)
	divisionByFold  = foldIndex(divisions)
	categoryByFold  = foldIndex(Categories)
	teamNameByFold  = make(map[string]string, len(teams))
	abbreviationSet = make(map[string]struct{}, len(teams))

	spreadLabels = buildSpreadLabels()
	totalLabels  = buildTotalLabels()
	seasonLabels = buildSeasonLabels()
)

func init() {
	for _, t := range teams {
		teamNameByFold[strings.ToLower(t.Name)] = t.Name
		abbreviationSet[t.Abbreviation] = struct{}{}
	}
}

func foldIndex(values []string) map[string]string {
	out := make(map[string]string, len(values))
	for _, v := range values {
		out[strings.ToLower(v)] = v
	}
	return out
}

// Months returns the calendar month names in order.
func Months() []string { return append([]string(nil), months...) }

// MonthNumber maps a month name to 1..12.
func MonthNumber(name string) (int, bool) {
	for i, m := range months {
		if m == name {
			return i + 1, true
		}
	}
	return 0, false
}

// WeekdayRank returns the 1-based sort rank of a day for the given ordering.
func WeekdayRank(day string, sundayFirst bool) (int, bool) {
	order := gameWeekdays
	if sundayFirst {
		order = trendWeekdays
	}
	for i, d := range order {
		if d == day {
			return i + 1, true
		}
	}
	return 0, false
}

func canonicalMonth(v string) (string, bool) {
	out, ok := monthByFold[strings.ToLower(strings.TrimSpace(v))]
	return out, ok
}

func canonicalWeekday(v string) (string, bool) {
	out, ok := gameDayByFold[strings.ToLower(strings.TrimSpace(v))]
	return out, ok
}

func canonicalDivision(v string) (string, bool) {
	out, ok := divisionByFold[strings.ToLower(strings.TrimSpace(v))]
	return out, ok
}

func canonicalCategory(v string) (string, bool) {
	out, ok := categoryByFold[strings.ToLower(strings.TrimSpace(v))]
	return out, ok
}

func canonicalTeamName(v string) (string, bool) {
	out, ok := teamNameByFold[strings.ToLower(strings.TrimSpace(v))]
	return out, ok
}

func canonicalAbbreviation(v string) (string, bool) {
	out := strings.ToUpper(strings.TrimSpace(v))
	_, ok := abbreviationSet[out]
	return out, ok
}

// LookupTeam finds a team by abbreviation. Relocated franchises resolve to the
// current name.
func LookupTeam(abbreviation string) (Team, bool) {
	abbr := strings.ToUpper(strings.TrimSpace(abbreviation))
	for _, t := range teams {
		if t.Abbreviation == abbr {
			return t, true
		}
	}
	return Team{}, false
}

// SpreadLabel renders the trend label for a spread bound, e.g. "7 or less".
func SpreadLabel(n int, orMore bool) string {
	if orMore {
		return fmt.Sprintf("%d or more", n)
	}
	return fmt.Sprintf("%d or less", n)
}

// TotalLabel renders the trend label for a total bound, e.g. "45 or more".
func TotalLabel(n int, orMore bool) string {
	return SpreadLabel(n, orMore)
}

// SeasonLabel renders a trend season span starting at year, e.g. "since 2010-2011".
func SeasonLabel(year int) string {
	return fmt.Sprintf("since %d-%d", year, year+1)
}

// SeasonLabels returns every valid trend season label, oldest first.
func SeasonLabels() []string { return append([]string(nil), seasonLabels...) }

func buildSpreadLabels() map[string]struct{} {
	out := make(map[string]struct{})
	for half := 0; half <= 54; half++ {
		out[fmt.Sprintf("%.1f", float64(half)/2)] = struct{}{}
	}
	for n := 1; n <= 14; n++ {
		out[SpreadLabel(n, false)] = struct{}{}
		out[SpreadLabel(n, true)] = struct{}{}
	}
	out[NoneValue] = struct{}{}
	return out
}

func buildTotalLabels() map[string]struct{} {
	out := make(map[string]struct{})
	for n := 30; n <= 60; n += 5 {
		out[TotalLabel(n, false)] = struct{}{}
		out[TotalLabel(n, true)] = struct{}{}
	}
	out[NoneValue] = struct{}{}
	return out
}

func buildSeasonLabels() []string {
	out := make([]string, 0, LastYear-FirstSeasonYear+1)
	for year := FirstSeasonYear; year <= LastYear; year++ {
		out = append(out, SeasonLabel(year))
	}
	return out
}

func seasonLabelIndex(label string) int {
	for i, s := range seasonLabels {
		if s == label {
			return i
		}
	}
	return -1
}
