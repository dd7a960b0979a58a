package upcominggame

import "github.com/riskibarqy/nfl-trends-api/internal/domain/filter"

// UpcomingGame is a scheduled match carrying the current lines and odds.
type UpcomingGame struct {
	ID        string `json:"id" db:"id"`
	IDString  string `json:"id_string" db:"id_string"`
	Date      string `json:"date" db:"date"`
	Month     string `json:"month" db:"month"`
	Day       int    `json:"day" db:"day"`
	Year      int    `json:"year" db:"year"`
	Season    string `json:"season" db:"season"`
	DayOfWeek string `json:"day_of_week" db:"day_of_week"`

	HomeTeam         string `json:"home_team" db:"home_team"`
	HomeAbbreviation string `json:"home_abbreviation" db:"home_abbreviation"`
	HomeDivision     string `json:"home_division" db:"home_division"`
	AwayTeam         string `json:"away_team" db:"away_team"`
	AwayAbbreviation string `json:"away_abbreviation" db:"away_abbreviation"`
	AwayDivision     string `json:"away_division" db:"away_division"`
	Divisional       bool   `json:"divisional" db:"divisional"`

	Spread            *float64 `json:"spread" db:"spread"`
	HomeSpread        *float64 `json:"home_spread" db:"home_spread"`
	HomeSpreadOdds    *int     `json:"home_spread_odds" db:"home_spread_odds"`
	AwaySpread        *float64 `json:"away_spread" db:"away_spread"`
	AwaySpreadOdds    *int     `json:"away_spread_odds" db:"away_spread_odds"`
	HomeMoneylineOdds *int     `json:"home_moneyline_odds" db:"home_moneyline_odds"`
	AwayMoneylineOdds *int     `json:"away_moneyline_odds" db:"away_moneyline_odds"`
	Total             *float64 `json:"total" db:"total"`
	Over              *float64 `json:"over" db:"over"`
	OverOdds          *int     `json:"over_odds" db:"over_odds"`
	Under             *float64 `json:"under" db:"under"`
	UnderOdds         *int     `json:"under_odds" db:"under_odds"`
}

// Token is the "{home}vs{away}" form weekly trends list applicable games by.
func (g UpcomingGame) Token() string {
	return filter.GameToken(g.HomeAbbreviation, g.AwayAbbreviation)
}

// Tokens returns the distinct tokens of games in their given order.
func Tokens(games []UpcomingGame) []string {
	seen := make(map[string]struct{}, len(games))
	out := make([]string, 0, len(games))
	for _, g := range games {
		if g.HomeAbbreviation == "" || g.AwayAbbreviation == "" {
			continue
		}
		token := g.Token()
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}
