package game

import (
	"fmt"
	"reflect"
)

// Game is a completed match with its closing lines and every betting outcome
// derived from them.
type Game struct {
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

	HomeScore     int     `json:"home_score" db:"home_score"`
	AwayScore     int     `json:"away_score" db:"away_score"`
	CombinedScore int     `json:"combined_score" db:"combined_score"`
	Tie           bool    `json:"tie" db:"tie"`
	Winner        *string `json:"winner" db:"winner"`
	Loser         *string `json:"loser" db:"loser"`

	Spread           float64 `json:"spread" db:"spread"`
	HomeSpread       float64 `json:"home_spread" db:"home_spread"`
	HomeSpreadResult int     `json:"home_spread_result" db:"home_spread_result"`
	AwaySpread       float64 `json:"away_spread" db:"away_spread"`
	AwaySpreadResult int     `json:"away_spread_result" db:"away_spread_result"`
	SpreadPush       bool    `json:"spread_push" db:"spread_push"`
	PK               bool    `json:"pk" db:"pk"`
	Total            float64 `json:"total" db:"total"`
	TotalPush        bool    `json:"total_push" db:"total_push"`

	HomeFavorite bool `json:"home_favorite" db:"home_favorite"`
	AwayFavorite bool `json:"away_favorite" db:"away_favorite"`
	HomeUnderdog bool `json:"home_underdog" db:"home_underdog"`
	AwayUnderdog bool `json:"away_underdog" db:"away_underdog"`

	HomeWin         bool `json:"home_win" db:"home_win"`
	AwayWin         bool `json:"away_win" db:"away_win"`
	FavoriteWin     bool `json:"favorite_win" db:"favorite_win"`
	UnderdogWin     bool `json:"underdog_win" db:"underdog_win"`
	HomeFavoriteWin bool `json:"home_favorite_win" db:"home_favorite_win"`
	AwayFavoriteWin bool `json:"away_favorite_win" db:"away_favorite_win"`
	HomeUnderdogWin bool `json:"home_underdog_win" db:"home_underdog_win"`
	AwayUnderdogWin bool `json:"away_underdog_win" db:"away_underdog_win"`

	HomeCover         bool `json:"home_cover" db:"home_cover"`
	AwayCover         bool `json:"away_cover" db:"away_cover"`
	FavoriteCover     bool `json:"favorite_cover" db:"favorite_cover"`
	UnderdogCover     bool `json:"underdog_cover" db:"underdog_cover"`
	HomeFavoriteCover bool `json:"home_favorite_cover" db:"home_favorite_cover"`
	AwayFavoriteCover bool `json:"away_favorite_cover" db:"away_favorite_cover"`
	HomeUnderdogCover bool `json:"home_underdog_cover" db:"home_underdog_cover"`
	AwayUnderdogCover bool `json:"away_underdog_cover" db:"away_underdog_cover"`

	OverHit  bool `json:"over_hit" db:"over_hit"`
	UnderHit bool `json:"under_hit" db:"under_hit"`
}

// DeriveOutcomes recomputes every field that follows from the scores, the home
// spread and the total. A spread result is expressed in line terms, so the
// home result of a 24-17 home win is -7.
func (g *Game) DeriveOutcomes() {
	h, a := g.HomeScore, g.AwayScore

	g.CombinedScore = h + a
	g.Tie = h == a
	g.HomeWin = h > a
	g.AwayWin = a > h
	g.Winner, g.Loser = nil, nil
	switch {
	case g.HomeWin:
		g.Winner, g.Loser = ptr(g.HomeTeam), ptr(g.AwayTeam)
	case g.AwayWin:
		g.Winner, g.Loser = ptr(g.AwayTeam), ptr(g.HomeTeam)
	}

	g.AwaySpread = -g.HomeSpread
	g.Spread = abs(g.HomeSpread)
	g.PK = g.HomeSpread == 0
	g.HomeSpreadResult = a - h
	g.AwaySpreadResult = h - a

	g.HomeFavorite = g.HomeSpread < 0
	g.AwayFavorite = g.HomeSpread > 0
	g.HomeUnderdog = g.AwayFavorite
	g.AwayUnderdog = g.HomeFavorite

	margin := float64(h) + g.HomeSpread - float64(a)
	g.HomeCover = margin > 0
	g.AwayCover = margin < 0
	g.SpreadPush = margin == 0

	g.HomeFavoriteWin = g.HomeFavorite && g.HomeWin
	g.AwayFavoriteWin = g.AwayFavorite && g.AwayWin
	g.HomeUnderdogWin = g.HomeUnderdog && g.HomeWin
	g.AwayUnderdogWin = g.AwayUnderdog && g.AwayWin
	g.FavoriteWin = g.HomeFavoriteWin || g.AwayFavoriteWin
	g.UnderdogWin = g.HomeUnderdogWin || g.AwayUnderdogWin

	g.HomeFavoriteCover = g.HomeFavorite && g.HomeCover
	g.AwayFavoriteCover = g.AwayFavorite && g.AwayCover
	g.HomeUnderdogCover = g.HomeUnderdog && g.HomeCover
	g.AwayUnderdogCover = g.AwayUnderdog && g.AwayCover
	g.FavoriteCover = g.HomeFavoriteCover || g.AwayFavoriteCover
	g.UnderdogCover = g.HomeUnderdogCover || g.AwayUnderdogCover

	combined := float64(g.CombinedScore)
	g.OverHit = combined > g.Total
	g.UnderHit = combined < g.Total
	g.TotalPush = combined == g.Total
}

// Validate checks the stored outcome fields against the ones the scores and
// lines imply.
func (g Game) Validate() error {
	if g.IDString == "" {
		return fmt.Errorf("game id_string is required")
	}
	if g.HomeWin && g.AwayWin {
		return fmt.Errorf("game %s: home_win and away_win are exclusive", g.IDString)
	}
	if g.Tie && (g.HomeWin || g.AwayWin) {
		return fmt.Errorf("game %s: tie excludes a winner", g.IDString)
	}

	derived := g
	derived.DeriveOutcomes()
	if !reflect.DeepEqual(derived, g) {
		return fmt.Errorf("game %s: outcome fields disagree with scores and lines", g.IDString)
	}
	return nil
}

func ptr(v string) *string { return &v }

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
