package trend

import (
	"fmt"
	"math"
)

// Trend is a precomputed win/loss/push record for one combination of
// category, calendar, divisional, line and season parameters. A nil parameter
// means the trend spans every value of it.
type Trend struct {
	ID            string  `json:"id" db:"id"`
	IDString      string  `json:"id_string" db:"id_string"`
	Category      string  `json:"category" db:"category"`
	Month         *string `json:"month" db:"month"`
	DayOfWeek     *string `json:"day_of_week" db:"day_of_week"`
	Divisional    *bool   `json:"divisional" db:"divisional"`
	Spread        *string `json:"spread" db:"spread"`
	Total         *string `json:"total" db:"total"`
	Seasons       string  `json:"seasons" db:"seasons"`
	Wins          int     `json:"wins" db:"wins"`
	Losses        int     `json:"losses" db:"losses"`
	Pushes        int     `json:"pushes" db:"pushes"`
	TotalGames    int     `json:"total_games" db:"total_games"`
	WinPercentage float64 `json:"win_percentage" db:"win_percentage"`
	TrendString   string  `json:"trend_string" db:"trend_string"`
}

// WeeklyTrend is a trend that applies to at least one game of the current week.
type WeeklyTrend struct {
	Trend
	GamesApplicable []string `json:"games_applicable" db:"games_applicable"`
}

// WinPercentage is 100*wins/(wins+losses); pushes do not count.
func WinPercentage(wins, losses int) float64 {
	decided := wins + losses
	if decided == 0 {
		return 0
	}
	return 100 * float64(wins) / float64(decided)
}

const percentageTolerance = 0.01

// Validate checks the record arithmetic of t.
func (t Trend) Validate() error {
	if t.IDString == "" {
		return fmt.Errorf("trend id_string is required")
	}
	if t.TotalGames != t.Wins+t.Losses+t.Pushes {
		return fmt.Errorf("trend %s: total_games %d != %d+%d+%d", t.IDString, t.TotalGames, t.Wins, t.Losses, t.Pushes)
	}
	if want := WinPercentage(t.Wins, t.Losses); math.Abs(want-t.WinPercentage) > percentageTolerance {
		return fmt.Errorf("trend %s: win_percentage %.3f, want %.3f", t.IDString, t.WinPercentage, want)
	}
	return nil
}

// Record builds the counters of a trend from its outcomes.
func Record(wins, losses, pushes int) (totalGames int, winPercentage float64) {
	return wins + losses + pushes, WinPercentage(wins, losses)
}
