package game

import "testing"

func TestDeriveOutcomes_HomeFavoriteCoversUnder(t *testing.T) {
	g := Game{
		IDString:   "NYJNE20240910",
		HomeTeam:   "New York Jets",
		AwayTeam:   "New England Patriots",
		HomeScore:  24,
		AwayScore:  17,
		HomeSpread: -3.0,
		Total:      47.5,
	}
	g.DeriveOutcomes()

	if g.CombinedScore != 41 {
		t.Fatalf("unexpected combined score: %d", g.CombinedScore)
	}
	if g.HomeSpreadResult != -7 || g.AwaySpreadResult != 7 {
		t.Fatalf("unexpected spread results: home=%d away=%d", g.HomeSpreadResult, g.AwaySpreadResult)
	}
	if !g.HomeWin || g.AwayWin || g.Tie {
		t.Fatalf("unexpected win flags: home=%v away=%v tie=%v", g.HomeWin, g.AwayWin, g.Tie)
	}
	if g.Winner == nil || *g.Winner != "New York Jets" || g.Loser == nil || *g.Loser != "New England Patriots" {
		t.Fatalf("unexpected winner/loser: %v/%v", g.Winner, g.Loser)
	}
	if !g.HomeCover || g.AwayCover || g.SpreadPush {
		t.Fatalf("unexpected cover flags: home=%v away=%v push=%v", g.HomeCover, g.AwayCover, g.SpreadPush)
	}
	if !g.HomeFavorite || !g.AwayUnderdog || !g.FavoriteWin || !g.FavoriteCover || !g.HomeFavoriteCover {
		t.Fatalf("unexpected favorite flags: %+v", g)
	}
	if g.OverHit || !g.UnderHit || g.TotalPush {
		t.Fatalf("unexpected total flags: over=%v under=%v push=%v", g.OverHit, g.UnderHit, g.TotalPush)
	}
	if g.AwaySpread != 3.0 || g.Spread != 3.0 || g.PK {
		t.Fatalf("unexpected lines: spread=%v away=%v pk=%v", g.Spread, g.AwaySpread, g.PK)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("derived game should validate: %v", err)
	}
}

func TestDeriveOutcomes_Invariants(t *testing.T) {
	spreads := []float64{-7.5, -3, -2.5, 0, 1, 3, 6.5}
	totals := []float64{30, 41, 44.5, 51}
	for home := 0; home <= 45; home += 3 {
		for away := 0; away <= 45; away += 4 {
			for _, spread := range spreads {
				for _, total := range totals {
					g := Game{IDString: "x", HomeTeam: "H", AwayTeam: "A", HomeScore: home, AwayScore: away, HomeSpread: spread, Total: total}
					g.DeriveOutcomes()

					if g.HomeWin && g.AwayWin {
						t.Fatalf("home and away both won: %+v", g)
					}
					if g.Tie != (!g.HomeWin && !g.AwayWin) {
						t.Fatalf("tie must mean no winner: %+v", g)
					}
					if g.HomeSpreadResult != g.AwayScore-g.HomeScore {
						t.Fatalf("home spread result mismatch: %+v", g)
					}
					if g.HomeCover != (float64(g.HomeScore)+g.HomeSpread > float64(g.AwayScore)) {
						t.Fatalf("home cover mismatch: %+v", g)
					}
					covers := 0
					for _, v := range []bool{g.HomeCover, g.AwayCover, g.SpreadPush} {
						if v {
							covers++
						}
					}
					if covers != 1 {
						t.Fatalf("exactly one of home cover, away cover, push must hold: %+v", g)
					}
					if g.OverHit != (float64(g.CombinedScore) > g.Total) || g.UnderHit != (float64(g.CombinedScore) < g.Total) || g.TotalPush != (float64(g.CombinedScore) == g.Total) {
						t.Fatalf("total flags mismatch: %+v", g)
					}
				}
			}
		}
	}
}

func TestValidate_RejectsInconsistentOutcomes(t *testing.T) {
	g := Game{IDString: "NYJNE20240910", HomeScore: 24, AwayScore: 17, HomeSpread: -3, Total: 47.5}
	g.DeriveOutcomes()
	g.OverHit = true

	if err := g.Validate(); err == nil {
		t.Fatalf("expected inconsistent game to fail validation")
	}
}
