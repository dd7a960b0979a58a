package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "category").
		From("trends").
		Where(Eq("category", "home ats"), IsNull("month")).
		OrderBy("win_percentage DESC", "id ASC").
		Limit(10).
		Offset(20).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, category FROM trends WHERE category = $1 AND month IS NULL ORDER BY win_percentage DESC, id ASC LIMIT 10 OFFSET 20"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "home ats" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_GroupedConditions(t *testing.T) {
	query, args, err := Select("COUNT(*)").
		From("games").
		Where(
			Or(In("month", []any{"January"}), IsNull("month")),
			Between("home_score", 10, 20),
			And(Gte("total", 40.5), Lte("total", 50)),
			Expr("games_applicable && ?", "arr"),
			NotNull("spread"),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT COUNT(*) FROM games WHERE (month IN ($1) OR month IS NULL) AND home_score BETWEEN $2 AND $3 AND (total >= $4 AND total <= $5) AND games_applicable && $6 AND spread IS NOT NULL"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 || args[0] != "January" || args[1] != 10 || args[5] != "arr" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestGroupCondition_EmptyAndSingle(t *testing.T) {
	query, _, err := Select("*").From("t").Where(Or(), And(), Or(Eq("a", 1))).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM t WHERE 1=0 AND 1=1 AND a = $1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("email_subscriptions").
		Columns("email", "is_active").
		Values("fan@example.com", true).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO email_subscriptions (email, is_active) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "fan@example.com" || args[1] != true {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("email_subscriptions").
		Set("is_active", true).
		Set("subscription_date", "2026-01-05T00:00:00Z").
		Where(Eq("email", "fan@example.com")).
		Suffix("RETURNING id, email").
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE email_subscriptions SET is_active = $1, subscription_date = $2 WHERE email = $3 RETURNING id, email"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != true || args[2] != "fan@example.com" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestQuoteIdent(t *testing.T) {
	if got := QuoteIdent("phidal20250904"); got != `"phidal20250904"` {
		t.Fatalf("unexpected identifier: %s", got)
	}
	if got := QuoteIdent(`a"b`); got != `"a""b"` {
		t.Fatalf("unexpected escaped identifier: %s", got)
	}
}

func TestExpr_ExtraMarkersKept(t *testing.T) {
	query, args, err := Select("*").From("weekly_trends").
		Where(Eq("category", "ats"), Expr("games_applicable @> ? AND note = '?'", "arr")).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	want := "SELECT * FROM weekly_trends WHERE category = $1 AND games_applicable @> $2 AND note = '?'"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestBuilders_RequireParts(t *testing.T) {
	if _, _, err := Select().From("games").ToSQL(); err == nil {
		t.Fatalf("expected error without columns")
	}
	if _, _, err := Update("games").ToSQL(); err == nil {
		t.Fatalf("expected error without sets")
	}
	if _, _, err := InsertInto("games").Columns("a", "b").Values(1).ToSQL(); err == nil {
		t.Fatalf("expected error for short row")
	}
}
