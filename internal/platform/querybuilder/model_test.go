package querybuilder

import "testing"

type baseRow struct {
	ID    string  `db:"id"`
	Month *string `db:"month"`
}

type extendedRow struct {
	baseRow
	Games []string `db:"games_applicable"`
	Note  string   `db:"-"`
	Skip  string
}

func TestColumnMap_FlattensAndDereferences(t *testing.T) {
	month := "September"
	cols, err := ColumnMap(extendedRow{baseRow: baseRow{ID: "t1", Month: &month}, Games: []string{"NYJvsNE"}})
	if err != nil {
		t.Fatalf("column map: %v", err)
	}
	if len(cols) != 3 {
		t.Fatalf("expected 3 columns, got %v", cols)
	}
	if cols["id"] != "t1" || cols["month"] != "September" {
		t.Fatalf("unexpected values: %+v", cols)
	}

	cols, err = ColumnMap(&extendedRow{})
	if err != nil {
		t.Fatalf("column map: %v", err)
	}
	if v, ok := cols["month"]; !ok || v != nil {
		t.Fatalf("expected nil month, got %v (present=%v)", v, ok)
	}
}

func TestInsertModel(t *testing.T) {
	query, args, err := InsertModel("email_subscriptions", struct {
		Email    string `db:"email"`
		IsActive bool   `db:"is_active"`
	}{Email: "fan@example.com", IsActive: true}, "RETURNING id")
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}

	want := "INSERT INTO email_subscriptions (email, is_active) VALUES ($1, $2) RETURNING id"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 || args[0] != "fan@example.com" || args[1] != true {
		t.Fatalf("unexpected args: %+v", args)
	}
}
