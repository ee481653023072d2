package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("public_id", "title").
		From("game_logs").
		Where(Eq("user_id", "u1"), IsNull("deleted_at")).
		OrderBy("played_at DESC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id, title FROM game_logs WHERE user_id = $1 AND deleted_at IS NULL ORDER BY played_at DESC LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "u1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderRangeAndOr(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	query, args, err := Select("public_id").
		From("game_logs").
		Where(
			Or(Eq("is_public", true), Eq("include_in_community_stats", true)),
			Gte("played_at", from),
			Lte("played_at", to),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id FROM game_logs WHERE (is_public = $1 OR include_in_community_stats = $2) AND played_at >= $3 AND played_at <= $4"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != from || args[3] != to {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestEmptyConditionsMatchNothing(t *testing.T) {
	query, args, err := Select("public_id").
		From("game_logs").
		Where(In("public_id", nil), Or()).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id FROM game_logs WHERE 1=0 AND 1=0"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("game_logs").
		Columns("public_id", "title").
		Values("g1", "Friday night").
		Suffix("RETURNING public_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO game_logs (public_id, title) VALUES ($1, $2) RETURNING public_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "g1" || args[1] != "Friday night" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		ID      string  `db:"public_id"`
		Label   *string `db:"match_type_label"`
		skipped string
		Ignored string `db:"-"`
	}

	query, args, err := InsertModel("game_logs", row{ID: "g1", skipped: "x", Ignored: "y"}, "")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO game_logs (public_id, match_type_label) VALUES ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "g1" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModel("game_logs", (*row)(nil), ""); err == nil {
		t.Fatalf("expected nil model error")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("game_logs").
		Set("title", "new").
		Set("match_type_label", nil).
		SetExpr("deleted_at", "NOW()").
		Where(Eq("public_id", "g1"), IsNull("deleted_at")).
		Suffix("RETURNING public_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE game_logs SET title = $1, match_type_label = $2, deleted_at = NOW() WHERE public_id = $3 AND deleted_at IS NULL RETURNING public_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "new" || args[1] != nil || args[2] != "g1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestExprRewritesPlaceholders(t *testing.T) {
	query, args, err := Select("public_id").
		From("game_logs").
		Where(Eq("user_id", "u1"), Expr("duration_minutes BETWEEN ? AND ?", 10, 30)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id FROM game_logs WHERE user_id = $1 AND duration_minutes BETWEEN $2 AND $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[1] != 10 || args[2] != 30 {
		t.Fatalf("unexpected args: %+v", args)
	}
}
