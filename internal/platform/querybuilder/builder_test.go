package querybuilder

import "testing"

func TestSelect_ToSQL(t *testing.T) {
	t.Parallel()

	query, args, err := Select("user_id", "sum").
		From("division_prediction_scores").
		Where(Eq("division_key", "2022carv"), IsNull("deleted_at")).
		OrderBy("sum DESC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}

	want := "SELECT user_id, sum FROM division_prediction_scores WHERE division_key = $1 AND deleted_at IS NULL ORDER BY sum DESC LIMIT 10"
	if query != want {
		t.Fatalf("unexpected query:\n got %q\nwant %q", query, want)
	}
	if len(args) != 1 || args[0].(string) != "2022carv" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelect_InCondition(t *testing.T) {
	t.Parallel()

	query, args, err := Select("*").
		From("teams").
		Where(In("key", []any{"frc33", "frc67"})).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}

	want := "SELECT * FROM teams WHERE key IN ($1, $2)"
	if query != want {
		t.Fatalf("unexpected query: %q", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelect_EmptyInMatchesNothing(t *testing.T) {
	t.Parallel()

	query, _, err := Select("*").From("teams").Where(In("key", nil)).ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}
	if query != "SELECT * FROM teams WHERE 1=0" {
		t.Fatalf("unexpected query: %q", query)
	}
}

func TestInsertModel_UsesDBTags(t *testing.T) {
	t.Parallel()

	model := struct {
		UserID      string  `db:"user_id"`
		DivisionKey string  `db:"division_key"`
		Sum         float64 `db:"sum"`
		Ignored     string  `db:"-"`
		untagged    string
	}{UserID: "u1", DivisionKey: "2022gal", Sum: 120}
	_ = model.untagged

	query, args, err := InsertModel("division_prediction_scores", model, "ON CONFLICT DO NOTHING")
	if err != nil {
		t.Fatalf("InsertModel: %v", err)
	}

	want := "INSERT INTO division_prediction_scores (user_id, division_key, sum) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING"
	if query != want {
		t.Fatalf("unexpected query:\n got %q\nwant %q", query, want)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestDeleteFrom_ToSQL(t *testing.T) {
	t.Parallel()

	query, args, err := DeleteFrom("global_scores").Where(Eq("user_id", "u1")).ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}
	if query != "DELETE FROM global_scores WHERE user_id = $1" {
		t.Fatalf("unexpected query: %q", query)
	}
	if len(args) != 1 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelect_RequiresTable(t *testing.T) {
	t.Parallel()

	if _, _, err := Select("*").ToSQL(); err == nil {
		t.Fatalf("expected error for missing table")
	}
}
