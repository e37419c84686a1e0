package drift

import (
	"testing"

	"github.com/AntTheLimey/ddldoc/internal/models"
	"github.com/AntTheLimey/ddldoc/internal/parser"
)

func field(name string, nullable parser.Nullability, comment string) parser.FieldDescriptor {
	return parser.FieldDescriptor{Name: name, DataType: "INT", Nullable: nullable, Comment: comment}
}

func titles(findings []models.Finding) map[string]int {
	m := make(map[string]int)
	for _, f := range findings {
		m[f.Title]++
	}
	return m
}

// -- Identical sides ----------------------------------------------------------

func TestCompareIdentical(t *testing.T) {
	tables := parser.Parse("CREATE TABLE users (id INT NOT NULL COMMENT 'key', name TEXT) COMMENT='people';")
	db := []parser.TableDescriptor{{
		Name:    "USERS",
		Comment: "people",
		Fields: []parser.FieldDescriptor{
			{Name: "ID", DataType: "INTEGER", Nullable: parser.NullableNo, Comment: "key"},
			{Name: "name", DataType: "TEXT", Nullable: parser.NullableYes},
		},
	}}

	r := Compare("schema.sql", "shop@localhost:5432", tables, db)
	if r.Mode != Mode || r.Target != "shop@localhost:5432" || r.Tables != 1 {
		t.Errorf("report header = %+v", r)
	}
	if len(r.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(r.Results))
	}
	if n := len(r.Findings()); n != 0 {
		t.Errorf("got %d findings, want 0: %+v", n, r.Findings())
	}
}

// -- Table presence -----------------------------------------------------------

func TestCompareMissingTables(t *testing.T) {
	file := []parser.TableDescriptor{{Name: "shop.orders"}, {Name: "users"}}
	db := []parser.TableDescriptor{{Name: "users"}, {Name: "audit"}, {Name: "zeta"}}

	r := Compare("schema.sql", "db", file, db)
	got := r.Results[0].Findings
	if len(got) != 3 {
		t.Fatalf("got %d table findings, want 3: %+v", len(got), got)
	}
	if got[0].ObjectName != "shop.orders" || got[0].Severity != models.SeverityError {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].ObjectName != "audit" || got[2].ObjectName != "zeta" || got[1].Severity != models.SeverityWarning {
		t.Errorf("db-only findings = %+v", got[1:])
	}
}

func TestQualifiedNameMatchesBaseName(t *testing.T) {
	file := []parser.TableDescriptor{{Name: "shop.users"}}
	db := []parser.TableDescriptor{{Name: "users"}}
	if n := len(Compare("f", "d", file, db).Findings()); n != 0 {
		t.Errorf("got %d findings, want 0", n)
	}
}

// -- Column differences -------------------------------------------------------

func TestCompareColumns(t *testing.T) {
	file := []parser.TableDescriptor{{
		Name:    "users",
		Comment: "people",
		Fields: []parser.FieldDescriptor{
			field("id", parser.NullableNo, "key"),
			field("email", parser.NullableNo, "address"),
			field("nick", parser.NullableYes, ""),
		},
	}}
	db := []parser.TableDescriptor{{
		Name:    "users",
		Comment: "",
		Fields: []parser.FieldDescriptor{
			field("id", parser.NullableNo, "key"),
			field("email", parser.NullableYes, "mail"),
			field("created_at", parser.NullableNo, ""),
		},
	}}

	r := Compare("schema.sql", "db", file, db)
	if len(r.Results[0].Findings) != 0 {
		t.Errorf("unexpected table findings: %+v", r.Results[0].Findings)
	}
	got := titles(r.Results[1].Findings)
	want := map[string]int{
		"Table comment differs":        1,
		"Column missing from database": 1,
		"Column not in file":           1,
		"Nullability differs":          1,
		"Column comment differs":       1,
	}
	for title, n := range want {
		if got[title] != n {
			t.Errorf("%q: got %d, want %d (all: %v)", title, got[title], n, got)
		}
	}
	if r.ErrorCount() != 2 || r.WarningCount() != 1 || r.NoticeCount() != 2 {
		t.Errorf("counts E=%d W=%d N=%d", r.ErrorCount(), r.WarningCount(), r.NoticeCount())
	}
}

func TestDuplicateTableFirstWins(t *testing.T) {
	file := []parser.TableDescriptor{
		{Name: "t", Fields: []parser.FieldDescriptor{field("a", parser.NullableYes, "")}},
		{Name: "T", Fields: []parser.FieldDescriptor{field("b", parser.NullableYes, "")}},
	}
	db := []parser.TableDescriptor{{Name: "t", Fields: []parser.FieldDescriptor{field("a", parser.NullableYes, "")}}}
	if n := len(Compare("f", "d", file, db).Findings()); n != 0 {
		t.Errorf("got %d findings, want 0", n)
	}
}

// -- Helpers ------------------------------------------------------------------

func TestDiffAndIntersect(t *testing.T) {
	a := map[string]int{"x": 1, "y": 2}
	b := map[string]int{"y": 3, "z": 4}
	onlyA, onlyB := diff(a, b)
	if len(onlyA) != 1 || onlyA["x"] != 1 {
		t.Errorf("onlyA = %v", onlyA)
	}
	if len(onlyB) != 1 || onlyB["z"] != 4 {
		t.Errorf("onlyB = %v", onlyB)
	}
	if keys := intersect(a, b); len(keys) != 1 || keys[0] != "y" {
		t.Errorf("intersect = %v", keys)
	}
}
