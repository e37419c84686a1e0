//go:build integration

// Package tests contains integration tests that run against a live PostgreSQL database.
//
// These tests require a disposable PostgreSQL container:
//
//	docker run -d --name ddldoc-test \
//	  -e POSTGRES_PASSWORD=postgres -e POSTGRES_DB=ddldoc \
//	  -p 5499:5432 postgres:17
//
// Run with: go test -tags integration ./tests/
package tests

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/AntTheLimey/ddldoc/internal/catalog"
	"github.com/AntTheLimey/ddldoc/internal/drift"
	"github.com/AntTheLimey/ddldoc/internal/parser"
	"github.com/AntTheLimey/ddldoc/internal/reporter"
	"github.com/jackc/pgx/v5"
)

var testDB = catalog.Config{
	Host: "localhost", Port: 5499, DBName: "ddldoc",
	User: "postgres", Password: "postgres",
}

const fixtureSchema = "ddldoc_it"

// setupSchema creates the fixture schema over a read-write connection and
// drops it when the test ends.
func setupSchema(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, "host=localhost port=5499 dbname=ddldoc user=postgres password=postgres")
	if err != nil {
		t.Skipf("Test database not available: %v", err)
	}
	t.Cleanup(func() {
		conn.Exec(context.Background(), "DROP SCHEMA IF EXISTS "+fixtureSchema+" CASCADE")
		conn.Close(context.Background())
	})

	stmts := []string{
		"DROP SCHEMA IF EXISTS " + fixtureSchema + " CASCADE",
		"CREATE SCHEMA " + fixtureSchema,
		"CREATE TABLE " + fixtureSchema + ".users (id integer NOT NULL, name varchar(50), email text NOT NULL)",
		"COMMENT ON TABLE " + fixtureSchema + ".users IS 'User'",
		"COMMENT ON COLUMN " + fixtureSchema + ".users.id IS 'user id'",
		"CREATE TABLE " + fixtureSchema + ".audit (at timestamptz)",
	}
	for _, s := range stmts {
		if _, err := conn.Exec(ctx, s); err != nil {
			t.Fatalf("setup %q: %v", s, err)
		}
	}
}

const fileSQL = `
CREATE TABLE users (
  id INT NOT NULL COMMENT 'user id',
  name VARCHAR(50),
  email VARCHAR(100)
) COMMENT='User';
CREATE TABLE orders (id INT NOT NULL);
`

func loadCatalog(t *testing.T) []parser.TableDescriptor {
	t.Helper()
	ctx := context.Background()
	conn, err := catalog.Connect(ctx, testDB)
	if err != nil {
		t.Skipf("Test database not available: %v", err)
	}
	defer conn.Close(ctx)

	tables, err := catalog.LoadTables(ctx, conn, fixtureSchema)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return tables
}

func TestLoadTables(t *testing.T) {
	setupSchema(t)
	tables := loadCatalog(t)

	if len(tables) != 2 || tables[0].Name != "audit" || tables[1].Name != "users" {
		t.Fatalf("tables = %+v", tables)
	}
	users := tables[1]
	if users.Comment != "User" || len(users.Fields) != 3 {
		t.Errorf("users = %+v", users)
	}
	if f := users.Field("id"); f == nil || f.Nullable != parser.NullableNo || f.Comment != "user id" || f.DataType != "INTEGER" {
		t.Errorf("id = %+v", f)
	}
	if f := users.Field("name"); f == nil || f.DataType != "CHARACTER VARYING(50)" {
		t.Errorf("name = %+v", f)
	}
}

func TestReadOnlyConnection(t *testing.T) {
	ctx := context.Background()
	conn, err := catalog.Connect(ctx, testDB)
	if err != nil {
		t.Skipf("Test database not available: %v", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, "CREATE TABLE ddldoc_should_fail (id int)"); err == nil {
		conn.Exec(ctx, "DROP TABLE ddldoc_should_fail")
		t.Error("write succeeded on a read-only connection")
	}
}

func TestDriftAgainstCatalog(t *testing.T) {
	setupSchema(t)
	report := drift.Compare("schema.sql", testDB.Label(), parser.Parse(fileSQL), loadCatalog(t))

	titles := map[string]int{}
	for _, f := range report.Findings() {
		titles[f.Title]++
	}
	want := map[string]int{
		"Table missing from database": 1, // orders
		"Table not in file":           1, // audit
		"Nullability differs":         1, // users.email
	}
	for title, n := range want {
		if titles[title] != n {
			t.Errorf("%q: got %d, want %d (all: %v)", title, titles[title], n, titles)
		}
	}

	output, err := reporter.Render(report, "json")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(output), &data); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
}
