// Package catalog reads table and column metadata from a live PostgreSQL
// database.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/AntTheLimey/ddldoc/internal/parser"
	"github.com/jackc/pgx/v5"
)

// Config holds the parameters needed to connect to a PostgreSQL database.
type Config struct {
	Host     string
	Port     int
	DBName   string
	User     string
	Password string
	DSN      string
}

// Connect creates a read-only database connection from a Config.
// If DSN is provided, it is used directly. Otherwise individual parameters are
// used, falling back to standard PG* environment variables (handled by pgx).
func Connect(ctx context.Context, cfg Config) (*pgx.Conn, error) {
	connStr := cfg.DSN
	if connStr == "" {
		connStr = buildConnString(cfg)
	}

	connConfig, err := pgx.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse connection config: %w", err)
	}
	connConfig.RuntimeParams["default_transaction_read_only"] = "on"
	connConfig.RuntimeParams["application_name"] = "ddldoc"

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return conn, nil
}

// Label returns a short description of the database for reports.
func (c Config) Label() string {
	if c.DSN != "" {
		if cfg, err := pgx.ParseConfig(c.DSN); err == nil {
			return fmt.Sprintf("%s@%s:%d", cfg.Database, cfg.Host, cfg.Port)
		}
		return "dsn"
	}
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("%s@%s:%d", c.DBName, host, c.Port)
}

func buildConnString(cfg Config) string {
	var parts []string
	if cfg.Host != "" {
		parts = append(parts, "host="+cfg.Host)
	}
	if cfg.Port != 0 {
		parts = append(parts, fmt.Sprintf("port=%d", cfg.Port))
	}
	if cfg.DBName != "" {
		parts = append(parts, "dbname="+cfg.DBName)
	}
	if cfg.User != "" {
		parts = append(parts, "user="+cfg.User)
	}
	if cfg.Password != "" {
		parts = append(parts, "password="+cfg.Password)
	}
	return strings.Join(parts, " ")
}

// Querier is the subset of *pgx.Conn used to read the catalog.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const columnsQuery = `
	SELECT
		c.relname AS table_name,
		COALESCE(obj_description(c.oid, 'pg_class'), '') AS table_comment,
		a.attname AS column_name,
		format_type(a.atttypid, a.atttypmod) AS data_type,
		a.attnotnull AS not_null,
		COALESCE(col_description(c.oid, a.attnum), '') AS column_comment
	FROM pg_catalog.pg_class c
	JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
	JOIN pg_catalog.pg_attribute a ON a.attrelid = c.oid
	WHERE c.relkind IN ('r', 'p')
	  AND a.attnum > 0
	  AND NOT a.attisdropped
	  AND n.nspname = $1
	ORDER BY c.relname, a.attnum;
`

// columnRow is one row of columnsQuery.
type columnRow struct {
	Table, TableComment string
	Column, DataType    string
	NotNull             bool
	ColumnComment       string
}

// LoadTables returns one descriptor per ordinary or partitioned table in
// schema, with columns in attribute order. Data types use the server's
// format_type spelling, upper-cased.
func LoadTables(ctx context.Context, q Querier, schema string) ([]parser.TableDescriptor, error) {
	rows, err := q.Query(ctx, columnsQuery, schema)
	if err != nil {
		return nil, fmt.Errorf("catalog query failed: %w", err)
	}
	defer rows.Close()

	var collected []columnRow
	for rows.Next() {
		var r columnRow
		if err := rows.Scan(&r.Table, &r.TableComment, &r.Column, &r.DataType, &r.NotNull, &r.ColumnComment); err != nil {
			return nil, fmt.Errorf("catalog scan failed: %w", err)
		}
		collected = append(collected, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog rows iteration failed: %w", err)
	}
	return assemble(collected), nil
}

// assemble groups consecutive rows of the same table into descriptors.
func assemble(rows []columnRow) []parser.TableDescriptor {
	var tables []parser.TableDescriptor
	for _, r := range rows {
		if n := len(tables); n == 0 || tables[n-1].Name != r.Table {
			tables = append(tables, parser.TableDescriptor{Name: r.Table, Comment: r.TableComment})
		}
		nullable := parser.NullableYes
		if r.NotNull {
			nullable = parser.NullableNo
		}
		t := &tables[len(tables)-1]
		t.Fields = append(t.Fields, parser.FieldDescriptor{
			Name:     r.Column,
			DataType: strings.ToUpper(r.DataType),
			Nullable: nullable,
			Comment:  r.ColumnComment,
		})
	}
	return tables
}
