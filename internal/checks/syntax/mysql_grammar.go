// Package syntax re-parses CREATE TABLE statements with the TiDB MySQL
// grammar and compares the result with the lenient parser.
package syntax

import (
	"context"
	"fmt"
	"strings"

	"github.com/AntTheLimey/ddldoc/internal/check"
	"github.com/AntTheLimey/ddldoc/internal/models"
	ddl "github.com/AntTheLimey/ddldoc/internal/parser"
	"github.com/pingcap/tidb/parser"
	"github.com/pingcap/tidb/parser/ast"
	_ "github.com/pingcap/tidb/parser/test_driver"
)

// MySQLGrammarCheck reports statements the MySQL grammar rejects and
// differences between what it sees and what ends up in the document.
type MySQLGrammarCheck struct{}

func init() {
	check.Register(MySQLGrammarCheck{})
}

func (MySQLGrammarCheck) Name() string     { return "mysql_grammar" }
func (MySQLGrammarCheck) Category() string { return "syntax" }
func (MySQLGrammarCheck) Mode() string     { return check.ModeStrict }
func (MySQLGrammarCheck) Description() string {
	return "Re-parse statements with the MySQL grammar and compare columns, nullability and comments"
}

func (c MySQLGrammarCheck) Run(ctx context.Context, target *check.Target) ([]models.Finding, error) {
	p := parser.New()
	var findings []models.Finding

	for stmt := range ddl.Statements(target.SQL) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lenient, err := ddl.ParseTable(stmt.Text)
		if err != nil {
			continue // reported by dropped_statements
		}

		nodes, _, err := p.Parse(stmt.Text, "", "")
		if err != nil {
			findings = append(findings, models.Finding{
				Severity:   models.SeverityWarning,
				CheckName:  c.Name(),
				Category:   c.Category(),
				Title:      fmt.Sprintf("MySQL grammar rejects table '%s'", lenient.Name),
				Detail:     firstLine(err.Error()),
				ObjectName: lenient.Name,
				Line:       stmt.Line,
				Remediation: "The table is still documented, but the statement will not run on a " +
					"MySQL server as written.",
			})
			continue
		}
		for _, node := range nodes {
			if ct, ok := node.(*ast.CreateTableStmt); ok {
				findings = append(findings, c.compare(ct, lenient, stmt.Line)...)
			}
		}
	}
	return findings, nil
}

// compare reports every difference between the grammar's view of a table
// and the descriptor built by the lenient parser.
func (c MySQLGrammarCheck) compare(ct *ast.CreateTableStmt, t ddl.TableDescriptor, line int) []models.Finding {
	var findings []models.Finding
	add := func(sev models.Severity, object, title, detail string) {
		findings = append(findings, models.Finding{
			Severity:   sev,
			CheckName:  c.Name(),
			Category:   c.Category(),
			Title:      title,
			Detail:     detail,
			ObjectName: object,
			Line:       line,
		})
	}

	if name := ct.Table.Name.O; !strings.EqualFold(name, t.BaseName()) {
		add(models.SeverityError, t.Name, fmt.Sprintf("Table name mismatch for '%s'", t.Name),
			fmt.Sprintf("The MySQL grammar reads the table name as '%s'.", name))
	}
	if comment := tableComment(ct); comment != t.Comment {
		add(models.SeverityWarning, t.Name, fmt.Sprintf("Table comment mismatch for '%s'", t.Name),
			fmt.Sprintf("Document shows %q, the MySQL grammar reads %q.", t.Comment, comment))
	}

	seen := make(map[string]bool, len(ct.Cols))
	for _, col := range ct.Cols {
		name := col.Name.Name.O
		seen[strings.ToLower(name)] = true
		object := t.Name + "." + name

		f := t.Field(name)
		if f == nil {
			add(models.SeverityError, object, fmt.Sprintf("Column '%s' missing from document", object),
				"The MySQL grammar finds this column but the lenient parser skipped it.")
			continue
		}

		notNull, comment := columnOptions(col)
		if notNull != (f.Nullable == ddl.NullableNo) {
			add(models.SeverityError, object, fmt.Sprintf("Nullability mismatch for '%s'", object),
				fmt.Sprintf("Document shows nullable=%s, the MySQL grammar reads NOT NULL=%v.", f.Nullable, notNull))
		}
		if comment != f.Comment {
			add(models.SeverityWarning, object, fmt.Sprintf("Column comment mismatch for '%s'", object),
				fmt.Sprintf("Document shows %q, the MySQL grammar reads %q.", f.Comment, comment))
		}
	}

	for _, f := range t.Fields {
		if !seen[strings.ToLower(f.Name)] {
			object := t.Name + "." + f.Name
			add(models.SeverityError, object, fmt.Sprintf("Unexpected column '%s' in document", object),
				"The lenient parser produced a column the MySQL grammar does not see.")
		}
	}
	return findings
}

func columnOptions(col *ast.ColumnDef) (notNull bool, comment string) {
	for _, op := range col.Options {
		switch op.Tp {
		case ast.ColumnOptionNotNull:
			notNull = true
		case ast.ColumnOptionComment:
			if v, ok := op.Expr.(ast.ValueExpr); ok {
				comment = v.GetDatumString()
			}
		}
	}
	return notNull, comment
}

func tableComment(ct *ast.CreateTableStmt) string {
	for _, op := range ct.Options {
		if op.Tp == ast.TableOptionComment {
			return op.StrValue
		}
	}
	return ""
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
