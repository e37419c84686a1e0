// Check for tables that yield no columns.
package docs

import (
	"context"
	"fmt"

	"github.com/AntTheLimey/ddldoc/internal/check"
	"github.com/AntTheLimey/ddldoc/internal/models"
)

// EmptyTablesCheck finds tables whose definition produced no fields, such
// as CREATE TABLE ... AS SELECT or bodies holding only key clauses.
type EmptyTablesCheck struct{}

func init() {
	check.Register(EmptyTablesCheck{})
}

func (EmptyTablesCheck) Name() string        { return "empty_tables" }
func (EmptyTablesCheck) Category() string    { return "docs" }
func (EmptyTablesCheck) Mode() string        { return check.ModeLint }
func (EmptyTablesCheck) Description() string { return "Tables with no recognizable columns" }

func (c EmptyTablesCheck) Run(_ context.Context, target *check.Target) ([]models.Finding, error) {
	var findings []models.Finding
	for _, t := range target.Tables {
		if len(t.Fields) > 0 {
			continue
		}

		detail := fmt.Sprintf("No column definitions were recognized in table '%s'.", t.Name)
		sev := models.SeverityWarning
		if t.AsClause != "" {
			sev = models.SeverityInfo
			detail = fmt.Sprintf("Table '%s' takes its columns from a query (AS %s); "+
				"they cannot be documented from the DDL alone.", t.Name, t.AsClause)
		}
		findings = append(findings, models.Finding{
			Severity:   sev,
			CheckName:  c.Name(),
			Category:   c.Category(),
			Title:      fmt.Sprintf("Table '%s' has no columns", t.Name),
			Detail:     detail,
			ObjectName: t.Name,
		})
	}
	return findings, nil
}
