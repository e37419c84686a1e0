// Check for temporary tables in a schema file.
package schema

import (
	"context"
	"fmt"

	"github.com/AntTheLimey/ddldoc/internal/check"
	"github.com/AntTheLimey/ddldoc/internal/models"
)

// TempTablesCheck lists CREATE TEMPORARY TABLE statements.
type TempTablesCheck struct{}

func init() {
	check.Register(TempTablesCheck{})
}

func (TempTablesCheck) Name() string        { return "temporary_tables" }
func (TempTablesCheck) Category() string    { return "schema" }
func (TempTablesCheck) Mode() string        { return check.ModeLint }
func (TempTablesCheck) Description() string { return "Temporary tables in the schema file" }

func (c TempTablesCheck) Run(_ context.Context, target *check.Target) ([]models.Finding, error) {
	var findings []models.Finding
	for _, t := range target.Tables {
		if !t.Temporary {
			continue
		}
		findings = append(findings, models.Finding{
			Severity:   models.SeverityInfo,
			CheckName:  c.Name(),
			Category:   c.Category(),
			Title:      fmt.Sprintf("Temporary table '%s'", t.Name),
			Detail:     "Temporary tables exist only for one session and are usually left out of schema documents.",
			ObjectName: t.Name,
		})
	}
	return findings, nil
}
