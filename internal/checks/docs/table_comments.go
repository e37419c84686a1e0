// Check for tables that carry no COMMENT in their table options.
package docs

import (
	"context"
	"fmt"

	"github.com/AntTheLimey/ddldoc/internal/check"
	"github.com/AntTheLimey/ddldoc/internal/models"
)

// TableCommentsCheck finds tables whose document heading would be blank.
type TableCommentsCheck struct{}

func init() {
	check.Register(TableCommentsCheck{})
}

func (TableCommentsCheck) Name() string     { return "table_comments" }
func (TableCommentsCheck) Category() string { return "docs" }
func (TableCommentsCheck) Mode() string     { return check.ModeLint }
func (TableCommentsCheck) Description() string {
	return "Tables without a COMMENT table option"
}

func (c TableCommentsCheck) Run(_ context.Context, target *check.Target) ([]models.Finding, error) {
	var findings []models.Finding
	for _, t := range target.Tables {
		if t.Comment != "" {
			continue
		}
		findings = append(findings, models.Finding{
			Severity:  models.SeverityWarning,
			CheckName: c.Name(),
			Category:  c.Category(),
			Title:     fmt.Sprintf("Table '%s' has no comment", t.Name),
			Detail: fmt.Sprintf("Table '%s' has no COMMENT option. Its document heading, "+
				"description and caption will fall back to the table name.", t.Name),
			ObjectName:  t.Name,
			Remediation: fmt.Sprintf("ALTER TABLE %s COMMENT = '<description>';", t.Name),
		})
	}
	return findings, nil
}
