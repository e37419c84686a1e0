// Check for columns without a COMMENT attribute.
package docs

import (
	"context"
	"fmt"

	"github.com/AntTheLimey/ddldoc/internal/check"
	"github.com/AntTheLimey/ddldoc/internal/models"
)

// ColumnCommentsCheck reports tables with undocumented columns, one
// finding per table.
type ColumnCommentsCheck struct{}

func init() {
	check.Register(ColumnCommentsCheck{})
}

func (ColumnCommentsCheck) Name() string     { return "column_comments" }
func (ColumnCommentsCheck) Category() string { return "docs" }
func (ColumnCommentsCheck) Mode() string     { return check.ModeLint }
func (ColumnCommentsCheck) Description() string {
	return "Columns without a COMMENT attribute"
}

func (c ColumnCommentsCheck) Run(_ context.Context, target *check.Target) ([]models.Finding, error) {
	var findings []models.Finding
	for _, t := range target.Tables {
		var missing []string
		for _, f := range t.Fields {
			if f.Comment == "" {
				missing = append(missing, f.Name)
			}
		}
		if len(missing) == 0 {
			continue
		}

		sev := models.SeverityNotice
		if len(missing) == len(t.Fields) {
			sev = models.SeverityWarning
		}
		findings = append(findings, models.Finding{
			Severity:  sev,
			CheckName: c.Name(),
			Category:  c.Category(),
			Title:     fmt.Sprintf("%d of %d columns in '%s' have no comment", len(missing), len(t.Fields), t.Name),
			Detail: fmt.Sprintf("Columns without a comment leave the description column of "+
				"the field table empty: %s.", joinNames(missing, 10)),
			ObjectName:  t.Name,
			Remediation: "Add COMMENT '<text>' to each column definition.",
			Metadata:    map[string]any{"columns": missing},
		})
	}
	return findings, nil
}
