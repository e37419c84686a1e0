// Checks for repeated table and column names.
package docs

import (
	"context"
	"fmt"
	"strings"

	"github.com/AntTheLimey/ddldoc/internal/check"
	"github.com/AntTheLimey/ddldoc/internal/models"
)

// DuplicateColumnsCheck finds column names declared twice in one table.
// MySQL compares column names case-insensitively.
type DuplicateColumnsCheck struct{}

// DuplicateTablesCheck finds tables created more than once in the file.
type DuplicateTablesCheck struct{}

func init() {
	check.Register(DuplicateColumnsCheck{})
	check.Register(DuplicateTablesCheck{})
}

func (DuplicateColumnsCheck) Name() string        { return "duplicate_columns" }
func (DuplicateColumnsCheck) Category() string    { return "docs" }
func (DuplicateColumnsCheck) Mode() string        { return check.ModeLint }
func (DuplicateColumnsCheck) Description() string { return "Column names declared more than once" }

func (c DuplicateColumnsCheck) Run(_ context.Context, target *check.Target) ([]models.Finding, error) {
	var findings []models.Finding
	for _, t := range target.Tables {
		seen := make(map[string]int)
		for _, f := range t.Fields {
			key := strings.ToLower(f.Name)
			seen[key]++
			if seen[key] != 2 {
				continue
			}
			findings = append(findings, models.Finding{
				Severity:   models.SeverityError,
				CheckName:  c.Name(),
				Category:   c.Category(),
				Title:      fmt.Sprintf("Column '%s.%s' declared more than once", t.Name, f.Name),
				Detail:     "The statement would be rejected by the server and the field table lists the column twice.",
				ObjectName: t.Name + "." + f.Name,
			})
		}
	}
	return findings, nil
}

func (DuplicateTablesCheck) Name() string        { return "duplicate_tables" }
func (DuplicateTablesCheck) Category() string    { return "docs" }
func (DuplicateTablesCheck) Mode() string        { return check.ModeLint }
func (DuplicateTablesCheck) Description() string { return "Tables created more than once" }

func (c DuplicateTablesCheck) Run(_ context.Context, target *check.Target) ([]models.Finding, error) {
	var findings []models.Finding
	count := make(map[string]int)
	for _, t := range target.Tables {
		count[strings.ToLower(t.Name)]++
	}
	reported := make(map[string]bool)
	for _, t := range target.Tables {
		key := strings.ToLower(t.Name)
		if count[key] < 2 || reported[key] {
			continue
		}
		reported[key] = true

		sev := models.SeverityWarning
		if t.IfNotExists {
			sev = models.SeverityNotice
		}
		findings = append(findings, models.Finding{
			Severity:  sev,
			CheckName: c.Name(),
			Category:  c.Category(),
			Title:     fmt.Sprintf("Table '%s' is created %d times", t.Name, count[key]),
			Detail: "Every CREATE TABLE statement becomes its own section of the document, " +
				"so the table is documented more than once.",
			ObjectName: t.Name,
			Metadata:   map[string]any{"count": count[key]},
		})
	}
	return findings, nil
}

// joinNames joins up to limit names and notes how many were left out.
func joinNames(names []string, limit int) string {
	if len(names) <= limit {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(names[:limit], ", "), len(names)-limit)
}
