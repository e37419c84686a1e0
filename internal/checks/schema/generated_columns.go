// Check for generated columns.
package schema

import (
	"context"
	"fmt"
	"regexp"

	"github.com/AntTheLimey/ddldoc/internal/check"
	"github.com/AntTheLimey/ddldoc/internal/models"
)

var reGenerated = regexp.MustCompile(`(?i)\b(?:GENERATED\s+ALWAYS\s+)?AS\s*\(.*\)\s*(VIRTUAL|STORED)?`)

// GeneratedColumnsCheck lists columns computed from an expression.
type GeneratedColumnsCheck struct{}

func init() {
	check.Register(GeneratedColumnsCheck{})
}

func (GeneratedColumnsCheck) Name() string        { return "generated_columns" }
func (GeneratedColumnsCheck) Category() string    { return "schema" }
func (GeneratedColumnsCheck) Mode() string        { return check.ModeLint }
func (GeneratedColumnsCheck) Description() string { return "Generated (virtual or stored) columns" }

func (c GeneratedColumnsCheck) Run(_ context.Context, target *check.Target) ([]models.Finding, error) {
	var findings []models.Finding
	for _, t := range target.Tables {
		for _, cl := range clauses(t) {
			if cl.constraint || cl.column == "" {
				continue
			}
			m := reGenerated.FindStringSubmatch(cl.masked)
			if m == nil {
				continue
			}
			kind := "VIRTUAL"
			if m[1] != "" {
				kind = m[1]
			}
			findings = append(findings, models.Finding{
				Severity:   models.SeverityInfo,
				CheckName:  c.Name(),
				Category:   c.Category(),
				Title:      fmt.Sprintf("Generated column '%s.%s' (%s)", t.Name, cl.column, kind),
				Detail:     "The column cannot be written directly; document the expression in its comment.",
				ObjectName: t.Name + "." + cl.column,
				Metadata:   map[string]any{"gen_type": kind},
			})
		}
	}
	return findings, nil
}
