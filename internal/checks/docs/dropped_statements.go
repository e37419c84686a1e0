// Check for CREATE TABLE statements the parser could not use.
package docs

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntTheLimey/ddldoc/internal/check"
	"github.com/AntTheLimey/ddldoc/internal/models"
	"github.com/AntTheLimey/ddldoc/internal/parser"
)

// DroppedStatementsCheck turns parse diagnostics into findings.
type DroppedStatementsCheck struct{}

func init() {
	check.Register(DroppedStatementsCheck{})
}

func (DroppedStatementsCheck) Name() string     { return "dropped_statements" }
func (DroppedStatementsCheck) Category() string { return "docs" }
func (DroppedStatementsCheck) Mode() string     { return check.ModeLint }
func (DroppedStatementsCheck) Description() string {
	return "CREATE TABLE statements missing from the document"
}

func (c DroppedStatementsCheck) Run(_ context.Context, target *check.Target) ([]models.Finding, error) {
	var findings []models.Finding
	for _, d := range target.Dropped {
		findings = append(findings, models.Finding{
			Severity:    models.SeverityError,
			CheckName:   c.Name(),
			Category:    c.Category(),
			Title:       fmt.Sprintf("Statement at line %d dropped", d.Line),
			Detail:      fmt.Sprintf("%s: %s", d.Reason, d.Snippet),
			Line:        d.Line,
			Remediation: remediationFor(d.Err),
		})
	}
	return findings, nil
}

func remediationFor(err error) string {
	switch {
	case errors.Is(err, parser.ErrUnterminated):
		return "Terminate the statement with a semicolon."
	case errors.Is(err, parser.ErrUnbalancedDelimiter):
		return "Close every parenthesis opened in the column definitions."
	case errors.Is(err, parser.ErrNameNotFound):
		return "Give the table a name after CREATE TABLE."
	}
	return ""
}
