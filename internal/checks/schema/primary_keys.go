// Check for tables declared without a primary key.
package schema

import (
	"context"
	"fmt"
	"regexp"

	"github.com/AntTheLimey/ddldoc/internal/check"
	"github.com/AntTheLimey/ddldoc/internal/models"
)

var rePrimaryKey = regexp.MustCompile(`(?i)\bPRIMARY\s+KEY\b`)

// PrimaryKeysCheck finds tables whose definition declares no primary key,
// neither as a table clause nor as a column attribute.
type PrimaryKeysCheck struct{}

func init() {
	check.Register(PrimaryKeysCheck{})
}

func (PrimaryKeysCheck) Name() string        { return "primary_keys" }
func (PrimaryKeysCheck) Category() string    { return "schema" }
func (PrimaryKeysCheck) Mode() string        { return check.ModeLint }
func (PrimaryKeysCheck) Description() string { return "Tables without primary keys" }

func (c PrimaryKeysCheck) Run(_ context.Context, target *check.Target) ([]models.Finding, error) {
	var findings []models.Finding
	for _, t := range target.Tables {
		if t.Definition == "" {
			continue // AS SELECT tables declare no columns
		}
		hasPK := false
		for _, cl := range clauses(t) {
			if rePrimaryKey.MatchString(cl.masked) {
				hasPK = true
				break
			}
		}
		if hasPK {
			continue
		}
		findings = append(findings, models.Finding{
			Severity:  models.SeverityWarning,
			CheckName: c.Name(),
			Category:  c.Category(),
			Title:     fmt.Sprintf("Table '%s' has no primary key", t.Name),
			Detail: fmt.Sprintf("Table '%s' declares no PRIMARY KEY. InnoDB then clusters rows "+
				"on the first NOT NULL unique index or a hidden row id, and the document "+
				"cannot show which columns identify a row.", t.Name),
			ObjectName:  t.Name,
			Remediation: fmt.Sprintf("Add a PRIMARY KEY clause to '%s'.", t.Name),
		})
	}
	return findings, nil
}
