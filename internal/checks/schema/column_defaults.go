// Check for column defaults evaluated at insert time.
package schema

import (
	"context"
	"fmt"
	"regexp"

	"github.com/AntTheLimey/ddldoc/internal/check"
	"github.com/AntTheLimey/ddldoc/internal/models"
)

// Volatile defaults; matched on literal-masked text so quoted values such
// as DEFAULT 'now()' are ignored.
var reVolatileDefault = regexp.MustCompile(`(?i)\bDEFAULT\s*\(?\s*(NOW|CURRENT_TIMESTAMP|CURRENT_DATE|CURRENT_TIME|` +
	`LOCALTIME|LOCALTIMESTAMP|SYSDATE|UTC_TIMESTAMP|UUID|UUID_SHORT|RAND|RANDOM|GEN_RANDOM_UUID)\b`)

var reOnUpdate = regexp.MustCompile(`(?i)\bON\s+UPDATE\s+(CURRENT_TIMESTAMP|NOW)\b`)

// ColumnDefaultsCheck finds columns whose default or ON UPDATE value is
// computed by the server.
type ColumnDefaultsCheck struct{}

func init() {
	check.Register(ColumnDefaultsCheck{})
}

func (ColumnDefaultsCheck) Name() string     { return "column_defaults" }
func (ColumnDefaultsCheck) Category() string { return "schema" }
func (ColumnDefaultsCheck) Mode() string     { return check.ModeLint }
func (ColumnDefaultsCheck) Description() string {
	return "Volatile column defaults (NOW(), UUID(), RAND(), etc.)"
}

func (c ColumnDefaultsCheck) Run(_ context.Context, target *check.Target) ([]models.Finding, error) {
	var findings []models.Finding
	for _, t := range target.Tables {
		for _, cl := range clauses(t) {
			if cl.constraint || cl.column == "" {
				continue
			}
			m := reVolatileDefault.FindStringSubmatch(cl.masked)
			u := reOnUpdate.FindStringSubmatch(cl.masked)
			if m == nil && u == nil {
				continue
			}

			meta := map[string]any{}
			detail := fmt.Sprintf("Column '%s' on table '%s' is filled by the server", cl.column, t.Name)
			if m != nil {
				meta["default"] = m[1]
				detail += fmt.Sprintf(" with %s on insert", m[1])
			}
			if u != nil {
				meta["on_update"] = u[1]
				detail += fmt.Sprintf(" and refreshed with %s on update", u[1])
			}
			findings = append(findings, models.Finding{
				Severity:   models.SeverityInfo,
				CheckName:  c.Name(),
				Category:   c.Category(),
				Title:      fmt.Sprintf("Volatile default on '%s.%s'", t.Name, cl.column),
				Detail:     detail + ". Consider mentioning this in the column comment.",
				ObjectName: t.Name + "." + cl.column,
				Metadata:   meta,
			})
		}
	}
	return findings, nil
}
