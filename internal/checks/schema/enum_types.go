// Check for ENUM and SET columns.
package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/AntTheLimey/ddldoc/internal/check"
	"github.com/AntTheLimey/ddldoc/internal/models"
)

// EnumTypesCheck lists ENUM and SET columns, whose allowed values are part
// of the type rather than of a lookup table.
type EnumTypesCheck struct{}

func init() {
	check.Register(EnumTypesCheck{})
}

func (EnumTypesCheck) Name() string        { return "enum_types" }
func (EnumTypesCheck) Category() string    { return "schema" }
func (EnumTypesCheck) Mode() string        { return check.ModeLint }
func (EnumTypesCheck) Description() string { return "ENUM and SET columns" }

func (c EnumTypesCheck) Run(_ context.Context, target *check.Target) ([]models.Finding, error) {
	var findings []models.Finding
	for _, t := range target.Tables {
		for _, f := range t.Fields {
			if !strings.HasPrefix(f.DataType, "ENUM(") && !strings.HasPrefix(f.DataType, "SET(") {
				continue
			}
			findings = append(findings, models.Finding{
				Severity:  models.SeverityInfo,
				CheckName: c.Name(),
				Category:  c.Category(),
				Title:     fmt.Sprintf("Column '%s.%s' is %s", t.Name, f.Name, f.DataType),
				Detail: "Adding a value requires ALTER TABLE ... MODIFY COLUMN. " +
					"List the meaning of each value in the column comment.",
				ObjectName: t.Name + "." + f.Name,
				Metadata:   map[string]any{"type": f.DataType},
			})
		}
	}
	return findings, nil
}
