// Check for foreign key relationships declared in the DDL.
package schema

import (
	"context"
	"fmt"
	"regexp"

	"github.com/AntTheLimey/ddldoc/internal/check"
	"github.com/AntTheLimey/ddldoc/internal/models"
	"github.com/AntTheLimey/ddldoc/internal/parser"
)

var (
	reForeignKey = regexp.MustCompile("(?i)\\bFOREIGN\\s+KEY\\b.*?\\bREFERENCES\\s+(`(?:[^`]|``)+`|\"(?:[^\"]|\"\")+\"|[\\w$.]+)")
	reCascade    = regexp.MustCompile(`(?i)\bON\s+(DELETE|UPDATE)\s+CASCADE\b`)
)

// ForeignKeysCheck lists foreign keys, flags CASCADE actions, and flags
// references to tables that are not defined in the same file.
type ForeignKeysCheck struct{}

func init() {
	check.Register(ForeignKeysCheck{})
}

func (ForeignKeysCheck) Name() string        { return "foreign_keys" }
func (ForeignKeysCheck) Category() string    { return "schema" }
func (ForeignKeysCheck) Mode() string        { return check.ModeLint }
func (ForeignKeysCheck) Description() string { return "Foreign key relationships" }

func (c ForeignKeysCheck) Run(_ context.Context, target *check.Target) ([]models.Finding, error) {
	defined := make(map[string]bool, len(target.Tables))
	for _, t := range target.Tables {
		defined[t.Name] = true
		defined[t.BaseName()] = true
	}

	var findings []models.Finding
	total, cascades := 0, 0
	for _, t := range target.Tables {
		for _, cl := range clauses(t) {
			loc := reForeignKey.FindStringSubmatchIndex(cl.masked)
			if loc == nil {
				continue
			}
			total++
			ref := parser.NormalizeIdentifier(cl.text[loc[2]:loc[3]])

			if !defined[ref] {
				findings = append(findings, models.Finding{
					Severity:  models.SeverityNotice,
					CheckName: c.Name(),
					Category:  c.Category(),
					Title:     fmt.Sprintf("'%s' references undefined table '%s'", t.Name, ref),
					Detail: fmt.Sprintf("A foreign key on '%s' references '%s', which has no "+
						"CREATE TABLE statement in %s.", t.Name, ref, target.Source),
					ObjectName: t.Name,
					Metadata:   map[string]any{"references": ref},
				})
			}
			if m := reCascade.FindStringSubmatch(cl.masked); m != nil {
				cascades++
				findings = append(findings, models.Finding{
					Severity:   models.SeverityInfo,
					CheckName:  c.Name(),
					Category:   c.Category(),
					Title:      fmt.Sprintf("CASCADE foreign key on '%s'", t.Name),
					Detail:     fmt.Sprintf("Foreign key on '%s' referencing '%s' uses ON %s CASCADE.", t.Name, ref, m[1]),
					ObjectName: t.Name,
					Metadata:   map[string]any{"references": ref},
				})
			}
		}
	}

	if total > 0 {
		findings = append(findings, models.Finding{
			Severity:   models.SeverityInfo,
			CheckName:  c.Name(),
			Category:   c.Category(),
			Title:      fmt.Sprintf("Schema has %d foreign key constraint(s)", total),
			Detail:     fmt.Sprintf("Found %d foreign key constraints, %d with CASCADE actions.", total, cascades),
			ObjectName: "(schema)",
			Metadata:   map[string]any{"fk_count": total, "cascade_count": cascades},
		})
	}
	return findings, nil
}
