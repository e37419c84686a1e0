// Package schema holds checks over the structure of parsed tables.
package schema

import (
	"regexp"

	"github.com/AntTheLimey/ddldoc/internal/parser"
)

// clause is one top-level entry of a column-definition body.
type clause struct {
	text       string // original text
	masked     string // text with literal contents blanked
	constraint bool   // key, index or constraint clause
	column     string // column name for column definitions
}

var reClauseIdent = regexp.MustCompile("^\\s*(`(?:[^`]|``)+`|\"(?:[^\"]|\"\")+\"|[^`\"\\s,]+)")

func clauses(t parser.TableDescriptor) []clause {
	var out []clause
	for _, seg := range parser.Segments(t.Definition) {
		c := clause{text: seg, masked: parser.MaskLiterals(seg), constraint: parser.IsConstraintClause(seg)}
		if !c.constraint {
			if m := reClauseIdent.FindStringSubmatch(seg); m != nil {
				c.column = parser.NormalizeIdentifier(m[1])
			}
		}
		out = append(out, c)
	}
	return out
}
