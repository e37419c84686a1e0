package parser

import (
	"regexp"
	"strings"
)

var (
	// Clauses inside the column list that do not define a column
	reNonColumn = regexp.MustCompile(`(?i)^\s*(?:PRIMARY\s+KEY|KEY|CONSTRAINT|UNIQUE|INDEX|FOREIGN\s+KEY|CHECK|FULLTEXT|SPATIAL)\b`)

	// Column name, base type and optional (length/precision)
	reColumnHead = regexp.MustCompile("^\\s*(`(?:[^`]|``)+`|\"(?:[^\"]|\"\")+\"|[^`\"\\s,]+)\\s+(\\w+)(?:\\s*\\(\\s*([^)]+?)\\s*\\))?")

	reNotNull      = regexp.MustCompile(`(?i)\bNOT\s+NULL\b`)
	reFieldComment = regexp.MustCompile(`(?i)\bCOMMENT\s*['"]`)
)

// ParseFields decomposes the column-definition body of a CREATE TABLE
// statement into one FieldDescriptor per column, in source order.
// Key, index and constraint clauses are skipped. A region that does not
// look like a column definition is skipped up to the next top-level comma.
func ParseFields(body string) []FieldDescriptor {
	var fields []FieldDescriptor
	for _, segment := range Segments(body) {
		if IsConstraintClause(segment) {
			continue
		}
		if f, ok := parseField(segment); ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// Segments splits a column-definition body at commas outside quotes and
// parentheses. Empty segments are dropped.
func Segments(body string) []string {
	var out []string
	for pos := 0; pos < len(body); {
		end := nextTopLevel(body, pos, ',')
		if end < 0 {
			end = len(body)
		}
		if seg := strings.TrimSpace(body[pos:end]); seg != "" {
			out = append(out, seg)
		}
		pos = end + 1
	}
	return out
}

// IsConstraintClause reports whether segment is a key, index or
// constraint clause rather than a column definition.
func IsConstraintClause(segment string) bool {
	return reNonColumn.MatchString(segment)
}

// parseField matches a single column definition.
func parseField(def string) (FieldDescriptor, bool) {
	m := reColumnHead.FindStringSubmatchIndex(def)
	if m == nil {
		return FieldDescriptor{}, false
	}

	f := FieldDescriptor{
		Name:     NormalizeIdentifier(def[m[2]:m[3]]),
		DataType: strings.ToUpper(def[m[4]:m[5]]),
		Nullable: NullableYes,
	}
	if m[6] >= 0 {
		f.DataType += "(" + strings.TrimSpace(def[m[6]:m[7]]) + ")"
	}

	// Attributes after the type: NOT NULL, DEFAULT, AUTO_INCREMENT, COMMENT ...
	attrs := def[m[1]:]
	if clauseEnd(attrs, 0, reNotNull) < len(attrs) {
		f.Nullable = NullableNo
	}
	masked := MaskLiterals(attrs)
	if loc := reFieldComment.FindStringIndex(masked); loc != nil {
		open := loc[1] - 1
		if body, _, ok := readQuoted(attrs, open); ok {
			f.Comment = unescapeQuote(body, attrs[open])
		}
	}
	return f, true
}
