package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// Identifier forms accepted for table names.
const (
	bareIdent  = `[\p{L}\p{N}_$]+`
	tableIdent = "`(?:[^`]|``)+`|'(?:[^']|'')+'|\"(?:[^\"]|\"\")+\"|" + bareIdent
)

var (
	reCreateHeader = regexp.MustCompile(`(?is)^\s*CREATE\s+(TEMPORARY\s+)?TABLE\s+(IF\s+NOT\s+EXISTS\s+)?`)
	reTableName    = regexp.MustCompile(`^(?:` + tableIdent + `)(?:\s*\.\s*(?:` + tableIdent + `))*`)

	reClauseStart    = regexp.MustCompile(`(?i)^(?:PARTITION|IGNORE|REPLACE|AS)\b`)
	reOptionsEnd     = regexp.MustCompile(`(?i)\s+(?:PARTITION|IGNORE|REPLACE|AS)\s+|\s*;|\s*$`)
	rePartitionStart = regexp.MustCompile(`(?is)^PARTITION\s+BY\b`)
	rePartitionEnd   = regexp.MustCompile(`(?i)\s+(?:IGNORE|REPLACE|AS)\s+|\s*;|\s*$`)
	reDuplicates     = regexp.MustCompile(`(?i)^(IGNORE|REPLACE)\s+`)
	reAsClause       = regexp.MustCompile(`(?i)^AS\s+`)
)

// ParseTable builds a TableDescriptor from a single CREATE TABLE statement.
// It fails with ErrHeaderMismatch, ErrNameNotFound or ErrUnbalancedDelimiter;
// problems inside individual column definitions are not errors.
func ParseTable(stmt string) (TableDescriptor, error) {
	var t TableDescriptor
	stmt = blankComments(stmt)

	// 1. CREATE [TEMPORARY] TABLE [IF NOT EXISTS]
	h := reCreateHeader.FindStringSubmatchIndex(stmt)
	if h == nil {
		return t, ErrHeaderMismatch
	}
	t.Temporary = h[2] >= 0
	t.IfNotExists = h[4] >= 0
	rest := strings.TrimLeft(stmt[h[1]:], " \t\r\n")

	// 2. Table name, possibly qualified
	loc := reTableName.FindStringIndex(rest)
	if loc == nil {
		return t, ErrNameNotFound
	}
	t.Name = normalizeQualified(rest[:loc[1]])
	if t.Name == "" {
		return t, ErrNameNotFound
	}
	rest = strings.TrimSpace(rest[loc[1]:])

	// 3. (create_definition, ...)
	if strings.HasPrefix(rest, "(") {
		end, err := MatchParen(rest, 0)
		if err != nil {
			return TableDescriptor{}, fmt.Errorf("table %s: %w", t.Name, err)
		}
		body := strings.TrimSpace(rest[1:end])
		t.Definition = strings.NewReplacer("\n", "", "\r", "").Replace(body)
		rest = strings.TrimSpace(rest[end+1:])
	}

	// 4. Table options
	if rest != "" && !reClauseStart.MatchString(rest) {
		cut := clauseEnd(rest, 0, reOptionsEnd)
		t.Options = strings.TrimSpace(rest[:cut])
		rest = strings.TrimSpace(rest[cut:])
	}

	// 5. PARTITION BY ...
	if loc := rePartitionStart.FindStringIndex(rest); loc != nil {
		cut := clauseEnd(rest, loc[1], rePartitionEnd)
		t.Partition = strings.TrimSpace(rest[:cut])
		rest = strings.TrimSpace(rest[cut:])
	}

	// 6. [IGNORE | REPLACE] [AS] query_expression
	if m := reDuplicates.FindStringSubmatchIndex(rest); m != nil {
		if strings.EqualFold(rest[m[2]:m[3]], "IGNORE") {
			t.Duplicates = DuplicatesIgnore
		} else {
			t.Duplicates = DuplicatesReplace
		}
		rest = strings.TrimSpace(rest[m[1]:])
	}
	if loc := reAsClause.FindStringIndex(rest); loc != nil {
		as := strings.TrimSpace(rest[loc[1]:])
		t.AsClause = strings.TrimSpace(strings.TrimSuffix(as, ";"))
	}

	// 7. and 8.
	t.Comment = TableComment(t.Options)
	t.Fields = ParseFields(t.Definition)

	return t, nil
}

// blankComments replaces every comment outside quoted literals with
// spaces, keeping line breaks and byte offsets.
func blankComments(s string) string {
	var b []byte
	for i := 0; i < len(s); {
		end := -1
		switch c := s[i]; {
		case c == '#', c == '-' && strings.HasPrefix(s[i:], "--"):
			end = skipLineComment(s, i)
		case c == '/' && strings.HasPrefix(s[i:], "/*"):
			end = skipBlockComment(s, i)
		case c == '\'' || c == '"' || c == '`':
			_, i, _ = readQuoted(s, i)
			continue
		default:
			i++
			continue
		}
		if b == nil {
			b = []byte(s)
		}
		for ; i < end; i++ {
			if b[i] != '\n' && b[i] != '\r' {
				b[i] = ' '
			}
		}
	}
	if b == nil {
		return s
	}
	return string(b)
}

// clauseEnd returns the offset in s of the first match of re at or after
// from that lies outside quoted literals and parentheses.
func clauseEnd(s string, from int, re *regexp.Regexp) int {
	masked := MaskLiterals(s)
	depth := 0
	scanned := 0
	for _, loc := range re.FindAllStringIndex(masked[from:], -1) {
		start := from + loc[0]
		for ; scanned < start; scanned++ {
			switch masked[scanned] {
			case '(':
				depth++
			case ')':
				if depth > 0 {
					depth--
				}
			}
		}
		if depth == 0 {
			return start
		}
	}
	return len(s)
}

// normalizeQualified normalizes each dotted part of a possibly qualified
// name and joins them with '.'.
func normalizeQualified(name string) string {
	var parts []string
	for from := 0; from <= len(name); {
		end := nextTopLevel(name, from, '.')
		if end < 0 {
			end = len(name)
		}
		if part := NormalizeIdentifier(strings.TrimSpace(name[from:end])); part != "" {
			parts = append(parts, part)
		}
		from = end + 1
	}
	return strings.Join(parts, ".")
}
