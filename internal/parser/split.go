package parser

import (
	"iter"
	"regexp"
	"strings"
)

var reStatementHeader = regexp.MustCompile("(?is)^CREATE\\s+(?:TEMPORARY\\s+)?TABLE\\s+(?:IF\\s+NOT\\s+EXISTS\\s+)?" +
	"(?:`(?:[^`]|``)+`|'(?:[^']|'')+'|\"(?:[^\"]|\"\")+\"|" + bareIdent + `(?:\.` + bareIdent + `)*)`)

// Statements returns the CREATE TABLE statements of sql in source order.
// Each statement runs from its CREATE keyword through the first semicolon
// outside quoted text and comments. A statement that reaches the end of
// sql, or the next CREATE TABLE header, without a semicolon is not yielded.
// The sequence can be ranged over more than once; every range re-scans sql
// from the start.
func Statements(sql string) iter.Seq[Statement] {
	return func(yield func(Statement) bool) {
		scanStatements(sql, yield, nil)
	}
}

// scanStatements walks src once, calling emit for every terminated CREATE
// TABLE statement and drop (when non-nil) for every unterminated one.
// Scanning stops early when emit returns false.
func scanStatements(src string, emit func(Statement) bool, drop func(Diagnostic)) {
	lines := lineCounter{src: src, line: 1}
	start := -1

	unterminated := func(at int) {
		if drop != nil {
			drop(newDiagnostic(src[at:], at, lines.at(at), ErrUnterminated))
		}
	}

	for i := 0; i < len(src); {
		c := src[i]

		// Comments and literals never contain statement boundaries.
		switch {
		case c == '#', c == '-' && strings.HasPrefix(src[i:], "--"):
			i = skipLineComment(src, i)
			continue
		case c == '/' && strings.HasPrefix(src[i:], "/*"):
			i = skipBlockComment(src, i)
			continue
		case c == '\'' || c == '"' || c == '`':
			_, end, _ := readQuoted(src, i)
			i = end
			continue
		}

		if (c == 'C' || c == 'c') && wordStart(src, i) {
			if loc := reStatementHeader.FindStringIndex(src[i:]); loc != nil {
				if start >= 0 {
					unterminated(start)
				}
				start = i
				i += loc[1]
				continue
			}
		}

		if c == ';' && start >= 0 {
			stmt := Statement{Text: src[start : i+1], Offset: start, Line: lines.at(start)}
			start = -1
			if !emit(stmt) {
				return
			}
		}
		i++
	}

	if start >= 0 {
		unterminated(start)
	}
}

func skipLineComment(src string, i int) int {
	if nl := strings.IndexByte(src[i:], '\n'); nl >= 0 {
		return i + nl + 1
	}
	return len(src)
}

func skipBlockComment(src string, i int) int {
	if end := strings.Index(src[i+2:], "*/"); end >= 0 {
		return i + 2 + end + 2
	}
	return len(src)
}

// wordStart reports whether src[i] begins a word.
func wordStart(src string, i int) bool {
	if i == 0 {
		return true
	}
	p := src[i-1]
	return !(p == '_' || p == '$' || p == '.' ||
		(p >= '0' && p <= '9') || (p >= 'a' && p <= 'z') || (p >= 'A' && p <= 'Z'))
}

// lineCounter maps byte offsets to line numbers. Offsets must be
// requested in non-decreasing order.
type lineCounter struct {
	src    string
	offset int
	line   int
}

func (lc *lineCounter) at(offset int) int {
	if offset > lc.offset {
		lc.line += strings.Count(lc.src[lc.offset:offset], "\n")
		lc.offset = offset
	}
	return lc.line
}

func newDiagnostic(text string, offset, line int, err error) Diagnostic {
	return Diagnostic{
		Offset:  offset,
		Line:    line,
		Err:     err,
		Reason:  err.Error(),
		Snippet: snippet(text),
	}
}

// snippet returns the first line of text, shortened for log output.
func snippet(text string) string {
	text = strings.TrimSpace(text)
	if nl := strings.IndexAny(text, "\r\n"); nl >= 0 {
		text = text[:nl]
	}
	const max = 80
	if r := []rune(text); len(r) > max {
		text = string(r[:max]) + "..."
	}
	return text
}
