package parser

import (
	"errors"
	"strings"
)

// Errors reported for statements that produce no descriptor.
var (
	ErrHeaderMismatch      = errors.New("statement does not start with a CREATE TABLE header")
	ErrNameNotFound        = errors.New("no table name after CREATE TABLE header")
	ErrUnbalancedDelimiter = errors.New("unbalanced parentheses in column definitions")
	ErrUnterminated        = errors.New("statement has no terminating semicolon")
	ErrNoOpenDelimiter     = errors.New("scan start is not an opening parenthesis")
)

// NormalizeIdentifier strips backtick, double or single quotes from an
// identifier and collapses doubled quote characters inside it.
// Unquoted input is returned unchanged.
func NormalizeIdentifier(ident string) string {
	if len(ident) < 2 {
		return ident
	}
	q := ident[0]
	if q != '`' && q != '"' && q != '\'' {
		return ident
	}
	if ident[len(ident)-1] != q {
		return ident
	}
	inner := ident[1 : len(ident)-1]
	quote := string(q)
	return strings.ReplaceAll(inner, quote+quote, quote)
}

// MatchParen returns the index of the ')' closing the '(' at s[start].
// Parentheses inside single- or double-quoted text are ignored and a
// backslash suppresses whatever character follows it.
func MatchParen(s string, start int) (int, error) {
	if start < 0 || start >= len(s) || s[start] != '(' {
		return -1, ErrNoOpenDelimiter
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\':
			escaped = true
		case c == '\'' || c == '"':
			inString = !inString
		case inString:
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return -1, ErrUnbalancedDelimiter
}

// nextTopLevel returns the index of the first sep at or after from that is
// outside quotes and parentheses, or -1.
func nextTopLevel(s string, from int, sep byte) int {
	depth := 0
	var quote byte
	for i := from; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// MaskLiterals returns a copy of s of the same byte length in which the
// contents of quoted literals are replaced by '_'. Keyword searches run on
// the mask so that words inside comments and defaults are not matched.
func MaskLiterals(s string) string {
	b := []byte(s)
	var quote byte
	for i := 0; i < len(b); i++ {
		c := b[i]
		if quote == 0 {
			if c == '\'' || c == '"' || c == '`' {
				quote = c
			}
			continue
		}
		switch c {
		case '\\':
			b[i] = '_'
			if i+1 < len(b) {
				i++
				b[i] = '_'
			}
		case quote:
			if i+1 < len(b) && b[i+1] == quote {
				b[i] = '_'
				i++
				b[i] = '_'
				continue
			}
			quote = 0
		default:
			b[i] = '_'
		}
	}
	return string(b)
}

// readQuoted reads the literal whose opening quote is at s[start] and
// returns its raw body and the index just past the closing quote.
// Doubled quotes and backslash escapes do not close the literal.
func readQuoted(s string, start int) (body string, end int, ok bool) {
	q := s[start]
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case q:
			if i+1 < len(s) && s[i+1] == q {
				i++
				continue
			}
			return s[start+1 : i], i + 1, true
		}
	}
	return "", len(s), false
}

// unescapeQuote collapses doubled occurrences of quote in s.
func unescapeQuote(s string, quote byte) string {
	q := string(quote)
	return strings.ReplaceAll(s, q+q, q)
}
