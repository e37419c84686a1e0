package parser

import (
	"regexp"
)

var (
	reCommentEqQuote = regexp.MustCompile(`(?i)\bCOMMENT\s*=\s*['"]`)
	reCommentEqBare  = regexp.MustCompile(`(?i)\bCOMMENT\s*=\s*([^\s,]+)`)
	reCommentLegacy  = regexp.MustCompile(`(?i)\bCOMMENT\s*['"]`)
)

// TableComment extracts the table comment from a table options clause.
// It accepts COMMENT='text' (or double quotes), an unquoted COMMENT=token,
// and the legacy COMMENT 'text' form, in that order of preference.
func TableComment(options string) string {
	if options == "" {
		return ""
	}

	if c, ok := quotedComment(options, reCommentEqQuote); ok {
		return c
	}
	if m := reCommentEqBare.FindStringSubmatch(options); m != nil {
		return m[1]
	}
	if c, ok := quotedComment(options, reCommentLegacy); ok {
		return c
	}
	return ""
}

// quotedComment returns the first closed literal introduced by a match of
// re. Each match of re ends with the literal's opening quote.
func quotedComment(options string, re *regexp.Regexp) (string, bool) {
	for _, loc := range re.FindAllStringIndex(options, -1) {
		open := loc[1] - 1
		body, _, ok := readQuoted(options, open)
		if ok {
			return unescapeQuote(body, options[open]), true
		}
	}
	return "", false
}
