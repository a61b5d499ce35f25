package parser

import (
	"regexp"
	"strings"
	"unicode"
)

// CamelCase folds a space-separated label into camelCase: "Case Sensitive"
// becomes "caseSensitive". This is the normalization rule for both
// front-matter keys and section headers.
func CamelCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	upperNext := false
	first := true
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			upperNext = true
		case first:
			b.WriteRune(unicode.ToLower(r))
			first = false
		case upperNext:
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

var truthyRE = regexp.MustCompile(`(?i)^(t|y)`)

// Truthy reports whether a front-matter or option value counts as true:
// the literal "1" or anything starting with t or y, case-insensitive.
// Everything else, including the empty string, is false.
func Truthy(s string) bool {
	return s == "1" || truthyRE.MatchString(s)
}
