package parser

import (
	"regexp"
	"strings"
)

// Front matter is delimited by lines of exactly "---" at the very start of a
// document, with surrounding whitespace tolerated.
var frontMatterRE = regexp.MustCompile(`(?s)\A\s*---[ \t]*\r?\n(.*?)\r?\n[ \t]*---[ \t]*\r?\n?`)

// ParseFrontMatter extracts the leading key/value metadata block from a
// document. It returns the property map (keys camelCased, values trimmed)
// and the text with the block removed. A document without front matter
// yields an empty map and the text untouched.
//
// Each non-blank line splits on its first colon. Lines that do not produce
// two non-empty parts are skipped: quiz authors are not programmers, and
// partial metadata is better than none.
func ParseFrontMatter(text string) (map[string]string, string) {
	props := make(map[string]string)
	m := frontMatterRE.FindStringSubmatchIndex(text)
	if m == nil {
		return props, text
	}
	block := text[m[2]:m[3]]
	rest := strings.TrimSpace(text[m[1]:])

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		props[CamelCase(key)] = value
	}

	// "ans" is accepted as an alias for "answer"; "answer" wins when both
	// are present.
	if _, ok := props["answer"]; !ok {
		if v, ok := props["ans"]; ok {
			props["answer"] = v
		}
	}

	return props, rest
}
