package parser

import (
	"regexp"
	"strings"
)

// A section marker is "---" at a line start immediately followed (same line,
// only horizontal whitespace between) by a label of letters and spaces. A
// bare "---" line is a markdown horizontal rule, not a marker; requiring the
// label disambiguates the two.
var sectionRE = regexp.MustCompile(`(?m)^---[ \t]*([A-Za-z][A-Za-z ]*)`)

// SplitSections divides text (front matter already removed) into the main
// body and named sections. Each marker's camelCased label keys the content
// that runs until the next marker or end of text. A trailing label with no
// content is dropped.
func SplitSections(text string) (string, map[string]string) {
	sections := make(map[string]string)
	locs := sectionRE.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return strings.TrimSpace(text), sections
	}

	body := strings.TrimSpace(text[:locs[0][0]])
	for i, m := range locs {
		label := CamelCase(strings.TrimSpace(text[m[2]:m[3]]))
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		content := strings.TrimSpace(text[m[1]:end])
		if content == "" {
			continue
		}
		sections[label] = content
	}
	return body, sections
}

// Multiple choice answer options are separated by bare "---" lines (no
// label) inside the answers section.
var answerSepRE = regexp.MustCompile(`(?m)^---[ \t]*$\n?`)

// SplitAnswerOptions splits an answers section into its individual options,
// trimmed, empty entries dropped.
func SplitAnswerOptions(section string) []string {
	parts := answerSepRE.Split(section, -1)
	options := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		options = append(options, p)
	}
	return options
}
