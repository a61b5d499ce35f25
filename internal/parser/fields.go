package parser

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/quizmark/quizmark/internal/model"
)

// Fill-in-blank placeholder grammar, embedded in the question body:
//
//	___(correctValue)[opt1:val1, opt2:val2]   text blank
//	___{choice1|+:choice2|-:choice3}[opt...]  dropdown
var (
	blankRE     = regexp.MustCompile(`___\((.*?)\)\[(.*?)\]`)
	dropdownRE  = regexp.MustCompile(`___\{(.*?)\}\[(.*?)\]`)
	blankOpenRE = regexp.MustCompile(`___\((.*?)\)\[`)
	choiceSepRE = regexp.MustCompile(`\s*\|\s*`)
	choiceTagRE = regexp.MustCompile(`^(\+|-):`)
	optionSepRE = regexp.MustCompile(`\s*,\s*`)
	anyFieldRE  = regexp.MustCompile(`___[({](.*?)[)}]\[(.*?)\]`)
)

// EncodeBlankTokens base64-encodes the correct-value group of every text
// blank. It runs after section splitting and before markdown rendering so
// that characters like <, > and " survive the converter's escaping pass
// untouched. ExtractFields reverses the encoding.
func EncodeBlankTokens(md string) string {
	return blankOpenRE.ReplaceAllStringFunc(md, func(m string) string {
		sub := blankOpenRE.FindStringSubmatch(m)
		return "___(" + base64.StdEncoding.EncodeToString([]byte(sub[1])) + ")["
	})
}

func decodeBlankToken(s string) string {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		// Not an encoded token; take the value as written.
		return s
	}
	return string(b)
}

// ExtractFields scans rendered HTML for blank and dropdown placeholders,
// replacing each with a bare control element tagged with the question ID and
// field index, and returns the answer fields in document order. It operates
// on rendered HTML rather than raw markdown because the placeholder
// delimiters survive rendering while the answer text may not.
func ExtractFields(html, questionID string) (string, []model.AnswerField) {
	type match struct {
		start, end int
		dropdown   bool
		value      string // blank: encoded correct value; dropdown: choice list
		opts       string
	}

	var matches []match
	for _, m := range blankRE.FindAllStringSubmatchIndex(html, -1) {
		matches = append(matches, match{
			start: m[0], end: m[1],
			value: html[m[2]:m[3]],
			opts:  html[m[4]:m[5]],
		})
	}
	for _, m := range dropdownRE.FindAllStringSubmatchIndex(html, -1) {
		matches = append(matches, match{
			start: m[0], end: m[1],
			dropdown: true,
			value:    html[m[2]:m[3]],
			opts:     html[m[4]:m[5]],
		})
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	var (
		fields []model.AnswerField
		out    strings.Builder
		pos    int
	)
	for i, m := range matches {
		out.WriteString(html[pos:m.start])
		pos = m.end

		opts := parseFieldOptions(m.opts)
		if m.dropdown {
			fields = append(fields, model.AnswerField{
				Kind:    model.FieldDropdown,
				Choices: parseChoices(m.value),
				Shuffle: Truthy(opts["shuffle"]),
			})
			fmt.Fprintf(&out, `<select data-q="%s" data-field="%d"></select>`, questionID, i)
			continue
		}

		spec := model.AnswerSpec{
			CorrectValue:  decodeBlankToken(m.value),
			CaseSensitive: Truthy(opts["caseSensitive"]),
			Width:         opts["width"],
		}
		switch {
		case Truthy(opts["contains"]):
			spec.Mode = model.MatchContains
		case Truthy(opts["regex"]):
			spec.Mode = model.MatchRegex
		}
		fields = append(fields, model.AnswerField{Kind: model.FieldBlank, Spec: spec})
		if spec.Width != "" {
			fmt.Fprintf(&out, `<input type="text" data-q="%s" data-field="%d" style="width: %s"/>`, questionID, i, spec.Width)
		} else {
			fmt.Fprintf(&out, `<input type="text" data-q="%s" data-field="%d"/>`, questionID, i)
		}
	}
	out.WriteString(html[pos:])
	return out.String(), fields
}

// parseChoices splits a dropdown choice list on "|". A "+:" prefix marks a
// correct choice; "-:" (or no prefix) marks an incorrect one.
func parseChoices(list string) []model.Choice {
	var choices []model.Choice
	for _, raw := range choiceSepRE.Split(list, -1) {
		correct := strings.HasPrefix(raw, "+:")
		text := choiceTagRE.ReplaceAllString(raw, "")
		choices = append(choices, model.Choice{Text: text, Correct: correct})
	}
	return choices
}

// parseFieldOptions parses the bracketed option string: comma-separated
// key:value pairs, keys camelCased, whitespace insignificant. Entries
// without a colon are skipped, not fatal.
func parseFieldOptions(s string) map[string]string {
	opts := make(map[string]string)
	for _, entry := range optionSepRE.Split(s, -1) {
		key, value, ok := strings.Cut(entry, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		opts[CamelCase(key)] = value
	}
	return opts
}

// FieldPlaceholders rewrites a token-encoded body so blanks appear as
// numbered gaps, for plain-text display. Field numbering matches
// ExtractFields' document order.
func FieldPlaceholders(md string) string {
	n := 0
	return anyFieldRE.ReplaceAllStringFunc(md, func(string) string {
		n++
		return fmt.Sprintf("____[%d]", n)
	})
}
